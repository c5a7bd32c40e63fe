package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// MockDashboardHandler answers every route with a fixed body.
type MockDashboardHandler struct{}

func (h *MockDashboardHandler) GetDashboardPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<html>dashboard</html>`))
}

func (h *MockDashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "dashboard"}`))
}

func (h *MockDashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"view": "` + mux.Vars(r)["view"] + `"}`))
}

func (h *MockDashboardHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`xlsx`))
}

func (h *MockDashboardHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"pong"}`))
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	router := mux.NewRouter()
	appRouter := NewRouter(&MockDashboardHandler{}, router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "Dashboard Page",
			method:     "GET",
			path:       "/?start=2011-01-01",
			statusCode: http.StatusOK,
			response:   `<html>dashboard</html>`,
		},
		{
			name:       "Dashboard JSON",
			method:     "GET",
			path:       "/v1/dashboard",
			statusCode: http.StatusOK,
			response:   `{"message": "dashboard"}`,
		},
		{
			name:       "Single View",
			method:     "GET",
			path:       "/v1/views/hourly",
			statusCode: http.StatusOK,
			response:   `{"view": "hourly"}`,
		},
		{
			name:       "Export",
			method:     "GET",
			path:       "/v1/export.xlsx",
			statusCode: http.StatusOK,
			response:   `xlsx`,
		},
		{
			name:       "Ping Route",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `{"status":"pong"}`,
		},
		{
			name:       "Wrong Method",
			method:     "POST",
			path:       "/v1/dashboard",
			statusCode: http.StatusMethodNotAllowed,
		},
		{
			name:       "Invalid Route",
			method:     "GET",
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, test.statusCode, rr.Code)
			if test.response != "" {
				assert.Equal(t, test.response, rr.Body.String())
			}
		})
	}
}
