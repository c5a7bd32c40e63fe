package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bikeshare-dashboard/aggregator"
	"bikeshare-dashboard/logger"
	"bikeshare-dashboard/models"
	services "bikeshare-dashboard/service"
	"bikeshare-dashboard/util"

	"github.com/gorilla/mux"
)

const (
	START_QUERY_ARG = "start"
	END_QUERY_ARG   = "end"
	VIEW_PATH_VAR   = "view"
)

const XLSX_CONTENT_TYPE = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ViewResponse is the JSON body of GET /v1/views/{view}.
type ViewResponse struct {
	View  string                   `json:"view"`
	Range models.DateRange         `json:"range"`
	Rows  []aggregator.Row[string] `json:"rows"`
}

type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           logger.Logger
}

func NewDashboardHandler(dashboardService *services.DashboardService, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger.WithComponent(log, "dashboard_handler"),
	}
}

// GetDashboardPage handles GET / and renders the HTML dashboard.
func (h *DashboardHandler) GetDashboardPage(w http.ResponseWriter, r *http.Request) {
	// 1) Parse query args
	dateRange, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	// 2) Filter and aggregate
	d, ok := h.loadDashboard(w, r, dateRange)
	if !ok {
		return
	}

	// 3) Render charts
	bounds, _ := h.dashboardService.Bounds()
	var buf bytes.Buffer
	if err := util.RenderDashboardPage(&buf, d, bounds); err != nil {
		h.logger.Errorf("Error rendering dashboard page: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetDashboard handles GET /v1/dashboard.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dateRange, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}
	d, ok := h.loadDashboard(w, r, dateRange)
	if !ok {
		return
	}
	h.writeJSON(w, d)
}

// GetView handles GET /v1/views/{view}.
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	view := mux.Vars(r)[VIEW_PATH_VAR]
	dateRange, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	rows, err := h.dashboardService.GetViewRows(r.Context(), view, dateRange)
	if err != nil {
		if errors.Is(err, aggregator.ErrUnknownView) {
			http.Error(w, "Unknown view "+view, http.StatusNotFound)
			return
		}
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, ViewResponse{View: view, Range: dateRange, Rows: rows})
}

// ExportXLSX handles GET /v1/export.xlsx.
func (h *DashboardHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	dateRange, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}
	d, ok := h.loadDashboard(w, r, dateRange)
	if !ok {
		return
	}

	data, err := util.ExportDashboardXLSX(d)
	if err != nil {
		h.logger.Errorf("Error exporting dashboard %s: %v", dateRange, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", XLSX_CONTENT_TYPE)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bikeshare_%s.xlsx"`, dateRange))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Ping handles GET /ping
func (h *DashboardHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "pong"})
}

// parseArgs reads the optional start/end dates and resolves them against the
// dataset bounds. On failure the error response is already written.
func (h *DashboardHandler) parseArgs(vals url.Values, w http.ResponseWriter) (models.DateRange, bool) {
	start, err := parseArgDate(vals, START_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+START_QUERY_ARG, http.StatusBadRequest)
		return models.DateRange{}, false
	}
	end, err := parseArgDate(vals, END_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+END_QUERY_ARG, http.StatusBadRequest)
		return models.DateRange{}, false
	}

	dateRange, err := h.dashboardService.ResolveRange(start, end)
	if err != nil {
		h.writeServiceError(w, err)
		return models.DateRange{}, false
	}
	return dateRange, true
}

func (h *DashboardHandler) loadDashboard(w http.ResponseWriter, r *http.Request, dateRange models.DateRange) (*aggregator.Dashboard, bool) {
	d, err := h.dashboardService.GetDashboard(r.Context(), dateRange)
	if err != nil {
		h.writeServiceError(w, err)
		return nil, false
	}
	return d, true
}

func (h *DashboardHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidDateRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrDatasetNotLoaded):
		http.Error(w, "Dataset not loaded", http.StatusServiceUnavailable)
	default:
		h.logger.Errorf("Error serving dashboard: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeJSON encodes before writing the header so an encoding failure still
// yields a 500.
func (h *DashboardHandler) writeJSON(w http.ResponseWriter, body interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		h.logger.Errorf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseArgDate returns nil when the argument is absent.
func parseArgDate(vals url.Values, name string) (*time.Time, error) {
	s := vals.Get(name)
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
