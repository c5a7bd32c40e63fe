package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// DashboardRoutes is the set of handlers the router exposes.
type DashboardRoutes interface {
	GetDashboardPage(w http.ResponseWriter, r *http.Request)
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetView(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	dashboardHandler DashboardRoutes
	router           *mux.Router
	middleware       []mux.MiddlewareFunc
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	dashboardHandler DashboardRoutes,
	router *mux.Router,
	middleware ...mux.MiddlewareFunc) *Router {
	return &Router{
		dashboardHandler: dashboardHandler,
		router:           router,
		middleware:       middleware,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.middleware...)

	// all routes accept optional ?start={YYYY-MM-DD}&end={YYYY-MM-DD}
	r.router.HandleFunc("/", r.dashboardHandler.GetDashboardPage).Methods("GET")
	r.router.HandleFunc("/v1/dashboard", r.dashboardHandler.GetDashboard).Methods("GET")
	// view is one of monthly, weekday, hourly, seasonal, weather
	r.router.HandleFunc("/v1/views/{view}", r.dashboardHandler.GetView).Methods("GET")
	r.router.HandleFunc("/v1/export.xlsx", r.dashboardHandler.ExportXLSX).Methods("GET")

	r.router.HandleFunc("/ping", r.dashboardHandler.Ping).Methods("GET")
}
