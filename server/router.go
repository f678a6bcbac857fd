package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NppHandlerAPI is the set of HTTP handlers the router wires up.
type NppHandlerAPI interface {
	GetDiagnostics(w http.ResponseWriter, r *http.Request)
	GetExportTasks(w http.ResponseWriter, r *http.Request)
	GetRegionsNearby(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	nppHandler NppHandlerAPI
	router     *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	nppHandler NppHandlerAPI,
	router *mux.Router) *Router {
	return &Router{
		nppHandler: nppHandler,
		router:     router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?region_id={id}&date={yyyy-mm-dd}
	r.router.HandleFunc("/v1/npp/diagnostics", r.nppHandler.GetDiagnostics).Methods("GET")

	// expects ?region_id={id}
	r.router.HandleFunc("/v1/npp/exports", r.nppHandler.GetExportTasks).Methods("GET")

	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={radius_meters(float)}
	r.router.HandleFunc("/v1/regions/nearby", r.nppHandler.GetRegionsNearby).Methods("GET")

	r.router.HandleFunc("/ping", r.nppHandler.Ping).Methods("GET")
}
