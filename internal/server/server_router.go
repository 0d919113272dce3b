package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func buildRouter(s *consoleServer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)

	// UI/static
	r.Get("/ui/popup.js", s.popupJSHandler)

	// Health/info
	r.Get("/healthz", healthzHandler)
	r.Get("/api/v1/server-info", s.serverInfoHandler)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	// Popup APIs
	r.Get("/api/v1/popup/presets", presetsHandler)
	r.Post("/api/v1/popup/plan", s.popupPlanHandler)

	// Validation APIs
	r.Post("/api/v1/validate/range", s.validateRangeHandler)
	r.Post("/api/v1/validate/field", s.validateFieldHandler)

	// Table APIs
	r.Post("/api/v1/table/buttons", s.tableButtonsHandler)

	// Multi-host operation APIs
	r.Get("/api/v1/operations", s.listOperationsHandler)
	r.Post("/api/v1/operations", s.createOperationHandler)
	r.Post("/api/v1/operations/{id}/hosts", s.recordHostResultHandler)
	r.Get("/api/v1/operations/{id}/status", s.operationStatusHandler)

	return r
}
