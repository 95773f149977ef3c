package http

import (
	"net/http"

	"obstetrics-record-service/internal/delivery/http/handler"
	"obstetrics-record-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	patientRecordHandler *handler.PatientRecordHandler
	auditLogHandler      *handler.AuditLogHandler
	corsMiddleware       *middleware.CORSMiddleware
	requestIDMiddleware  *middleware.RequestIDMiddleware
	loggingMiddleware    *middleware.LoggingMiddleware
}

func NewRouter(
	patientRecordHandler *handler.PatientRecordHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	requestIDMiddleware *middleware.RequestIDMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		patientRecordHandler: patientRecordHandler,
		auditLogHandler:      auditLogHandler,
		corsMiddleware:       corsMiddleware,
		requestIDMiddleware:  requestIDMiddleware,
		loggingMiddleware:    loggingMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient records; fixed paths before /{id}
	patients := api.PathPrefix("/patients").Subrouter()
	patients.HandleFunc("", r.patientRecordHandler.GetAllPatients).Methods(http.MethodGet)
	patients.HandleFunc("", r.patientRecordHandler.CreatePatient).Methods(http.MethodPost)
	patients.HandleFunc("/created", r.patientRecordHandler.GetPatientsCreatedBetween).Methods(http.MethodGet)
	patients.HandleFunc("/export", r.patientRecordHandler.ExportPatients).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientRecordHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientRecordHandler.UpdatePatient).Methods(http.MethodPut)
	patients.HandleFunc("/{id}", r.patientRecordHandler.DeletePatient).Methods(http.MethodDelete)
	patients.HandleFunc("/{id}/summary", r.patientRecordHandler.GetPatientSummary).Methods(http.MethodGet)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.requestIDMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	// CORS wraps the router itself; mux middleware never sees an unmatched OPTIONS preflight
	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
