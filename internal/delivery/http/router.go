package http

import (
	"net/http"

	"medical-calculator-backend/internal/delivery/http/handler"
	"medical-calculator-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	sdaiHandler          *handler.SDAIHandler
	doctorPatientHandler *handler.DoctorPatientHandler
	healthHandler        *handler.HealthHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	sdaiHandler *handler.SDAIHandler,
	doctorPatientHandler *handler.DoctorPatientHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		sdaiHandler:          sdaiHandler,
		doctorPatientHandler: doctorPatientHandler,
		healthHandler:        healthHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	health := api.PathPrefix("/health").Subrouter()
	health.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Admin probe (superuser only)
	admin := api.PathPrefix("/auth").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireSuperuser)
	admin.HandleFunc("/admin-only", r.authHandler.AdminOnly).Methods(http.MethodGet)

	// SDAI records, readable by any authenticated user
	sdai := api.PathPrefix("/sdai").Subrouter()
	sdai.Use(r.authMiddleware.Authenticate)
	sdai.HandleFunc("/records", r.sdaiHandler.ListRecords).Methods(http.MethodGet)
	sdai.HandleFunc("/records/{id:[0-9]+}", r.sdaiHandler.GetRecord).Methods(http.MethodGet)
	sdai.HandleFunc("/statistics", r.sdaiHandler.GetStatistics).Methods(http.MethodGet)
	sdai.HandleFunc("/doctors", r.doctorPatientHandler.GetMyDoctors).Methods(http.MethodGet)

	// Clinician-only operations
	medical := api.PathPrefix("/sdai").Subrouter()
	medical.Use(r.authMiddleware.Authenticate)
	medical.Use(middleware.RequireMedical)
	medical.HandleFunc("/records", r.sdaiHandler.CreateRecord).Methods(http.MethodPost)
	medical.HandleFunc("/records/{id:[0-9]+}", r.sdaiHandler.UpdateRecord).Methods(http.MethodPut)
	medical.HandleFunc("/records/{id:[0-9]+}", r.sdaiHandler.DeleteRecord).Methods(http.MethodDelete)
	medical.HandleFunc("/patients", r.sdaiHandler.GetPatients).Methods(http.MethodGet)
	medical.HandleFunc("/patients", r.doctorPatientHandler.AddPatient).Methods(http.MethodPost)
	medical.HandleFunc("/patients/{patientId}", r.doctorPatientHandler.RemovePatient).Methods(http.MethodDelete)
	medical.HandleFunc("/patients/search", r.doctorPatientHandler.SearchPatients).Methods(http.MethodGet)
	medical.HandleFunc("/search", r.sdaiHandler.SearchRecords).Methods(http.MethodGet)
	medical.HandleFunc("/export", r.sdaiHandler.Export).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
