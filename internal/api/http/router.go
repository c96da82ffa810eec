package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartride-backend/internal/security"
	"smartride-backend/internal/service"
)

// Handlers bundles the service dependencies of the HTTP API.
type Handlers struct {
	Auth      service.AuthService
	Booking   service.BookingService
	Lifecycle service.LifecycleService
	Reports   service.ReportService
	Vehicles  service.VehicleService
	Tokens    security.TokenManager
}

// NewRouter assembles the full API route table. Routes fall into three
// tiers: public, authenticated, and admin-only.
func NewRouter(h *Handlers) *mux.Router {
	authMW := NewAuthMiddleware(h.Tokens)

	authHandler := NewAuthHandler(h.Auth)
	vehicleHandler := NewVehicleHandler(h.Vehicles)
	rentalHandler := NewRentalHandler(h.Booking, h.Lifecycle)
	reservationHandler := NewReservationHandler(h.Lifecycle)
	maintenanceHandler := NewMaintenanceHandler(h.Lifecycle)
	reportHandler := NewReportHandler(h.Reports)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/admin/login", authHandler.AdminLogin).Methods("POST")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")
	api.HandleFunc("/vehicles", vehicleHandler.List).Methods("GET")
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Get).Methods("GET")
	api.HandleFunc("/vehicles/{id:[0-9]+}/availability", rentalHandler.CheckAvailability).Methods("GET")
	api.HandleFunc("/vehicle-types", vehicleHandler.ListTypes).Methods("GET")
	api.HandleFunc("/health", handleHealth).Methods("GET")

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(authMW.Authenticate)
	authed.HandleFunc("/me", authHandler.Profile).Methods("GET")
	authed.HandleFunc("/me", authHandler.UpdateProfile).Methods("PUT")
	authed.HandleFunc("/me/rentals", rentalHandler.MyRentals).Methods("GET")
	authed.HandleFunc("/me/reservations", reservationHandler.MyReservations).Methods("GET")
	authed.HandleFunc("/me/stats", reportHandler.MyStats).Methods("GET")
	authed.HandleFunc("/rentals", rentalHandler.Create).Methods("POST")
	authed.HandleFunc("/reservations", reservationHandler.Create).Methods("POST")
	authed.HandleFunc("/reservations/{id:[0-9]+}", reservationHandler.Cancel).Methods("DELETE")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMW.Authenticate, authMW.RequireAdmin)
	admin.HandleFunc("/customers", authHandler.ListCustomers).Methods("GET")
	admin.HandleFunc("/customers", authHandler.CreateCustomer).Methods("POST")
	admin.HandleFunc("/vehicles", vehicleHandler.Create).Methods("POST")
	admin.HandleFunc("/vehicles/export", vehicleHandler.ExportCSV).Methods("GET")
	admin.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Update).Methods("PUT")
	admin.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/rentals/{id:[0-9]+}/return", rentalHandler.Return).Methods("POST")
	admin.HandleFunc("/reservations", reservationHandler.List).Methods("GET")
	admin.HandleFunc("/reservations/{id:[0-9]+}/fulfill", reservationHandler.Fulfill).Methods("POST")
	admin.HandleFunc("/maintenance", maintenanceHandler.Start).Methods("POST")
	admin.HandleFunc("/maintenance", vehicleHandler.ListMaintenance).Methods("GET")
	admin.HandleFunc("/maintenance/{id:[0-9]+}/complete", maintenanceHandler.Complete).Methods("POST")
	admin.HandleFunc("/reports/overdue", reportHandler.Overdue).Methods("GET")
	admin.HandleFunc("/reports/history", reportHandler.History).Methods("GET")
	admin.HandleFunc("/reports/revenue", reportHandler.MonthlyRevenue).Methods("GET")
	admin.HandleFunc("/dashboard", reportHandler.Dashboard).Methods("GET")

	return router
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
