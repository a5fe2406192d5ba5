package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/vms/handlers"
	"p9e.in/vms/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/employee-login", handlers.EmployeeLogin).Methods("POST")
	r.HandleFunc("/requests", handlers.SubmitRequest).Methods("POST")
	r.HandleFunc("/my-requests", handlers.MyRequests).Methods("GET")
	r.HandleFunc("/requests/{id}/cancel", handlers.CancelRequest).Methods("PUT")
	r.HandleFunc("/distance/estimate", handlers.EstimateDistance).Methods("POST")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/profile", handlers.Profile).Methods("GET")
	api.HandleFunc("/logout", handlers.Logout).Methods("POST")

	// =====================================================
	// Admin Routes
	// =====================================================
	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.RequireRole("ADMIN"))

	admin.HandleFunc("/dashboard", handlers.Dashboard).Methods("GET")

	admin.HandleFunc("/vehicles", handlers.ListVehicles).Methods("GET")
	admin.HandleFunc("/vehicles", handlers.CreateVehicle).Methods("POST")
	admin.HandleFunc("/vehicles/expired-alerts", handlers.ExpiredVehicleAlerts).Methods("GET")
	admin.HandleFunc("/vehicles/{id}", handlers.UpdateVehicle).Methods("PUT")
	admin.HandleFunc("/vehicles/{id}", handlers.DeleteVehicle).Methods("DELETE")

	admin.HandleFunc("/drivers", handlers.ListDrivers).Methods("GET")
	admin.HandleFunc("/drivers", handlers.CreateDriver).Methods("POST")
	admin.HandleFunc("/drivers/expired-alerts", handlers.ExpiredDriverAlerts).Methods("GET")
	admin.HandleFunc("/drivers/{id}", handlers.UpdateDriver).Methods("PUT")
	admin.HandleFunc("/drivers/{id}", handlers.DeleteDriver).Methods("DELETE")

	admin.HandleFunc("/requests/board", handlers.RequestBoard).Methods("GET")
	admin.HandleFunc("/requests/{id}/assign-vehicle/{vehicleId}", handlers.AssignVehicle).Methods("PUT")
	admin.HandleFunc("/requests/{id}/assign-driver/{driverId}", handlers.AssignDriver).Methods("PUT")
	admin.HandleFunc("/requests/{id}/cancel/approve", handlers.ApproveCancellation).Methods("PUT")

	admin.HandleFunc("/service-records", handlers.ListServiceRecords).Methods("GET")
	admin.HandleFunc("/service-records", handlers.CreateServiceRecord).Methods("POST")
	admin.HandleFunc("/service-records/{id}/mileage", handlers.UpdateServiceMileage).Methods("PUT")
	admin.HandleFunc("/service-records/{id}", handlers.DeleteServiceRecord).Methods("DELETE")
	admin.HandleFunc("/service-intervals", handlers.ServiceIntervals).Methods("GET")

	admin.HandleFunc("/notifications", handlers.GetNotifications).Methods("GET")
	admin.HandleFunc("/notifications/read/{id}", handlers.MarkNotificationRead).Methods("PUT")

	admin.HandleFunc("/export/vehicles.xlsx", handlers.ExportVehicles).Methods("GET")
	admin.HandleFunc("/export/drivers.xlsx", handlers.ExportDrivers).Methods("GET")

	// =====================================================
	// Approval Officer Routes
	// =====================================================
	officer := api.NewRoute().Subrouter()
	officer.Use(middleware.RequireRole("APPROVAL_OFFICER"))

	officer.HandleFunc("/requests/officer", handlers.OfficerRequests).Methods("GET")
	officer.HandleFunc("/requests/{id}/approve", handlers.ApproveRequest).Methods("PUT")
	officer.HandleFunc("/requests/{id}/reject", handlers.RejectRequest).Methods("PUT")
	officer.HandleFunc("/requests/{id}/assigned-details", handlers.AssignedDetails).Methods("GET")

	return r
}
