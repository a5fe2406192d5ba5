package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/vms/middleware"
	"p9e.in/vms/models"
)

// boardResponse is the admin assignment screen: every request bucketed by
// where it sits in the workflow.
type boardResponse struct {
	Pending               []models.VehicleRequest `json:"pending"`
	AwaitingOfficer       []models.VehicleRequest `json:"awaitingOfficer"`
	ApprovedByOfficer     []models.VehicleRequest `json:"approvedByOfficer"`
	Ongoing               []models.VehicleRequest `json:"ongoing"`
	CancellationRequested []models.VehicleRequest `json:"cancellationRequested"`
	CancellationCount     int                     `json:"cancellationCount"`
}

// RequestBoard fetches the full admin view and buckets it. Officer-approved
// rows are ordered by assignment completeness so the ones ready to start a
// trip surface first.
func RequestBoard(w http.ResponseWriter, r *http.Request) {
	requests, err := fleet.AdminRequests(r.Context(), middleware.GetToken(r))
	if err != nil {
		relayBackendError(w, err)
		return
	}

	approved := models.FilterByStatus(requests, models.StatusApprovedByOfficer)
	models.SortByAssignmentCompleteness(approved)

	cancellations := models.FilterByStatus(requests, models.StatusCancellationRequested)

	respondJSON(w, http.StatusOK, boardResponse{
		Pending:               models.FilterByStatus(requests, models.StatusPending),
		AwaitingOfficer:       models.FilterByStatus(requests, models.StatusApprovedByAdmin),
		ApprovedByOfficer:     approved,
		Ongoing:               models.FilterByStatus(requests, models.StatusOnGoingTrip),
		CancellationRequested: cancellations,
		CancellationCount:     len(cancellations),
	})
}

// findAdminRequest looks a request up in the freshly fetched admin view.
func findAdminRequest(r *http.Request, requestID string) (*models.VehicleRequest, error) {
	requests, err := fleet.AdminRequests(r.Context(), middleware.GetToken(r))
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].RequestID == requestID {
			return &requests[i], nil
		}
	}
	return nil, nil
}

// guardTransition answers the request with the rule's message when the
// action is illegal from the request's current status. Unknown requests are
// left to the backend to reject, so its message stays authoritative.
func guardTransition(w http.ResponseWriter, r *http.Request, requestID string, action models.RequestAction) bool {
	req, err := findAdminRequest(r, requestID)
	if err != nil {
		relayBackendError(w, err)
		return false
	}
	if req != nil {
		if err := models.ApplyError(action, req.Status); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return false
		}
	}
	return true
}

// AssignVehicle binds a vehicle to a pending request; the backend moves it
// to APPROVED_BY_ADMIN and removes the vehicle from the available pool.
func AssignVehicle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, vehicleID := vars["id"], vars["vehicleId"]
	if vehicleID == "" {
		http.Error(w, "a vehicle must be selected before assigning", http.StatusBadRequest)
		return
	}
	if !guardTransition(w, r, requestID, models.ActionAssignVehicle) {
		return
	}

	if err := fleet.AssignVehicle(r.Context(), middleware.GetToken(r), requestID, vehicleID); err != nil {
		relayBackendError(w, err)
		return
	}
	log.Printf("🚗 vehicle %s assigned to %s", vehicleID, requestID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vehicle assigned and sent to Approval Officer."})
}

// AssignDriver binds a driver to an officer-approved request. The status
// stays APPROVED_BY_OFFICER; only the external trip-start event moves it on.
func AssignDriver(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, driverID := vars["id"], vars["driverId"]
	if driverID == "" {
		http.Error(w, "a driver must be selected before assigning", http.StatusBadRequest)
		return
	}
	if !guardTransition(w, r, requestID, models.ActionAssignDriver) {
		return
	}

	if err := fleet.AssignDriver(r.Context(), middleware.GetToken(r), requestID, driverID); err != nil {
		relayBackendError(w, err)
		return
	}
	log.Printf("🧑‍✈️ driver %s assigned to %s", driverID, requestID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Driver assigned. SMS sent to driver and employee."})
}

// ApproveCancellation confirms a pending cancellation; the request ends up
// CANCELLED.
func ApproveCancellation(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	if !guardTransition(w, r, requestID, models.ActionApproveCancellation) {
		return
	}

	if err := fleet.ApproveCancellation(r.Context(), middleware.GetToken(r), requestID); err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Cancellation approved successfully."})
}
