package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/vms/middleware"
	"p9e.in/vms/models"
)

// OfficerRequests lists the queue waiting on the approval officer.
func OfficerRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := fleet.OfficerRequests(r.Context(), middleware.GetToken(r))
	if err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// ApproveRequest moves an admin-approved request to APPROVED_BY_OFFICER.
func ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	if !guardOfficerTransition(w, r, requestID, models.ActionApprove) {
		return
	}
	if err := fleet.ApproveRequest(r.Context(), middleware.GetToken(r), requestID); err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Request approved."})
}

// RejectRequest ends an admin-approved request in the terminal REJECTED state.
func RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	if !guardOfficerTransition(w, r, requestID, models.ActionReject) {
		return
	}
	if err := fleet.RejectRequest(r.Context(), middleware.GetToken(r), requestID); err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Request rejected."})
}

// AssignedDetails expands the vehicle and driver bound to a request.
func AssignedDetails(w http.ResponseWriter, r *http.Request) {
	details, err := fleet.AssignedDetails(r.Context(), middleware.GetToken(r), mux.Vars(r)["id"])
	if err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// guardOfficerTransition is the officer-queue twin of guardTransition: the
// lookup goes through the officer view the handler already has access to.
func guardOfficerTransition(w http.ResponseWriter, r *http.Request, requestID string, action models.RequestAction) bool {
	requests, err := fleet.OfficerRequests(r.Context(), middleware.GetToken(r))
	if err != nil {
		relayBackendError(w, err)
		return false
	}
	for _, req := range requests {
		if req.RequestID != requestID {
			continue
		}
		if err := models.ApplyError(action, req.Status); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return false
		}
		break
	}
	return true
}
