package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"p9e.in/vms/middleware"
	"p9e.in/vms/models"
	"p9e.in/vms/utils"
)

// SubmitRequest files a new vehicle request. The request id comes from the
// persisted counter (not from scanning the collection) and the distance is
// estimated when the form did not carry one.
func SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req models.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	for name, v := range map[string]string{
		"requesterName": req.RequesterName,
		"travelerName":  req.TravelerName,
		"department":    req.Department,
		"phoneNumber":   req.PhoneNumber,
		"fromLocation":  req.FromLocation,
		"toLocation":    req.ToLocation,
		"reason":        req.Reason,
	} {
		if v == "" {
			http.Error(w, name+" is required", http.StatusBadRequest)
			return
		}
	}
	if req.DistanceKm < 0 {
		http.Error(w, "distanceKm must not be negative", http.StatusBadRequest)
		return
	}

	requestID, err := utils.NextRequestID(kv, time.Now().Year())
	if err != nil {
		http.Error(w, "could not allocate request id", http.StatusInternalServerError)
		return
	}
	req.RequestID = requestID
	req.Status = models.StatusPending

	if req.DistanceKm == 0 {
		if km, ok := estimator.Estimate(r.Context(), req.FromLocation, req.ToLocation); ok {
			req.DistanceKm = km
		}
		// No estimate is not an error; the form's own figure stands.
	}

	if err := fleet.SubmitRequest(r.Context(), middleware.GetToken(r), req); err != nil {
		relayBackendError(w, err)
		return
	}

	log.Printf("📋 request %s submitted for %s", req.RequestID, req.TravelerName)
	respondJSON(w, http.StatusCreated, req)
}

// MyRequests lists the requests matching the caller's traveler credentials.
func MyRequests(w http.ResponseWriter, r *http.Request) {
	travelerName := r.URL.Query().Get("travelerName")
	phoneNumber := r.URL.Query().Get("phoneNumber")
	if travelerName == "" || phoneNumber == "" {
		http.Error(w, "travelerName and phoneNumber are required", http.StatusBadRequest)
		return
	}

	requests, err := fleet.MyRequests(r.Context(), travelerName, phoneNumber)
	if err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// CancelRequest asks for cancellation of a request. Legal from any
// non-terminal state; the transition table is consulted before the backend
// so a double-cancel fails fast, and the backend remains the authority.
func CancelRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]

	var payload models.CancelPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	requests, err := fleet.MyRequests(r.Context(), payload.TravelerName, payload.PhoneNumber)
	if err != nil {
		relayBackendError(w, err)
		return
	}
	for _, req := range requests {
		if req.RequestID != requestID {
			continue
		}
		if err := models.ApplyError(models.ActionRequestCancellation, req.Status); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		break
	}

	if err := fleet.CancelRequest(r.Context(), middleware.GetToken(r), requestID, payload); err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Cancellation request sent successfully."})
}

// EstimateDistance serves the form's live distance preview. Overlapping
// calls are resolved last-issued-wins inside the estimator.
func EstimateDistance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromPlace string `json:"fromPlace"`
		ToPlace   string `json:"toPlace"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.FromPlace == "" || req.ToPlace == "" {
		http.Error(w, "fromPlace and toPlace are required", http.StatusBadRequest)
		return
	}

	km, ok := estimator.Estimate(r.Context(), req.FromPlace, req.ToPlace)
	if !ok {
		// Graceful degradation: the caller keeps its manual figure.
		respondJSON(w, http.StatusOK, map[string]interface{}{"available": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"available": true, "distanceKm": km})
}
