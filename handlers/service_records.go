package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/vms/middleware"
	"p9e.in/vms/models"
)

// ListServiceRecords returns all service records, or just the given vehicle's
// when ?vehicleId= is present.
func ListServiceRecords(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetToken(r)

	var (
		records []models.ServiceRecord
		err     error
	)
	if vehicleID := r.URL.Query().Get("vehicleId"); vehicleID != "" {
		records, err = fleet.VehicleServiceRecords(r.Context(), token, vehicleID)
	} else {
		records, err = fleet.ServiceRecords(r.Context(), token)
	}
	if err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// ServiceIntervals merges the backend's per-type intervals over the built-in
// defaults, so every known type always has a figure.
func ServiceIntervals(w http.ResponseWriter, r *http.Request) {
	intervals := make(map[string]int, len(models.DefaultServiceIntervals))
	for t, km := range models.DefaultServiceIntervals {
		intervals[string(t)] = km
	}
	if fromBackend, err := fleet.ServiceIntervals(r.Context(), middleware.GetToken(r)); err == nil {
		for t, km := range fromBackend {
			intervals[t] = km
		}
	}
	respondJSON(w, http.StatusOK, intervals)
}

// CreateServiceRecord stores a new service entry, filling the interval and
// next-service mileage from the vehicle's type when left blank.
func CreateServiceRecord(w http.ResponseWriter, r *http.Request) {
	var rec models.ServiceRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if rec.VehicleID == "" {
		http.Error(w, "a vehicle must be selected for the service record", http.StatusBadRequest)
		return
	}
	token := middleware.GetToken(r)

	vehicleType := models.VehicleTypeCar
	if vehicles, err := fleet.Vehicles(r.Context(), token); err == nil {
		for _, v := range vehicles {
			if v.VehicleID == rec.VehicleID {
				vehicleType = v.VehicleType
				break
			}
		}
	}
	rec.WithDerivedMileage(vehicleType)

	if err := fleet.CreateServiceRecord(r.Context(), token, rec); err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// UpdateServiceMileage adjusts a record's current mileage and re-derives the
// next service point. The payload carries the vehicle type so the interval
// fallback matches the vehicle; an absent type falls back to the Car figure.
func UpdateServiceMileage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CurrentMileage  float64            `json:"currentMileage"`
		ServiceInterval int                `json:"serviceInterval"`
		VehicleType     models.VehicleType `json:"vehicleType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rec := models.ServiceRecord{
		ID:              mux.Vars(r)["id"],
		CurrentMileage:  payload.CurrentMileage,
		ServiceInterval: payload.ServiceInterval,
	}
	rec.WithDerivedMileage(payload.VehicleType)

	if err := fleet.UpdateServiceRecord(r.Context(), middleware.GetToken(r), rec); err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func DeleteServiceRecord(w http.ResponseWriter, r *http.Request) {
	if err := fleet.DeleteServiceRecord(r.Context(), middleware.GetToken(r), mux.Vars(r)["id"]); err != nil {
		relayBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
