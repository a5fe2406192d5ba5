package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"p9e.in/vms/middleware"
	"p9e.in/vms/models"
	"p9e.in/vms/utils"
)

// registerPage is the envelope every paged register response uses.
type registerPage struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func statusParam(r *http.Request) string {
	if s := r.URL.Query().Get("status"); s != "" {
		return s
	}
	return utils.StatusAll
}

// vehicleStatus is what the register shows and filters on: a vehicle whose
// revenue license has lapsed reads Expired no matter what the backend row
// says. Drivers have no such derivation; their stored status stands.
func vehicleStatus(v models.Vehicle, today time.Time) string {
	if utils.IsExpired(v.LicenseExpiryDate, v.Status, today, utils.ExpiredBefore) {
		return "Expired"
	}
	return v.Status
}

// ListVehicles serves one page of the vehicle register, filtered by free text
// over number, type and manufacturer plus an exact status match.
func ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := fleet.Vehicles(r.Context(), middleware.GetToken(r))
	if err != nil {
		relayBackendError(w, err)
		return
	}

	today := time.Now()
	filtered := utils.Filter(vehicles,
		r.URL.Query().Get("q"),
		statusParam(r),
		func(v models.Vehicle) string { return vehicleStatus(v, today) },
		func(v models.Vehicle) string { return v.VehicleNumber },
		func(v models.Vehicle) string { return string(v.VehicleType) },
		func(v models.Vehicle) string { return v.Manufacturer },
	)

	totalPages := utils.TotalPages(len(filtered), utils.RegisterPageSize)
	page := utils.ClampPage(pageParam(r), totalPages)
	respondJSON(w, http.StatusOK, registerPage{
		Data:       utils.Paginate(filtered, page, utils.RegisterPageSize),
		Total:      len(filtered),
		Page:       page,
		TotalPages: totalPages,
	})
}

// CreateVehicle registers a vehicle, deriving its id from the ids already in
// the fleet (VEH-001, VEH-002, ...).
func CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	token := middleware.GetToken(r)

	existing, err := fleet.Vehicles(r.Context(), token)
	if err != nil {
		relayBackendError(w, err)
		return
	}
	ids := make([]string, 0, len(existing))
	for _, v := range existing {
		ids = append(ids, v.VehicleID)
	}
	vehicle.VehicleID = utils.NextID(ids, "VEH", 3)

	if err := fleet.CreateVehicle(r.Context(), token, vehicle); err != nil {
		relayBackendError(w, err)
		return
	}
	log.Printf("🚗 vehicle %s registered", vehicle.VehicleID)
	respondJSON(w, http.StatusCreated, vehicle)
}

// UpdateVehicle forwards edits for the vehicle in the path.
func UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	vehicle.VehicleID = mux.Vars(r)["id"]

	if err := fleet.UpdateVehicle(r.Context(), middleware.GetToken(r), vehicle); err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := fleet.DeleteVehicle(r.Context(), middleware.GetToken(r), mux.Vars(r)["id"]); err != nil {
		relayBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExpiredVehicleAlerts lists vehicles whose revenue license has lapsed. A
// license expiring today is still good for the day; a status already reading
// EXPIRED counts regardless of the date on file.
func ExpiredVehicleAlerts(w http.ResponseWriter, r *http.Request) {
	vehicles, err := fleet.Vehicles(r.Context(), middleware.GetToken(r))
	if err != nil {
		relayBackendError(w, err)
		return
	}
	expired := utils.ExpiredOf(vehicles, time.Now(), utils.ExpiredBefore,
		func(v models.Vehicle) string { return v.LicenseExpiryDate },
		func(v models.Vehicle) string { return v.Status },
	)
	respondJSON(w, http.StatusOK, expired)
}
