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

// ListDrivers serves one page of the driver register. Free text matches
// name, phone number and NIC.
func ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := fleet.Drivers(r.Context(), middleware.GetToken(r))
	if err != nil {
		relayBackendError(w, err)
		return
	}

	filtered := utils.Filter(drivers,
		r.URL.Query().Get("q"),
		statusParam(r),
		func(d models.Driver) string { return d.Status },
		func(d models.Driver) string { return d.Name },
		func(d models.Driver) string { return d.PhoneNumber },
		func(d models.Driver) string { return d.NIC },
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

func CreateDriver(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	token := middleware.GetToken(r)

	existing, err := fleet.Drivers(r.Context(), token)
	if err != nil {
		relayBackendError(w, err)
		return
	}
	ids := make([]string, 0, len(existing))
	for _, d := range existing {
		ids = append(ids, d.DriverID)
	}
	driver.DriverID = utils.NextID(ids, "DRI", 3)

	if err := fleet.CreateDriver(r.Context(), token, driver); err != nil {
		relayBackendError(w, err)
		return
	}
	log.Printf("🪪 driver %s registered", driver.DriverID)
	respondJSON(w, http.StatusCreated, driver)
}

func UpdateDriver(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	driver.DriverID = mux.Vars(r)["id"]

	if err := fleet.UpdateDriver(r.Context(), middleware.GetToken(r), driver); err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, driver)
}

func DeleteDriver(w http.ResponseWriter, r *http.Request) {
	if err := fleet.DeleteDriver(r.Context(), middleware.GetToken(r), mux.Vars(r)["id"]); err != nil {
		relayBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExpiredDriverAlerts lists drivers whose license expires today or earlier.
// Unlike vehicles, a driver is off the road on the expiry day itself.
func ExpiredDriverAlerts(w http.ResponseWriter, r *http.Request) {
	drivers, err := fleet.Drivers(r.Context(), middleware.GetToken(r))
	if err != nil {
		relayBackendError(w, err)
		return
	}
	expired := utils.ExpiredOf(drivers, time.Now(), utils.ExpiredOnOrBefore,
		func(d models.Driver) string { return d.LicenseExpiryDate },
		nil,
	)
	respondJSON(w, http.StatusOK, expired)
}
