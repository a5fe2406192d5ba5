package handlers

import (
	"net/http"

	"p9e.in/vms/middleware"
	"p9e.in/vms/utils"
)

type dashboardResponse struct {
	TotalRequests     int               `json:"totalRequests"`
	AssignedRequests  int               `json:"assignedRequests"`
	AvailableDrivers  int               `json:"availableDrivers"`
	AvailableVehicles int               `json:"availableVehicles"`
	ExpiredVehicles   int               `json:"expiredVehicles"`
	RequestsPerYear   []utils.YearCount `json:"requestsPerYear"`
}

// Dashboard aggregates the admin landing-page counters and the per-year
// request chart. Counts come straight from the fleet backend; the chart
// merges server history over the baseline series, server winning on shared
// years.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetToken(r)

	var (
		resp dashboardResponse
		err  error
	)
	if resp.TotalRequests, err = fleet.RequestCount(ctx, token); err != nil {
		relayBackendError(w, err)
		return
	}
	if resp.AssignedRequests, err = fleet.AssignedRequestCount(ctx, token); err != nil {
		relayBackendError(w, err)
		return
	}
	if resp.AvailableDrivers, err = fleet.AvailableDriverCount(ctx, token); err != nil {
		relayBackendError(w, err)
		return
	}
	if resp.AvailableVehicles, err = fleet.AvailableVehicleCount(ctx, token); err != nil {
		relayBackendError(w, err)
		return
	}
	if resp.ExpiredVehicles, err = fleet.ExpiredVehicleCount(ctx, token); err != nil {
		relayBackendError(w, err)
		return
	}
	perYear, err := fleet.RequestsPerYear(ctx, token)
	if err != nil {
		relayBackendError(w, err)
		return
	}
	resp.RequestsPerYear = utils.MergeYearlySeries(perYear, utils.BaselineYearlySeries)

	respondJSON(w, http.StatusOK, resp)
}
