package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"p9e.in/vms/pkg/fleetapi"
	"p9e.in/vms/pkg/geodist"
	"p9e.in/vms/store"
)

// Package-level collaborators, wired once at startup. The fleet client and
// geo estimator are shared by every screen handler.
var (
	fleet     *fleetapi.Client
	kv        store.Store
	estimator *geodist.Estimator
	poller    *NotificationPoller
)

// Setup injects the handlers' collaborators.
func Setup(client *fleetapi.Client, kvStore store.Store, est *geodist.Estimator) {
	fleet = client
	kv = kvStore
	estimator = est
}

// SetPoller registers the running notification poller.
func SetPoller(p *NotificationPoller) {
	poller = p
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// relayBackendError surfaces a backend rejection verbatim (its status and
// its words), and degrades transport failures to a generic 502. Local view
// state is never touched on either path.
func relayBackendError(w http.ResponseWriter, err error) {
	var apiErr *fleetapi.APIError
	if errors.As(err, &apiErr) {
		http.Error(w, apiErr.Error(), apiErr.StatusCode)
		return
	}
	log.Printf("⚠️  fleet backend unreachable: %v", err)
	http.Error(w, "fleet backend unavailable, please retry", http.StatusBadGateway)
}
