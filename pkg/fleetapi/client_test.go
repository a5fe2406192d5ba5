package fleetapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"p9e.in/vms/models"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Vehicles(context.Background(), "tok123"); err != nil {
		t.Fatalf("Vehicles: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, expected Bearer tok123", gotAuth)
	}
}

func TestClientSurfacesBackendMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Request is already cancelled", http.StatusConflict)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.ApproveCancellation(context.Background(), "tok", "VEH-REQ-2024-001")
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Request is already cancelled" {
		t.Errorf("message = %q, expected the backend's words", apiErr.Message)
	}
}

func TestClientDecodesCollections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vehicle-requests/admin" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"requestId":"VEH-REQ-2024-001","status":"PENDING","distanceKm":42.5}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	reqs, err := c.AdminRequests(context.Background(), "tok")
	if err != nil {
		t.Fatalf("AdminRequests: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Status != models.StatusPending || reqs[0].DistanceKm != 42.5 {
		t.Errorf("decoded %+v", reqs)
	}
}

func TestClientCountEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vehicles/count-expired":
			w.Write([]byte(`3`))
		case "/vehicle-requests/count-per-year":
			w.Write([]byte(`{"2023":12,"2024":7}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	n, err := c.ExpiredVehicleCount(context.Background(), "tok")
	if err != nil || n != 3 {
		t.Errorf("ExpiredVehicleCount = %d, %v", n, err)
	}
	years, err := c.RequestsPerYear(context.Background(), "tok")
	if err != nil || years["2023"] != 12 || years["2024"] != 7 {
		t.Errorf("RequestsPerYear = %v, %v", years, err)
	}
}

func TestClientEmptyBodyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.ApproveRequest(context.Background(), "tok", "VEH-REQ-2024-001"); err != nil {
		t.Errorf("ApproveRequest with empty body: %v", err)
	}
}
