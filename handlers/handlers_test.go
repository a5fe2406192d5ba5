package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"p9e.in/vms/models"
	"p9e.in/vms/pkg/fleetapi"
	"p9e.in/vms/pkg/geodist"
	"p9e.in/vms/store"
)

// wire points the handlers at a fake fleet backend for one test.
func wire(t *testing.T, backend http.Handler) *store.MemStore {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	kvStore := store.NewMemStore()
	resolver := geodist.NewResolver(srv.URL+"/geo", srv.URL+"/route")
	Setup(fleetapi.New(srv.URL), kvStore, geodist.NewEstimator(resolver))
	return kvStore
}

func TestListVehiclesFiltersAndPages(t *testing.T) {
	vehicles := make([]models.Vehicle, 0, 9)
	for i := 1; i <= 9; i++ {
		vehicles = append(vehicles, models.Vehicle{
			VehicleID:     fmt.Sprintf("VEH-%03d", i),
			VehicleNumber: fmt.Sprintf("CAB-%04d", i),
			VehicleType:   models.VehicleTypeVan,
			Manufacturer:  "Toyota",
			Status:        "Available",
		})
	}
	backend := http.NewServeMux()
	backend.HandleFunc("/vehicles", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(vehicles)
	})
	wire(t, backend)

	rec := httptest.NewRecorder()
	ListVehicles(rec, httptest.NewRequest(http.MethodGet, "/vehicles?page=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page struct {
		Data       []models.Vehicle `json:"data"`
		Total      int              `json:"total"`
		Page       int              `json:"page"`
		TotalPages int              `json:"totalPages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding page: %v", err)
	}
	if page.Total != 9 || page.TotalPages != 2 || page.Page != 2 {
		t.Fatalf("got total=%d totalPages=%d page=%d, want 9/2/2", page.Total, page.TotalPages, page.Page)
	}
	if len(page.Data) != 2 {
		t.Fatalf("second page holds %d vehicles, want 2", len(page.Data))
	}
	if page.Data[0].VehicleID != "VEH-008" {
		t.Errorf("second page starts at %s, want VEH-008", page.Data[0].VehicleID)
	}

	// An out-of-range page snaps back to the last one.
	rec = httptest.NewRecorder()
	ListVehicles(rec, httptest.NewRequest(http.MethodGet, "/vehicles?page=99", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding clamped page: %v", err)
	}
	if page.Page != 2 {
		t.Errorf("page 99 clamped to %d, want 2", page.Page)
	}
}

func TestListVehiclesDerivesExpiredStatus(t *testing.T) {
	backend := http.NewServeMux()
	backend.HandleFunc("/vehicles", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Vehicle{
			{VehicleID: "VEH-001", Status: "Available", LicenseExpiryDate: "2020-01-01"},
			{VehicleID: "VEH-002", Status: "Available", LicenseExpiryDate: "2099-01-01"},
		})
	})
	wire(t, backend)

	fetch := func(status string) []models.Vehicle {
		t.Helper()
		rec := httptest.NewRecorder()
		ListVehicles(rec, httptest.NewRequest(http.MethodGet, "/vehicles?status="+status, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status=%s: code = %d, want 200", status, rec.Code)
		}
		var page struct {
			Data []models.Vehicle `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
			t.Fatalf("status=%s: decoding page: %v", status, err)
		}
		return page.Data
	}

	// The lapsed license makes VEH-001 Expired even though the backend row
	// still reads Available.
	expired := fetch("Expired")
	if len(expired) != 1 || expired[0].VehicleID != "VEH-001" {
		t.Fatalf("status=Expired returned %v, want just VEH-001", expired)
	}
	available := fetch("Available")
	if len(available) != 1 || available[0].VehicleID != "VEH-002" {
		t.Fatalf("status=Available returned %v, want just VEH-002", available)
	}
}

func TestCreateVehicleDerivesNextID(t *testing.T) {
	var created models.Vehicle
	backend := http.NewServeMux()
	backend.HandleFunc("/vehicles", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewDecoder(r.Body).Decode(&created)
			w.WriteHeader(http.StatusCreated)
			return
		}
		json.NewEncoder(w).Encode([]models.Vehicle{
			{VehicleID: "VEH-002"}, {VehicleID: "VEH-007"}, {VehicleID: "VEH-004"},
		})
	})
	wire(t, backend)

	body := strings.NewReader(`{"vehicleNumber":"CAB-1234","vehicleType":"Car","manufacturer":"Toyota"}`)
	rec := httptest.NewRecorder()
	CreateVehicle(rec, httptest.NewRequest(http.MethodPost, "/vehicles", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if created.VehicleID != "VEH-008" {
		t.Errorf("generated id = %q, want VEH-008", created.VehicleID)
	}
}

func TestSubmitRequestUsesPersistedCounter(t *testing.T) {
	var submitted []models.VehicleRequest
	backend := http.NewServeMux()
	backend.HandleFunc("/vehicle-requests", func(w http.ResponseWriter, r *http.Request) {
		var req models.VehicleRequest
		json.NewDecoder(r.Body).Decode(&req)
		submitted = append(submitted, req)
		w.WriteHeader(http.StatusCreated)
	})
	wire(t, backend)

	payload := `{"requesterName":"Nimal","travelerName":"Kamal","department":"Finance",` +
		`"phoneNumber":"0771234567","fromLocation":"Colombo","toLocation":"Kandy",` +
		`"reason":"Audit visit","distanceKm":94.5}`

	year := time.Now().Year()
	for i, want := range []string{
		fmt.Sprintf("VEH-REQ-%d-001", year),
		fmt.Sprintf("VEH-REQ-%d-002", year),
	} {
		rec := httptest.NewRecorder()
		SubmitRequest(rec, httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(payload)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("submission %d: status = %d: %s", i+1, rec.Code, rec.Body.String())
		}
		if submitted[i].RequestID != want {
			t.Errorf("submission %d: id = %q, want %q", i+1, submitted[i].RequestID, want)
		}
		if submitted[i].Status != models.StatusPending {
			t.Errorf("submission %d: status = %q, want PENDING", i+1, submitted[i].Status)
		}
	}
}

func TestSubmitRequestRejectsMissingFields(t *testing.T) {
	wire(t, http.NewServeMux())

	rec := httptest.NewRecorder()
	SubmitRequest(rec, httptest.NewRequest(http.MethodPost, "/requests",
		strings.NewReader(`{"requesterName":"Nimal"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCancelRequestBlocksDoubleCancellation(t *testing.T) {
	backend := http.NewServeMux()
	backend.HandleFunc("/my-requests", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.VehicleRequest{
			{RequestID: "VEH-REQ-2026-004", TravelerName: "Kamal", Status: models.StatusCancellationRequested},
		})
	})
	wire(t, backend)

	req := httptest.NewRequest(http.MethodPut, "/requests/VEH-REQ-2026-004/cancel",
		strings.NewReader(`{"travelerName":"Kamal","phoneNumber":"0771234567"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "VEH-REQ-2026-004"})

	rec := httptest.NewRecorder()
	CancelRequest(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "not allowed") {
		t.Errorf("body %q does not carry the transition message", rec.Body.String())
	}
}

func TestRequestBoardBucketsAndOrders(t *testing.T) {
	veh, drv := "VEH-001", "DRI-001"
	backend := http.NewServeMux()
	backend.HandleFunc("/vehicle-requests/admin", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.VehicleRequest{
			{RequestID: "R1", Status: models.StatusPending},
			{RequestID: "R2", Status: models.StatusApprovedByOfficer},
			{RequestID: "R3", Status: models.StatusApprovedByOfficer, AssignedVehicleID: &veh, AssignedDriverID: &drv},
			{RequestID: "R4", Status: models.StatusApprovedByOfficer, AssignedVehicleID: &veh},
			{RequestID: "R5", Status: models.StatusCancellationRequested},
		})
	})
	wire(t, backend)

	rec := httptest.NewRecorder()
	RequestBoard(rec, httptest.NewRequest(http.MethodGet, "/requests/board", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var board struct {
		Pending           []models.VehicleRequest `json:"pending"`
		ApprovedByOfficer []models.VehicleRequest `json:"approvedByOfficer"`
		CancellationCount int                     `json:"cancellationCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
		t.Fatalf("decoding board: %v", err)
	}
	if len(board.Pending) != 1 || board.CancellationCount != 1 {
		t.Fatalf("pending=%d cancellations=%d, want 1/1", len(board.Pending), board.CancellationCount)
	}
	gotOrder := make([]string, 0, len(board.ApprovedByOfficer))
	for _, r := range board.ApprovedByOfficer {
		gotOrder = append(gotOrder, r.RequestID)
	}
	if fmt.Sprint(gotOrder) != "[R3 R4 R2]" {
		t.Errorf("completeness order = %v, want [R3 R4 R2]", gotOrder)
	}
}

func TestDashboardMergesBaselineSeries(t *testing.T) {
	backend := http.NewServeMux()
	for path, n := range map[string]int{
		"/vehicle-requests/count":          12,
		"/vehicle-requests/count-assigned": 5,
		"/drivers/count-available":         3,
		"/vehicles/count-available":        4,
		"/vehicles/count-expired":          1,
	} {
		n := n
		backend.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, n)
		})
	}
	backend.HandleFunc("/vehicle-requests/count-per-year", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"2023": 12, "2026": 7})
	})
	wire(t, backend)

	rec := httptest.NewRecorder()
	Dashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding dashboard: %v", err)
	}
	if resp.TotalRequests != 12 || resp.ExpiredVehicles != 1 {
		t.Fatalf("counts = %+v, want totalRequests=12 expiredVehicles=1", resp)
	}
	if len(resp.RequestsPerYear) != 6 {
		t.Fatalf("series holds %d years, want 6", len(resp.RequestsPerYear))
	}
	for _, yc := range resp.RequestsPerYear {
		if yc.Name == "2023" && yc.Value != 12 {
			t.Errorf("2023 = %d, server value 12 should win over baseline", yc.Value)
		}
	}
	last := resp.RequestsPerYear[len(resp.RequestsPerYear)-1]
	if last.Name != "2026" {
		t.Errorf("series ends at %s, want 2026 (ascending order)", last.Name)
	}
}

func TestUpdateServiceMileageUsesVehicleType(t *testing.T) {
	var updated models.ServiceRecord
	backend := http.NewServeMux()
	backend.HandleFunc("/vehicle-services/SR-001", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&updated)
		w.WriteHeader(http.StatusOK)
	})
	wire(t, backend)

	update := func(body string) models.ServiceRecord {
		t.Helper()
		req := httptest.NewRequest(http.MethodPut, "/service-records/SR-001/mileage", strings.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"id": "SR-001"})
		rec := httptest.NewRecorder()
		UpdateServiceMileage(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		return updated
	}

	// A truck re-derives with the truck interval, not the Car fallback.
	got := update(`{"currentMileage":30000,"vehicleType":"Truck"}`)
	if got.ServiceInterval != 12000 || got.NextServiceMileage != 42000 {
		t.Errorf("truck update = interval %d next %.0f, want 12000/42000",
			got.ServiceInterval, got.NextServiceMileage)
	}

	// Without a type the Car interval stands in.
	got = update(`{"currentMileage":1000}`)
	if got.ServiceInterval != 6000 || got.NextServiceMileage != 7000 {
		t.Errorf("typeless update = interval %d next %.0f, want 6000/7000",
			got.ServiceInterval, got.NextServiceMileage)
	}
}

func TestBackendErrorRelayedVerbatim(t *testing.T) {
	backend := http.NewServeMux()
	backend.HandleFunc("/vehicles", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Vehicle is already assigned"}`, http.StatusConflict)
	})
	wire(t, backend)

	rec := httptest.NewRecorder()
	ListVehicles(rec, httptest.NewRequest(http.MethodGet, "/vehicles", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Vehicle is already assigned") {
		t.Errorf("backend message lost: %q", rec.Body.String())
	}
}
