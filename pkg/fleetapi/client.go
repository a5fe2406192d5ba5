// Package fleetapi is the HTTP client for the external fleet backend. Every
// fleet entity lives there; this client only ferries JSON and surfaces the
// backend's rejection messages verbatim so screens can show them unchanged.
package fleetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"p9e.in/vms/models"
)

// Client talks to one fleet backend instance.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// APIError is a non-2xx backend answer. Message carries the backend's own
// words where it sent any.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("fleet backend returned status %d", e.StatusCode)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling fleet backend: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// --- auth ---

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

// Login exchanges credentials for a backend-issued bearer token. This client
// never mints tokens itself.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type EmployeeLoginRequest struct {
	RequestID    string `json:"requestId"`
	TravelerName string `json:"travelerName"`
	PhoneNumber  string `json:"phoneNumber"`
}

// EmployeeLogin verifies a request id against traveler credentials.
func (c *Client) EmployeeLogin(ctx context.Context, req EmployeeLoginRequest) error {
	return c.do(ctx, http.MethodPost, "/employee-login", "", req, nil)
}

// --- vehicles ---

func (c *Client) Vehicles(ctx context.Context, token string) ([]models.Vehicle, error) {
	var out []models.Vehicle
	err := c.do(ctx, http.MethodGet, "/vehicles", token, nil, &out)
	return out, err
}

func (c *Client) AvailableVehicles(ctx context.Context, token string) ([]models.Vehicle, error) {
	var out []models.Vehicle
	err := c.do(ctx, http.MethodGet, "/vehicles/available", token, nil, &out)
	return out, err
}

func (c *Client) CreateVehicle(ctx context.Context, token string, v models.Vehicle) error {
	return c.do(ctx, http.MethodPost, "/vehicles", token, v, nil)
}

func (c *Client) UpdateVehicle(ctx context.Context, token string, v models.Vehicle) error {
	return c.do(ctx, http.MethodPut, "/vehicles/"+url.PathEscape(v.VehicleID), token, v, nil)
}

func (c *Client) DeleteVehicle(ctx context.Context, token, vehicleID string) error {
	return c.do(ctx, http.MethodDelete, "/vehicles/"+url.PathEscape(vehicleID), token, nil, nil)
}

// --- drivers ---

func (c *Client) Drivers(ctx context.Context, token string) ([]models.Driver, error) {
	var out []models.Driver
	err := c.do(ctx, http.MethodGet, "/drivers", token, nil, &out)
	return out, err
}

func (c *Client) AvailableDrivers(ctx context.Context, token string) ([]models.Driver, error) {
	var out []models.Driver
	err := c.do(ctx, http.MethodGet, "/drivers/available", token, nil, &out)
	return out, err
}

func (c *Client) CreateDriver(ctx context.Context, token string, d models.Driver) error {
	return c.do(ctx, http.MethodPost, "/drivers", token, d, nil)
}

func (c *Client) UpdateDriver(ctx context.Context, token string, d models.Driver) error {
	return c.do(ctx, http.MethodPut, "/drivers/"+url.PathEscape(d.DriverID), token, d, nil)
}

func (c *Client) DeleteDriver(ctx context.Context, token, driverID string) error {
	return c.do(ctx, http.MethodDelete, "/drivers/"+url.PathEscape(driverID), token, nil, nil)
}

// --- vehicle requests ---

func (c *Client) AdminRequests(ctx context.Context, token string) ([]models.VehicleRequest, error) {
	var out []models.VehicleRequest
	err := c.do(ctx, http.MethodGet, "/vehicle-requests/admin", token, nil, &out)
	return out, err
}

func (c *Client) OfficerRequests(ctx context.Context, token string) ([]models.VehicleRequest, error) {
	var out []models.VehicleRequest
	err := c.do(ctx, http.MethodGet, "/vehicle-requests/officer", token, nil, &out)
	return out, err
}

func (c *Client) SubmitRequest(ctx context.Context, token string, r models.VehicleRequest) error {
	return c.do(ctx, http.MethodPost, "/vehicle-requests", token, r, nil)
}

func (c *Client) MyRequests(ctx context.Context, travelerName, phoneNumber string) ([]models.VehicleRequest, error) {
	q := url.Values{}
	q.Set("travelerName", travelerName)
	q.Set("phoneNumber", phoneNumber)
	var out []models.VehicleRequest
	err := c.do(ctx, http.MethodGet, "/my-requests?"+q.Encode(), "", nil, &out)
	return out, err
}

func (c *Client) AssignVehicle(ctx context.Context, token, requestID, vehicleID string) error {
	path := fmt.Sprintf("/vehicle-requests/assign/%s/%s", url.PathEscape(requestID), url.PathEscape(vehicleID))
	return c.do(ctx, http.MethodPut, path, token, nil, nil)
}

func (c *Client) AssignDriver(ctx context.Context, token, requestID, driverID string) error {
	path := fmt.Sprintf("/vehicle-requests/assign-driver/%s/%s", url.PathEscape(requestID), url.PathEscape(driverID))
	return c.do(ctx, http.MethodPut, path, token, nil, nil)
}

func (c *Client) ApproveRequest(ctx context.Context, token, requestID string) error {
	return c.do(ctx, http.MethodPut, "/vehicle-requests/approve/"+url.PathEscape(requestID), token, nil, nil)
}

func (c *Client) RejectRequest(ctx context.Context, token, requestID string) error {
	return c.do(ctx, http.MethodPut, "/vehicle-requests/reject/"+url.PathEscape(requestID), token, nil, nil)
}

func (c *Client) CancelRequest(ctx context.Context, token, requestID string, payload models.CancelPayload) error {
	return c.do(ctx, http.MethodPut, "/vehicle-requests/"+url.PathEscape(requestID)+"/cancel", token, payload, nil)
}

func (c *Client) ApproveCancellation(ctx context.Context, token, requestID string) error {
	return c.do(ctx, http.MethodPut, "/vehicle-requests/"+url.PathEscape(requestID)+"/cancel/approve", token, nil, nil)
}

// AssignedDetails fetches the vehicle and driver bound to a request, shaped
// by the backend.
func (c *Client) AssignedDetails(ctx context.Context, token, requestID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, http.MethodGet, "/vehicle-requests/"+url.PathEscape(requestID)+"/assigned-details", token, nil, &out)
	return out, err
}

// --- counts ---

func (c *Client) count(ctx context.Context, token, path string) (int, error) {
	var out int
	err := c.do(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

func (c *Client) RequestCount(ctx context.Context, token string) (int, error) {
	return c.count(ctx, token, "/vehicle-requests/count")
}

func (c *Client) AssignedRequestCount(ctx context.Context, token string) (int, error) {
	return c.count(ctx, token, "/vehicle-requests/count-assigned")
}

func (c *Client) AvailableDriverCount(ctx context.Context, token string) (int, error) {
	return c.count(ctx, token, "/drivers/count-available")
}

func (c *Client) AvailableVehicleCount(ctx context.Context, token string) (int, error) {
	return c.count(ctx, token, "/vehicles/count-available")
}

func (c *Client) ExpiredVehicleCount(ctx context.Context, token string) (int, error) {
	return c.count(ctx, token, "/vehicles/count-expired")
}

func (c *Client) RequestsPerYear(ctx context.Context, token string) (map[string]int, error) {
	var out map[string]int
	err := c.do(ctx, http.MethodGet, "/vehicle-requests/count-per-year", token, nil, &out)
	return out, err
}

// --- service records ---

func (c *Client) ServiceRecords(ctx context.Context, token string) ([]models.ServiceRecord, error) {
	var out []models.ServiceRecord
	err := c.do(ctx, http.MethodGet, "/vehicle-services", token, nil, &out)
	return out, err
}

func (c *Client) VehicleServiceRecords(ctx context.Context, token, vehicleID string) ([]models.ServiceRecord, error) {
	var out []models.ServiceRecord
	err := c.do(ctx, http.MethodGet, "/vehicle-services/vehicle/"+url.PathEscape(vehicleID), token, nil, &out)
	return out, err
}

func (c *Client) ServiceIntervals(ctx context.Context, token string) (map[string]int, error) {
	var out map[string]int
	err := c.do(ctx, http.MethodGet, "/vehicle-services/service-intervals", token, nil, &out)
	return out, err
}

func (c *Client) CreateServiceRecord(ctx context.Context, token string, rec models.ServiceRecord) error {
	return c.do(ctx, http.MethodPost, "/vehicle-services", token, rec, nil)
}

func (c *Client) UpdateServiceRecord(ctx context.Context, token string, rec models.ServiceRecord) error {
	return c.do(ctx, http.MethodPut, "/vehicle-services/"+url.PathEscape(rec.ID), token, rec, nil)
}

func (c *Client) DeleteServiceRecord(ctx context.Context, token, recordID string) error {
	return c.do(ctx, http.MethodDelete, "/vehicle-services/"+url.PathEscape(recordID), token, nil, nil)
}

// --- notifications ---

func (c *Client) Notifications(ctx context.Context, email string) ([]models.Notification, error) {
	var out []models.Notification
	err := c.do(ctx, http.MethodGet, "/notifications/"+url.PathEscape(email), "", nil, &out)
	return out, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/notifications/read/"+url.PathEscape(id), "", nil, nil)
}
