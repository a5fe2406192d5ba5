package models

import (
	"fmt"
	"sort"
	"strings"
)

// RequestStatus is the lifecycle state of a vehicle request. The backend is
// the authority for transitions; this table mirrors its rules so screens can
// gate actions before calling out.
type RequestStatus string

const (
	StatusPending               RequestStatus = "PENDING"
	StatusApprovedByAdmin       RequestStatus = "APPROVED_BY_ADMIN"
	StatusApprovedByOfficer     RequestStatus = "APPROVED_BY_OFFICER"
	StatusOnGoingTrip           RequestStatus = "ON_GOING_TRIP"
	StatusCompleted             RequestStatus = "COMPLETED"
	StatusRejected              RequestStatus = "REJECTED"
	StatusCancellationRequested RequestStatus = "CANCELLATION_REQUESTED"
	StatusCancelled             RequestStatus = "CANCELLED"
)

// VehicleRequest mirrors a request row owned by the fleet backend.
type VehicleRequest struct {
	RequestID          string        `json:"requestId"`
	RequesterName      string        `json:"requesterName"`
	RequesterPosition  string        `json:"requesterPosition"`
	TravelerName       string        `json:"travelerName"`
	TravelerPosition   string        `json:"travelerPosition"`
	Department         string        `json:"department"`
	PhoneNumber        string        `json:"phoneNumber"`
	DutyNature         string        `json:"dutyNature"`
	FromLocation       string        `json:"fromLocation"`
	ToLocation         string        `json:"toLocation"`
	TravelDateTime     string        `json:"travelDateTime"`
	Reason             string        `json:"reason"`
	DistanceKm         float64       `json:"distanceKm"`
	Status             RequestStatus `json:"status"`
	AssignedVehicleID  *string       `json:"assignedVehicleId,omitempty"`
	AssignedDriverID   *string       `json:"assignedDriverId,omitempty"`
	CancellationReason *string       `json:"cancellationReason,omitempty"`
}

// RequestAction is an operation an actor may attempt on a request.
type RequestAction string

const (
	ActionAssignVehicle       RequestAction = "assign-vehicle"
	ActionApprove             RequestAction = "approve"
	ActionReject              RequestAction = "reject"
	ActionAssignDriver        RequestAction = "assign-driver"
	ActionRequestCancellation RequestAction = "request-cancellation"
	ActionApproveCancellation RequestAction = "approve-cancellation"
)

// actionRule is one row of the transition table: the statuses an action is
// legal from, and the status the backend will move the request to.
// ActionAssignDriver leaves the status untouched; the trip-start event that
// moves a request to ON_GOING_TRIP is external and has no rule here.
type actionRule struct {
	from []RequestStatus
	to   RequestStatus
}

var terminalForCancel = map[RequestStatus]bool{
	StatusCompleted:             true,
	StatusCancelled:             true,
	StatusCancellationRequested: true,
	StatusRejected:              true,
}

var transitions = map[RequestAction]actionRule{
	ActionAssignVehicle:       {from: []RequestStatus{StatusPending}, to: StatusApprovedByAdmin},
	ActionApprove:             {from: []RequestStatus{StatusApprovedByAdmin}, to: StatusApprovedByOfficer},
	ActionReject:              {from: []RequestStatus{StatusApprovedByAdmin}, to: StatusRejected},
	ActionAssignDriver:        {from: []RequestStatus{StatusApprovedByOfficer}, to: StatusApprovedByOfficer},
	ActionApproveCancellation: {from: []RequestStatus{StatusCancellationRequested}, to: StatusCancelled},
}

// CanApply reports whether action is legal from the given status.
// Cancellation requests are allowed from any non-terminal status, so they are
// checked against the terminal set rather than an allow-list.
func CanApply(action RequestAction, status RequestStatus) bool {
	if action == ActionRequestCancellation {
		return !terminalForCancel[RequestStatus(strings.ToUpper(string(status)))]
	}
	rule, ok := transitions[action]
	if !ok {
		return false
	}
	for _, s := range rule.from {
		if s == status {
			return true
		}
	}
	return false
}

// ApplyError explains why an action is not legal from a status. The text is
// what a screen shows when the check fails before the backend is ever called.
func ApplyError(action RequestAction, status RequestStatus) error {
	if CanApply(action, status) {
		return nil
	}
	return fmt.Errorf("action %s is not allowed while request is %s", action, status)
}

// ResultingStatus returns the status the backend reports after a confirmed
// action. Used for display only; local state is never flipped ahead of the
// backend.
func ResultingStatus(action RequestAction) (RequestStatus, bool) {
	rule, ok := transitions[action]
	if !ok {
		if action == ActionRequestCancellation {
			return StatusCancellationRequested, true
		}
		return "", false
	}
	return rule.to, true
}

// CancelPayload is the body a cancellation request must carry. Traveler
// credentials are mandatory; the reason falls back to a fixed default.
type CancelPayload struct {
	TravelerName string `json:"travelerName"`
	PhoneNumber  string `json:"phoneNumber"`
	Reason       string `json:"reason"`
}

const DefaultCancelReason = "No reason provided"

// Validate fills the default reason and rejects missing traveler credentials.
func (p *CancelPayload) Validate() error {
	if strings.TrimSpace(p.TravelerName) == "" || strings.TrimSpace(p.PhoneNumber) == "" {
		return fmt.Errorf("traveler credentials are missing, cannot cancel request")
	}
	if strings.TrimSpace(p.Reason) == "" {
		p.Reason = DefaultCancelReason
	}
	return nil
}

// AssignmentScore counts how many of the vehicle/driver slots are filled.
func (r *VehicleRequest) AssignmentScore() int {
	score := 0
	if r.AssignedVehicleID != nil && *r.AssignedVehicleID != "" {
		score++
	}
	if r.AssignedDriverID != nil && *r.AssignedDriverID != "" {
		score++
	}
	return score
}

// SortByAssignmentCompleteness orders officer-approved rows so fully staffed
// requests come first. The sort is stable: rows with equal scores keep their
// fetched order.
func SortByAssignmentCompleteness(requests []VehicleRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].AssignmentScore() > requests[j].AssignmentScore()
	})
}

// FilterByStatus returns the requests currently in the given status,
// preserving order.
func FilterByStatus(requests []VehicleRequest, status RequestStatus) []VehicleRequest {
	var out []VehicleRequest
	for _, r := range requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
