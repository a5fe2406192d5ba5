package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"p9e.in/vms/config"
	"p9e.in/vms/middleware"
	"p9e.in/vms/models"
	"p9e.in/vms/pkg/fleetapi"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string   `json:"token"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Login forwards credentials to the fleet backend and caches the issued
// token with its profile as a session row.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	out, err := fleet.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		relayBackendError(w, err)
		return
	}

	profile, _ := json.Marshal(map[string]interface{}{
		"email": req.Email,
		"roles": out.Roles,
	})
	session := models.Session{
		ID:         uuid.New(),
		Email:      req.Email,
		Token:      out.Token,
		Roles:      out.Roles,
		Profile:    datatypes.JSON(profile),
		LastSeenAt: time.Now(),
	}
	if err := config.DB.Create(&session).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, loginResp{Token: out.Token, Email: req.Email, Roles: out.Roles})
}

// EmployeeLogin verifies a request id plus traveler credentials with the
// backend. No token is involved; the credentials themselves authorize the
// cancel screen.
func EmployeeLogin(w http.ResponseWriter, r *http.Request) {
	var req fleetapi.EmployeeLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.RequestID == "" || req.TravelerName == "" || req.PhoneNumber == "" {
		http.Error(w, "requestId, travelerName and phoneNumber are required", http.StatusBadRequest)
		return
	}

	if err := fleet.EmployeeLogin(r.Context(), req); err != nil {
		relayBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"travelerName": req.TravelerName,
		"phoneNumber":  req.PhoneNumber,
	})
}

// Profile returns the cached session for the caller's token.
func Profile(w http.ResponseWriter, r *http.Request) {
	var session models.Session
	if err := config.DB.First(&session, "token = ?", middleware.GetToken(r)).Error; err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	config.DB.Model(&session).Update("last_seen_at", time.Now())

	respondJSON(w, http.StatusOK, session)
}

// Logout drops the caller's session row. The backend token itself expires on
// its own schedule.
func Logout(w http.ResponseWriter, r *http.Request) {
	config.DB.Where("token = ?", middleware.GetToken(r)).Delete(&models.Session{})
	w.WriteHeader(http.StatusNoContent)
}
