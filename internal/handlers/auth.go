package handlers

import (
	"net/http"

	"github.com/crucial707/timetrack/internal/metrics"
	"github.com/crucial707/timetrack/internal/service"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Service *service.AuthService
}

func readCredentials(r *http.Request) (service.Credentials, error) {
	f, err := readForm(r)
	if err != nil {
		return service.Credentials{}, err
	}
	in := service.Credentials{
		Username: f.String("username"),
		Password: f.String("password"),
	}
	return in, f.Err()
}

// ==========================
// Register (creates the account and logs it in)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	in, err := readCredentials(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	_, pair, err := h.Service.Register(r.Context(), in)
	metrics.RecordAuth("register", err == nil)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Account successfully created",
		"refresh": pair.Refresh,
		"access":  pair.Access,
	})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	in, err := readCredentials(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	_, pair, err := h.Service.Login(r.Context(), in)
	metrics.RecordAuth("login", err == nil)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"refresh": pair.Refresh,
		"access":  pair.Access,
	})
}

// ==========================
// Refresh (new access token from a refresh token)
// ==========================
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	refresh := f.String("refresh")
	if err := f.Err(); err != nil {
		respondError(w, r, err)
		return
	}

	access, err := h.Service.RefreshToken(r.Context(), refresh)
	metrics.RecordAuth("refresh", err == nil)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}
