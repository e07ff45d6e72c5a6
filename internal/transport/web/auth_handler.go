package web

import (
	"net/http"

	"github.com/Olprog59/go-realty/internal/dto"
)

// Register creates a self-service account. The role field is ignored here:
// public registration always yields a regular user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Role = ""

	resp, err := h.container.UserSvc.Register(r.Context(), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}

	h.container.Metrics.RecordRegistration()
	respond(w, http.StatusCreated, resp)
}

// Login verifies credentials and returns a token pair with the account / Vérifie les identifiants et retourne une paire de jetons avec le compte
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, user, err := h.container.AuthSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		failFromErr(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"tokens": pair,
		"user":   user,
	})
}

// RefreshToken rotates a token pair / Effectue la rotation d'une paire de jetons
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.container.AuthSvc.Refresh(r.Context(), req.Token)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, pair)
}

// ValidateToken verifies an access token and echoes its identity claims / Vérifie un jeton d'accès et renvoie ses claims d'identité
func (h *Handler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	claims, err := h.container.AuthSvc.Validate(req.Token)
	if err != nil {
		failFromErr(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"valid": true,
		"id":    claims.Subject,
		"name":  claims.Name,
		"email": claims.Email,
		"role":  claims.Role,
	})
}

// UpdatePassword changes the password of the authenticated account / Change le mot de passe du compte authentifié
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req dto.PasswordUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.container.AuthSvc.UpdatePassword(r.Context(), claims.Subject, req.CurrentPassword, req.NewPassword); err != nil {
		failFromErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "password updated")
}
