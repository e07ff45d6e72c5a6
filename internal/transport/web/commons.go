// Package web is the HTTP transport of the listing API. Handlers decode and
// validate the wire shapes, call the services, and translate service errors
// into the uniform response envelope.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Olprog59/go-realty/internal/app"
	"github.com/Olprog59/go-realty/internal/repository"
	"github.com/Olprog59/go-realty/internal/service"
	"github.com/Olprog59/go-realty/internal/service/auth"
)

const maxBodyBytes = 1 << 20 // 1MB

// Handler is a container for application dependencies that are required by HTTP handlers.
// By embedding the application's dependency injection container, it provides handlers
// with access to services, repositories, and configuration.
type Handler struct {
	container *app.Container
}

// NewHandler creates and returns a new Handler instance.
func NewHandler(container *app.Container) *Handler {
	return &Handler{container: container}
}

// envelope is the uniform response shape of every endpoint / Forme de réponse uniforme de chaque endpoint
type envelope struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message,omitempty"`
	Data       any      `json:"data,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// respond sends a success envelope with a payload / Envoie une enveloppe de succès avec une charge utile
func respond(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope{
		Success:    true,
		StatusCode: statusCode,
		Data:       data,
	})
}

// respondMessage sends a success envelope with only a message / Envoie une enveloppe de succès avec seulement un message
func respondMessage(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
	})
}

// fail sends an error envelope / Envoie une enveloppe d'erreur
func fail(w http.ResponseWriter, statusCode int, message string, errs []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	})
}

// failFromErr maps a service error onto the HTTP taxonomy / Mappe une erreur de service sur la taxonomie HTTP
func failFromErr(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		fail(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.Is(err, service.ErrEmptyPatch):
		fail(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		fail(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, service.ErrForbidden):
		fail(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		fail(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrEmailTaken):
		fail(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, repository.ErrUnavailable):
		fail(w, http.StatusServiceUnavailable, "store unavailable", nil)
	default:
		fail(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

// decodeJSON decodes a bounded JSON body into dst / Décode un corps JSON borné dans dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON body", nil)
		return false
	}
	return true
}
