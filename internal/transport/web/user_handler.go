package web

import (
	"net/http"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
)

// ListUsers serves a page of accounts, admin only / Sert une page de comptes, admin uniquement
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	page, err := h.container.UserSvc.List(r.Context(), params.Page, params.Limit, params.Refresh)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

// GetUser serves one account. Regular users may only read their own / Sert un compte. Les utilisateurs ordinaires ne lisent que le leur
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.canAct(r, id) {
		fail(w, http.StatusForbidden, "insufficient permissions", nil)
		return
	}

	resp, err := h.container.UserSvc.GetByID(r.Context(), id)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// CreateUser creates an account with an explicit role, admin only / Crée un compte avec un rôle explicite, admin uniquement
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.container.UserSvc.Register(r.Context(), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusCreated, resp)
}

// PatchUser applies a sparse update to an account. Role changes are enforced
// admin-only by the service; everything else a user may change on their own
// account.
func (h *Handler) PatchUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.canAct(r, id) {
		fail(w, http.StatusForbidden, "insufficient permissions", nil)
		return
	}

	var input map[string]any
	if !decodeJSON(w, r, &input) {
		return
	}

	claims, _ := claimsFrom(r.Context())
	resp, err := h.container.UserSvc.Patch(r.Context(), domain.UserRole(claims.Role), id, input)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// DeleteUser permanently removes an account, admin only / Supprime définitivement un compte, admin uniquement
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.container.UserSvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		failFromErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "user deleted")
}

// canAct reports whether the caller is the target account or an admin / Indique si l'appelant est le compte visé ou un admin
func (h *Handler) canAct(r *http.Request, targetID string) bool {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		return false
	}
	return claims.Subject == targetID || domain.UserRole(claims.Role) == domain.RoleAdmin
}
