package web

import (
	"net/http"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
)

// ListOwners serves a filtered page of owners / Sert une page filtrée de propriétaires
func (h *Handler) ListOwners(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := domain.OwnerFilter{
		Name:    r.URL.Query().Get("name"),
		Address: r.URL.Query().Get("address"),
	}

	page, err := h.container.OwnerSvc.List(r.Context(), filter, params.Page, params.Limit, params.Refresh)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

// GetOwner serves a single owner by id / Sert un propriétaire unique par id
func (h *Handler) GetOwner(w http.ResponseWriter, r *http.Request) {
	resp, err := h.container.OwnerSvc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// CreateOwner stores a new owner / Stocke un nouveau propriétaire
func (h *Handler) CreateOwner(w http.ResponseWriter, r *http.Request) {
	var req dto.OwnerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.container.OwnerSvc.Create(r.Context(), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusCreated, resp)
}

// ReplaceOwner overwrites a whole owner / Remplace un propriétaire entier
func (h *Handler) ReplaceOwner(w http.ResponseWriter, r *http.Request) {
	var req dto.OwnerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.container.OwnerSvc.Replace(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// PatchOwner applies a sparse update / Applique une mise à jour partielle
func (h *Handler) PatchOwner(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if !decodeJSON(w, r, &input) {
		return
	}

	resp, err := h.container.OwnerSvc.Patch(r.Context(), r.PathValue("id"), input)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// DeleteOwner removes an owner / Supprime un propriétaire
func (h *Handler) DeleteOwner(w http.ResponseWriter, r *http.Request) {
	if err := h.container.OwnerSvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		failFromErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "owner deleted")
}
