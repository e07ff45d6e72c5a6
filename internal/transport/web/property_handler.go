package web

import (
	"net/http"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
)

// ListProperties serves the filtered, paginated, cached listing query.
// Supported filters: name, address, minPrice, maxPrice, idOwner. Pagination
// via page and limit; refresh=true bypasses the cache.
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	minPrice, err := optionalInt64Query(r, "minPrice")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	maxPrice, err := optionalInt64Query(r, "maxPrice")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := domain.PropertyFilter{
		Name:     r.URL.Query().Get("name"),
		Address:  r.URL.Query().Get("address"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		OwnerID:  r.URL.Query().Get("idOwner"),
	}

	page, err := h.container.PropertySvc.List(r.Context(), filter, params.Page, params.Limit, params.Refresh)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

// GetProperty serves a single listing by id / Sert une annonce unique par id
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	resp, err := h.container.PropertySvc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// CreateProperty stores a new listing / Stocke une nouvelle annonce
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req dto.PropertyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.container.PropertySvc.Create(r.Context(), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusCreated, resp)
}

// ReplaceProperty overwrites a whole listing / Remplace une annonce entière
func (h *Handler) ReplaceProperty(w http.ResponseWriter, r *http.Request) {
	var req dto.PropertyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.container.PropertySvc.Replace(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// PatchProperty applies a sparse update / Applique une mise à jour partielle
func (h *Handler) PatchProperty(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if !decodeJSON(w, r, &input) {
		return
	}

	resp, err := h.container.PropertySvc.Patch(r.Context(), r.PathValue("id"), input)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// DeleteProperty removes a listing and its attachments / Supprime une annonce et ses pièces jointes
func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.container.PropertySvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		failFromErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "property deleted")
}
