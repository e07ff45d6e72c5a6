package web

import (
	"net/http"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
)

// ListImages serves a filtered page of property images / Sert une page filtrée d'images de propriété
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	enabled, err := optionalBoolQuery(r, "enabled")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := domain.ImageFilter{
		PropertyID: r.URL.Query().Get("idProperty"),
		Enabled:    enabled,
	}

	page, err := h.container.ImageSvc.List(r.Context(), filter, params.Page, params.Limit, params.Refresh)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

// GetImage serves a single image by id / Sert une image unique par id
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	resp, err := h.container.ImageSvc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// CreateImage attaches an image to a listing / Attache une image à une annonce
func (h *Handler) CreateImage(w http.ResponseWriter, r *http.Request) {
	var req dto.ImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.container.ImageSvc.Create(r.Context(), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusCreated, resp)
}

// ReplaceImage overwrites a whole image / Remplace une image entière
func (h *Handler) ReplaceImage(w http.ResponseWriter, r *http.Request) {
	var req dto.ImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.container.ImageSvc.Replace(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// PatchImage applies a sparse update / Applique une mise à jour partielle
func (h *Handler) PatchImage(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if !decodeJSON(w, r, &input) {
		return
	}

	resp, err := h.container.ImageSvc.Patch(r.Context(), r.PathValue("id"), input)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// DeleteImage removes an image / Supprime une image
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.container.ImageSvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		failFromErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "image deleted")
}
