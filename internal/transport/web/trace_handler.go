package web

import (
	"net/http"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
)

// ListTraces serves a filtered page of sale traces / Sert une page filtrée de traces de vente
func (h *Handler) ListTraces(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := domain.TraceFilter{
		PropertyID: r.URL.Query().Get("idProperty"),
	}

	page, err := h.container.TraceSvc.List(r.Context(), filter, params.Page, params.Limit, params.Refresh)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

// GetTrace serves a single sale trace by id / Sert une trace de vente unique par id
func (h *Handler) GetTrace(w http.ResponseWriter, r *http.Request) {
	resp, err := h.container.TraceSvc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// CreateTrace records a sale / Enregistre une vente
func (h *Handler) CreateTrace(w http.ResponseWriter, r *http.Request) {
	var req dto.TraceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.container.TraceSvc.Create(r.Context(), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusCreated, resp)
}

// ReplaceTrace overwrites a whole sale trace / Remplace une trace de vente entière
func (h *Handler) ReplaceTrace(w http.ResponseWriter, r *http.Request) {
	var req dto.TraceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.container.TraceSvc.Replace(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// PatchTrace applies a sparse update / Applique une mise à jour partielle
func (h *Handler) PatchTrace(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if !decodeJSON(w, r, &input) {
		return
	}

	resp, err := h.container.TraceSvc.Patch(r.Context(), r.PathValue("id"), input)
	if err != nil {
		failFromErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// DeleteTrace removes a sale trace / Supprime une trace de vente
func (h *Handler) DeleteTrace(w http.ResponseWriter, r *http.Request) {
	if err := h.container.TraceSvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		failFromErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "trace deleted")
}
