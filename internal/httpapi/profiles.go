package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ramcignex-del/TalentBid/internal/auth"
	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

func (h *Handler) createCandidate(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	var in bidding.CandidateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	candidate, err := h.svc.CreateCandidate(r.Context(), viewer, in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonStatus(w, http.StatusCreated, candidate)
}

func (h *Handler) getCandidate(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid candidate id", http.StatusBadRequest)
		return
	}

	view, err := h.svc.GetCandidate(r.Context(), viewer, id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonOK(w, view)
}

func (h *Handler) listCandidates(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	views, err := h.svc.ListCandidates(r.Context(), viewer)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonOK(w, views)
}

func (h *Handler) updateCandidate(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid candidate id", http.StatusBadRequest)
		return
	}

	var in bidding.UpdateCandidateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	candidate, err := h.svc.UpdateCandidate(r.Context(), viewer, id, in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonOK(w, candidate)
}

func (h *Handler) createEmployer(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	var in bidding.EmployerProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	employer, err := h.svc.CreateEmployer(r.Context(), viewer, in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonStatus(w, http.StatusCreated, employer)
}

func (h *Handler) getOwnEmployer(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	employer, err := h.svc.GetOwnEmployer(r.Context(), viewer)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonOK(w, employer)
}

func (h *Handler) updateOwnEmployer(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	var in bidding.UpdateEmployerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	employer, err := h.svc.UpdateOwnEmployer(r.Context(), viewer, in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonOK(w, employer)
}
