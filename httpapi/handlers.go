package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tfkr-ae/sitefilter"
	"github.com/tfkr-ae/sitefilter/domain"
	"go.uber.org/zap"
)

type exclusionsResponse struct {
	Exclusions domain.ExclusionList `json:"exclusions"`
}

type addRequest struct {
	Domain string `json:"domain"`
	URL    string `json:"url"` // normalized into a domain when Domain is empty
}

// ListExclusions handles GET /api/v1/exclusions.
func (h *Handlers) ListExclusions(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Exclusions(r.Context())
	h.metrics.observe("list", err)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.metrics.exclusions.Set(float64(len(list)))
	respondJSON(w, http.StatusOK, exclusionsResponse{Exclusions: list})
}

// AddExclusion handles POST /api/v1/exclusions.
func (h *Handlers) AddExclusion(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d := req.Domain
	if strings.TrimSpace(d) == "" && req.URL != "" {
		normalized, err := sitefilter.Normalize(req.URL)
		if err != nil {
			h.metrics.observe("add", err)
			h.respondErr(w, err)
			return
		}
		d = normalized.String()
	}

	list, err := h.svc.Exclude(r.Context(), d)
	h.metrics.observe("add", err)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.metrics.exclusions.Set(float64(len(list)))
	respondJSON(w, http.StatusCreated, exclusionsResponse{Exclusions: list})
}

// RemoveExclusion handles DELETE /api/v1/exclusions/{domain}.
func (h *Handlers) RemoveExclusion(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Include(r.Context(), chi.URLParam(r, "domain"))
	h.metrics.observe("remove", err)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.metrics.exclusions.Set(float64(len(list)))
	respondJSON(w, http.StatusOK, exclusionsResponse{Exclusions: list})
}

// Search handles GET /api/v1/search. It composes the URL; opening it is left to the client.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	target, err := h.svc.SearchURL(r.Context(), r.URL.Query().Get("q"))
	h.metrics.observe("search", err)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": target})
}

// Current handles GET /api/v1/current.
func (h *Handlers) Current(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.CurrentDomain(r.Context())
	h.metrics.observe("current", err)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"domain": d.String()})
}

func (h *Handlers) respondErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	respondError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sitefilter.ErrInvalidURL),
		errors.Is(err, sitefilter.ErrEmptyDomain),
		errors.Is(err, sitefilter.ErrEmptyInput),
		errors.Is(err, sitefilter.ErrEmptyKeyword):
		return http.StatusBadRequest
	case errors.Is(err, sitefilter.ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, sitefilter.ErrNoActiveTab):
		return http.StatusNotFound
	case errors.Is(err, sitefilter.ErrStorage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
