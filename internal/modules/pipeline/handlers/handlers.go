// Package handlers provides HTTP handlers for pipeline runs.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/productpulse/internal/modules/pipeline"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Handler handles pipeline HTTP requests
type Handler struct {
	service *pipeline.Service
	log     zerolog.Logger
}

// NewHandler creates a new pipeline handler
func NewHandler(service *pipeline.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "pipeline").Logger(),
	}
}

// HandleAnalyze handles POST /api/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var request pipeline.Request
	if !h.decode(w, r, &request) {
		return
	}

	report, err := h.service.Analyze(r.Context(), request)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// HandleSearch handles POST /api/analyze/search
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var request pipeline.SearchRequest
	if !h.decode(w, r, &request) {
		return
	}

	report, err := h.service.Search(r.Context(), request.Product)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// HandleFeatures handles POST /api/features
func (h *Handler) HandleFeatures(w http.ResponseWriter, r *http.Request) {
	var request pipeline.FeaturesRequest
	if !h.decode(w, r, &request) {
		return
	}

	features := h.service.Features(request.Analysis)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"features": features,
		"vector":   features.Slice(),
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) writeRunError(w http.ResponseWriter, err error) {
	status := pipeline.StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("kind", string(pipeline.KindOf(err))).Msg("Pipeline run failed")
	}
	h.writeError(w, status, err.Error())
}

// writeJSON writes a JSON response. The body is encoded before the status is
// sent, so an unencodable value becomes a 500 instead of a truncated 200.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.log.Warn().Err(err).Msg("Failed to write JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
