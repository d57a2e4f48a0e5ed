package serving

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/okoamaisha/platform/pkg/assessment"
	"github.com/okoamaisha/platform/pkg/common/logger"
	"github.com/okoamaisha/platform/pkg/common/models"
	"github.com/okoamaisha/platform/pkg/features"
	"github.com/okoamaisha/platform/pkg/intake"
	"github.com/okoamaisha/platform/pkg/observability/metrics"
	"github.com/okoamaisha/platform/pkg/serving/predictor"
)

type HTTPHandler struct {
	predictor *predictor.Predictor
	maxBody   int64
	now       func() time.Time
}

func NewHTTPHandler(p *predictor.Predictor, maxBody int64) *HTTPHandler {
	return &HTTPHandler{predictor: p, maxBody: maxBody, now: time.Now}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/metrics", h.handleMetrics).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/model", h.handleModel).Methods(http.MethodGet)
	api.HandleFunc("/form", h.handleForm).Methods(http.MethodGet)
	api.HandleFunc("/encode", h.handleEncode).Methods(http.MethodPost)
	api.HandleFunc("/predict", h.handlePredict).Methods(http.MethodPost)
	api.HandleFunc("/report", h.handleReport).Methods(http.MethodPost)
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"loaded_at": h.predictor.Bundle().LoadedAt,
	})
}

func (h *HTTPHandler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics.WritePrometheus(w)
}

func (h *HTTPHandler) handleModel(w http.ResponseWriter, r *http.Request) {
	bundle := h.predictor.Bundle()
	unknown := make([]string, 0)
	for _, u := range bundle.Encoder.Unknown() {
		unknown = append(unknown, u.Name)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"model":            bundle.ModelInfo(),
		"comorbidity_cols": bundle.Metadata.ComorbidityCols,
		"unknown_features": unknown,
	})
}

func (h *HTTPHandler) handleForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.predictor.Schema())
}

func (h *HTTPHandler) handleEncode(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	vec, err := h.predictor.Encode(input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	unknown := make([]string, 0)
	for _, u := range h.predictor.Bundle().Encoder.Unknown() {
		unknown = append(unknown, u.Name)
	}
	writeJSON(w, http.StatusOK, models.EncodedFeatures{
		Names:   vec.Names(),
		Values:  vec.Values(),
		Unknown: unknown,
	})
}

func (h *HTTPHandler) handlePredict(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	resp, err := h.predictor.Predict(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) handleReport(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithError(err).Warn("invalid report payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", assessment.ReportFilename(h.now())))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, assessment.Report(req.Days, req.ComorbidityCount, req.Readmissions))
}

func (h *HTTPHandler) decodeInput(w http.ResponseWriter, r *http.Request) (models.ClinicalInput, bool) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	var input models.ClinicalInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		logger.WithError(err).Warn("invalid clinical input payload")
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return models.ClinicalInput{}, false
	}
	return input, true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case intake.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case features.IsMissingRequiredField(err):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, predictor.ErrInference):
		logger.WithError(err).Error("prediction failed")
		http.Error(w, "prediction failed", http.StatusInternalServerError)
	default:
		logger.WithError(err).Error("failed to process prediction request")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Warn("failed to encode response")
	}
}
