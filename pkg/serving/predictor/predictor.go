package predictor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/okoamaisha/platform/pkg/artifacts"
	"github.com/okoamaisha/platform/pkg/assessment"
	"github.com/okoamaisha/platform/pkg/common/logger"
	"github.com/okoamaisha/platform/pkg/common/models"
	"github.com/okoamaisha/platform/pkg/features"
	"github.com/okoamaisha/platform/pkg/intake"
	"github.com/okoamaisha/platform/pkg/observability/metrics"
)

var ErrInference = errors.New("inference failed")

// Predictor runs encode -> scale -> predict against one immutable bundle.
type Predictor struct {
	bundle    *artifacts.Bundle
	validator *intake.Validator
	now       func() time.Time
}

// NewPredictor uses the default form bounds when validator is nil.
func NewPredictor(bundle *artifacts.Bundle, validator *intake.Validator) *Predictor {
	if validator == nil {
		validator = intake.NewValidator(intake.DefaultBounds(), bundle.Metadata.ComorbidityCols)
	}
	metrics.ObserveUnknownFeatures(len(bundle.Encoder.Unknown()))
	return &Predictor{
		bundle:    bundle,
		validator: validator,
		now:       time.Now,
	}
}

func (p *Predictor) Bundle() *artifacts.Bundle {
	return p.bundle
}

func (p *Predictor) Schema() intake.FormSchema {
	return p.validator.Schema()
}

// Encode validates the input and returns its canonical feature vector.
func (p *Predictor) Encode(input models.ClinicalInput) (features.Vector, error) {
	if err := p.validator.Validate(input); err != nil {
		metrics.ObserveRejected()
		return features.Vector{}, err
	}
	vec, err := p.bundle.Encoder.Encode(input)
	if err != nil {
		if features.IsMissingRequiredField(err) {
			metrics.ObserveIncomplete()
		}
		return features.Vector{}, err
	}
	return vec, nil
}

func (p *Predictor) Predict(ctx context.Context, input models.ClinicalInput) (models.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return models.Prediction{}, err
	}
	start := time.Now()

	vec, err := p.Encode(input)
	if err != nil {
		return models.Prediction{}, err
	}

	days, err := p.infer(vec)
	if err != nil {
		metrics.ObserveFailed()
		return models.Prediction{}, err
	}

	cols := p.bundle.Metadata.ComorbidityCols
	comorbidities := assessment.ComorbidityCount(input, cols)
	readmissions := assessment.Readmissions(input)
	score := assessment.RiskScore(comorbidities, readmissions)

	resp := models.Prediction{
		ID:               uuid.New().String(),
		Days:             days,
		ConfidenceBand:   p.bundle.Metadata.TestMAE,
		StayCategory:     assessment.StayCategory(days),
		ComorbidityCount: comorbidities,
		HighComplexity:   assessment.HighComplexity(comorbidities),
		Readmissions:     readmissions,
		RiskScore:        score,
		RiskLevel:        assessment.RiskLevel(score),
		RiskFactors:      assessment.RiskFactors(input, comorbidities),
		Protocol:         assessment.CareProtocol(days),
		Comparison:       assessment.Comparison(days),
		Model:            p.bundle.ModelInfo(),
		CreatedAt:        p.now().UTC(),
	}
	resp.Latency = time.Since(start)
	metrics.ObservePrediction(resp.Latency)

	logger.WithFields(map[string]interface{}{
		"prediction_id": resp.ID,
		"days":          resp.Days,
		"stay_category": resp.StayCategory,
		"risk_level":    resp.RiskLevel,
		"latency_us":    resp.Latency.Microseconds(),
	}).Info("Prediction completed")

	return resp, nil
}

func (p *Predictor) infer(vec features.Vector) (float64, error) {
	scaled, err := p.bundle.Scaler.Transform(vec.Row())
	if err != nil {
		return 0, fmt.Errorf("%w: scaler: %v", ErrInference, err)
	}
	out, err := p.bundle.Model.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("%w: model: %v", ErrInference, err)
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("%w: model returned %d values for one row", ErrInference, len(out))
	}
	if math.IsNaN(out[0]) || math.IsInf(out[0], 0) {
		return 0, fmt.Errorf("%w: model returned %v", ErrInference, out[0])
	}
	return out[0], nil
}
