package linear

import (
	"errors"

	"github.com/okoamaisha/platform/pkg/ml"
)

type Weights struct {
	Bias         float64   `json:"bias"`
	Coefficients []float64 `json:"coefficients"`
}

// Regressor is an ordinary linear model: bias + sum(coef_i * x_i).
type Regressor struct {
	weights Weights
}

func NewRegressor(weights Weights) (*Regressor, error) {
	if len(weights.Coefficients) == 0 {
		return nil, errors.New("linear model has no coefficients")
	}
	coeffs := append([]float64(nil), weights.Coefficients...)
	return &Regressor{weights: Weights{Bias: weights.Bias, Coefficients: coeffs}}, nil
}

func (r *Regressor) FeatureCount() int {
	return len(r.weights.Coefficients)
}

func (r *Regressor) Predict(rows [][]float64) ([]float64, error) {
	if err := ml.CheckRows(rows, r.FeatureCount()); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = Predict(r.weights, row)
	}
	return out, nil
}

func Predict(weights Weights, sample []float64) float64 {
	return dot(weights.Coefficients, sample) + weights.Bias
}

func dot(weights []float64, sample []float64) float64 {
	var sum float64
	for i := 0; i < len(weights); i++ {
		sum += weights[i] * sample[i]
	}
	return sum
}
