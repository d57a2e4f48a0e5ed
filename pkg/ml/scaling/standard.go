package scaling

import (
	"fmt"

	"github.com/okoamaisha/platform/pkg/ml"
)

type StandardParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Standard applies (x - mean) / scale per feature. A zero scale is treated
// as one, matching how constant training columns are exported.
type Standard struct {
	mean  []float64
	scale []float64
}

func NewStandard(params StandardParams) (*Standard, error) {
	if len(params.Mean) == 0 {
		return nil, fmt.Errorf("scaler has no features")
	}
	if len(params.Mean) != len(params.Scale) {
		return nil, fmt.Errorf("scaler mean has %d entries but scale has %d", len(params.Mean), len(params.Scale))
	}
	scale := make([]float64, len(params.Scale))
	for i, s := range params.Scale {
		if s == 0 {
			s = 1
		}
		scale[i] = s
	}
	return &Standard{mean: append([]float64(nil), params.Mean...), scale: scale}, nil
}

func (s *Standard) FeatureCount() int {
	return len(s.mean)
}

func (s *Standard) Transform(rows [][]float64) ([][]float64, error) {
	if err := ml.CheckRows(rows, len(s.mean)); err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.mean[j]) / s.scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// Identity leaves rows untouched.
type Identity struct {
	Features int
}

func (i Identity) FeatureCount() int {
	return i.Features
}

func (i Identity) Transform(rows [][]float64) ([][]float64, error) {
	if err := ml.CheckRows(rows, i.Features); err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for r, row := range rows {
		out[r] = append([]float64(nil), row...)
	}
	return out, nil
}
