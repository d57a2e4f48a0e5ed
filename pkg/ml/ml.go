// Package ml holds the inference-side interfaces for pretrained artifacts.
package ml

import (
	"errors"
	"fmt"
)

var ErrShape = errors.New("input shape mismatch")

// Regressor predicts one value per row.
type Regressor interface {
	Predict(rows [][]float64) ([]float64, error)
	FeatureCount() int
}

// Transformer applies a fitted per-feature normalisation.
type Transformer interface {
	Transform(rows [][]float64) ([][]float64, error)
	FeatureCount() int
}

// CheckRows verifies every row has width features.
func CheckRows(rows [][]float64, width int) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows: %w", ErrShape)
	}
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("row %d has %d features, expected %d: %w", i, len(row), width, ErrShape)
		}
	}
	return nil
}
