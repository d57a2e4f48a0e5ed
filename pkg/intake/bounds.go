package intake

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Field describes one numeric form input and its clinical bounds.
type Field struct {
	Name    string  `yaml:"name" json:"name"`
	Label   string  `yaml:"label" json:"label"`
	Unit    string  `yaml:"unit,omitempty" json:"unit,omitempty"`
	Min     float64 `yaml:"min" json:"min"`
	Max     float64 `yaml:"max" json:"max"`
	Default float64 `yaml:"default" json:"default"`
	Step    float64 `yaml:"step,omitempty" json:"step,omitempty"`
	Integer bool    `yaml:"integer,omitempty" json:"integer,omitempty"`
}

type BoundsConfig struct {
	Fields []Field `yaml:"fields" json:"fields"`
}

func LoadBounds(path string) (BoundsConfig, error) {
	if path == "" {
		return DefaultBounds(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return BoundsConfig{}, err
	}

	var cfg BoundsConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return BoundsConfig{}, err
	}
	if len(cfg.Fields) == 0 {
		return BoundsConfig{}, errors.New("no input bounds configured")
	}
	for _, f := range cfg.Fields {
		if f.Name == "" {
			return BoundsConfig{}, errors.New("input bound without a field name")
		}
		if f.Min > f.Max {
			return BoundsConfig{}, fmt.Errorf("field %s: min %v exceeds max %v", f.Name, f.Min, f.Max)
		}
	}
	return cfg, nil
}

func DefaultBounds() BoundsConfig {
	return BoundsConfig{Fields: []Field{
		{Name: "gender", Label: "Gender (0 female, 1 male)", Min: 0, Max: 1, Default: 0, Integer: true},
		{Name: "rcount", Label: "Readmissions (past 180d)", Min: 0, Max: 5, Default: 0, Integer: true},
		{Name: "bmi", Label: "BMI", Unit: "kg/m²", Min: 10, Max: 60, Default: 25, Step: 0.1},
		{Name: "pulse", Label: "Pulse", Unit: "bpm", Min: 30, Max: 200, Default: 75, Step: 1},
		{Name: "respiration", Label: "Respiration", Unit: "/min", Min: 5, Max: 60, Default: 16, Step: 0.1},
		{Name: "hematocrit", Label: "Hematocrit", Unit: "%", Min: 20, Max: 60, Default: 40, Step: 0.1},
		{Name: "neutrophils", Label: "Neutrophils", Unit: "×10³/µL", Min: 0, Max: 20, Default: 4, Step: 0.1},
		{Name: "glucose", Label: "Glucose", Unit: "mg/dL", Min: 50, Max: 400, Default: 100, Step: 1},
		{Name: "sodium", Label: "Sodium", Unit: "mEq/L", Min: 120, Max: 160, Default: 140, Step: 1},
		{Name: "creatinine", Label: "Creatinine", Unit: "mg/dL", Min: 0.3, Max: 10, Default: 1.0, Step: 0.1},
		{Name: "bloodureanitro", Label: "BUN", Unit: "mg/dL", Min: 5, Max: 100, Default: 12, Step: 1},
		{Name: "secondarydiagnosisnonicd9", Label: "Secondary Diagnoses", Min: 0, Max: 10, Default: 1, Integer: true},
		{Name: "admission_month", Label: "Admission Month", Min: 1, Max: 12, Default: 1, Integer: true},
		{Name: "admission_dayofweek", Label: "Day of Week (0 Monday)", Min: 0, Max: 6, Default: 0, Integer: true},
	}}
}
