package intake

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okoamaisha/platform/pkg/common/models"
	"github.com/okoamaisha/platform/pkg/features"
	"github.com/okoamaisha/platform/pkg/terminology"
)

func validInput() models.ClinicalInput {
	return models.ClinicalInput{
		Gender:         models.Int(0),
		RCount:         models.Int(1),
		BMI:            models.Float(22.5),
		Pulse:          models.Float(80),
		Respiration:    models.Float(18),
		Sodium:         models.Float(138),
		Glucose:        models.Float(110),
		Creatinine:     models.Float(0.9),
		Facility:       "B",
		AdmissionMonth: models.Int(3),
		Comorbidities:  map[string]bool{"asthma": true},
	}
}

func TestValidatorAcceptsValidInput(t *testing.T) {
	v := NewValidator(DefaultBounds(), features.DefaultComorbidityCols)
	if err := v.Validate(validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatorIgnoresAbsentFields(t *testing.T) {
	v := NewValidator(DefaultBounds(), features.DefaultComorbidityCols)
	if err := v.Validate(models.ClinicalInput{}); err != nil {
		t.Fatalf("absent fields are not validation errors: %v", err)
	}
}

func TestValidatorRejects(t *testing.T) {
	cases := map[string]func(*models.ClinicalInput){
		"bmi too low":         func(in *models.ClinicalInput) { in.BMI = models.Float(9.9) },
		"sodium too high":     func(in *models.ClinicalInput) { in.Sodium = models.Float(161) },
		"month 13":            func(in *models.ClinicalInput) { in.AdmissionMonth = models.Int(13) },
		"gender 2":            func(in *models.ClinicalInput) { in.Gender = models.Int(2) },
		"day 7":               func(in *models.ClinicalInput) { in.AdmissionDayOfWeek = models.Int(7) },
		"unknown facility":    func(in *models.ClinicalInput) { in.Facility = "Z" },
		"unknown comorbidity": func(in *models.ClinicalInput) { in.Comorbidities["gout"] = true },
	}
	v := NewValidator(DefaultBounds(), features.DefaultComorbidityCols)
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			err := v.Validate(in)
			if !IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidatorReportsField(t *testing.T) {
	v := NewValidator(DefaultBounds(), features.DefaultComorbidityCols)
	in := validInput()
	in.Glucose = models.Float(401)
	var ve ValidationError
	if err := v.Validate(in); !errors.As(err, &ve) || ve.Field != "glucose" {
		t.Fatalf("expected glucose validation error, got %v", err)
	}
	if !errors.Is(ve, errOutOfBounds) {
		t.Fatal("expected out of bounds reason")
	}
}

func TestSchemaListsClosedSets(t *testing.T) {
	schema := NewValidator(DefaultBounds(), features.DefaultComorbidityCols).Schema()
	if len(schema.Facilities) != 5 || len(schema.Comorbidities) != 11 || len(schema.DaysOfWeek) != 7 {
		t.Fatalf("unexpected schema sizes: %+v", schema)
	}
	if first := schema.Comorbidities[0]; first.Label != "Dialysis/End-Stage Renal" || first.ICD10 != "N18.6" {
		t.Fatalf("unexpected first flag %+v", first)
	}
	for _, f := range schema.Fields {
		if f.Name == "glucose" && f.LOINC != "2339-0" {
			t.Fatalf("expected glucose LOINC code, got %q", f.LOINC)
		}
	}
}

func TestSchemaUsesCustomCatalog(t *testing.T) {
	cat := terminology.Catalog{Concepts: map[string]terminology.Concept{"asthma": {Display: "Reactive airway"}}}
	schema := NewValidator(DefaultBounds(), []string{"asthma", "gout"}).WithCatalog(cat).Schema()
	if schema.Comorbidities[0].Label != "Reactive airway" || schema.Comorbidities[1].Label != "gout" {
		t.Fatalf("unexpected labels %+v", schema.Comorbidities)
	}
}

func TestValidatorEnforcesIntegerFields(t *testing.T) {
	cfg := BoundsConfig{Fields: []Field{{Name: "bmi", Min: 10, Max: 60, Integer: true}}}
	v := NewValidator(cfg, features.DefaultComorbidityCols)

	in := validInput()
	in.BMI = models.Float(22.5)
	err := v.Validate(in)
	if !IsValidationError(err) || !errors.Is(err, errNotInteger) {
		t.Fatalf("expected whole-number validation error, got %v", err)
	}

	in.BMI = models.Float(22)
	if err := v.Validate(in); err != nil {
		t.Fatalf("expected whole value to pass: %v", err)
	}
}

func TestLoadBounds(t *testing.T) {
	cfg, err := LoadBounds("")
	if err != nil || len(cfg.Fields) != len(DefaultBounds().Fields) {
		t.Fatalf("expected default bounds, got %v %v", cfg, err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bounds.yaml")
	content := "fields:\n  - name: bmi\n    label: BMI\n    min: 12\n    max: 50\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err = LoadBounds(path)
	if err != nil {
		t.Fatalf("load bounds: %v", err)
	}
	if len(cfg.Fields) != 1 || cfg.Fields[0].Min != 12 {
		t.Fatalf("unexpected bounds %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("fields:\n  - name: bmi\n    min: 50\n    max: 10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadBounds(bad); err == nil {
		t.Fatal("expected inverted bounds error")
	}
	if _, err := LoadBounds(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected missing file error")
	}
}
