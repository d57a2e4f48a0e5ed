package intake

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/okoamaisha/platform/pkg/common/models"
	"github.com/okoamaisha/platform/pkg/features"
	"github.com/okoamaisha/platform/pkg/terminology"
)

var (
	errOutOfBounds        = errors.New("value out of bounds")
	errNotInteger         = errors.New("value must be a whole number")
	errUnknownFacility    = errors.New("unknown facility")
	errUnknownComorbidity = errors.New("unknown comorbidity")
)

type ValidationError struct {
	Field  string
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

var daysOfWeek = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type Flag struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	ICD10  string `json:"icd10,omitempty"`
	SNOMED string `json:"snomed,omitempty"`
}

// FormField is a bounded numeric input with its standard code, if any.
type FormField struct {
	Field
	LOINC string `json:"loinc,omitempty"`
}

// FormSchema is everything the presentation layer needs to render the
// admission form.
type FormSchema struct {
	Fields        []FormField `json:"fields"`
	Facilities    []string    `json:"facilities"`
	Comorbidities []Flag      `json:"comorbidities"`
	DaysOfWeek    []string    `json:"days_of_week"`
}

// Validator rejects inputs outside the declared bounds or closed sets.
// Absent fields are left for the encoder to judge.
type Validator struct {
	fields      []Field
	comorbidity map[string]struct{}
	cols        []string
	catalog     terminology.Catalog
}

func NewValidator(cfg BoundsConfig, comorbidityCols []string) *Validator {
	set := make(map[string]struct{}, len(comorbidityCols))
	for _, c := range comorbidityCols {
		set[c] = struct{}{}
	}
	return &Validator{
		fields:      append([]Field(nil), cfg.Fields...),
		comorbidity: set,
		cols:        append([]string(nil), comorbidityCols...),
		catalog:     terminology.DefaultCatalog(),
	}
}

// WithCatalog replaces the terminology used to label the form.
func (v *Validator) WithCatalog(cat terminology.Catalog) *Validator {
	v.catalog = cat
	return v
}

func (v *Validator) Validate(input models.ClinicalInput) error {
	if v == nil {
		return ValidationError{reason: errors.New("validator not initialised")}
	}

	for _, f := range v.fields {
		value, ok := features.RawValue(input, f.Name)
		if !ok {
			continue
		}
		if value < f.Min || value > f.Max {
			return ValidationError{Field: f.Name, reason: fmt.Errorf("%s=%v outside [%v, %v]: %w", f.Name, value, f.Min, f.Max, errOutOfBounds)}
		}
		if f.Integer && math.Trunc(value) != value {
			return ValidationError{Field: f.Name, reason: fmt.Errorf("%s=%v: %w", f.Name, value, errNotInteger)}
		}
	}

	if input.Facility != "" && !features.IsFacility(input.Facility) {
		return ValidationError{Field: "facility", reason: fmt.Errorf("facility '%s' not in %v: %w", input.Facility, features.Facilities, errUnknownFacility)}
	}

	names := make([]string, 0, len(input.Comorbidities))
	for name := range input.Comorbidities {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := v.comorbidity[name]; !ok {
			return ValidationError{Field: name, reason: fmt.Errorf("comorbidity '%s' not recognised: %w", name, errUnknownComorbidity)}
		}
	}
	return nil
}

func (v *Validator) Schema() FormSchema {
	flags := make([]Flag, 0, len(v.cols))
	for _, c := range v.cols {
		flag := Flag{Name: c, Label: c}
		if concept, ok := v.catalog.Lookup(c); ok {
			flag.Label = concept.Display
			flag.ICD10 = concept.ICD10
			flag.SNOMED = concept.SNOMED
		}
		flags = append(flags, flag)
	}
	fields := make([]FormField, 0, len(v.fields))
	for _, f := range v.fields {
		ff := FormField{Field: f}
		if concept, ok := v.catalog.Lookup(f.Name); ok {
			ff.LOINC = concept.LOINC
		}
		fields = append(fields, ff)
	}
	return FormSchema{
		Fields:        fields,
		Facilities:    append([]string(nil), features.Facilities...),
		Comorbidities: flags,
		DaysOfWeek:    append([]string(nil), daysOfWeek...),
	}
}
