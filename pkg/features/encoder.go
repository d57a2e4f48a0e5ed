package features

import (
	"fmt"

	"github.com/okoamaisha/platform/pkg/common/logger"
	"github.com/okoamaisha/platform/pkg/common/models"
)

type rawField struct {
	name string
	get  func(models.ClinicalInput) (float64, bool)
}

var rawFields = []rawField{
	{Gender, intField(func(in models.ClinicalInput) *int { return in.Gender })},
	{RCount, intField(func(in models.ClinicalInput) *int { return in.RCount })},
	{BMI, floatField(func(in models.ClinicalInput) *float64 { return in.BMI })},
	{Pulse, floatField(func(in models.ClinicalInput) *float64 { return in.Pulse })},
	{Respiration, floatField(func(in models.ClinicalInput) *float64 { return in.Respiration })},
	{Hematocrit, floatField(func(in models.ClinicalInput) *float64 { return in.Hematocrit })},
	{Neutrophils, floatField(func(in models.ClinicalInput) *float64 { return in.Neutrophils })},
	{Sodium, floatField(func(in models.ClinicalInput) *float64 { return in.Sodium })},
	{Glucose, floatField(func(in models.ClinicalInput) *float64 { return in.Glucose })},
	{BloodUreaNitro, floatField(func(in models.ClinicalInput) *float64 { return in.BloodUreaNitro })},
	{Creatinine, floatField(func(in models.ClinicalInput) *float64 { return in.Creatinine })},
	{SecondaryDiagnosisNonICD9, intField(func(in models.ClinicalInput) *int { return in.SecondaryDiagnosisNonICD9 })},
	{AdmissionMonth, intField(func(in models.ClinicalInput) *int { return in.AdmissionMonth })},
	{AdmissionDayOfWeek, intField(func(in models.ClinicalInput) *int { return in.AdmissionDayOfWeek })},
	{AdmissionQuarter, func(in models.ClinicalInput) (float64, bool) {
		q, ok := in.AdmissionQuarter()
		return float64(q), ok
	}},
}

func floatField(f func(models.ClinicalInput) *float64) func(models.ClinicalInput) (float64, bool) {
	return func(in models.ClinicalInput) (float64, bool) {
		if v := f(in); v != nil {
			return *v, true
		}
		return 0, false
	}
}

func intField(f func(models.ClinicalInput) *int) func(models.ClinicalInput) (float64, bool) {
	return func(in models.ClinicalInput) (float64, bool) {
		if v := f(in); v != nil {
			return float64(*v), true
		}
		return 0, false
	}
}

// Encoder maps a ClinicalInput onto a fixed canonical feature order. The
// name-to-position index is built once; an Encoder is immutable and safe for
// concurrent use.
type Encoder struct {
	names           []string
	index           map[string]int
	comorbidityCols []string
	unknown         []UnknownFeatureNameError
}

func NewEncoder(featureNames, comorbidityCols []string) (*Encoder, error) {
	if len(featureNames) == 0 {
		return nil, ErrNoFeatureNames
	}

	index := make(map[string]int, len(featureNames))
	for i, name := range featureNames {
		if name == "" {
			return nil, fmt.Errorf("feature name at position %d is empty", i)
		}
		if prev, ok := index[name]; ok {
			return nil, fmt.Errorf("feature %q appears at positions %d and %d", name, prev, i)
		}
		index[name] = i
	}
	if err := checkComorbidityCols(comorbidityCols); err != nil {
		return nil, err
	}

	e := &Encoder{
		names:           append([]string(nil), featureNames...),
		index:           index,
		comorbidityCols: append([]string(nil), comorbidityCols...),
	}
	e.unknown = e.detectUnknown()
	for _, u := range e.unknown {
		logger.WithFields(map[string]interface{}{
			"feature":  u.Name,
			"position": u.Index,
		}).Warn("canonical feature has no encoding rule, value will stay zero")
	}
	return e, nil
}

// checkComorbidityCols rejects flag columns that would be counted twice or
// would overwrite a raw, derived or facility feature.
func checkComorbidityCols(cols []string) error {
	reserved := make(map[string]struct{}, len(rawFields)+len(derivedNames)+len(Facilities))
	for _, f := range rawFields {
		reserved[f.name] = struct{}{}
	}
	for _, name := range derivedNames {
		reserved[name] = struct{}{}
	}
	for _, code := range Facilities {
		reserved[FacilityFeature(code)] = struct{}{}
	}

	seen := make(map[string]int, len(cols))
	for i, col := range cols {
		if col == "" {
			return fmt.Errorf("comorbidity column at position %d is empty", i)
		}
		if prev, ok := seen[col]; ok {
			return fmt.Errorf("comorbidity column %q appears at positions %d and %d", col, prev, i)
		}
		if _, ok := reserved[col]; ok {
			return fmt.Errorf("comorbidity column %q collides with an encoded feature", col)
		}
		seen[col] = i
	}
	return nil
}

func (e *Encoder) detectUnknown() []UnknownFeatureNameError {
	known := make(map[string]struct{}, len(rawFields)+len(derivedNames)+len(Facilities)+len(e.comorbidityCols))
	for _, f := range rawFields {
		known[f.name] = struct{}{}
	}
	for _, name := range derivedNames {
		known[name] = struct{}{}
	}
	for _, code := range Facilities {
		known[FacilityFeature(code)] = struct{}{}
	}
	for _, col := range e.comorbidityCols {
		known[col] = struct{}{}
	}

	var unknown []UnknownFeatureNameError
	for i, name := range e.names {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, UnknownFeatureNameError{Name: name, Index: i})
		}
	}
	return unknown
}

func (e *Encoder) FeatureNames() []string {
	return append([]string(nil), e.names...)
}

func (e *Encoder) ComorbidityCols() []string {
	return append([]string(nil), e.comorbidityCols...)
}

// Unknown lists canonical features without an encoding rule.
func (e *Encoder) Unknown() []UnknownFeatureNameError {
	return append([]UnknownFeatureNameError(nil), e.unknown...)
}

func (e *Encoder) Len() int {
	return len(e.names)
}

// Encode builds the feature vector for one encounter. Every canonical
// position is populated; absent optional fields stay zero.
func (e *Encoder) Encode(input models.ClinicalInput) (Vector, error) {
	required := make(map[string]float64, len(requiredFields))
	for _, field := range requiredFields {
		v, ok := RawValue(input, field)
		if !ok {
			return Vector{}, MissingRequiredFieldError{Field: field}
		}
		required[field] = v
	}

	values := make([]float64, len(e.names))
	set := func(name string, v float64) {
		if i, ok := e.index[name]; ok {
			values[i] = v
		}
	}

	for _, f := range rawFields {
		if v, ok := f.get(input); ok {
			set(f.name, v)
		}
	}

	total := 0
	for _, col := range e.comorbidityCols {
		flag := input.Flag(col)
		if flag {
			total++
		}
		set(col, boolToFloat(flag))
	}

	glucose, sodium, creatinine := required[Glucose], required[Sodium], required[Creatinine]
	bmi, pulse, respiration := required[BMI], required[Pulse], required[Respiration]

	set(TotalComorbidities, float64(total))
	set(HighGlucose, boolToFloat(glucose > GlucoseHighAbove))
	set(LowSodium, boolToFloat(sodium < SodiumLowBelow))
	set(HighCreatinine, boolToFloat(creatinine > CreatinineHighAbove))
	set(LowBMI, boolToFloat(bmi < BMILowBelow))
	set(HighBMI, boolToFloat(bmi > BMIHighAbove))
	set(AbnormalVitals,
		boolToFloat(pulse < PulseLowBelow || pulse > PulseHighAbove)+
			boolToFloat(respiration < RespirationLowBelow || respiration > RespirationHighAbove))

	for _, code := range Facilities {
		set(FacilityFeature(code), boolToFloat(input.Facility == code))
	}

	return Vector{names: e.names, index: e.index, values: values}, nil
}

// Encode is the one-shot form of Encoder.Encode.
func Encode(input models.ClinicalInput, featureNames, comorbidityCols []string) (Vector, error) {
	enc, err := NewEncoder(featureNames, comorbidityCols)
	if err != nil {
		return Vector{}, err
	}
	return enc.Encode(input)
}

// RawValue returns the named raw clinical field, if supplied.
func RawValue(input models.ClinicalInput, name string) (float64, bool) {
	for _, f := range rawFields {
		if f.name == name {
			return f.get(input)
		}
	}
	return 0, false
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
