package models

import (
	"time"
)

// ClinicalInput is one patient encounter as submitted from the admission form.
// Pointer fields distinguish "not supplied" from a zero reading.
type ClinicalInput struct {
	// Demographics
	Gender *int     `json:"gender,omitempty"` // 0 female, 1 male
	BMI    *float64 `json:"bmi,omitempty"`

	// History
	RCount                    *int `json:"rcount,omitempty"` // readmissions in prior 180 days
	SecondaryDiagnosisNonICD9 *int `json:"secondarydiagnosisnonicd9,omitempty"`

	// Vitals and labs
	Pulse          *float64 `json:"pulse,omitempty"`
	Respiration    *float64 `json:"respiration,omitempty"`
	Hematocrit     *float64 `json:"hematocrit,omitempty"`
	Neutrophils    *float64 `json:"neutrophils,omitempty"`
	Sodium         *float64 `json:"sodium,omitempty"`
	Glucose        *float64 `json:"glucose,omitempty"`
	Creatinine     *float64 `json:"creatinine,omitempty"`
	BloodUreaNitro *float64 `json:"bloodureanitro,omitempty"`

	// Comorbidity flags keyed by column name; absent means not present.
	Comorbidities map[string]bool `json:"comorbidities,omitempty"`

	// Admission context
	Facility           string `json:"facility,omitempty"`
	AdmissionMonth     *int   `json:"admission_month,omitempty"`
	AdmissionDayOfWeek *int   `json:"admission_dayofweek,omitempty"` // 0 Monday .. 6 Sunday
}

// AdmissionQuarter derives the calendar quarter from the admission month.
func (c ClinicalInput) AdmissionQuarter() (int, bool) {
	if c.AdmissionMonth == nil {
		return 0, false
	}
	return (*c.AdmissionMonth-1)/3 + 1, true
}

// Flag reports whether the named comorbidity is set.
func (c ClinicalInput) Flag(name string) bool {
	if c.Comorbidities == nil {
		return false
	}
	return c.Comorbidities[name]
}

// Float and Int build optional field values.
func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }

// Display-side assessment
type RiskFactor struct {
	Code     string `json:"code"`
	Severity string `json:"severity"` // high, moderate
	Message  string `json:"message"`
}

type CareProtocol struct {
	Name         string   `json:"name"`
	Intensity    string   `json:"intensity"` // high, standard, fast_track
	Actions      []string `json:"actions"`
	Coordination []string `json:"coordination"`
}

type ComparisonBar struct {
	Category string  `json:"category"`
	Days     float64 `json:"days"`
}

// Model bundle description
type ModelInfo struct {
	Name         string   `json:"name,omitempty"`
	Algorithm    string   `json:"algorithm"`
	TrainingDate string   `json:"training_date,omitempty"`
	TestR2       float64  `json:"test_r2"`
	TestMAE      float64  `json:"test_mae"`
	TestRMSE     *float64 `json:"test_rmse,omitempty"`
	FeatureCount int      `json:"feature_count"`
}

// Prediction is the full response rendered by the dashboard.
type Prediction struct {
	ID               string          `json:"id"`
	Days             float64         `json:"days"`
	ConfidenceBand   float64         `json:"confidence_band"`
	StayCategory     string          `json:"stay_category"`
	ComorbidityCount int             `json:"comorbidity_count"`
	HighComplexity   bool            `json:"high_complexity"`
	Readmissions     int             `json:"readmissions"`
	RiskScore        int             `json:"risk_score"`
	RiskLevel        string          `json:"risk_level"`
	RiskFactors      []RiskFactor    `json:"risk_factors"`
	Protocol         CareProtocol    `json:"protocol"`
	Comparison       []ComparisonBar `json:"comparison"`
	Model            ModelInfo       `json:"model"`
	Latency          time.Duration   `json:"latency"`
	CreatedAt        time.Time       `json:"created_at"`
}

// EncodedFeatures is the named view of a feature vector.
type EncodedFeatures struct {
	Names   []string  `json:"names"`
	Values  []float64 `json:"values"`
	Unknown []string  `json:"unknown,omitempty"`
}

type ReportRequest struct {
	Days             float64 `json:"days"`
	ComorbidityCount int     `json:"comorbidity_count"`
	Readmissions     int     `json:"readmissions"`
}
