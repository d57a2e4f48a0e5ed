// Package assessment derives the display-only indicators shown next to a
// length-of-stay estimate. Everything here is computed from the raw
// ClinicalInput, never from the encoded feature vector.
package assessment

import (
	"fmt"
	"time"

	"github.com/okoamaisha/platform/pkg/common/models"
	"github.com/okoamaisha/platform/pkg/features"
)

const (
	StayShort  = "short"
	StayMedium = "medium"
	StayLong   = "long"

	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"

	SeverityHigh     = "high"
	SeverityModerate = "moderate"
)

// Thresholds used by the dashboard.
const (
	shortStayMaxDays  = 3.0
	mediumStayMaxDays = 7.0
	standardCareAbove = 4.0

	highComplexityComorbidities = 3
	highRiskReadmissions        = 2

	riskHighAbove   = 40
	riskMediumAbove = 20
)

// ComorbidityCount counts the set flags among the model's comorbidity columns.
func ComorbidityCount(input models.ClinicalInput, cols []string) int {
	n := 0
	for _, c := range cols {
		if input.Flag(c) {
			n++
		}
	}
	return n
}

func Readmissions(input models.ClinicalInput) int {
	if input.RCount == nil {
		return 0
	}
	return *input.RCount
}

func RiskScore(comorbidities, readmissions int) int {
	return comorbidities*10 + readmissions*15
}

func RiskLevel(score int) string {
	switch {
	case score > riskHighAbove:
		return RiskHigh
	case score > riskMediumAbove:
		return RiskMedium
	default:
		return RiskLow
	}
}

func HighComplexity(comorbidities int) bool {
	return comorbidities >= highComplexityComorbidities
}

func StayCategory(days float64) string {
	switch {
	case days <= shortStayMaxDays:
		return StayShort
	case days <= mediumStayMaxDays:
		return StayMedium
	default:
		return StayLong
	}
}

func CareProtocol(days float64) models.CareProtocol {
	switch {
	case days > mediumStayMaxDays:
		return models.CareProtocol{
			Name:      "High-Intensity Care Protocol",
			Intensity: "high",
			Actions: []string{
				"Reserve extended-care bed immediately",
				"Assign case manager within 24 hours",
				"Order 10+ day medication supply",
				"Initiate discharge planning on day 1",
			},
			Coordination: []string{
				"Schedule multi-specialty care coordination",
				"Alert social services for post-discharge support",
				"Arrange family meeting within 48 hours",
			},
		}
	case days > standardCareAbove:
		return models.CareProtocol{
			Name:      "Standard Care Protocol",
			Intensity: "standard",
			Actions: []string{
				"Standard acute care bed assignment",
				"Regular nursing staff ratios",
				"7-day medication supply",
				"Routine monitoring and assessments",
			},
			Coordination: []string{
				"Discharge planning by day 3",
				"Regular team rounds",
			},
		}
	default:
		return models.CareProtocol{
			Name:      "Short-Stay Fast-Track Protocol",
			Intensity: "fast_track",
			Actions: []string{
				"Short-stay unit eligible",
				"Standard staffing sufficient",
				"Early discharge planning opportunity",
				"Minimal supply requirements",
			},
			Coordination: []string{
				"Consider same-day discharge protocols",
				"Streamlined documentation",
			},
		}
	}
}

// RiskFactors lists the clinical findings worth flagging. Absent labs are
// skipped.
func RiskFactors(input models.ClinicalInput, comorbidities int) []models.RiskFactor {
	var out []models.RiskFactor

	if r := Readmissions(input); r >= highRiskReadmissions {
		out = append(out, models.RiskFactor{Code: "readmissions", Severity: SeverityHigh,
			Message: fmt.Sprintf("High readmission count (%d) - Strong predictor of extended stay", r)})
	}
	if HighComplexity(comorbidities) {
		out = append(out, models.RiskFactor{Code: "comorbidities", Severity: SeverityHigh,
			Message: fmt.Sprintf("Multiple comorbidities (%d) - Complex care needs", comorbidities)})
	}
	if v := input.Glucose; v != nil && *v > features.GlucoseHighAbove {
		out = append(out, models.RiskFactor{Code: "glucose", Severity: SeverityModerate,
			Message: fmt.Sprintf("Elevated glucose (%.0f mg/dL) - Diabetes management protocol", *v)})
	}
	if v := input.Sodium; v != nil && *v < features.SodiumLowBelow {
		out = append(out, models.RiskFactor{Code: "sodium", Severity: SeverityModerate,
			Message: fmt.Sprintf("Hyponatremia (%.0f mEq/L) - Monitor electrolytes closely", *v)})
	}
	if v := input.Creatinine; v != nil && *v > features.CreatinineHighAbove {
		out = append(out, models.RiskFactor{Code: "creatinine", Severity: SeverityModerate,
			Message: fmt.Sprintf("Elevated creatinine (%.1f mg/dL) - Renal function monitoring", *v)})
	}
	if v := input.BMI; v != nil {
		if *v < features.BMILowBelow {
			out = append(out, models.RiskFactor{Code: "bmi_low", Severity: SeverityModerate,
				Message: fmt.Sprintf("Low BMI (%.1f) - Nutritional support recommended", *v)})
		} else if *v > features.BMIHighAbove {
			out = append(out, models.RiskFactor{Code: "bmi_high", Severity: SeverityModerate,
				Message: fmt.Sprintf("Elevated BMI (%.1f) - Consider mobility support", *v)})
		}
	}
	return out
}

// Comparison places the estimate next to the static category averages.
func Comparison(days float64) []models.ComparisonBar {
	return []models.ComparisonBar{
		{Category: "Your Patient", Days: days},
		{Category: "Average Short Stay", Days: 2.5},
		{Category: "Average Medium Stay", Days: 5.5},
		{Category: "Average Long Stay", Days: 10.0},
	}
}

func Report(days float64, comorbidities, readmissions int) string {
	return fmt.Sprintf("Patient Prediction Report\n\nPredicted LoS: %.1f days\nComorbidities: %d\nReadmissions: %d",
		days, comorbidities, readmissions)
}

func ReportFilename(t time.Time) string {
	return fmt.Sprintf("los_prediction_%s.txt", t.Format("20060102_150405"))
}
