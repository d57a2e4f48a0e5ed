package assessment

import (
	"strings"
	"testing"
	"time"

	"github.com/okoamaisha/platform/pkg/common/models"
	"github.com/okoamaisha/platform/pkg/features"
)

func TestStayCategory(t *testing.T) {
	cases := map[float64]string{0.5: StayShort, 3: StayShort, 3.01: StayMedium, 7: StayMedium, 7.2: StayLong}
	for days, want := range cases {
		if got := StayCategory(days); got != want {
			t.Fatalf("%v days: expected %s, got %s", days, want, got)
		}
	}
}

func TestCareProtocol(t *testing.T) {
	cases := map[float64]string{2: "fast_track", 4: "fast_track", 4.5: "standard", 7: "standard", 9: "high"}
	for days, want := range cases {
		if got := CareProtocol(days).Intensity; got != want {
			t.Fatalf("%v days: expected %s, got %s", days, want, got)
		}
	}
}

func TestRiskScoreAndLevel(t *testing.T) {
	tests := []struct {
		comorbidities, readmissions, score int
		level                              string
	}{
		{0, 0, 0, RiskLow},
		{2, 0, 20, RiskLow},
		{0, 2, 30, RiskMedium},
		{1, 2, 40, RiskMedium},
		{3, 1, 45, RiskHigh},
	}
	for _, tc := range tests {
		score := RiskScore(tc.comorbidities, tc.readmissions)
		if score != tc.score {
			t.Fatalf("expected score %d, got %d", tc.score, score)
		}
		if level := RiskLevel(score); level != tc.level {
			t.Fatalf("score %d: expected %s, got %s", score, tc.level, level)
		}
	}
}

func TestRiskFactors(t *testing.T) {
	in := models.ClinicalInput{
		RCount:     models.Int(3),
		Glucose:    models.Float(180),
		Sodium:     models.Float(130),
		Creatinine: models.Float(2.1),
		BMI:        models.Float(16.4),
	}
	factors := RiskFactors(in, 4)
	codes := make([]string, 0, len(factors))
	for _, f := range factors {
		codes = append(codes, f.Code)
	}
	want := "readmissions,comorbidities,glucose,sodium,creatinine,bmi_low"
	if got := strings.Join(codes, ","); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if !strings.Contains(factors[2].Message, "180 mg/dL") {
		t.Fatalf("unexpected glucose message %q", factors[2].Message)
	}
}

func TestRiskFactorsNoneForHealthyInput(t *testing.T) {
	in := models.ClinicalInput{
		RCount: models.Int(0), Glucose: models.Float(100), Sodium: models.Float(140),
		Creatinine: models.Float(1), BMI: models.Float(24),
	}
	if factors := RiskFactors(in, 1); len(factors) != 0 {
		t.Fatalf("expected no risk factors, got %v", factors)
	}
}

func TestComorbidityCountAgreesWithEncoder(t *testing.T) {
	names := append([]string{"glucose", "sodium", "total_comorbidities"}, features.DefaultComorbidityCols...)
	flagSets := []map[string]bool{
		nil,
		{"asthma": true},
		{"asthma": true, "hemo": true, "depress": true},
		{"asthma": true, "hemo": false, "pneum": true, "malnutrition": true, "irondef": true},
	}
	for _, flags := range flagSets {
		in := models.ClinicalInput{
			Glucose: models.Float(100), Sodium: models.Float(140), Creatinine: models.Float(1),
			BMI: models.Float(25), Pulse: models.Float(70), Respiration: models.Float(14),
			Comorbidities: flags,
		}
		vec, err := features.Encode(in, names, features.DefaultComorbidityCols)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		encoded, _ := vec.Value(features.TotalComorbidities)
		if display := ComorbidityCount(in, features.DefaultComorbidityCols); float64(display) != encoded {
			t.Fatalf("display count %d disagrees with encoded %v", display, encoded)
		}
	}
}

func TestReport(t *testing.T) {
	report := Report(5.04, 2, 1)
	want := "Patient Prediction Report\n\nPredicted LoS: 5.0 days\nComorbidities: 2\nReadmissions: 1"
	if report != want {
		t.Fatalf("unexpected report %q", report)
	}
	name := ReportFilename(time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	if name != "los_prediction_20260304_050607.txt" {
		t.Fatalf("unexpected filename %s", name)
	}
}
