package features

// Raw clinical fields copied verbatim into the vector.
const (
	Gender                    = "gender"
	RCount                    = "rcount"
	BMI                       = "bmi"
	Pulse                     = "pulse"
	Respiration               = "respiration"
	Hematocrit                = "hematocrit"
	Neutrophils               = "neutrophils"
	Sodium                    = "sodium"
	Glucose                   = "glucose"
	BloodUreaNitro            = "bloodureanitro"
	Creatinine                = "creatinine"
	SecondaryDiagnosisNonICD9 = "secondarydiagnosisnonicd9"
	AdmissionMonth            = "admission_month"
	AdmissionDayOfWeek        = "admission_dayofweek"
	AdmissionQuarter          = "admission_quarter"
)

// Engineered features.
const (
	TotalComorbidities = "total_comorbidities"
	HighGlucose        = "high_glucose"
	LowSodium          = "low_sodium"
	HighCreatinine     = "high_creatinine"
	LowBMI             = "low_bmi"
	HighBMI            = "high_bmi"
	AbnormalVitals     = "abnormal_vitals"

	FacilityPrefix = "facility_"
)

// Clinical thresholds for the engineered indicators.
const (
	GlucoseHighAbove     = 140.0
	SodiumLowBelow       = 135.0
	CreatinineHighAbove  = 1.3
	BMILowBelow          = 18.5
	BMIHighAbove         = 30.0
	PulseLowBelow        = 60.0
	PulseHighAbove       = 100.0
	RespirationLowBelow  = 12.0
	RespirationHighAbove = 20.0
)

// Facilities is the closed set of admitting facility codes.
var Facilities = []string{"A", "B", "C", "D", "E"}

// DefaultComorbidityCols is used when model metadata carries no list.
var DefaultComorbidityCols = []string{
	"dialysisrenalendstage", "asthma", "irondef", "pneum",
	"substancedependence", "psychologicaldisordermajor",
	"depress", "psychother", "fibrosisandother", "malnutrition", "hemo",
}

var derivedNames = []string{
	TotalComorbidities, HighGlucose, LowSodium, HighCreatinine, LowBMI, HighBMI, AbnormalVitals,
}

// requiredFields feed the engineered indicators and may not default.
var requiredFields = []string{Glucose, Sodium, Creatinine, BMI, Pulse, Respiration}

func FacilityFeature(code string) string {
	return FacilityPrefix + code
}

func IsFacility(code string) bool {
	for _, f := range Facilities {
		if f == code {
			return true
		}
	}
	return false
}
