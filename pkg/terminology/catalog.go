package terminology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Concept ties a form field or comorbidity column to standard codes.
type Concept struct {
	Display string `yaml:"display" json:"display"`
	SNOMED  string `yaml:"snomed,omitempty" json:"snomed,omitempty"`
	LOINC   string `yaml:"loinc,omitempty" json:"loinc,omitempty"`
	ICD10   string `yaml:"icd10,omitempty" json:"icd10,omitempty"`
}

type Catalog struct {
	Concepts map[string]Concept `yaml:"concepts" json:"concepts"`
}

func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Catalog{}, err
	}
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return Catalog{}, err
	}
	if len(cat.Concepts) == 0 {
		return Catalog{}, fmt.Errorf("terminology catalog empty")
	}
	return cat, nil
}

func (c Catalog) Lookup(key string) (Concept, bool) {
	if c.Concepts == nil {
		return Concept{}, false
	}
	concept, ok := c.Concepts[strings.ToLower(key)]
	if ok {
		return concept, true
	}
	for k, v := range c.Concepts {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return Concept{}, false
}

func DefaultCatalog() Catalog {
	return Catalog{Concepts: map[string]Concept{
		// comorbidity columns
		"dialysisrenalendstage":      {Display: "Dialysis/End-Stage Renal", SNOMED: "46177005", ICD10: "N18.6"},
		"asthma":                     {Display: "Asthma", SNOMED: "195967001", ICD10: "J45.909"},
		"irondef":                    {Display: "Iron Deficiency", SNOMED: "87522002", ICD10: "D50.9"},
		"pneum":                      {Display: "Pneumonia", SNOMED: "233604007", ICD10: "J18.9"},
		"substancedependence":        {Display: "Substance Dependence", SNOMED: "66214007", ICD10: "F19.20"},
		"psychologicaldisordermajor": {Display: "Major Psych Disorder", SNOMED: "74732009", ICD10: "F29"},
		"depress":                    {Display: "Depression", SNOMED: "35489007", ICD10: "F32.9"},
		"psychother":                 {Display: "Other Psychiatric", SNOMED: "74732009", ICD10: "F99"},
		"fibrosisandother":           {Display: "Fibrosis & Other", SNOMED: "51615001", ICD10: "J84.10"},
		"malnutrition":               {Display: "Malnutrition", SNOMED: "2492009", ICD10: "E46"},
		"hemo":                       {Display: "Hemoglobin Disorder", SNOMED: "80141007", ICD10: "D58.2"},

		// vitals and labs
		"bmi":            {Display: "Body Mass Index", LOINC: "39156-5"},
		"pulse":          {Display: "Heart Rate", LOINC: "8867-4"},
		"respiration":    {Display: "Respiratory Rate", LOINC: "9279-1"},
		"hematocrit":     {Display: "Hematocrit", LOINC: "4544-3"},
		"neutrophils":    {Display: "Neutrophils", LOINC: "751-8"},
		"glucose":        {Display: "Blood Glucose", LOINC: "2339-0", SNOMED: "271062007"},
		"sodium":         {Display: "Sodium", LOINC: "2951-2"},
		"creatinine":     {Display: "Creatinine", LOINC: "2160-0"},
		"bloodureanitro": {Display: "Blood Urea Nitrogen", LOINC: "3094-0"},
	}}
}
