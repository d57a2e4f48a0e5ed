package terminology

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogCoversComorbidities(t *testing.T) {
	cat := DefaultCatalog()
	for _, key := range []string{"dialysisrenalendstage", "asthma", "irondef", "pneum", "substancedependence",
		"psychologicaldisordermajor", "depress", "psychother", "fibrosisandother", "malnutrition", "hemo"} {
		c, ok := cat.Lookup(key)
		if !ok || c.ICD10 == "" {
			t.Fatalf("missing ICD-10 concept for %s", key)
		}
	}
	if c, ok := cat.Lookup("Glucose"); !ok || c.LOINC != "2339-0" {
		t.Fatalf("case-insensitive lookup failed: %+v", c)
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	content := "concepts:\n  asthma:\n    display: Asthma (any)\n    icd10: J45\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c, _ := cat.Lookup("asthma"); c.Display != "Asthma (any)" {
		t.Fatalf("unexpected concept %+v", c)
	}
	if err := os.WriteFile(path, []byte("concepts: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected empty catalog error")
	}
}
