package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/okoamaisha/platform/pkg/common/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--artifacts", "../../artifacts"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPredictCommand(t *testing.T) {
	out, err := run(t, "predict", "-f", "testdata/encounter.json")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	var resp models.Prediction
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if resp.ComorbidityCount != 3 || resp.Readmissions != 2 || resp.RiskLevel != "High" {
		t.Fatalf("unexpected assessment %+v", resp)
	}
	if resp.Days <= 0 || resp.Model.FeatureCount != 38 {
		t.Fatalf("unexpected prediction %+v", resp)
	}
}

func TestPredictCommandReport(t *testing.T) {
	out, err := run(t, "predict", "-f", "testdata/encounter.json", "--report")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.HasPrefix(out, "Patient Prediction Report") || !strings.Contains(out, "Comorbidities: 3") {
		t.Fatalf("unexpected report %q", out)
	}
}

func TestEncodeCommand(t *testing.T) {
	out, err := run(t, "encode", "-f", "testdata/encounter.json")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 38 {
		t.Fatalf("expected 38 features, got %d", len(lines))
	}
	if !strings.Contains(out, "admission_quarter") || !strings.Contains(out, "facility_D") {
		t.Fatalf("unexpected encode output:\n%s", out)
	}
}

func TestInspectCommand(t *testing.T) {
	out, err := run(t, "inspect")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, `"feature_count": 38`) || !strings.Contains(out, `"training_date": "2025-10-14"`) {
		t.Fatalf("unexpected inspect output:\n%s", out)
	}
}

func TestMissingArtifactsFail(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--artifacts", t.TempDir(), "inspect"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected artifact load error")
	}
}

func TestReadInputRejectsUnknownKeys(t *testing.T) {
	if _, err := readInput("-", strings.NewReader(`{"glucose":150,"asthma":true}`)); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
	in, err := readInput("-", strings.NewReader(`{"glucose":150,"comorbidities":{"asthma":true}}`))
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	if !in.Flag("asthma") {
		t.Fatal("expected asthma flag from comorbidities object")
	}
}
