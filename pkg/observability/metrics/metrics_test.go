package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCountersAndExposition(t *testing.T) {
	before := Current()
	ObservePrediction(1500 * time.Microsecond)
	ObserveRejected()
	ObserveIncomplete()
	ObserveUnknownFeatures(4)

	after := Current()
	if after.Served != before.Served+1 || after.Rejected != before.Rejected+1 || after.Incomplete != before.Incomplete+1 {
		t.Fatalf("counters did not advance: before %+v after %+v", before, after)
	}
	if after.LastLatency != 1500*time.Microsecond {
		t.Fatalf("unexpected last latency %s", after.LastLatency)
	}

	rec := httptest.NewRecorder()
	WritePrometheus(rec)
	body := rec.Body.String()
	for _, want := range []string{
		"okoamaisha_predictions_served_total",
		"okoamaisha_model_unknown_features 4",
		"okoamaisha_prediction_last_latency_seconds 0.001500",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition missing %q:\n%s", want, body)
		}
	}
}
