package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

var (
	predictionsServed     atomic.Int64
	predictionsRejected   atomic.Int64
	predictionsIncomplete atomic.Int64
	predictionsFailed     atomic.Int64
	unknownFeatures       atomic.Int64
	lastLatencyMicros     atomic.Int64
)

func ObservePrediction(latency time.Duration) {
	predictionsServed.Add(1)
	lastLatencyMicros.Store(latency.Microseconds())
}

func ObserveRejected() {
	predictionsRejected.Add(1)
}

func ObserveIncomplete() {
	predictionsIncomplete.Add(1)
}

func ObserveFailed() {
	predictionsFailed.Add(1)
}

func ObserveUnknownFeatures(n int) {
	unknownFeatures.Store(int64(n))
}

type Snapshot struct {
	Served          int64
	Rejected        int64
	Incomplete      int64
	Failed          int64
	UnknownFeatures int64
	LastLatency     time.Duration
}

func Current() Snapshot {
	return Snapshot{
		Served:          predictionsServed.Load(),
		Rejected:        predictionsRejected.Load(),
		Incomplete:      predictionsIncomplete.Load(),
		Failed:          predictionsFailed.Load(),
		UnknownFeatures: unknownFeatures.Load(),
		LastLatency:     time.Duration(lastLatencyMicros.Load()) * time.Microsecond,
	}
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP okoamaisha_predictions_served_total Length-of-stay predictions returned.\n")
	fmt.Fprintf(w, "# TYPE okoamaisha_predictions_served_total counter\n")
	fmt.Fprintf(w, "okoamaisha_predictions_served_total %d\n", predictionsServed.Load())

	fmt.Fprintf(w, "# HELP okoamaisha_predictions_rejected_total Prediction requests rejected by input validation.\n")
	fmt.Fprintf(w, "# TYPE okoamaisha_predictions_rejected_total counter\n")
	fmt.Fprintf(w, "okoamaisha_predictions_rejected_total %d\n", predictionsRejected.Load())

	fmt.Fprintf(w, "# HELP okoamaisha_predictions_incomplete_total Prediction requests missing a required clinical field.\n")
	fmt.Fprintf(w, "# TYPE okoamaisha_predictions_incomplete_total counter\n")
	fmt.Fprintf(w, "okoamaisha_predictions_incomplete_total %d\n", predictionsIncomplete.Load())

	fmt.Fprintf(w, "# HELP okoamaisha_predictions_failed_total Prediction requests that failed inside the scaler or model.\n")
	fmt.Fprintf(w, "# TYPE okoamaisha_predictions_failed_total counter\n")
	fmt.Fprintf(w, "okoamaisha_predictions_failed_total %d\n", predictionsFailed.Load())

	fmt.Fprintf(w, "# HELP okoamaisha_model_unknown_features Canonical features without an encoding rule.\n")
	fmt.Fprintf(w, "# TYPE okoamaisha_model_unknown_features gauge\n")
	fmt.Fprintf(w, "okoamaisha_model_unknown_features %d\n", unknownFeatures.Load())

	fmt.Fprintf(w, "# HELP okoamaisha_prediction_last_latency_seconds Latency of the most recent prediction.\n")
	fmt.Fprintf(w, "# TYPE okoamaisha_prediction_last_latency_seconds gauge\n")
	fmt.Fprintf(w, "okoamaisha_prediction_last_latency_seconds %.6f\n", float64(lastLatencyMicros.Load())/1e6)
}
