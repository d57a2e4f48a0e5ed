package artifacts

import (
	"errors"
	"fmt"
	"time"

	"github.com/okoamaisha/platform/pkg/common/models"
	"github.com/okoamaisha/platform/pkg/features"
	"github.com/okoamaisha/platform/pkg/ml"
)

// Metadata describes how the bundled model was evaluated.
type Metadata struct {
	ModelName       string   `yaml:"model_name" json:"model_name,omitempty"`
	TestR2          float64  `yaml:"test_r2" json:"test_r2"`
	TestMAE         float64  `yaml:"test_mae" json:"test_mae"`
	TestRMSE        *float64 `yaml:"test_rmse,omitempty" json:"test_rmse,omitempty"`
	TrainingDate    string   `yaml:"training_date" json:"training_date,omitempty"`
	ComorbidityCols []string `yaml:"comorbidity_cols" json:"comorbidity_cols"`
}

// TrainingDay trims a timestamp-style training date to YYYY-MM-DD.
func (m Metadata) TrainingDay() string {
	if len(m.TrainingDate) > 10 {
		return m.TrainingDate[:10]
	}
	return m.TrainingDate
}

// Bundle is the immutable set of artifacts a process serves from. It is
// built once and shared by pointer; nothing mutates it after construction.
type Bundle struct {
	Model        ml.Regressor
	Scaler       ml.Transformer
	FeatureNames []string
	Metadata     Metadata
	Algorithm    string
	Encoder      *features.Encoder
	LoadedAt     time.Time
}

// NewBundle checks that the four artifacts agree on the feature count and
// precomputes the encoder index.
func NewBundle(model ml.Regressor, scaler ml.Transformer, featureNames []string, meta Metadata, algorithm string) (*Bundle, error) {
	if model == nil {
		return nil, loadError("model", "", errors.New("model is nil"))
	}
	if scaler == nil {
		return nil, loadError("scaler", "", errors.New("scaler is nil"))
	}
	if len(meta.ComorbidityCols) == 0 {
		meta.ComorbidityCols = append([]string(nil), features.DefaultComorbidityCols...)
	}

	encoder, err := features.NewEncoder(featureNames, meta.ComorbidityCols)
	if err != nil {
		return nil, loadError("feature_names", "", err)
	}
	if n := model.FeatureCount(); n != len(featureNames) {
		return nil, loadError("model", "", fmt.Errorf("model expects %d features, feature list has %d", n, len(featureNames)))
	}
	if n := scaler.FeatureCount(); n != len(featureNames) {
		return nil, loadError("scaler", "", fmt.Errorf("scaler expects %d features, feature list has %d", n, len(featureNames)))
	}

	return &Bundle{
		Model:        model,
		Scaler:       scaler,
		FeatureNames: append([]string(nil), featureNames...),
		Metadata:     meta,
		Algorithm:    algorithm,
		Encoder:      encoder,
		LoadedAt:     time.Now().UTC(),
	}, nil
}

func (b *Bundle) ModelInfo() models.ModelInfo {
	return models.ModelInfo{
		Name:         b.Metadata.ModelName,
		Algorithm:    b.Algorithm,
		TrainingDate: b.Metadata.TrainingDay(),
		TestR2:       b.Metadata.TestR2,
		TestMAE:      b.Metadata.TestMAE,
		TestRMSE:     b.Metadata.TestRMSE,
		FeatureCount: len(b.FeatureNames),
	}
}
