package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okoamaisha/platform/pkg/common/logger"
	"github.com/okoamaisha/platform/pkg/ml"
	"github.com/okoamaisha/platform/pkg/ml/ensemble"
	"github.com/okoamaisha/platform/pkg/ml/linear"
	"github.com/okoamaisha/platform/pkg/ml/scaling"
)

const (
	ModelFile        = "model.json"
	ScalerFile       = "scaler.json"
	FeatureNamesFile = "feature_names.json"
	MetadataFile     = "model_metadata.yaml"

	TypeLinear           = "linear_regression"
	TypeGradientBoosting = "gradient_boosting"
)

type modelFile struct {
	Model struct {
		Type         string          `json:"type"`
		Algorithm    string          `json:"algorithm"`
		FeatureCount int             `json:"feature_count"`
		Weights      *linear.Weights `json:"weights"`
		Ensemble     *ensemble.Spec  `json:"ensemble"`
	} `json:"model"`
}

type metadataFile struct {
	ModelName       string   `yaml:"model_name"`
	TestR2          *float64 `yaml:"test_r2"`
	TestMAE         *float64 `yaml:"test_mae"`
	TestRMSE        *float64 `yaml:"test_rmse"`
	TrainingDate    string   `yaml:"training_date"`
	ComorbidityCols []string `yaml:"comorbidity_cols"`
}

// Loader reads the artifact bundle from a directory exactly once. Later
// calls return the cached bundle, or the cached error.
type Loader struct {
	dir        string
	retryDelay time.Duration
	readFile   func(string) ([]byte, error)

	once   sync.Once
	bundle *Bundle
	err    error
}

func NewLoader(dir string, retryDelay time.Duration) *Loader {
	return &Loader{dir: dir, retryDelay: retryDelay, readFile: os.ReadFile}
}

func (l *Loader) Load() (*Bundle, error) {
	l.once.Do(func() {
		start := time.Now()
		l.bundle, l.err = l.load()
		if l.err != nil {
			logger.WithError(l.err).WithField("dir", l.dir).Error("artifact bundle failed to load")
			return
		}
		logger.WithFields(map[string]interface{}{
			"dir":         l.dir,
			"algorithm":   l.bundle.Algorithm,
			"features":    len(l.bundle.FeatureNames),
			"unknown":     len(l.bundle.Encoder.Unknown()),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("artifact bundle loaded")
	})
	return l.bundle, l.err
}

func (l *Loader) load() (*Bundle, error) {
	names, err := l.loadFeatureNames()
	if err != nil {
		return nil, err
	}
	meta, err := l.loadMetadata()
	if err != nil {
		return nil, err
	}
	model, algorithm, err := l.loadModel(len(names))
	if err != nil {
		return nil, err
	}
	scaler, err := l.loadScaler()
	if err != nil {
		return nil, err
	}

	bundle, err := NewBundle(model, scaler, names, meta, algorithm)
	if err != nil {
		var le *ArtifactLoadError
		if errors.As(err, &le) && le.Path == "" {
			le.Path = l.dir
		}
		return nil, err
	}
	return bundle, nil
}

func (l *Loader) loadFeatureNames() ([]string, error) {
	path := filepath.Join(l.dir, FeatureNamesFile)
	content, err := l.read(path)
	if err != nil {
		return nil, loadError("feature_names", path, err)
	}
	var names []string
	if err := json.Unmarshal(content, &names); err != nil {
		return nil, loadError("feature_names", path, err)
	}
	if len(names) == 0 {
		return nil, loadError("feature_names", path, errors.New("feature name list is empty"))
	}
	return names, nil
}

func (l *Loader) loadMetadata() (Metadata, error) {
	path := filepath.Join(l.dir, MetadataFile)
	content, err := l.read(path)
	if err != nil {
		return Metadata{}, loadError("metadata", path, err)
	}
	var raw metadataFile
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return Metadata{}, loadError("metadata", path, err)
	}
	if raw.TestR2 == nil {
		return Metadata{}, loadError("metadata", path, errors.New("test_r2 is required"))
	}
	if raw.TestMAE == nil {
		return Metadata{}, loadError("metadata", path, errors.New("test_mae is required"))
	}
	return Metadata{
		ModelName:       raw.ModelName,
		TestR2:          *raw.TestR2,
		TestMAE:         *raw.TestMAE,
		TestRMSE:        raw.TestRMSE,
		TrainingDate:    raw.TrainingDate,
		ComorbidityCols: raw.ComorbidityCols,
	}, nil
}

func (l *Loader) loadModel(featureCount int) (ml.Regressor, string, error) {
	path := filepath.Join(l.dir, ModelFile)
	content, err := l.read(path)
	if err != nil {
		return nil, "", loadError("model", path, err)
	}
	var file modelFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, "", loadError("model", path, err)
	}
	spec := file.Model
	if spec.FeatureCount != 0 && spec.FeatureCount != featureCount {
		return nil, "", loadError("model", path, fmt.Errorf("model declares %d features, feature list has %d", spec.FeatureCount, featureCount))
	}

	algorithm := spec.Algorithm
	if algorithm == "" {
		algorithm = spec.Type
	}

	switch spec.Type {
	case TypeLinear:
		if spec.Weights == nil {
			return nil, "", loadError("model", path, errors.New("linear model missing weights"))
		}
		model, err := linear.NewRegressor(*spec.Weights)
		if err != nil {
			return nil, "", loadError("model", path, err)
		}
		return model, algorithm, nil
	case TypeGradientBoosting:
		if spec.Ensemble == nil {
			return nil, "", loadError("model", path, errors.New("gradient boosting model missing ensemble"))
		}
		model, err := ensemble.NewGradientBoosting(*spec.Ensemble, featureCount)
		if err != nil {
			return nil, "", loadError("model", path, err)
		}
		return model, algorithm, nil
	default:
		return nil, "", loadError("model", path, fmt.Errorf("unsupported model type %q", spec.Type))
	}
}

func (l *Loader) loadScaler() (ml.Transformer, error) {
	path := filepath.Join(l.dir, ScalerFile)
	content, err := l.read(path)
	if err != nil {
		return nil, loadError("scaler", path, err)
	}
	var params scaling.StandardParams
	if err := json.Unmarshal(content, &params); err != nil {
		return nil, loadError("scaler", path, err)
	}
	scaler, err := scaling.NewStandard(params)
	if err != nil {
		return nil, loadError("scaler", path, err)
	}
	return scaler, nil
}

// read retries once on failures that may be transient.
func (l *Loader) read(path string) ([]byte, error) {
	content, err := l.readFile(path)
	if err == nil || !transient(err) {
		return content, err
	}
	logger.WithError(err).WithField("path", path).Warn("artifact read failed, retrying once")
	if l.retryDelay > 0 {
		time.Sleep(l.retryDelay)
	}
	return l.readFile(path)
}

func transient(err error) bool {
	return !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission)
}
