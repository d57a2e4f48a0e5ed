package artifacts

import (
	"errors"
	"fmt"
)

// ArtifactLoadError is fatal: the process has no model to serve without it.
type ArtifactLoadError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load %s artifact: %v", e.Artifact, e.Err)
	}
	return fmt.Sprintf("load %s artifact from %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}

func IsArtifactLoadError(err error) bool {
	var le *ArtifactLoadError
	return errors.As(err, &le)
}

func loadError(artifact, path string, err error) error {
	return &ArtifactLoadError{Artifact: artifact, Path: path, Err: err}
}
