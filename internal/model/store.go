package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
)

// ErrStartupFailure marks a model artifact that could not be loaded. The
// service must not start serving when it occurs.
var ErrStartupFailure = errors.New("model startup failure")

// Training entry points that produce the artifacts.
var trainingScripts = []string{"models/train_crop_model.py", "models/train_yield_model.py"}

// StartupError names the artifact that failed to load and how to produce it.
type StartupError struct {
	Path string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("load model artifact %s: %v; train the models first with: python %s && python %s",
		e.Path, e.Err, trainingScripts[0], trainingScripts[1])
}

func (e *StartupError) Unwrap() error { return e.Err }

// Is matches ErrStartupFailure.
func (e *StartupError) Is(target error) bool { return target == ErrStartupFailure }

// YieldBundle is the yield regressor together with the encoders that map state
// and crop labels to the codes it was fitted on.
type YieldBundle struct {
	Regressor      *Regressor
	StateEncoder   *LabelEncoder
	CropEncoder    *LabelEncoder
	FeatureColumns []string
}

// Store holds both models for the lifetime of the process. It is read-only
// after LoadStore returns.
type Store struct {
	Crop  *Classifier
	Yield *YieldBundle
}

// LoadStore reads the crop classifier and yield bundle from dir. Any failure is
// returned as a *StartupError.
func LoadStore(dir, cropFile, yieldFile string) (*Store, error) {
	crop, err := LoadClassifier(filepath.Join(dir, cropFile))
	if err != nil {
		return nil, err
	}
	yield, err := LoadYieldBundle(filepath.Join(dir, yieldFile))
	if err != nil {
		return nil, err
	}
	return &Store{Crop: crop, Yield: yield}, nil
}

// LoadClassifier reads and validates a crop classifier artifact.
func LoadClassifier(path string) (*Classifier, error) {
	var a ForestArtifact
	if err := ReadArtifact(path, &a); err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}
	if !slices.Equal(a.FeatureNames, domain.CropFeatureNames) {
		return nil, &StartupError{Path: path, Err: fmt.Errorf("feature order %v, want %v", a.FeatureNames, domain.CropFeatureNames)}
	}
	c, err := NewClassifier(a)
	if err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}
	return c, nil
}

// LoadYieldBundle reads and validates a yield model bundle artifact.
func LoadYieldBundle(path string) (*YieldBundle, error) {
	var a YieldArtifact
	if err := ReadArtifact(path, &a); err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}
	b, err := NewYieldBundle(a)
	if err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}
	return b, nil
}

// NewYieldBundle validates a yield artifact and builds the bundle.
func NewYieldBundle(a YieldArtifact) (*YieldBundle, error) {
	if !slices.Equal(a.FeatureColumns, domain.YieldFeatureColumns) {
		return nil, fmt.Errorf("feature columns %v, want %v", a.FeatureColumns, domain.YieldFeatureColumns)
	}
	if !slices.Equal(a.Model.FeatureNames, a.FeatureColumns) {
		return nil, fmt.Errorf("regressor features %v disagree with feature columns %v", a.Model.FeatureNames, a.FeatureColumns)
	}
	reg, err := NewRegressor(a.Model)
	if err != nil {
		return nil, fmt.Errorf("regressor: %w", err)
	}
	states, err := NewLabelEncoder(a.StateEncoder.Classes)
	if err != nil {
		return nil, fmt.Errorf("state encoder: %w", err)
	}
	crops, err := NewLabelEncoder(a.CropEncoder.Classes)
	if err != nil {
		return nil, fmt.Errorf("crop encoder: %w", err)
	}
	return &YieldBundle{
		Regressor:      reg,
		StateEncoder:   states,
		CropEncoder:    crops,
		FeatureColumns: slices.Clone(a.FeatureColumns),
	}, nil
}
