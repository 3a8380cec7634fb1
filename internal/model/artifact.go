package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Artifact kinds.
const (
	KindClassifier = "random_forest_classifier"
	KindRegressor  = "random_forest_regressor"
)

// TreeArtifact is the array-backed layout of one fitted decision tree, as
// exported from a scikit-learn estimator's tree_ attribute. Node i is a leaf
// when ChildrenLeft[i] == -1.
type TreeArtifact struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// ForestArtifact is a serialized random forest. Classes is set for classifiers only.
type ForestArtifact struct {
	Kind         string         `json:"kind"`
	FeatureNames []string       `json:"feature_names"`
	Classes      []string       `json:"classes,omitempty"`
	Trees        []TreeArtifact `json:"trees"`
}

// EncoderArtifact is a serialized label encoder.
type EncoderArtifact struct {
	Classes []string `json:"classes"`
}

// YieldArtifact bundles the yield regressor with its categorical encoders and
// the feature column order it was fitted on.
type YieldArtifact struct {
	Model          ForestArtifact  `json:"model"`
	StateEncoder   EncoderArtifact `json:"state_encoder"`
	CropEncoder    EncoderArtifact `json:"crop_encoder"`
	FeatureColumns []string        `json:"feature_columns"`
}

func isGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// ReadArtifact decodes a JSON artifact into v. Files ending in .gz are
// decompressed first.
func ReadArtifact(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if isGzip(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode artifact: %w", err)
	}
	return nil
}

// WriteArtifact encodes v as JSON to path, gzip-compressed when path ends in .gz.
func WriteArtifact(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = f
	var zw *gzip.Writer
	if isGzip(path) {
		zw = gzip.NewWriter(f)
		w = zw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("close gzip stream: %w", err)
		}
	}
	return nil
}
