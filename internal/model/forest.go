package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrFeatureCount is returned when an input vector does not match the number
// of features a model was fitted on.
var ErrFeatureCount = errors.New("feature count mismatch")

// Classifier is a random forest classifier. It is immutable after construction
// and safe for concurrent use.
type Classifier struct {
	classes  []string
	features []string
	trees    []tree
}

// NewClassifier validates a classifier artifact and builds the forest.
func NewClassifier(a ForestArtifact) (*Classifier, error) {
	if a.Kind != KindClassifier {
		return nil, fmt.Errorf("artifact kind %q, want %q", a.Kind, KindClassifier)
	}
	if len(a.Classes) == 0 {
		return nil, errors.New("classifier has no classes")
	}
	if len(a.FeatureNames) == 0 {
		return nil, errors.New("classifier has no feature names")
	}
	if len(a.Trees) == 0 {
		return nil, errors.New("classifier has no trees")
	}

	c := &Classifier{
		classes:  slices.Clone(a.Classes),
		features: slices.Clone(a.FeatureNames),
		trees:    make([]tree, 0, len(a.Trees)),
	}
	for i, ta := range a.Trees {
		t, err := newTree(ta, len(a.FeatureNames), len(a.Classes))
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		for j, l := range ta.ChildrenLeft {
			if l != leafMarker {
				continue
			}
			if slices.Min(ta.Value[j]) < 0 || sum(ta.Value[j]) <= 0 {
				return nil, fmt.Errorf("tree %d: %w: leaf %d has no usable class weight", i, ErrMalformedTree, j)
			}
		}
		c.trees = append(c.trees, t)
	}
	return c, nil
}

// Classes returns the class labels in the order used by PredictProba.
func (c *Classifier) Classes() []string { return slices.Clone(c.classes) }

// FeatureNames returns the column order the classifier was fitted on.
func (c *Classifier) FeatureNames() []string { return slices.Clone(c.features) }

// Trees returns the number of trees in the forest.
func (c *Classifier) Trees() int { return len(c.trees) }

// PredictProba returns one probability per class, aligned with Classes. Each
// tree contributes its normalized leaf distribution; the forest averages them.
func (c *Classifier) PredictProba(x []float64) ([]float64, error) {
	if len(x) != len(c.features) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), len(c.features))
	}

	proba := make([]float64, len(c.classes))
	for _, t := range c.trees {
		v := t.leaf(x)
		total := sum(v)
		for k, w := range v {
			proba[k] += w / total
		}
	}
	n := float64(len(c.trees))
	for k := range proba {
		proba[k] /= n
	}
	return proba, nil
}

// Predict returns the class with the highest mean probability. Ties go to the
// class listed first.
func (c *Classifier) Predict(x []float64) (string, error) {
	proba, err := c.PredictProba(x)
	if err != nil {
		return "", err
	}
	best := 0
	for k := 1; k < len(proba); k++ {
		if proba[k] > proba[best] {
			best = k
		}
	}
	return c.classes[best], nil
}

// Regressor is a random forest regressor. It is immutable after construction
// and safe for concurrent use.
type Regressor struct {
	features []string
	trees    []tree
}

// NewRegressor validates a regressor artifact and builds the forest.
func NewRegressor(a ForestArtifact) (*Regressor, error) {
	if a.Kind != KindRegressor {
		return nil, fmt.Errorf("artifact kind %q, want %q", a.Kind, KindRegressor)
	}
	if len(a.FeatureNames) == 0 {
		return nil, errors.New("regressor has no feature names")
	}
	if len(a.Trees) == 0 {
		return nil, errors.New("regressor has no trees")
	}

	r := &Regressor{
		features: slices.Clone(a.FeatureNames),
		trees:    make([]tree, 0, len(a.Trees)),
	}
	for i, ta := range a.Trees {
		t, err := newTree(ta, len(a.FeatureNames), 1)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		r.trees = append(r.trees, t)
	}
	return r, nil
}

// FeatureNames returns the column order the regressor was fitted on.
func (r *Regressor) FeatureNames() []string { return slices.Clone(r.features) }

// Trees returns the number of trees in the forest.
func (r *Regressor) Trees() int { return len(r.trees) }

// Predict returns the mean leaf value over all trees.
func (r *Regressor) Predict(x []float64) (float64, error) {
	if len(x) != len(r.features) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), len(r.features))
	}
	var total float64
	for _, t := range r.trees {
		total += t.leaf(x)[0]
	}
	return total / float64(len(r.trees)), nil
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}
