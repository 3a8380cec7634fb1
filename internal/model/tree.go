package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedTree is returned when a tree artifact is structurally invalid.
var ErrMalformedTree = errors.New("malformed tree")

const leafMarker = -1

// tree is a validated, read-only decision tree.
type tree struct {
	left      []int
	right     []int
	feature   []int
	threshold []float64
	value     [][]float64
}

// newTree validates a tree artifact against the number of input features and
// the expected leaf width (number of classes, or 1 for regression). Children
// must have a higher index than their parent, which rules out cycles.
func newTree(a TreeArtifact, nFeatures, width int) (tree, error) {
	n := len(a.ChildrenLeft)
	if n == 0 {
		return tree{}, fmt.Errorf("%w: no nodes", ErrMalformedTree)
	}
	if len(a.ChildrenRight) != n || len(a.Feature) != n || len(a.Threshold) != n || len(a.Value) != n {
		return tree{}, fmt.Errorf("%w: node arrays differ in length", ErrMalformedTree)
	}

	for i := range n {
		l, r := a.ChildrenLeft[i], a.ChildrenRight[i]
		if l == leafMarker {
			if r != leafMarker {
				return tree{}, fmt.Errorf("%w: node %d has one child", ErrMalformedTree, i)
			}
			if err := checkLeaf(a.Value[i], width); err != nil {
				return tree{}, fmt.Errorf("%w: node %d: %w", ErrMalformedTree, i, err)
			}
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			return tree{}, fmt.Errorf("%w: node %d has children out of range", ErrMalformedTree, i)
		}
		if f := a.Feature[i]; f < 0 || f >= nFeatures {
			return tree{}, fmt.Errorf("%w: node %d splits on feature %d of %d", ErrMalformedTree, i, f, nFeatures)
		}
		if math.IsNaN(a.Threshold[i]) {
			return tree{}, fmt.Errorf("%w: node %d has NaN threshold", ErrMalformedTree, i)
		}
	}

	return tree{
		left:      a.ChildrenLeft,
		right:     a.ChildrenRight,
		feature:   a.Feature,
		threshold: a.Threshold,
		value:     a.Value,
	}, nil
}

func checkLeaf(v []float64, width int) error {
	if len(v) != width {
		return fmt.Errorf("leaf has %d values, want %d", len(v), width)
	}
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.New("leaf value is not finite")
		}
	}
	return nil
}

// leaf walks x down the tree and returns the leaf value.
func (t tree) leaf(x []float64) []float64 {
	i := 0
	for t.left[i] != leafMarker {
		if x[t.feature[i]] <= t.threshold[i] {
			i = t.left[i]
		} else {
			i = t.right[i]
		}
	}
	return t.value[i]
}
