package classifier

import (
	"fmt"
	"math"

	"github.com/miradorstack/engine-condition/internal/models"
)

// Kind names the model family stored in an artifact.
type Kind string

const (
	KindForest   Kind = "forest"
	KindLogistic Kind = "logistic"
)

// Artifact is the on-disk representation of a trained classifier. It is
// decoded from YAML; JSON artifacts parse as well.
type Artifact struct {
	Name     string        `yaml:"name"`
	Kind     Kind          `yaml:"kind"`
	Features []string      `yaml:"features"`
	Forest   *ForestSpec   `yaml:"forest,omitempty"`
	Logistic *LogisticSpec `yaml:"logistic,omitempty"`
}

// ForestSpec is an ensemble of binary decision trees voting on the class.
type ForestSpec struct {
	Trees []TreeSpec `yaml:"trees"`
}

// TreeSpec lists nodes in array form; node 0 is the root.
type TreeSpec struct {
	Nodes []NodeSpec `yaml:"nodes"`
}

// NodeSpec is either a split (x[Feature] <= Threshold goes Left) or a leaf
// carrying Class.
type NodeSpec struct {
	Leaf      bool    `yaml:"leaf"`
	Feature   int     `yaml:"feature"`
	Threshold float64 `yaml:"threshold"`
	Left      int     `yaml:"left"`
	Right     int     `yaml:"right"`
	Class     int     `yaml:"class"`
}

// LogisticSpec is a linear decision function with optional standardisation.
type LogisticSpec struct {
	Coefficients []float64   `yaml:"coefficients"`
	Intercept    float64     `yaml:"intercept"`
	Scaler       *ScalerSpec `yaml:"scaler,omitempty"`
}

// ScalerSpec standardises inputs as (x - mean) / scale.
type ScalerSpec struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

func (a *Artifact) validate() error {
	if err := validateFeatures(a.Features); err != nil {
		return err
	}
	switch a.Kind {
	case KindForest:
		if a.Forest == nil {
			return fmt.Errorf("kind %q requires a forest section", a.Kind)
		}
		return a.Forest.validate()
	case KindLogistic:
		if a.Logistic == nil {
			return fmt.Errorf("kind %q requires a logistic section", a.Kind)
		}
		return a.Logistic.validate()
	case "":
		return fmt.Errorf("kind is required")
	default:
		return fmt.Errorf("unsupported kind %q", a.Kind)
	}
}

// validateFeatures enforces that the artifact was trained on the fixed field
// order. The model has no field names at predict time, only positions.
func validateFeatures(features []string) error {
	keys := models.FieldKeys()
	if len(features) != len(keys) {
		return fmt.Errorf("artifact declares %d features, want %d", len(features), len(keys))
	}
	for i, key := range keys {
		if features[i] != key {
			return fmt.Errorf("feature %d is %q, want %q", i, features[i], key)
		}
	}
	return nil
}

func (f *ForestSpec) validate() error {
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	for i, tree := range f.Trees {
		if err := tree.validate(); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// validate checks indices and labels. Children must point forward, which
// rules out cycles and guarantees every walk ends at a leaf.
func (t TreeSpec) validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, node := range t.Nodes {
		if node.Leaf {
			if node.Class != 0 && node.Class != 1 {
				return fmt.Errorf("node %d: class must be 0 or 1, got %d", i, node.Class)
			}
			continue
		}
		if node.Feature < 0 || node.Feature >= models.FieldCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.Feature)
		}
		if math.IsNaN(node.Threshold) || math.IsInf(node.Threshold, 0) {
			return fmt.Errorf("node %d: threshold must be finite", i)
		}
		for _, child := range []int{node.Left, node.Right} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("node %d: child index %d invalid", i, child)
			}
		}
	}
	return nil
}

func (l *LogisticSpec) validate() error {
	if len(l.Coefficients) != models.FieldCount {
		return fmt.Errorf("logistic needs %d coefficients, got %d", models.FieldCount, len(l.Coefficients))
	}
	if !finite(l.Coefficients...) || !finite(l.Intercept) {
		return fmt.Errorf("logistic coefficients must be finite")
	}
	if l.Scaler == nil {
		return nil
	}
	if len(l.Scaler.Mean) != models.FieldCount || len(l.Scaler.Scale) != models.FieldCount {
		return fmt.Errorf("scaler needs %d means and scales", models.FieldCount)
	}
	if !finite(l.Scaler.Mean...) || !finite(l.Scaler.Scale...) {
		return fmt.Errorf("scaler values must be finite")
	}
	for i, s := range l.Scaler.Scale {
		if s == 0 {
			return fmt.Errorf("scaler scale %d is zero", i)
		}
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
