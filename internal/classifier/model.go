package classifier

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/utils"
)

// Classifier maps a reading onto a binary verdict. Implementations must be
// deterministic and must consume the reading strictly in field order.
type Classifier interface {
	Classify(reading models.SensorReading) (models.Verdict, error)
}

// Model is a loaded, read-only artifact. It is safe for concurrent use.
type Model struct {
	name    string
	kind    Kind
	predict func(x [models.FieldCount]float64) int
}

// Load reads and validates the artifact at path.
func Load(path string) (*Model, error) {
	if path == "" {
		return nil, utils.NewAppError("load model", utils.KindArtifact, "artifact path is empty", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, utils.NewAppError("load model", utils.KindArtifact, "artifact not found at "+path, err)
		}
		return nil, utils.NewAppError("load model", utils.KindArtifact, "read "+path, err)
	}
	model, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return model, nil
}

// Parse decodes and validates an artifact from memory.
func Parse(data []byte) (*Model, error) {
	var artifact Artifact
	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return nil, utils.NewAppError("parse model", utils.KindArtifact, "decode artifact", err)
	}
	if err := artifact.validate(); err != nil {
		return nil, utils.NewAppError("parse model", utils.KindArtifact, "invalid artifact", err)
	}

	model := &Model{name: artifact.Name, kind: artifact.Kind}
	if model.name == "" {
		model.name = string(artifact.Kind)
	}
	switch artifact.Kind {
	case KindForest:
		model.predict = newForest(artifact.Forest).predict
	case KindLogistic:
		model.predict = newLogistic(artifact.Logistic).predict
	}
	return model, nil
}

// Name identifies the artifact in logs.
func (m *Model) Name() string {
	return m.name
}

// Kind reports the model family.
func (m *Model) Kind() Kind {
	return m.kind
}

// Classify returns the verdict for reading. Class confidence is not exposed.
func (m *Model) Classify(reading models.SensorReading) (models.Verdict, error) {
	if m == nil || m.predict == nil {
		return 0, fmt.Errorf("classifier not loaded")
	}
	return models.VerdictFromClass(m.predict(reading.Values())), nil
}

type forest struct {
	trees [][]NodeSpec
}

func newForest(spec *ForestSpec) *forest {
	trees := make([][]NodeSpec, 0, len(spec.Trees))
	for _, tree := range spec.Trees {
		trees = append(trees, append([]NodeSpec(nil), tree.Nodes...))
	}
	return &forest{trees: trees}
}

// predict returns the majority class; ties resolve to class 0.
func (f *forest) predict(x [models.FieldCount]float64) int {
	votes := 0
	for _, nodes := range f.trees {
		if walk(nodes, x) == 1 {
			votes++
		}
	}
	if 2*votes > len(f.trees) {
		return 1
	}
	return 0
}

func walk(nodes []NodeSpec, x [models.FieldCount]float64) int {
	i := 0
	for !nodes[i].Leaf {
		if x[nodes[i].Feature] <= nodes[i].Threshold {
			i = nodes[i].Left
		} else {
			i = nodes[i].Right
		}
	}
	return nodes[i].Class
}

type logistic struct {
	coef      [models.FieldCount]float64
	intercept float64
	mean      [models.FieldCount]float64
	scale     [models.FieldCount]float64
}

func newLogistic(spec *LogisticSpec) *logistic {
	l := &logistic{intercept: spec.Intercept}
	copy(l.coef[:], spec.Coefficients)
	for i := range l.scale {
		l.scale[i] = 1
	}
	if spec.Scaler != nil {
		copy(l.mean[:], spec.Scaler.Mean)
		copy(l.scale[:], spec.Scaler.Scale)
	}
	return l
}

// predict is class 1 when the decision function is strictly positive,
// equivalent to a sigmoid probability above one half.
func (l *logistic) predict(x [models.FieldCount]float64) int {
	z := l.intercept
	for i, v := range x {
		z += l.coef[i] * (v - l.mean[i]) / l.scale[i]
	}
	if z > 0 {
		return 1
	}
	return 0
}
