package predictor

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ArtifactFiles names the three artifact files inside an artifacts directory.
type ArtifactFiles struct {
	MinMax   string
	Standard string
	Model    string
}

// DefaultArtifactFiles matches the layout of the bundled artifacts/ directory.
func DefaultArtifactFiles() ArtifactFiles {
	return ArtifactFiles{
		MinMax:   "minmaxscaler.yaml",
		Standard: "standscaler.yaml",
		Model:    "model.yaml",
	}
}

// Artifacts holds the pre-fitted pipeline. It is read-only once loaded.
type Artifacts struct {
	MinMax   Scaler
	Standard Scaler
	Model    Classifier
}

type modelFile struct {
	Kind              string `yaml:"kind"`
	SoftmaxClassifier `yaml:",inline"`
	GaussianNB        `yaml:",inline"`
}

// LoadArtifacts reads and validates the scalers and classifier from dir.
// JSON artifact files are accepted as well since JSON is valid YAML.
func LoadArtifacts(dir string, files ArtifactFiles) (*Artifacts, error) {
	var mm MinMaxScaler
	if err := readYAML(filepath.Join(dir, files.MinMax), &mm); err != nil {
		return nil, err
	}
	if err := mm.validate(); err != nil {
		return nil, err
	}

	var ss StandardScaler
	if err := readYAML(filepath.Join(dir, files.Standard), &ss); err != nil {
		return nil, err
	}
	if err := ss.validate(); err != nil {
		return nil, err
	}

	var mf modelFile
	if err := readYAML(filepath.Join(dir, files.Model), &mf); err != nil {
		return nil, err
	}
	model, err := mf.classifier()
	if err != nil {
		return nil, err
	}

	a := &Artifacts{MinMax: &mm, Standard: &ss, Model: model}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks that every stage consumes FeatureCount features.
func (a *Artifacts) Validate() error {
	if a.MinMax == nil || a.Standard == nil || a.Model == nil {
		return fmt.Errorf("artifacts: scaler or model missing")
	}
	for name, w := range map[string]int{
		"minmax scaler":   a.MinMax.Width(),
		"standard scaler": a.Standard.Width(),
		"classifier":      a.Model.Width(),
	} {
		if w != FeatureCount {
			return fmt.Errorf("artifacts: %s expects %d features, want %d", name, w, FeatureCount)
		}
	}
	if a.Model.Classes() == 0 {
		return fmt.Errorf("artifacts: classifier has no classes")
	}
	return nil
}

func (m *modelFile) classifier() (Classifier, error) {
	switch m.Kind {
	case KindSoftmax, "":
		c := m.SoftmaxClassifier
		if err := c.validate(); err != nil {
			return nil, err
		}
		return &c, nil
	case KindGaussianNB:
		g := m.GaussianNB
		if err := g.validate(); err != nil {
			return nil, err
		}
		return &g, nil
	default:
		return nil, fmt.Errorf("model: unknown classifier kind %q", m.Kind)
	}
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
