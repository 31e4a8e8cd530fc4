// Package predictor ranks candidate crops for a set of soil and climate
// measurements using pre-fitted scalers and a classifier.
package predictor

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// FeatureCount is the width of the model input.
const FeatureCount = 7

// TopN is how many crops a prediction returns.
const TopN = 5

// ErrInvalidInput marks client-side problems with a feature vector.
var ErrInvalidInput = errors.New("invalid input")

// FeatureVector is one set of raw measurements.
type FeatureVector struct {
	Nitrogen    float64
	Phosporus   float64
	Potassium   float64
	Temperature float64
	Humidity    float64
	Ph          float64
	Rainfall    float64
}

// Vector returns the features in model order: N, P, K, temperature,
// humidity, pH, rainfall.
func (f FeatureVector) Vector() []float64 {
	return []float64{f.Nitrogen, f.Phosporus, f.Potassium, f.Temperature, f.Humidity, f.Ph, f.Rainfall}
}

// CropProbability is one ranked prediction entry.
type CropProbability struct {
	Crop        string
	Probability float64
}

// Predictor runs the scaling pipeline and classifier. It holds no mutable
// state and is safe for concurrent use.
type Predictor struct {
	artifacts *Artifacts
	catalog   Catalog
}

// New returns a Predictor over validated artifacts.
func New(a *Artifacts, catalog Catalog) (*Predictor, error) {
	if a == nil {
		return nil, fmt.Errorf("predictor: nil artifacts")
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Predictor{artifacts: a, catalog: catalog}, nil
}

// Catalog returns the crop catalog used for naming classes.
func (p *Predictor) Catalog() Catalog { return p.catalog }

// Predict returns the TopN crops for f in descending probability order.
func (p *Predictor) Predict(f FeatureVector) ([]CropProbability, error) {
	x := f.Vector()
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: feature %d is not a finite number", ErrInvalidInput, i)
		}
	}

	scaled, err := p.artifacts.MinMax.Transform(x)
	if err != nil {
		return nil, fmt.Errorf("minmax transform: %w", err)
	}
	scaled, err = p.artifacts.Standard.Transform(scaled)
	if err != nil {
		return nil, fmt.Errorf("standard transform: %w", err)
	}
	probs, err := p.artifacts.Model.PredictProba(scaled)
	if err != nil {
		return nil, fmt.Errorf("predict proba: %w", err)
	}
	for i, pr := range probs {
		if math.IsNaN(pr) || pr < 0 || pr > 1 {
			return nil, fmt.Errorf("classifier returned probability %v for class %d", pr, i)
		}
	}

	top := TopK(probs, TopN)
	out := make([]CropProbability, len(top))
	for i, idx := range top {
		out[i] = CropProbability{Crop: p.catalog.Name(idx + 1), Probability: probs[idx]}
	}
	return out, nil
}

// TopK returns the indices of the k largest probabilities, highest first.
// Equal probabilities are ordered by ascending index.
func TopK(probs []float64, k int) []int {
	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := probs[idx[a]], probs[idx[b]]
		if pa != pb {
			return pa > pb
		}
		return idx[a] < idx[b]
	})
	if k < len(idx) {
		idx = idx[:k]
	}
	return idx
}
