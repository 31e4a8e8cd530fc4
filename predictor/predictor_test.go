package predictor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityScalers() (*MinMaxScaler, *StandardScaler) {
	mm := &MinMaxScaler{Min: make([]float64, FeatureCount), Scale: make([]float64, FeatureCount)}
	ss := &StandardScaler{Scale: make([]float64, FeatureCount)}
	for i := 0; i < FeatureCount; i++ {
		mm.Scale[i] = 1
		ss.Scale[i] = 1
	}
	return mm, ss
}

// rampModel gives class k the logit k*step regardless of input.
func rampModel(classes int, step float64) *SoftmaxClassifier {
	c := &SoftmaxClassifier{Coef: make([][]float64, classes), Intercept: make([]float64, classes)}
	for k := range c.Coef {
		c.Coef[k] = make([]float64, FeatureCount)
		c.Intercept[k] = float64(k) * step
	}
	return c
}

func newTestPredictor(t *testing.T, model Classifier) *Predictor {
	t.Helper()
	mm, ss := identityScalers()
	p, err := New(&Artifacts{MinMax: mm, Standard: ss, Model: model}, DefaultCatalog())
	require.NoError(t, err)
	return p
}

var sample = FeatureVector{Nitrogen: 90, Phosporus: 42, Potassium: 43, Temperature: 20.8, Humidity: 82, Ph: 6.5, Rainfall: 202.9}

func TestVectorOrder(t *testing.T) {
	assert.Equal(t, []float64{90, 42, 43, 20.8, 82, 6.5, 202.9}, sample.Vector())
}

func TestTopK(t *testing.T) {
	tests := []struct {
		name  string
		probs []float64
		k     int
		want  []int
	}{
		{"descending", []float64{0.1, 0.5, 0.2, 0.15, 0.05}, 3, []int{1, 2, 3}},
		{"ties prefer lower index", []float64{0.2, 0.3, 0.2, 0.3, 0.0}, 4, []int{1, 3, 0, 2}},
		{"k larger than input", []float64{0.4, 0.6}, 5, []int{1, 0}},
		{"empty", nil, 5, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopK(tt.probs, tt.k))
		})
	}
}

func TestPredictRanksByProbability(t *testing.T) {
	p := newTestPredictor(t, rampModel(22, 0.5))

	got, err := p.Predict(sample)
	require.NoError(t, err)
	require.Len(t, got, TopN)

	names := make([]string, len(got))
	for i, g := range got {
		names[i] = g.Crop
	}
	assert.Equal(t, []string{"Coffee", "Chickpea", "Kidneybeans", "Pigeonpeas", "Mothbeans"}, names)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Probability, got[i].Probability)
	}
}

func TestPredictUniformTieBreak(t *testing.T) {
	p := newTestPredictor(t, rampModel(22, 0))

	got, err := p.Predict(sample)
	require.NoError(t, err)
	want := []string{"Rice", "Maize", "Jute", "Cotton", "Coconut"}
	for i, g := range got {
		assert.Equal(t, want[i], g.Crop)
		assert.InDelta(t, 1.0/22, g.Probability, 1e-12)
	}
}

func TestPredictUnknownClass(t *testing.T) {
	// 23 classes: the extra class has no catalog entry.
	p := newTestPredictor(t, rampModel(23, 1))

	got, err := p.Predict(sample)
	require.NoError(t, err)
	assert.Equal(t, UnknownCrop, got[0].Crop)
	assert.Equal(t, "Coffee", got[1].Crop)
}

func TestPredictProperties(t *testing.T) {
	model := &SoftmaxClassifier{Coef: make([][]float64, 22), Intercept: make([]float64, 22)}
	for k := range model.Coef {
		row := make([]float64, FeatureCount)
		for j := range row {
			row[j] = math.Sin(float64(k*FeatureCount+j)) / 50
		}
		model.Coef[k] = row
	}
	p := newTestPredictor(t, model)

	known := map[string]bool{UnknownCrop: true}
	for _, n := range DefaultCatalog().Names() {
		known[n] = true
	}

	inputs := []FeatureVector{
		sample,
		{},
		{Nitrogen: 140, Phosporus: 145, Potassium: 205, Temperature: 43, Humidity: 99, Ph: 9.9, Rainfall: 298},
		{Nitrogen: -5, Phosporus: 0.5, Potassium: 1e3, Temperature: -10, Humidity: 14, Ph: 3.5, Rainfall: 0},
	}
	for _, in := range inputs {
		got, err := p.Predict(in)
		require.NoError(t, err)
		require.Len(t, got, TopN)
		for i, g := range got {
			assert.True(t, known[g.Crop], "unexpected crop %q", g.Crop)
			assert.GreaterOrEqual(t, g.Probability, 0.0)
			assert.LessOrEqual(t, g.Probability, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Probability, g.Probability)
			}
		}

		again, err := p.Predict(in)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestPredictRejectsNonFinite(t *testing.T) {
	p := newTestPredictor(t, rampModel(22, 1))

	in := sample
	in.Rainfall = math.NaN()
	_, err := p.Predict(in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = sample
	in.Ph = math.Inf(1)
	_, err = p.Predict(in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type badClassifier struct{ SoftmaxClassifier }

func (badClassifier) PredictProba([]float64) ([]float64, error) { return []float64{1.5, -0.5}, nil }

func TestPredictRejectsBadProbabilities(t *testing.T) {
	p := newTestPredictor(t, &badClassifier{*rampModel(2, 0)})

	_, err := p.Predict(sample)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestNewValidatesArtifacts(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	mm, ss := identityScalers()
	narrow := &SoftmaxClassifier{Coef: [][]float64{{1, 2}}, Intercept: []float64{0}}
	_, err = New(&Artifacts{MinMax: mm, Standard: ss, Model: narrow}, nil)
	assert.Error(t, err)

	p, err := New(&Artifacts{MinMax: mm, Standard: ss, Model: rampModel(22, 0)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Rice", p.Catalog().Name(1))
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Len(t, c.Names(), 22)
	assert.Equal(t, "Rice", c.Name(1))
	assert.Equal(t, "Coffee", c.Name(22))
	assert.Equal(t, UnknownCrop, c.Name(0))
	assert.Equal(t, UnknownCrop, c.Name(23))
}
