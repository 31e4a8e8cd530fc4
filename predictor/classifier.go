package predictor

import (
	"fmt"
	"math"
)

// Classifier returns one probability per class for a scaled feature vector.
type Classifier interface {
	PredictProba(x []float64) ([]float64, error)
	Classes() int
	Width() int
}

// Classifier kinds accepted in model artifacts.
const (
	KindSoftmax    = "softmax"
	KindGaussianNB = "gaussian_nb"
)

// SoftmaxClassifier is a multinomial logistic regression: softmax(Coef·x + Intercept).
type SoftmaxClassifier struct {
	Coef      [][]float64 `yaml:"coef"      json:"coef"` // classes x features
	Intercept []float64   `yaml:"intercept" json:"intercept"`
}

func (c *SoftmaxClassifier) Classes() int { return len(c.Coef) }

func (c *SoftmaxClassifier) Width() int {
	if len(c.Coef) == 0 {
		return 0
	}
	return len(c.Coef[0])
}

func (c *SoftmaxClassifier) validate() error {
	if len(c.Coef) == 0 {
		return fmt.Errorf("softmax classifier: no classes")
	}
	if len(c.Intercept) != len(c.Coef) {
		return fmt.Errorf("softmax classifier: %d intercepts for %d classes", len(c.Intercept), len(c.Coef))
	}
	w := c.Width()
	for i, row := range c.Coef {
		if len(row) != w {
			return fmt.Errorf("softmax classifier: class %d has %d weights, want %d", i, len(row), w)
		}
	}
	return nil
}

func (c *SoftmaxClassifier) PredictProba(x []float64) ([]float64, error) {
	if len(x) != c.Width() {
		return nil, fmt.Errorf("softmax classifier: expected %d features, got %d", c.Width(), len(x))
	}
	logits := make([]float64, len(c.Coef))
	for k, row := range c.Coef {
		z := c.Intercept[k]
		for j, w := range row {
			z += w * x[j]
		}
		logits[k] = z
	}
	return normalizeLog(logits), nil
}

// GaussianNB is a Gaussian naive Bayes model with per-class feature means
// (Theta), variances (Var) and class priors.
type GaussianNB struct {
	Theta [][]float64 `yaml:"theta" json:"theta"` // classes x features
	Var   [][]float64 `yaml:"var"   json:"var"`
	Prior []float64   `yaml:"prior" json:"prior"`
}

func (g *GaussianNB) Classes() int { return len(g.Theta) }

func (g *GaussianNB) Width() int {
	if len(g.Theta) == 0 {
		return 0
	}
	return len(g.Theta[0])
}

func (g *GaussianNB) validate() error {
	if len(g.Theta) == 0 {
		return fmt.Errorf("gaussian_nb: no classes")
	}
	if len(g.Var) != len(g.Theta) || len(g.Prior) != len(g.Theta) {
		return fmt.Errorf("gaussian_nb: theta/var/prior class counts differ (%d/%d/%d)",
			len(g.Theta), len(g.Var), len(g.Prior))
	}
	w := g.Width()
	for k := range g.Theta {
		if len(g.Theta[k]) != w || len(g.Var[k]) != w {
			return fmt.Errorf("gaussian_nb: class %d has wrong feature width", k)
		}
		if g.Prior[k] <= 0 {
			return fmt.Errorf("gaussian_nb: class %d prior must be positive", k)
		}
		for j, v := range g.Var[k] {
			if v <= 0 {
				return fmt.Errorf("gaussian_nb: class %d feature %d variance must be positive", k, j)
			}
		}
	}
	return nil
}

func (g *GaussianNB) PredictProba(x []float64) ([]float64, error) {
	if len(x) != g.Width() {
		return nil, fmt.Errorf("gaussian_nb: expected %d features, got %d", g.Width(), len(x))
	}
	jll := make([]float64, len(g.Theta))
	for k := range g.Theta {
		ll := math.Log(g.Prior[k])
		for j, v := range x {
			d := v - g.Theta[k][j]
			ll -= 0.5*math.Log(2*math.Pi*g.Var[k][j]) + d*d/(2*g.Var[k][j])
		}
		jll[k] = ll
	}
	return normalizeLog(jll), nil
}

// normalizeLog turns unnormalised log-probabilities into probabilities using
// the log-sum-exp shift.
func normalizeLog(logp []float64) []float64 {
	m := math.Inf(-1)
	for _, v := range logp {
		if v > m {
			m = v
		}
	}
	out := make([]float64, len(logp))
	var sum float64
	for i, v := range logp {
		out[i] = math.Exp(v - m)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
