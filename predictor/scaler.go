package predictor

import "fmt"

// Scaler is a pre-fitted feature transform.
type Scaler interface {
	Transform(x []float64) ([]float64, error)
	Width() int
}

// MinMaxScaler applies x*Scale + Min per feature, the form scikit-learn's
// MinMaxScaler stores after fitting (min_, scale_).
type MinMaxScaler struct {
	Min   []float64 `yaml:"min"   json:"min"`
	Scale []float64 `yaml:"scale" json:"scale"`
}

func (s *MinMaxScaler) Width() int { return len(s.Scale) }

func (s *MinMaxScaler) validate() error {
	if len(s.Scale) == 0 {
		return fmt.Errorf("minmax scaler: empty scale")
	}
	if len(s.Min) != len(s.Scale) {
		return fmt.Errorf("minmax scaler: min has %d values, scale has %d", len(s.Min), len(s.Scale))
	}
	return nil
}

func (s *MinMaxScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Scale) {
		return nil, fmt.Errorf("minmax scaler: expected %d features, got %d", len(s.Scale), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v*s.Scale[i] + s.Min[i]
	}
	return out, nil
}

// StandardScaler applies (x-Mean)/Scale per feature. A zero scale leaves the
// centred value unscaled and an empty Mean disables centring.
type StandardScaler struct {
	Mean  []float64 `yaml:"mean"  json:"mean"`
	Scale []float64 `yaml:"scale" json:"scale"`
}

func (s *StandardScaler) Width() int { return len(s.Scale) }

func (s *StandardScaler) validate() error {
	if len(s.Scale) == 0 {
		return fmt.Errorf("standard scaler: empty scale")
	}
	if len(s.Mean) != 0 && len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("standard scaler: mean has %d values, scale has %d", len(s.Mean), len(s.Scale))
	}
	return nil
}

func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Scale) {
		return nil, fmt.Errorf("standard scaler: expected %d features, got %d", len(s.Scale), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		if len(s.Mean) > 0 {
			v -= s.Mean[i]
		}
		if s.Scale[i] != 0 {
			v /= s.Scale[i]
		}
		out[i] = v
	}
	return out, nil
}
