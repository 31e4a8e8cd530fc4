package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"agroassist/models"
	"agroassist/predictor"
)

// Request/response DTOs. Keep them minimal and explicit.

// numeric accepts a JSON number or a string holding one ("90", " 6.5 ").
type numeric float64

func (n *numeric) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	*n = numeric(v)
	return nil
}

// predictReq uses pointers so a missing field is distinguishable from zero.
type predictReq struct {
	Nitrogen    *numeric `json:"Nitrogen"`
	Phosporus   *numeric `json:"Phosporus"` // sic, wire name
	Potassium   *numeric `json:"Potassium"`
	Temperature *numeric `json:"Temperature"`
	Humidity    *numeric `json:"Humidity"`
	Ph          *numeric `json:"Ph"`
	Rainfall    *numeric `json:"Rainfall"`
}

// features checks every field is present and returns them in model form.
func (r predictReq) features() (predictor.FeatureVector, error) {
	fields := []struct {
		name string
		v    *numeric
	}{
		{"Nitrogen", r.Nitrogen},
		{"Phosporus", r.Phosporus},
		{"Potassium", r.Potassium},
		{"Temperature", r.Temperature},
		{"Humidity", r.Humidity},
		{"Ph", r.Ph},
		{"Rainfall", r.Rainfall},
	}
	var missing []string
	for _, f := range fields {
		if f.v == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return predictor.FeatureVector{}, fmt.Errorf("%w: missing field(s) %s",
			predictor.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return predictor.FeatureVector{
		Nitrogen:    float64(*r.Nitrogen),
		Phosporus:   float64(*r.Phosporus),
		Potassium:   float64(*r.Potassium),
		Temperature: float64(*r.Temperature),
		Humidity:    float64(*r.Humidity),
		Ph:          float64(*r.Ph),
		Rainfall:    float64(*r.Rainfall),
	}, nil
}

type predictResp struct {
	Top5Crops  []models.CropPrediction `json:"top_5_crops"`
	DocumentID string                  `json:"document_id"`
}

type selectCropsReq struct {
	SelectedCrops []string `json:"selected_crops"`
	DocumentID    string   `json:"document_id"`
}

type messageResp struct {
	Message string `json:"message"`
}

type healthResp struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func inputData(f predictor.FeatureVector) models.InputData {
	return models.InputData{
		Nitrogen:    f.Nitrogen,
		Phosporus:   f.Phosporus,
		Potassium:   f.Potassium,
		Temperature: f.Temperature,
		Humidity:    f.Humidity,
		Ph:          f.Ph,
		Rainfall:    f.Rainfall,
	}
}

func cropPredictions(in []predictor.CropProbability) []models.CropPrediction {
	out := make([]models.CropPrediction, len(in))
	for i, p := range in {
		out[i] = models.CropPrediction{Crop: p.Crop, Probability: p.Probability}
	}
	return out
}
