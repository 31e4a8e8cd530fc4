package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PredictionRecord is one /predict request as persisted in the "predictions"
// collection. It is created with an empty selection and later mutated only
// through SelectedCrops.
type PredictionRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"  json:"id"`
	InputData     InputData          `bson:"input_data"     json:"input_data"`
	Predictions   []CropPrediction   `bson:"predictions"    json:"predictions"` // top 5, probability desc
	SelectedCrops []string           `bson:"selected_crops" json:"selected_crops"`
	CreatedAt     time.Time          `bson:"created_at"     json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"     json:"updated_at"`
}

// InputData keeps the request features under their wire names.
// "Phosporus" is misspelled on purpose: existing clients and documents use it.
type InputData struct {
	Nitrogen    float64 `bson:"Nitrogen"    json:"Nitrogen"`
	Phosporus   float64 `bson:"Phosporus"   json:"Phosporus"`
	Potassium   float64 `bson:"Potassium"   json:"Potassium"`
	Temperature float64 `bson:"Temperature" json:"Temperature"` // °C
	Humidity    float64 `bson:"Humidity"    json:"Humidity"`    // %
	Ph          float64 `bson:"Ph"          json:"Ph"`
	Rainfall    float64 `bson:"Rainfall"    json:"Rainfall"` // mm
}

type CropPrediction struct {
	Crop        string  `bson:"crop"        json:"crop"`
	Probability float64 `bson:"probability" json:"probability"`
}
