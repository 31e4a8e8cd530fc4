// Package store persists prediction records and the crops a user picked
// from them.
package store

import (
	"context"
	"errors"
	"fmt"

	"agroassist/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound means no record has the given id.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID means the id is not a 24 character hex ObjectID.
	ErrInvalidID = errors.New("invalid document id")
	// ErrEmptySelection means SetSelection was called without crops.
	ErrEmptySelection = errors.New("no crops selected")
)

// Store owns all prediction records. Implementations must be safe for
// concurrent use; concurrent updates of one record are last-writer-wins.
type Store interface {
	// Create persists a new record with an empty selection and returns its id.
	Create(ctx context.Context, input models.InputData, preds []models.CropPrediction) (string, error)
	// SetSelection overwrites the selected crops of the record with id.
	SetSelection(ctx context.Context, id string, crops []string) error
	Get(ctx context.Context, id string) (*models.PredictionRecord, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not a valid ObjectId, it must be a 24-character hex string", ErrInvalidID, id)
	}
	return oid, nil
}

func copyPredictions(in []models.CropPrediction) []models.CropPrediction {
	out := make([]models.CropPrediction, len(in))
	copy(out, in)
	return out
}
