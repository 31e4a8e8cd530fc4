package store

import (
	"context"
	"sync"
	"time"

	"agroassist/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store. Ids are ObjectIDs so that id validation
// behaves exactly like the Mongo store.
type Memory struct {
	mu      sync.RWMutex
	records map[primitive.ObjectID]models.PredictionRecord
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[primitive.ObjectID]models.PredictionRecord),
		now:     time.Now,
	}
}

func (m *Memory) Create(_ context.Context, input models.InputData, preds []models.CropPrediction) (string, error) {
	now := m.now().UTC()
	rec := models.PredictionRecord{
		ID:            primitive.NewObjectID(),
		InputData:     input,
		Predictions:   copyPredictions(preds),
		SelectedCrops: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec
	return rec.ID.Hex(), nil
}

func (m *Memory) SetSelection(_ context.Context, id string, crops []string) error {
	if len(crops) == 0 {
		return ErrEmptySelection
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[oid]
	if !ok {
		return ErrNotFound
	}
	rec.SelectedCrops = append([]string(nil), crops...)
	rec.UpdatedAt = m.now().UTC()
	m.records[oid] = rec
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*models.PredictionRecord, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[oid]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Predictions = copyPredictions(rec.Predictions)
	rec.SelectedCrops = append([]string{}, rec.SelectedCrops...)
	return &rec, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close(context.Context) error { return nil }
