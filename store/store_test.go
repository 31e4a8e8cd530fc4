package store

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"agroassist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	testInput = models.InputData{Nitrogen: 90, Phosporus: 42, Potassium: 43, Temperature: 20.8, Humidity: 82, Ph: 6.5, Rainfall: 202.9}
	testPreds = []models.CropPrediction{
		{Crop: "Rice", Probability: 0.8},
		{Crop: "Jute", Probability: 0.15},
		{Crop: "Coffee", Probability: 0.03},
		{Crop: "Maize", Probability: 0.01},
		{Crop: "Cotton", Probability: 0.01},
	}
)

// testStore runs the shared contract against one implementation.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("create starts with empty selection", func(t *testing.T) {
		id, err := s.Create(ctx, testInput, testPreds)
		require.NoError(t, err)
		assert.True(t, primitive.IsValidObjectID(id))

		rec, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, testInput, rec.InputData)
		assert.Equal(t, testPreds, rec.Predictions)
		assert.Empty(t, rec.SelectedCrops)
		assert.NotNil(t, rec.SelectedCrops)
	})

	t.Run("ids are unique", func(t *testing.T) {
		a, err := s.Create(ctx, testInput, testPreds)
		require.NoError(t, err)
		b, err := s.Create(ctx, testInput, testPreds)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("set selection overwrites", func(t *testing.T) {
		id, err := s.Create(ctx, testInput, testPreds)
		require.NoError(t, err)

		require.NoError(t, s.SetSelection(ctx, id, []string{"Rice", "Jute"}))
		rec, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"Rice", "Jute"}, rec.SelectedCrops)

		require.NoError(t, s.SetSelection(ctx, id, []string{"Coffee"}))
		// same value again is still a success
		require.NoError(t, s.SetSelection(ctx, id, []string{"Coffee"}))
		rec, err = s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"Coffee"}, rec.SelectedCrops)
		assert.Equal(t, testPreds, rec.Predictions)
	})

	t.Run("empty selection leaves record unchanged", func(t *testing.T) {
		id, err := s.Create(ctx, testInput, testPreds)
		require.NoError(t, err)
		require.NoError(t, s.SetSelection(ctx, id, []string{"Rice"}))

		assert.ErrorIs(t, s.SetSelection(ctx, id, nil), ErrEmptySelection)
		assert.ErrorIs(t, s.SetSelection(ctx, id, []string{}), ErrEmptySelection)

		rec, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"Rice"}, rec.SelectedCrops)
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		unknown := primitive.NewObjectID().Hex()
		assert.ErrorIs(t, s.SetSelection(ctx, unknown, []string{"Rice"}), ErrNotFound)
		_, err := s.Get(ctx, unknown)
		assert.ErrorIs(t, err, ErrNotFound)

		for _, bad := range []string{"abc", "zzzzzzzzzzzzzzzzzzzzzzzz", ""} {
			assert.ErrorIs(t, s.SetSelection(ctx, bad, []string{"Rice"}), ErrInvalidID)
			_, err := s.Get(ctx, bad)
			assert.ErrorIs(t, err, ErrInvalidID)
		}
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryStoreCallerCannotMutate(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	preds := append([]models.CropPrediction(nil), testPreds...)
	id, err := s.Create(ctx, testInput, preds)
	require.NoError(t, err)
	preds[0].Crop = "Mango"

	crops := []string{"Rice"}
	require.NoError(t, s.SetSelection(ctx, id, crops))
	crops[0] = "Mango"

	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Rice", rec.Predictions[0].Crop)
	assert.Equal(t, []string{"Rice"}, rec.SelectedCrops)
}

func TestMemoryStoreUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	id, err := s.Create(ctx, testInput, testPreds)
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(time.Minute) }
	require.NoError(t, s.SetSelection(ctx, id, []string{"Rice"}))

	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, base, rec.CreatedAt)
	assert.Equal(t, base.Add(time.Minute), rec.UpdatedAt)
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	id, err := s.Create(ctx, testInput, testPreds)
	require.NoError(t, err)

	crops := []string{"Rice", "Jute", "Coffee", "Maize"}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.SetSelection(ctx, id, []string{crops[i%len(crops)]}))
			_, err := s.Create(ctx, testInput, testPreds)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, rec.SelectedCrops, 1)
	assert.Contains(t, crops, rec.SelectedCrops[0])
}

// TestMongoStore needs a reachable server, e.g.
// MONGO_TEST_URI=mongodb://localhost:27017 go test ./store/...
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m, err := NewMongo(ctx, MongoConfig{
		URI:        uri,
		Database:   "agroassist_test",
		Collection: "predictions_" + primitive.NewObjectID().Hex(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.predictions.Drop(context.Background())
		_ = m.Close(context.Background())
	})

	testStore(t, m)
}
