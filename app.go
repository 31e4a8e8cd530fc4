package main

import (
	"context"
	"fmt"

	"agroassist/predictor"
	"agroassist/store"

	"go.uber.org/zap"
)

type App struct {
	cfg       Config
	log       *zap.Logger
	predictor *predictor.Predictor
	store     store.Store
	metrics   *metrics
}

// newApp loads the model artifacts and opens the record store. Any failure
// here is fatal for the process.
func newApp(ctx context.Context, cfg Config, log *zap.Logger) (*App, error) {
	artifacts, err := predictor.LoadArtifacts(cfg.ArtifactsDir, predictor.DefaultArtifactFiles())
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	p, err := predictor.New(artifacts, predictor.DefaultCatalog())
	if err != nil {
		return nil, err
	}
	log.Info("model artifacts loaded",
		zap.String("dir", cfg.ArtifactsDir),
		zap.Int("classes", artifacts.Model.Classes()))

	var st store.Store
	switch cfg.StoreBackend {
	case backendMongo, "":
		st, err = store.NewMongo(ctx, store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDB,
			Collection: cfg.MongoCollection,
		})
		if err != nil {
			return nil, err
		}
		log.Info("connected to mongo",
			zap.String("db", cfg.MongoDB),
			zap.String("collection", cfg.MongoCollection))
	case backendMemory:
		st = store.NewMemory()
		log.Warn("using in-memory record store; records are lost on restart")
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	return &App{
		cfg:       cfg,
		log:       log,
		predictor: p,
		store:     st,
		metrics:   newMetrics(),
	}, nil
}

func (a *App) close(ctx context.Context) {
	if err := a.store.Close(ctx); err != nil {
		a.log.Warn("close store", zap.Error(err))
	}
}
