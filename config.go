package main

import (
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

const (
	backendMongo  = "mongo"
	backendMemory = "memory"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	MongoCollection string
	StoreBackend    string // mongo | memory
	ArtifactsDir    string
	CORSOrigins     []string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		Port:            "8080",
		MongoURI:        "mongodb://localhost:27017",
		MongoDB:         "agroassist_db",
		MongoCollection: "predictions",
		StoreBackend:    backendMongo,
		ArtifactsDir:    "artifacts",
		CORSOrigins:     []string{"*"},
		LogLevel:        "info",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}
}

// configFlags exposes every Config field as a flag that falls back to its
// environment variable (a .env file is loaded into the environment first).
func configFlags() []cli.Flag {
	def := defaultConfig()
	return []cli.Flag{
		&cli.StringFlag{Name: "port", Usage: "HTTP listen port", Value: def.Port, Sources: cli.EnvVars("PORT")},
		&cli.StringFlag{Name: "mongo-uri", Usage: "MongoDB connection string", Value: def.MongoURI, Sources: cli.EnvVars("MONGO_URI")},
		&cli.StringFlag{Name: "mongo-db", Usage: "MongoDB database name", Value: def.MongoDB, Sources: cli.EnvVars("MONGO_DB")},
		&cli.StringFlag{Name: "mongo-collection", Usage: "collection holding prediction records", Value: def.MongoCollection, Sources: cli.EnvVars("MONGO_COLLECTION")},
		&cli.StringFlag{Name: "store", Usage: "record store backend: mongo or memory", Value: def.StoreBackend, Sources: cli.EnvVars("STORE_BACKEND")},
		&cli.StringFlag{Name: "artifacts-dir", Usage: "directory with scaler and model artifacts", Value: def.ArtifactsDir, Sources: cli.EnvVars("ARTIFACTS_DIR")},
		&cli.StringSliceFlag{Name: "cors-origin", Usage: "allowed CORS origin (repeatable)", Value: def.CORSOrigins, Sources: cli.EnvVars("CORS_ORIGINS")},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Value: def.LogLevel, Sources: cli.EnvVars("LOG_LEVEL")},
		&cli.DurationFlag{Name: "request-timeout", Usage: "per-request storage timeout", Value: def.RequestTimeout, Sources: cli.EnvVars("REQUEST_TIMEOUT")},
		&cli.DurationFlag{Name: "shutdown-timeout", Usage: "graceful shutdown deadline", Value: def.ShutdownTimeout, Sources: cli.EnvVars("SHUTDOWN_TIMEOUT")},
	}
}

func configFromCommand(cmd *cli.Command) Config {
	cfg := Config{
		Port:            cmd.String("port"),
		MongoURI:        cmd.String("mongo-uri"),
		MongoDB:         cmd.String("mongo-db"),
		MongoCollection: cmd.String("mongo-collection"),
		StoreBackend:    strings.ToLower(strings.TrimSpace(cmd.String("store"))),
		ArtifactsDir:    cmd.String("artifacts-dir"),
		LogLevel:        cmd.String("log-level"),
		RequestTimeout:  cmd.Duration("request-timeout"),
		ShutdownTimeout: cmd.Duration("shutdown-timeout"),
	}
	for _, o := range cmd.StringSlice("cors-origin") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	def := defaultConfig()
	if cfg.Port == "" {
		cfg.Port = def.Port
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = def.CORSOrigins
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	return cfg
}
