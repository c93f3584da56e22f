package config

import (
	"go.uber.org/zap"
)

// Log is the shared sugared logger. It defaults to a no-op so packages can log
// from tests without calling InitLogger first.
var Log = zap.NewNop().Sugar()

func InitLogger() error {
	cfg := zap.NewDevelopmentConfig()
	if Getenv("GIN_MODE", "debug") == "release" {
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = logger.Sugar()
	return nil
}
