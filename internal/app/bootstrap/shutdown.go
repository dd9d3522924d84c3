// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down the Kafka handles and the MongoDB client.
// The consumer is closed first so no handler is mid-flight when the
// database connection goes away.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Consumer != nil {
		if err := deps.Consumer.Close(); err != nil {
			logger.Error("kafka consumer close failed", zap.Error(err))
		}
	}

	if deps.Publisher != nil {
		if err := deps.Publisher.Close(); err != nil {
			logger.Error("kafka publisher close failed", zap.Error(err))
		}
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
