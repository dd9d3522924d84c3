// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// The Kafka consumer is started here so the user cache and company
// subscription flags begin catching up before the first request lands.
// The consumer outlives the startup context; Shutdown stops it by closing
// the underlying reader.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Consumer != nil {
		go deps.Consumer.Run(context.Background())
		logger.Info("kafka consumer started",
			zap.Strings("brokers", appCfg.KafkaBrokers),
			zap.String("group_id", appCfg.KafkaGroupID))
	}
	return nil
}
