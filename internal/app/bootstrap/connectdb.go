// internal/app/bootstrap/connectdb.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/ktguru/project-service/internal/app/broker"
	projectstore "github.com/ktguru/project-service/internal/app/store/projects"
	usercachestore "github.com/ktguru/project-service/internal/app/store/usercache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the backend connections the service needs: the
// MongoDB client and the Kafka publisher/consumer pair. Everything
// returned in DBDeps is torn down in Shutdown.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Publisher:     broker.NewPublisher(appCfg.KafkaBrokers, logger),
	}

	if !appCfg.ConsumerDisabled {
		handlers := broker.BuildHandlers(usercachestore.New(db), projectstore.New(db), logger)
		deps.Consumer = broker.NewConsumer(appCfg.KafkaBrokers, appCfg.KafkaGroupID, handlers, logger)
	}

	return deps, nil
}
