// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/ktguru/project-service/internal/app/broker"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// Extend this struct as your app evolves.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Publisher carries outbound domain events to Kafka. Consumer keeps
	// the local user cache and company flags current from the user and
	// subscription topics. Both are connected in ConnectDB so Shutdown
	// can close them alongside the Mongo client.
	Publisher broker.Publisher
	Consumer  *broker.Consumer
}
