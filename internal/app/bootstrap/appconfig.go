// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, CORS, and request body limits.
// AppConfig is where everything specific to this service lives: the
// MongoDB connection, the Kafka brokers, the auth secret shared with the
// user service, and the base URLs of the sibling services this one calls.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// AuthSecret signs and verifies the bearer tokens issued by the user
	// service. Every service in the deployment shares the same secret.
	AuthSecret string

	// Kafka configuration
	KafkaBrokers     []string // Broker addresses (host:port)
	KafkaGroupID     string   // Consumer group id for the user/subscription topics
	ConsumerDisabled bool     // Skip starting the consumer (useful for one-off tooling)

	// Sibling service endpoints
	IdentityURL     string // Base URL of the user service
	SubscriptionURL string // Base URL of the subscription service

	// Timeout applied to outbound HTTP calls to sibling services.
	ClientTimeout time.Duration
}
