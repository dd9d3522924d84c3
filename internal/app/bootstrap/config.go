// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the project service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, kafka_brokers, etc.
//   - Environment variables: KTGURU_MONGO_URI, KTGURU_KAFKA_BROKERS, etc.
//   - Command-line flags: --mongo_uri, --kafka_brokers, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "ktguru_projects", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "auth_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "JWT signing secret shared with the user service (must be strong in production)"},

	// Kafka configuration
	{Name: "kafka_brokers", Default: "localhost:9092", Desc: "Comma-separated Kafka broker addresses"},
	{Name: "kafka_group_id", Default: "project-service", Desc: "Kafka consumer group id"},
	{Name: "consumer_disabled", Default: false, Desc: "Disable the Kafka consumer (events are still published)"},

	// Sibling services
	{Name: "identity_url", Default: "http://localhost:4001", Desc: "Base URL of the user service"},
	{Name: "subscription_url", Default: "http://localhost:4002", Desc: "Base URL of the subscription service"},
	{Name: "client_timeout", Default: "10s", Desc: "Timeout for outbound calls to sibling services (e.g., 10s, 1m)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "KTGURU", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthSecret: appValues.String("auth_secret"),

		KafkaBrokers:     splitBrokers(appValues.String("kafka_brokers")),
		KafkaGroupID:     appValues.String("kafka_group_id"),
		ConsumerDisabled: appValues.Bool("consumer_disabled"),

		IdentityURL:     appValues.String("identity_url"),
		SubscriptionURL: appValues.String("subscription_url"),
		ClientTimeout:   appValues.Duration("client_timeout", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// splitBrokers turns a comma-separated broker list into addresses,
// dropping empty entries and surrounding whitespace.
func splitBrokers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.KafkaBrokers) == 0 {
		return fmt.Errorf("kafka_brokers must list at least one broker address")
	}

	if appCfg.AuthSecret == "" {
		return fmt.Errorf("auth_secret must be set")
	}

	return nil
}
