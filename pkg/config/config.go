package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Event publishing. An empty broker list disables Kafka entirely.
	KafkaBrokers      []string
	KafkaExpenseTopic string
	KafkaSettleTopic  string

	// RateLimit uses the "<limit>-<period>" format, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_EXPENSE_TOPIC", "expense.shared")
	viper.SetDefault("KAFKA_SETTLE_TOPIC", "debt.settled")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	brokersStr := viper.GetString("KAFKA_BROKERS")
	if brokersStr != "" {
		for _, b := range strings.Split(brokersStr, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Event publishing is disabled.")
	}

	cfg.KafkaExpenseTopic = viper.GetString("KAFKA_EXPENSE_TOPIC")
	cfg.KafkaSettleTopic = viper.GetString("KAFKA_SETTLE_TOPIC")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
