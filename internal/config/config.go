package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all settings for a globe run, populated from environment variables.
type Config struct {
	DatasetPath string
	OutputDir   string

	// FactSeed fixes the fact shuffle. Nil means a random seed per run.
	FactSeed *int64

	SnapshotEnabled  bool
	SnapshotSize     int
	GeoJSONEnabled   bool
	CSVExportEnabled bool

	Serve           bool
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka publication of annotated readings.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	factSeed, err := parseFactSeed()
	if err != nil {
		return nil, err
	}

	snapshotSize, err := parseSnapshotSize()
	if err != nil {
		return nil, err
	}

	snapshotEnabled, err := parseBool("SNAPSHOT_ENABLED", true)
	if err != nil {
		return nil, err
	}
	geoJSONEnabled, err := parseBool("GEOJSON_ENABLED", true)
	if err != nil {
		return nil, err
	}
	csvExportEnabled, err := parseBool("CSV_EXPORT_ENABLED", true)
	if err != nil {
		return nil, err
	}
	serve, err := parseBool("SERVE", false)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		DatasetPath:      sharedcfg.EnvOrDefault("DATASET_PATH", "nasa_ocean_data.csv"),
		OutputDir:        sharedcfg.EnvOrDefault("OUTPUT_DIR", "out"),
		FactSeed:         factSeed,
		SnapshotEnabled:  snapshotEnabled,
		SnapshotSize:     snapshotSize,
		GeoJSONEnabled:   geoJSONEnabled,
		CSVExportEnabled: csvExportEnabled,
		Serve:            serve,
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     brokers,
		KafkaTopic:       sharedcfg.EnvOrDefault("KAFKA_TOPIC", "ocean-readings"),
	}

	if cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_PATH is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when Kafka is enabled")
	}

	return cfg, nil
}

func parseFactSeed() (*int64, error) {
	s := os.Getenv("FACT_SEED")
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACT_SEED: %w", err)
	}
	return &n, nil
}

func parseSnapshotSize() (int, error) {
	s := sharedcfg.EnvOrDefault("SNAPSHOT_SIZE", "800")
	n, err := strconv.Atoi(s)
	if err != nil || n < 200 || n > 4096 {
		return 0, errors.New("invalid SNAPSHOT_SIZE: must be an integer between 200 and 4096")
	}
	return n, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
