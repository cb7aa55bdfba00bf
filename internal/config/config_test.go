package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nasa_ocean_data.csv", cfg.DatasetPath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Nil(t, cfg.FactSeed)
	assert.True(t, cfg.SnapshotEnabled)
	assert.Equal(t, 800, cfg.SnapshotSize)
	assert.True(t, cfg.GeoJSONEnabled)
	assert.True(t, cfg.CSVExportEnabled)
	assert.False(t, cfg.Serve)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "ocean-readings", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_PATH", "data/readings.csv")
	t.Setenv("OUTPUT_DIR", "/tmp/globe")
	t.Setenv("FACT_SEED", "-17")
	t.Setenv("SNAPSHOT_ENABLED", "false")
	t.Setenv("SNAPSHOT_SIZE", "1024")
	t.Setenv("GEOJSON_ENABLED", "false")
	t.Setenv("CSV_EXPORT_ENABLED", "false")
	t.Setenv("SERVE", "true")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-readings")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/readings.csv", cfg.DatasetPath)
	assert.Equal(t, "/tmp/globe", cfg.OutputDir)
	require.NotNil(t, cfg.FactSeed)
	assert.Equal(t, int64(-17), *cfg.FactSeed)
	assert.False(t, cfg.SnapshotEnabled)
	assert.Equal(t, 1024, cfg.SnapshotSize)
	assert.False(t, cfg.GeoJSONEnabled)
	assert.False(t, cfg.CSVExportEnabled)
	assert.True(t, cfg.Serve)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-readings", cfg.KafkaTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidFactSeed(t *testing.T) {
	t.Setenv("FACT_SEED", "forty-two")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FACT_SEED")
}

func TestLoad_InvalidSnapshotSize(t *testing.T) {
	for _, v := range []string{"abc", "10", "99999"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("SNAPSHOT_SIZE", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "SNAPSHOT_SIZE")
		})
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	t.Setenv("SERVE", "sometimes")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVE")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_KafkaBrokersImplyEnabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", defaultBroker)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", defaultBroker)
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}
