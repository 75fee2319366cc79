package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("UPLOAD_PROGRESS_INTERVAL_MS", "")
	t.Setenv("BACKEND_TIMEOUT_S", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 50*time.Millisecond, cfg.UploadProgressInterval)
	assert.Equal(t, time.Duration(0), cfg.BackendTimeout)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.test")
	t.Setenv("CATALOG_CACHE_TTL_S", "120")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("UPLOAD_PROGRESS_INTERVAL_MS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test", cfg.BackendURL)
	assert.Equal(t, 2*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 50*time.Millisecond, cfg.UploadProgressInterval)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
}

func TestCreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	disabled := EventConfig{Enabled: false, Publisher: "kafka"}
	pub, err := disabled.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, pub)

	channel := EventConfig{Enabled: true, Publisher: "channel", Topic: "t"}
	pub, err = channel.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.WatermillEventPublisher{}, pub)
	assert.NoError(t, pub.Close())

	unknown := EventConfig{Enabled: true, Publisher: "carrier-pigeon"}
	pub, err = unknown.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, pub)
}
