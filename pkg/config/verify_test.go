package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	var cfg Config
	cfg.Server.Listen = ":8080"
	cfg.Server.Timeout = 30 * time.Second
	cfg.Database.DSN = "file:test.db"
	cfg.Fetch.Timeout = 30 * time.Second
	cfg.Fetch.UserAgent = "feedlet/1.0"
	cfg.Cache.TTLDays = 360
	cfg.Cache.MinArticles = 5
	cfg.Schedule.UpdateInterval = 30
	cfg.Schedule.MaxWorkers = 5
	return &cfg
}

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, VerifyAgainstEmbeddedSchema(validConfig()))
	})

	t.Run("missing listen", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Listen = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.listen")
	})

	t.Run("missing dsn", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.DSN = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.dsn")
	})

	t.Run("missing user agent", func(t *testing.T) {
		cfg := validConfig()
		cfg.Fetch.UserAgent = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch.user_agent")
	})
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
}
