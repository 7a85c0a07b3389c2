package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PORT", "")
	t.Setenv("IMPORT_BATCH_SIZE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultImportBatchSize, cfg.ImportBatchSize)
	assert.Equal(t, defaultImportParallelism, cfg.ImportParallelism)
	assert.Equal(t, defaultMatchBatchSize, cfg.MatchBatchSize)
	assert.Equal(t, int64(defaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	viper.Reset()
	t.Setenv("IMPORT_BATCH_SIZE", "lots")
	t.Setenv("IMPORT_PARALLELISM", "-3")
	t.Setenv("MATCH_BATCH_SIZE", "250")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, defaultImportBatchSize, cfg.ImportBatchSize)
	assert.Equal(t, defaultImportParallelism, cfg.ImportParallelism)
	assert.Equal(t, 250, cfg.MatchBatchSize)
}

func TestLoadConfig_CORSOrigins(t *testing.T) {
	viper.Reset()
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
