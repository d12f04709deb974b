package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "OPENAI_API_KEY", "PORT", "CHUNK_SIZE",
		"CHUNK_OVERLAP", "TOP_K_RESULTS", "MAX_UPLOAD_SIZE_MB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAIEmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIChatModel)
	assert.Equal(t, 1536, cfg.EmbeddingDimensions)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.Equal(t, 5, cfg.TopKResults)
	assert.Equal(t, 5, cfg.MaxUploadSizeMB)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("TOP_K_RESULTS", "3")

	cfg := Load()
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 3, cfg.TopKResults)
}

func TestValidate_RequiredSettings(t *testing.T) {
	clearEnv(t)

	t.Run("missing database url", func(t *testing.T) {
		cfg := Load()
		cfg.OpenAIKey = "sk-test"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("missing openai key", func(t *testing.T) {
		cfg := Load()
		cfg.DatabaseURL = "postgres://localhost/db"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("overlap not below chunk size", func(t *testing.T) {
		cfg := Load()
		cfg.DatabaseURL = "postgres://localhost/db"
		cfg.OpenAIKey = "sk-test"
		cfg.ChunkOverlap = cfg.ChunkSize
		assert.Error(t, cfg.Validate())
	})

	t.Run("complete config", func(t *testing.T) {
		cfg := Load()
		cfg.DatabaseURL = "postgres://localhost/db"
		cfg.OpenAIKey = "sk-test"
		assert.NoError(t, cfg.Validate())
	})
}
