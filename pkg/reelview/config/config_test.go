package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 6, cfg.PageSize)
	assert.Equal(t, 4, cfg.WriteWorkers)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("REELVIEW_PORT", "9999")
	t.Setenv("REELVIEW_DB_DRIVER", "postgres")
	t.Setenv("REELVIEW_PAGE_SIZE", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 12, cfg.PageSize)
}
