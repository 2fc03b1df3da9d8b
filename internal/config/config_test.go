package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_OverridesDefaultsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticketstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pool_size: 64\nlru_k: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 64, cfg.PoolSize)
	require.Equal(t, 4, cfg.LRUK)
	require.Equal(t, Default().PageSize, cfg.PageSize)
	require.Equal(t, Default().PagesPerFrame, cfg.PagesPerFrame)
}

func TestConfig_FrameSize(t *testing.T) {
	cfg := Default()
	cfg.PagesPerFrame = 2
	require.Equal(t, cfg.PageSize*2, cfg.FrameSize())
}
