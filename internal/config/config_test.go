package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/worldpop-cli/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 2020, c.Year)
	assert.Equal(t, []string{"China", "India", "United States"}, c.Countries)
	assert.Empty(t, c.Regions)
	assert.Equal(t, 10, c.TopN)
	assert.Zero(t, c.Seed)
	assert.Equal(t, 0.005, c.GrowthMin)
	assert.Equal(t, 1.05, c.NoiseMax)
	assert.Equal(t, "csv", c.ExportFormat)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "year: 1990\nregions: [Asia, Europe]\ntop_n: 5\nseed: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("WORLDPOP_TOP_N", "3")
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1990, c.Year)
	assert.Equal(t, []string{"Asia", "Europe"}, c.Regions)
	assert.Equal(t, int64(7), c.Seed)
	assert.Equal(t, 3, c.TopN, "env wins over file")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := config.Load("")
	require.NoError(t, err)
	c.Year = 1985
	c.ExportFormat = "xlsx"

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, config.Save(c, path))
	back, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1985, back.Year)
	assert.Equal(t, "xlsx", back.ExportFormat)
}

func TestValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base, err := config.Load("")
	require.NoError(t, err)

	bad := *base
	bad.GrowthMin, bad.GrowthMax = 0.2, 0.1
	assert.ErrorIs(t, bad.Validate(), config.ErrInvalidConfig)

	bad = *base
	bad.GrowthMin, bad.GrowthMax = 0, 0.5
	assert.ErrorIs(t, bad.Validate(), config.ErrInvalidConfig)

	bad = *base
	bad.GrowthMax = 0.03
	assert.ErrorIs(t, bad.Validate(), config.ErrInvalidConfig)

	bad = *base
	bad.NoiseMin = 0
	assert.ErrorIs(t, bad.Validate(), config.ErrInvalidConfig)

	bad = *base
	bad.ExportFormat = "pdf"
	assert.ErrorIs(t, bad.Validate(), config.ErrInvalidConfig)

	bad = *base
	bad.LogLevel = "loud"
	assert.ErrorIs(t, bad.Validate(), config.ErrInvalidConfig)

	t.Setenv("WORLDPOP_GROWTH_MIN", "0")
	t.Setenv("WORLDPOP_GROWTH_MAX", "0.5")
	_, err = config.Load("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig, "env cannot widen the growth range")
	t.Setenv("WORLDPOP_GROWTH_MIN", "")
	t.Setenv("WORLDPOP_GROWTH_MAX", "")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_n: -1\n"), 0o644))
	_, err = config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
