package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "rendiment_estudiants.xlsx"), c.PerformancePath())
	assert.Equal(t, filepath.Join("data", "taxa_abandonament.xlsx"), c.DropoutPath())
	assert.Equal(t, "report", c.ReportDir)
	assert.Equal(t, "evolucion_ramas.json", c.ReportFile)
	assert.Equal(t, "img", c.ImageDir)
	assert.Equal(t, "evolucion_ramas.png", c.ImageFile)
	assert.Equal(t, 300, c.ImageDPI)
	assert.Equal(t, 5, c.HeadRows)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, Default(), c)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := Default()
	c.DataDir = "/srv/datos"
	c.Sheet = "Dades"
	c.ImageDPI = 150
	c.LogLevel = "debug"

	got, err := Save(c, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestSaveDefaultsToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := Save(Default(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".edutrend", "config.yaml"), path)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("image_dpi: 10\nlog_level: loud\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "ImageDPI failed min")
	assert.Contains(t, err.Error(), "LogLevel failed oneof")
}

func TestValidate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	c.ReportFile = ""
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ReportFile failed required")
}
