package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point at a nonexistent file so a developer's config.yaml cannot leak in.
	t.Setenv("SINAN_CONFIG_FILE", filepath.Join(t.TempDir(), "none.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "data/notifications.xlsx", cfg.Dataset.WorkbookPath)
	assert.Empty(t, cfg.Dataset.SheetName)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.InDelta(t, 100.0, cfg.Security.RateLimit.RPS, 0.001)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SINAN_CONFIG_FILE", filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("SINAN_SERVER_PORT", "9191")
	t.Setenv("SINAN_LOGGING_LEVEL", "debug")
	t.Setenv("SINAN_DATASET_WORKBOOK_PATH", "/srv/sinan/hgr.xlsx")
	t.Setenv("SINAN_DATASET_SHEET_NAME", "NOTIFICACOES")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/sinan/hgr.xlsx", cfg.Dataset.WorkbookPath)
	assert.Equal(t, "NOTIFICACOES", cfg.Dataset.SheetName)
}

func TestLoad_FileFillsUnsetFields(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
dataset:
  sheet_name: DADOS
`), 0o644))
	t.Setenv("SINAN_CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "DADOS", cfg.Dataset.SheetName)
	assert.Equal(t, 8080, cfg.Server.Port, "defaults still apply")
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv("SINAN_CONFIG_FILE", filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("SINAN_LOGGING_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_PortRange(t *testing.T) {
	t.Setenv("SINAN_CONFIG_FILE", filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("SINAN_SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}
