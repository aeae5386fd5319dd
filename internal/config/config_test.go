package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_NoPath_ReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Load_FromFile_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smtparse.toml")
	contents := `
[server]
address = ":9090"
token_secret = "s3cr3t"

[cache]
enabled = true
file = "custom.db"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "s3cr3t", cfg.Server.TokenSecret)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "custom.db", cfg.Cache.File)
}

func Test_Load_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/path/smtparse.toml")
	assert.Error(t, err)
}
