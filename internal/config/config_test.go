package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
[admin]
username = "admin"
password = "secret"

[database]
host = "db"
port = 5432
user = "cleanit"
password = "from-file"
dbname = "cleanit"
`

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, SeedIfEmpty, cfg.Catalog.SeedPolicy)
	assert.Equal(t, 5, cfg.Backup.MaxSnapshots)
	assert.Equal(t, "host=db port=5432 user=cleanit password=from-file dbname=cleanit sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverridesCredentials(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	t.Setenv(EnvDBPassword, "from-env")
	t.Setenv(EnvAdminUsername, "ops")
	t.Setenv(EnvAdminPassword, "ops-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "ops", cfg.Admin.Username)
	assert.Equal(t, "ops-secret", cfg.Admin.Password)
}

func TestLoad_MissingAdminCredentialsRejected(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnknownSeedPolicyRejected(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[catalog]
seed_policy = "sometimes"
`)

	_, err := Load(path)
	assert.Error(t, err)
}
