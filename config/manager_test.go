package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so config discovery
// finds nothing and the generated file lands somewhere disposable.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})

	return dir
}

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("REGISTRATION_CORE__DOMAIN", "registration.example.com")
	t.Setenv("REGISTRATION_CORE__JWT__SECRET", "test-secret")
	t.Setenv("REGISTRATION_CORE__MAIL__HOST", "smtp.example.com")
	t.Setenv("REGISTRATION_CORE__MAIL__USERNAME", "mailer")
	t.Setenv("REGISTRATION_CORE__MAIL__PASSWORD", "hunter2")
	t.Setenv("REGISTRATION_CORE__MAIL__FROM", "noreply@example.com")
}

func TestManagerDefaults(t *testing.T) {
	dir := chdirTemp(t)
	setRequiredEnv(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Init())

	cfg := m.Config()
	assert.Equal(t, "registration.example.com", cfg.Core.Domain)
	assert.Equal(t, "Convis Labs", cfg.Core.PortalName)
	assert.Equal(t, uint(8080), cfg.Core.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Core.DB.URI)
	assert.Equal(t, "registration", cfg.Core.DB.Name)
	assert.Equal(t, 465, cfg.Core.Mail.Port)
	assert.True(t, cfg.Core.Mail.SSL)
	assert.Equal(t, "plain", cfg.Core.Mail.AuthType)
	assert.NotEmpty(t, cfg.Core.CORSOrigins)
	assert.NotEqual(t, UUID{}, cfg.Core.NodeID)

	// Generated defaults are written back for the next start.
	_, err = os.Stat(filepath.Join(dir, "registration.yaml"))
	assert.NoError(t, err)
}

func TestManagerEnvOverrides(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)

	t.Setenv("REGISTRATION_CORE__PORT", "9090")
	t.Setenv("REGISTRATION_CORE__PORTAL_NAME", "Test Portal")
	t.Setenv("REGISTRATION_CORE__DB__NAME", "registration_test")

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Init())

	cfg := m.Config()
	assert.Equal(t, uint(9090), cfg.Core.Port)
	assert.Equal(t, "Test Portal", cfg.Core.PortalName)
	assert.Equal(t, "registration_test", cfg.Core.DB.Name)
}

func TestManagerValidateMissingRequired(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)
	t.Setenv("REGISTRATION_CORE__DOMAIN", "")

	m, err := NewManager()
	require.NoError(t, err)

	err = m.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "core.domain")
}

func TestManagerValidateMissingJWTSecret(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)
	t.Setenv("REGISTRATION_CORE__JWT__SECRET", "")

	m, err := NewManager()
	require.NoError(t, err)

	err = m.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "core.jwt.secret")
}
