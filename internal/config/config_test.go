package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"ENV", "API_BASE_URL", "HTTP_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	"DEFAULT_SEMESTER", "SEMESTERS", "METRICS_TEXTFILE", "EXPORT_DIR",
	"SFTP_HOST", "SFTP_PORT", "SFTP_USER", "SFTP_PASS", "SFTP_DIR",
	"SFTP_INSECURE_IGNORE_HOST_KEY", "SFTP_KNOWN_HOSTS",
}

// clearEnv blanks every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "Fall 2023", cfg.Terms.Default)
	assert.Equal(t, []string{"Fall 2023", "Spring 2024", "Summer 2024"}, cfg.Terms.Semesters)
	assert.Equal(t, "./exports", cfg.Export.Dir)
	assert.Equal(t, 22, cfg.SFTP.Port)
	assert.Equal(t, "/", cfg.SFTP.Dir)
	assert.False(t, cfg.SFTP.InsecureIgnoreHostKey)
	assert.False(t, cfg.SFTP.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "https://registrar.test/api/")
	t.Setenv("HTTP_TIMEOUT", "15s")
	t.Setenv("SEMESTERS", " Spring 2024 , Summer 2024,, ")
	t.Setenv("DEFAULT_SEMESTER", "Winter 2025")
	t.Setenv("SFTP_HOST", "sftp.test")
	t.Setenv("SFTP_PORT", "2222")
	t.Setenv("SFTP_USER", "registrar")
	t.Setenv("SFTP_INSECURE_IGNORE_HOST_KEY", "true")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "https://registrar.test/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "Winter 2025", cfg.Terms.Default)
	assert.Equal(t, []string{"Winter 2025", "Spring 2024", "Summer 2024"}, cfg.Terms.Semesters)
	assert.Equal(t, 2222, cfg.SFTP.Port)
	assert.True(t, cfg.SFTP.InsecureIgnoreHostKey)
	assert.True(t, cfg.SFTP.Enabled())
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EXPORT_DIR=/var/reports\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/reports", cfg.Export.Dir)
	assert.Equal(t, "warn", cfg.Log.Level, "environment wins over .env")
}

func TestParseDuration(t *testing.T) {
	testCases := []struct {
		raw      string
		fallback time.Duration
		want     time.Duration
	}{
		{"", time.Second, time.Second},
		{"0", time.Second, 0},
		{"250ms", 0, 250 * time.Millisecond},
		{"soon", 2 * time.Second, 2 * time.Second},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, parseDuration(tc.raw, tc.fallback), tc.raw)
	}
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b ,"))
}
