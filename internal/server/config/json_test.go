package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophterms/internal/flagx"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(flagx.ConfigEnv, "")

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":              "www.example:9000",
		"database_dsn":                    "postgres://db",
		"secret_key":                      "my_secret_key",
		"access_token_validity_duration":  "2m",
		"refresh_token_validity_duration": "10m",
		"redis_url":                       "redis://cache:6379/1",
		"cors_origins":                    []string{"https://app.example"},
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		c := &Config{LogLevel: "info"}
		parseJson(c)

		assert.Equal(t, "www.example:9000", c.EndpointAddrHTTP)
		assert.Equal(t, "postgres://db", c.DatabaseDSN)
		assert.Equal(t, "my_secret_key", c.SecretKey)
		assert.Equal(t, 2*time.Minute, c.AccessTokenValidityDuration)
		assert.Equal(t, 10*time.Minute, c.RefreshTokenValidityDuration)
		assert.Equal(t, "redis://cache:6379/1", c.RedisURL)
		assert.Equal(t, []string{"https://app.example"}, c.CORSOrigins)
		assert.Equal(t, "info", c.LogLevel, "absent field keeps its value")
	})

	t.Run("no file → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		c := &Config{}
		c.LoadDefaults()
		parseJson(c)

		assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))

		os.Args = []string{"testbin", "-c", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

func TestLoadConfig_SecondTokenLifetimesFromJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(flagx.ConfigEnv, "")

	path := writeTempJSON(t, t.TempDir(), "server.json", map[string]any{
		"access_token_validity_duration":  "30s",
		"refresh_token_validity_duration": "90s",
		"cors_origins":                    []string{"https://app.example"},
	})

	t.Run("json only", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path}

		c := LoadConfig()

		assert.Equal(t, 30*time.Second, c.AccessTokenValidityDuration)
		assert.Equal(t, 90*time.Second, c.RefreshTokenValidityDuration)
		assert.Equal(t, []string{"https://app.example"}, c.CORSOrigins)
	})

	t.Run("flag overrides only its own field", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path, "-r", "5"}

		c := LoadConfig()

		assert.Equal(t, 30*time.Second, c.AccessTokenValidityDuration)
		assert.Equal(t, 5*time.Minute, c.RefreshTokenValidityDuration)
	})
}
