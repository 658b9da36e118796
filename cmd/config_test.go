package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// unset clears a variable for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	unset(t, "PORT", "FRONTEND_ORIGIN", "SINK_TIMEOUT", "DEV_MODE", "METRIC_INTERVAL")
	t.Setenv("JWT_SECRET", "secret")

	config, err := loadConfig(nil)

	req.NoError(err)
	req.Equal(5000, config.Port)
	req.Equal([]string{"http://localhost:4200"}, config.FrontendOrigins())
	req.Equal(2*time.Second, config.SinkTimeout)
	req.False(config.DevMode)
}

func TestLoadConfig_Env_File(t *testing.T) {
	req := require.New(t)
	unset(t, "JWT_SECRET", "PORT", "DEV_MODE", "METRIC_INTERVAL")
	path := filepath.Join(t.TempDir(), "test.env")
	req.NoError(os.WriteFile(path, []byte("JWT_SECRET=from-file\nPORT=6001\nDEV_MODE=true\n"), 0o600))

	config, err := loadConfig([]string{"--env-file", path})

	req.NoError(err)
	req.Equal("from-file", config.JWTSecret)
	req.Equal(6001, config.Port)
	req.True(config.DevMode)
}

func TestLoadConfig_Requires_Secret(t *testing.T) {
	unset(t, "JWT_SECRET")

	_, err := loadConfig(nil)

	require.Error(t, err)
}

func TestLoadConfig_Rejects_Non_Positive_Metric_Interval(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("METRIC_INTERVAL", "0s")

	_, err := loadConfig(nil)

	require.ErrorContains(t, err, "METRIC_INTERVAL")
}
