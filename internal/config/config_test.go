package config

import (
	"testing"
	"time"

	"quantix/internal"
	"quantix/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "RELOAD_TIMEOUT", "DATA_FILE", "DATA_SHEET",
		"DECIMAL_COMMA", "HISTOGRAM_BINS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 10*time.Second, cfg.Server.ReloadTimeout)
	assert.Equal(t, "", cfg.Data.File)
	assert.Equal(t, "Sheet1", cfg.Data.Sheet)
	assert.True(t, cfg.Data.DecimalComma)
	assert.Equal(t, 10, cfg.Analysis.HistogramBins)
	assert.Equal(t, internal.LogLevelInfo, cfg.Log.Level)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "data/students.XLSX")
	t.Setenv("DATA_SHEET", "Class 2B")
	t.Setenv("HISTOGRAM_BINS", "6")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RELOAD_TIMEOUT", "2s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "data/students.XLSX", cfg.Data.File)
	assert.Equal(t, "Class 2B", cfg.Data.Sheet)
	assert.Equal(t, 6, cfg.Analysis.HistogramBins)
	assert.Equal(t, internal.LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.Server.ReloadTimeout)
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "eighty"},
		{"PORT", "70000"},
		{"GIN_MODE", "turbo"},
		{"DATA_FILE", "students.json"},
		{"HISTOGRAM_BINS", "0"},
		{"HISTOGRAM_BINS", "ten"},
		{"LOG_LEVEL", "loud"},
		{"DECIMAL_COMMA", "sometimes"},
		{"RELOAD_TIMEOUT", "10"},
		{"RELOAD_TIMEOUT", "-5s"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
