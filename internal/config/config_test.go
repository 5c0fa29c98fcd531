package config

import (
	"testing"
	"time"

	"codeberg.org/algopatterns/codeassist/internal/codeassist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMapDefaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, codeassist.LanguagePython, cfg.DefaultLanguage())
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, time.Duration(0), cfg.HeaderTimeout)
	assert.Equal(t, 90*time.Second, cfg.IdleTimeout)
	assert.Equal(t, "codeassist/1.0", cfg.UserAgent)
	assert.Equal(t, float64(0), cfg.RateLimit)
	assert.Equal(t, 1, cfg.RateBurst)
	assert.Equal(t, "codeassist.log", cfg.LogFile)
	assert.Equal(t, "development", cfg.Environment)
}

func TestFromMapOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"CODEASSIST_API_URL":                 "https://code.example.com/api/",
		"CODEASSIST_LANGUAGE":                "javascript",
		"CODEASSIST_TIMEOUT":                 "5s",
		"CODEASSIST_RESPONSE_HEADER_TIMEOUT": "2s",
		"CODEASSIST_IDLE_CONN_TIMEOUT":       "30s",
		"CODEASSIST_RATE_LIMIT":              "2.5",
		"CODEASSIST_RATE_BURST":              "0",
		"CODEASSIST_USER_AGENT":              "codeassist-ci/2.0",
		"ENVIRONMENT":                        "production",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://code.example.com/api", cfg.APIURL)
	assert.Equal(t, codeassist.LanguageJavaScript, cfg.DefaultLanguage())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.HeaderTimeout)
	assert.Equal(t, 30*time.Second, cfg.IdleTimeout)
	assert.Equal(t, "codeassist-ci/2.0", cfg.UserAgent)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 1, cfg.RateBurst)
	assert.Equal(t, "production", cfg.Environment)
}

func TestFromMapRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		errText string
	}{
		{
			name:    "unsupported scheme",
			environ: map[string]string{"CODEASSIST_API_URL": "ftp://localhost"},
			errText: "http or https",
		},
		{
			name:    "missing host",
			environ: map[string]string{"CODEASSIST_API_URL": "http://"},
			errText: "host",
		},
		{
			name:    "unknown language",
			environ: map[string]string{"CODEASSIST_LANGUAGE": "cobol"},
			errText: "unsupported language",
		},
		{
			name:    "bad duration",
			environ: map[string]string{"CODEASSIST_TIMEOUT": "soon"},
			errText: "failed to parse environment",
		},
		{
			name:    "negative header timeout",
			environ: map[string]string{"CODEASSIST_RESPONSE_HEADER_TIMEOUT": "-1s"},
			errText: "timeouts must not be negative",
		},
		{
			name:    "negative rate",
			environ: map[string]string{"CODEASSIST_RATE_LIMIT": "-1"},
			errText: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.environ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	flags := ParseGenerateFlags([]string{"-lang", "javascript", "-api-url", "http://10.0.0.2:9000/", "-optimize", "reverse", "a", "string"})

	assert.True(t, flags.Optimize)
	assert.False(t, flags.Copy)
	assert.Equal(t, []string{"reverse", "a", "string"}, flags.Args)

	require.NoError(t, cfg.ApplyFlags(flags))
	assert.Equal(t, "http://10.0.0.2:9000", cfg.APIURL)
	assert.Equal(t, codeassist.LanguageJavaScript, cfg.DefaultLanguage())
}

func TestParseOptimizeFlagsDefaults(t *testing.T) {
	flags := ParseOptimizeFlags([]string{})

	assert.Equal(t, "-", flags.File)
	assert.Equal(t, "", flags.Language)
}
