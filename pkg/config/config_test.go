package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(envMap(nil))

	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, DefaultContentfulHost, cfg.Host)
	assert.Equal(t, DefaultEntryID, cfg.DefaultEntryID)
	assert.Equal(t, 5, cfg.PageSize)
	assert.True(t, cfg.UseContentful())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"CONTENTFUL_SPACE_ID":     "space",
		"CONTENTFUL_ACCESS_TOKEN": "token",
		"CONTENTFUL_ENVIRONMENT":  "staging",
		"CONTENTFUL_HOST":         "preview.contentful.com",
		"PAGE_SIZE":               "10",
		"CONTENT_DIR":             "./content",
		"DEFAULT_ENTRY_ID":        "abc",
	}))

	assert.Equal(t, "space", cfg.SpaceID)
	assert.Equal(t, "token", cfg.AccessToken)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "preview.contentful.com", cfg.Host)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "abc", cfg.DefaultEntryID)
	assert.False(t, cfg.UseContentful())
}

func TestFromEnvIgnoresInvalidPageSize(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{"PAGE_SIZE": "many"}))
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "contentful credentials are required")

	cfg.SpaceID = "space"
	assert.Error(t, cfg.Validate())

	cfg.AccessToken = "token"
	require.NoError(t, cfg.Validate())

	cfg.PageSize = 0
	assert.Error(t, cfg.Validate())

	local := Default()
	local.ContentDir = "./content"
	assert.NoError(t, local.Validate())
}

func TestSetUpLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	require.NoError(t, SetUpLogger("DEBUG", "json"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	assert.Error(t, SetUpLogger("info", "xml"))
	assert.Error(t, SetUpLogger("loud", "human"))
}
