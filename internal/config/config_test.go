package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("", Config{})
	require.NoError(t, err)
	assert.Equal(t, Defaults().Model, cfg.Model)
	assert.Equal(t, Defaults().FallbackMode, cfg.FallbackMode)
}

func TestLoad_InlineJSONOverridesDefaults(t *testing.T) {
	cfg, err := Load(`{"model": "custom-model", "min_page_titles": 3}`, Config{})
	require.NoError(t, err)
	assert.Equal(t, "custom-model", cfg.Model)
	assert.Equal(t, 3, cfg.MinPageTitles)
}

func TestLoad_OverridesWinOverFile(t *testing.T) {
	cfg, err := Load(`{"model": "from-file"}`, Config{Model: "from-flag"})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Model)
}

func TestLoad_EnvKeysPickedUp(t *testing.T) {
	t.Setenv("HF_KEY", "hf-secret")
	cfg, err := Load("", Config{})
	require.NoError(t, err)
	assert.Equal(t, "hf-secret", cfg.HFKey)
}
