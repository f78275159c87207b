package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMoodKeys(t *testing.T) {
	t.Setenv("WHISPERWALL_MOOD__API_KEY", "key42")
	t.Setenv("WHISPERWALL_MOOD__MODEL", "deepseek-chat")
	t.Setenv("WHISPERWALL_MOOD__ENDPOINT", "https://api.deepseek.com/chat/completions")

	konf, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "key42", konf.String("mood.api_key"))
	assert.Equal(t, "deepseek-chat", konf.String("mood.model"))
	assert.Equal(t, "https://api.deepseek.com/chat/completions", konf.String("mood.endpoint"))
}
