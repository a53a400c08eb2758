package credentials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(name, "")
	}
}

func TestResolvePrefersEnvironment(t *testing.T) {
	keyring.MockInit()
	clearEnv(t)
	require.NoError(t, Store("gemini", "from-keychain"))

	t.Setenv("API_KEY", "legacy")
	key, err := Resolve("gemini")
	require.NoError(t, err)
	assert.Equal(t, "legacy", key)

	t.Setenv("GEMINI_API_KEY", "primary")
	key, err = Resolve("Gemini")
	require.NoError(t, err)
	assert.Equal(t, "primary", key)
}

func TestResolveFallsBackToKeychain(t *testing.T) {
	keyring.MockInit()
	clearEnv(t)

	_, err := Resolve("openai")
	assert.ErrorIs(t, err, ErrNoKey)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	require.NoError(t, Store("openai", "  sk-stored  "))
	key, err := Resolve("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-stored", key)

	require.NoError(t, Clear("openai"))
	require.NoError(t, Clear("openai"), "clearing twice is fine")
	_, err = Resolve("openai")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestOllamaNeedsNoKey(t *testing.T) {
	keyring.MockInit()
	key, err := Resolve("ollama")
	require.NoError(t, err)
	assert.Empty(t, key)
	assert.False(t, NeedsKey("ollama"))
	assert.Error(t, Store("ollama", "x"))
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, Store("gemini", "   "))
}

func TestKeychainFailuresAreWrapped(t *testing.T) {
	boom := errors.New("keychain locked")
	keyring.MockInitWithError(boom)
	clearEnv(t)

	_, err := Resolve("gemini")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNoKey)
	assert.ErrorIs(t, Clear("gemini"), boom)
}

func TestEnvVars(t *testing.T) {
	assert.Equal(t, []string{"GEMINI_API_KEY", "API_KEY"}, EnvVars(""))
	assert.Empty(t, EnvVars("ollama"))
}
