// Package credentials finds the API key for the assistant's provider.
// Environment variables win over the OS keychain.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeychainService is the keychain service name; the account is the provider.
const KeychainService = "fc100v"

// ErrNoKey means neither the environment nor the keychain holds a key.
var ErrNoKey = errors.New("no API key configured")

var envVars = map[string][]string{
	"gemini": {"GEMINI_API_KEY", "API_KEY"},
	"openai": {"OPENAI_API_KEY"},
}

// NeedsKey reports whether provider authenticates with an API key.
func NeedsKey(provider string) bool {
	_, ok := envVars[normalize(provider)]
	return ok
}

// EnvVars lists the variables consulted for provider, in order.
func EnvVars(provider string) []string {
	return append([]string(nil), envVars[normalize(provider)]...)
}

// Resolve returns the key for provider. Providers without keys (ollama)
// resolve to "" and no error.
func Resolve(provider string) (string, error) {
	provider = normalize(provider)
	if !NeedsKey(provider) {
		return "", nil
	}
	for _, name := range envVars[provider] {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	secret, err := keyring.Get(KeychainService, provider)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w for %s (set %s or run `fc100v auth set-key`)",
				ErrNoKey, provider, strings.Join(envVars[provider], " or "))
		}
		return "", fmt.Errorf("reading keychain for %s: %w", provider, err)
	}
	return secret, nil
}

// Store saves key in the keychain.
func Store(provider, key string) error {
	provider = normalize(provider)
	if !NeedsKey(provider) {
		return fmt.Errorf("provider %q does not use an API key", provider)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if err := keyring.Set(KeychainService, provider, key); err != nil {
		return fmt.Errorf("writing keychain for %s: %w", provider, err)
	}
	return nil
}

// Clear removes the stored key. Clearing a missing key is not an error.
func Clear(provider string) error {
	provider = normalize(provider)
	err := keyring.Delete(KeychainService, provider)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting keychain for %s: %w", provider, err)
	}
	return nil
}

func normalize(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return "gemini"
	}
	return provider
}
