package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "jobsearch-engine"

// Upstream credential names. SerpAPI carries its own key; both RapidAPI
// endpoints share one account key.
const (
	ProviderSerpAPI  = "serpapi"
	ProviderRapidAPI = "rapidapi"
)

var envVarFor = map[string]string{
	ProviderSerpAPI:  "SERP_API_KEY",
	ProviderRapidAPI: "RAPIDAPI_KEY",
}

// GetAPIKey resolves an upstream API key: keyring first, environment
// second. Keys never live in source or config files.
func GetAPIKey(provider string) (string, error) {
	envVar, ok := envVarFor[provider]
	if !ok {
		return "", fmt.Errorf("unknown credential provider %q", provider)
	}

	if pw, err := keyring.Get(KeyringService, provider); err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s API key not found (set it in the keychain or via %s)", provider, envVar)
}

func SetAPIKey(provider, key string) error {
	if _, ok := envVarFor[provider]; !ok {
		return fmt.Errorf("unknown credential provider %q", provider)
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, provider, key)
}

func DeleteAPIKey(provider string) error {
	if _, ok := envVarFor[provider]; !ok {
		return fmt.Errorf("unknown credential provider %q", provider)
	}
	return keyring.Delete(KeyringService, provider)
}
