package clientconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Environment keys, relative to the prefix passed to LoadEnv.
const (
	KeyBaseURL = "base_url"
	KeyTimeout = "timeout"
	KeyLogging = "logging"
)

// LoadEnv reads a Configuration from environment variables.
//
// With prefix "API" the variables are API_BASE_URL, API_TIMEOUT (a Go
// duration such as "5s") and API_LOGGING. Base URL and timeout are
// required; logging defaults to false.
func LoadEnv(prefix string) (Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(prefix))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{KeyBaseURL, KeyTimeout, KeyLogging} {
		if err := v.BindEnv(key); err != nil {
			return Configuration{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	v.SetDefault(KeyLogging, false)

	baseURL := v.GetString(KeyBaseURL)
	if baseURL == "" {
		return Configuration{}, fmt.Errorf("missing required setting %s", envName(prefix, KeyBaseURL))
	}
	if v.GetString(KeyTimeout) == "" {
		return Configuration{}, fmt.Errorf("missing required setting %s", envName(prefix, KeyTimeout))
	}
	timeout := v.GetDuration(KeyTimeout)
	if timeout <= 0 {
		return Configuration{}, fmt.Errorf("invalid %s %q: must be a positive duration",
			envName(prefix, KeyTimeout), v.GetString(KeyTimeout))
	}

	b := WithTimeout(WithBaseURL(NewBuilder(), baseURL), timeout).WithLogging(v.GetBool(KeyLogging))
	return Build(b), nil
}

func envName(prefix, key string) string {
	if prefix == "" {
		return strings.ToUpper(key)
	}
	return strings.ToUpper(prefix) + "_" + strings.ToUpper(key)
}
