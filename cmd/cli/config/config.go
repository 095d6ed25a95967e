package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const defaultAPIURL = "http://localhost:8080"

// Settings is the CLI configuration.
type Settings struct {
	// APIURL is the base URL of the timetrack API (TIMETRACK_API_URL).
	APIURL string
	// TokenFile holds the saved token pair (TIMETRACK_TOKEN_FILE).
	TokenFile string
}

// Load reads settings from TIMETRACK_* environment variables and the
// optional ~/.timetrack.yaml file. Environment wins over the file.
func Load() (Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	v := viper.New()
	v.SetEnvPrefix("TIMETRACK")
	v.AutomaticEnv()

	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("token_file", filepath.Join(home, ".timetrack_token.json"))

	v.SetConfigName(".timetrack")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Settings{
		APIURL:    v.GetString("api_url"),
		TokenFile: v.GetString("token_file"),
	}, nil
}
