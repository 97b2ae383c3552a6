package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// jwtSecretEnv is the only place the signing secret may come from. It is
// deliberately absent from the YAML file so it never ends up in version
// control.
const jwtSecretEnv = "AUTH_JWT_SECRET"

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		TokenTTLSeconds int64 `yaml:"token_ttl_seconds"`
		BcryptCost      int   `yaml:"bcrypt_cost"`
		Secret          string `yaml:"-"`
	} `yaml:"auth"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// TokenTTL returns the configured token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLSeconds) * time.Second
}

// LoadConfig reads configuration from the specified YAML file and pulls the
// JWT signing secret from the environment.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if config.Auth.TokenTTLSeconds <= 0 {
		config.Auth.TokenTTLSeconds = 3600
	}
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	config.Auth.Secret = os.Getenv(jwtSecretEnv)
	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("%s environment variable is required", jwtSecretEnv)
	}

	return config, nil
}
