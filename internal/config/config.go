package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL         = "http://localhost:8000"
	defaultRequestTimeout = 60 * time.Second
	defaultHealthTimeout  = 3 * time.Second
)

// Config stores runtime configuration for the viewer backend.
type Config struct {
	Service  ServiceConfig
	Fallback FallbackConfig
	Icons    IconsConfig
	Log      LogConfig
}

type ServiceConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	HealthTimeout  time.Duration
}

type FallbackConfig struct {
	Enabled bool
}

type IconsConfig struct {
	RulesPath string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load resolves configuration from an optional soundsphere.yaml, a .env file
// in the working directory, SOUNDSPHERE_* environment variables and defaults.
// Environment variables win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SOUNDSPHERE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v); err != nil {
		return Config{}, err
	}

	home, _ := os.UserHomeDir()
	defaultRules := ""
	if home != "" {
		defaultRules = filepath.Join(home, ".config", "soundsphere", "icons.rules")
	}

	cfg := Config{
		Service: ServiceConfig{
			BaseURL: strings.TrimRight(firstNonEmpty(
				v.GetString("api_url"),
				os.Getenv("VITE_API_URL"),
				DefaultAPIURL,
			), "/"),
			RequestTimeout: millisOrDefault(v.GetString("request_timeout_ms"), defaultRequestTimeout),
			HealthTimeout:  millisOrDefault(v.GetString("health_timeout_ms"), defaultHealthTimeout),
		},
		Fallback: FallbackConfig{
			Enabled: boolOrDefault(v.GetString("fallback_enabled"), true),
		},
		Icons: IconsConfig{
			RulesPath: firstNonEmpty(v.GetString("icon_rules_file"), defaultRules),
		},
		Log: LogConfig{
			Level:  strings.ToLower(firstNonEmpty(v.GetString("log_level"), "info")),
			Format: strings.ToLower(firstNonEmpty(v.GetString("log_format"), "console")),
		},
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	if explicit := strings.TrimSpace(os.Getenv("SOUNDSPHERE_CONFIG_FILE")); explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config %q: %w", explicit, err)
		}
		return nil
	}

	v.SetConfigName("soundsphere")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "soundsphere"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func millisOrDefault(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return time.Duration(parsed) * time.Millisecond
}

func boolOrDefault(value string, fallback bool) bool {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
