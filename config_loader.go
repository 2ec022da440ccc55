package restkit

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configKeys returns the mapstructure keys of Config, each of which is
// bound to an environment variable. Explicit binding is what lets
// env-only configuration unmarshal.
func configKeys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("mapstructure"); tag != "" && tag != "-" {
			keys = append(keys, tag)
		}
	}
	return keys
}

// LoaderOption configures LoadConfig.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit YAML config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// LoadConfig fills cfg from, in increasing precedence: the YAML config
// file (when given and present), an optional .env file, and
// RESTKIT_-prefixed environment variables (RESTKIT_HOST,
// RESTKIT_AUTH_TOKEN, ...). Missing files are not an error; defaults
// and validation still run in New.
func LoadConfig(cfg *Config, opts ...LoaderOption) error {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()
	v.SetEnvPrefix("RESTKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys() {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("restkit: bind env for %q: %w", key, err)
		}
	}

	if lc.configFile != "" && fileExists(lc.configFile) {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("restkit: read config file %s: %w", lc.configFile, err)
		}
	}

	if lc.envFile != "" && fileExists(lc.envFile) {
		if err := godotenv.Load(lc.envFile); err != nil {
			return fmt.Errorf("restkit: load env file %s: %w", lc.envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("restkit: unmarshal config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
