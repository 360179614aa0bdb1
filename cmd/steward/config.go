package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "steward"
	configFileType = "yaml"
	envPrefix      = "STEWARD"

	cfgKeySchema   = "schema"
	cfgKeyType     = "type"
	cfgKeyFormat   = "format"
	cfgKeyLogLevel = "log_level"

	defaultLogLevel = "warn"
)

// config is the resolved configuration of one invocation.
type config struct {
	Schema   string
	Type     string
	Format   string
	LogLevel string
}

// loadConfig merges, from lowest to highest precedence: defaults, the
// config file, STEWARD_* environment variables and flags. A missing
// steward.yaml is not an error; a missing file named by --config is.
func loadConfig(path string, flags *pflag.FlagSet) (config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		cfgKeySchema:   "schema",
		cfgKeyType:     "type",
		cfgKeyFormat:   "format",
		cfgKeyLogLevel: "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return config{}, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return config{
		Schema:   v.GetString(cfgKeySchema),
		Type:     v.GetString(cfgKeyType),
		Format:   v.GetString(cfgKeyFormat),
		LogLevel: v.GetString(cfgKeyLogLevel),
	}, nil
}
