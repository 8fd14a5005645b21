package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/wellfang/pkg/anomaly"
)

// configName is the config file name without extension.
const configName = ".wellfang"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for wellfang settings.
const envPrefix = "WELLFANG"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Default values applied before file and environment overrides.
const (
	DefaultSigma         = anomaly.DefaultSigma
	DefaultIQRMultiplier = anomaly.DefaultIQRMultiplier
	DefaultOutputDir     = "output"
	DefaultDepthPadding  = 20.0
	DefaultTheme         = "dark"
)

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("detect.sigma", DefaultSigma)
	viperCfg.SetDefault("detect.iqr_multiplier", DefaultIQRMultiplier)
	viperCfg.SetDefault("detect.detectors", []string{DetectorPriorRule, DetectorThreeSigma, DetectorIQR})
	viperCfg.SetDefault("detect.rules_file", "")

	viperCfg.SetDefault("plot.output_dir", DefaultOutputDir)
	viperCfg.SetDefault("plot.depth_padding", DefaultDepthPadding)
	viperCfg.SetDefault("plot.theme", DefaultTheme)

	viperCfg.SetDefault("observability.otlp_endpoint", "")
	viperCfg.SetDefault("observability.otlp_insecure", false)
	viperCfg.SetDefault("observability.log_json", false)
	viperCfg.SetDefault("observability.debug_trace", false)
	viperCfg.SetDefault("observability.sample_ratio", 0.0)
}
