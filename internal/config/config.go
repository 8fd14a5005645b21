// Package config loads and validates wellfang configuration from file,
// environment, and defaults.
package config

import "errors"

// Config is the top-level configuration struct for wellfang.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Detect        DetectConfig        `mapstructure:"detect"`
	Plot          PlotConfig          `mapstructure:"plot"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// DetectConfig holds detector parameters.
type DetectConfig struct {
	Sigma         float64  `mapstructure:"sigma"`
	IQRMultiplier float64  `mapstructure:"iqr_multiplier"`
	Detectors     []string `mapstructure:"detectors"`
	RulesFile     string   `mapstructure:"rules_file"`
}

// PlotConfig holds depth-plot rendering settings.
type PlotConfig struct {
	OutputDir    string  `mapstructure:"output_dir"`
	DepthPadding float64 `mapstructure:"depth_padding"`
	Theme        string  `mapstructure:"theme"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	LogJSON      bool    `mapstructure:"log_json"`
	DebugTrace   bool    `mapstructure:"debug_trace"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// Known detector names accepted in detect.detectors.
const (
	DetectorPriorRule  = "prior-rule"
	DetectorThreeSigma = "three-sigma"
	DetectorIQR        = "iqr"
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidSigma indicates the sigma multiplier is not positive.
	ErrInvalidSigma = errors.New("detect.sigma must be positive")
	// ErrInvalidIQRMultiplier indicates the IQR multiplier is not positive.
	ErrInvalidIQRMultiplier = errors.New("detect.iqr_multiplier must be positive")
	// ErrUnknownDetector indicates an unrecognized detector name.
	ErrUnknownDetector = errors.New("detect.detectors entries must be prior-rule, three-sigma or iqr")
	// ErrInvalidDepthPadding indicates the depth padding is negative.
	ErrInvalidDepthPadding = errors.New("plot.depth_padding must be non-negative")
	// ErrInvalidTheme indicates an unrecognized plot theme.
	ErrInvalidTheme = errors.New("plot.theme must be dark or light")
	// ErrInvalidSampleRatio indicates the trace sample ratio is out of range.
	ErrInvalidSampleRatio = errors.New("observability.sample_ratio must be between 0 and 1")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if err := c.validateDetect(); err != nil {
		return err
	}

	if err := c.validatePlot(); err != nil {
		return err
	}

	if c.Observability.SampleRatio < 0 || c.Observability.SampleRatio > 1 {
		return ErrInvalidSampleRatio
	}

	return nil
}

func (c *Config) validateDetect() error {
	if c.Detect.Sigma <= 0 {
		return ErrInvalidSigma
	}

	if c.Detect.IQRMultiplier <= 0 {
		return ErrInvalidIQRMultiplier
	}

	for _, name := range c.Detect.Detectors {
		switch name {
		case DetectorPriorRule, DetectorThreeSigma, DetectorIQR:
		default:
			return ErrUnknownDetector
		}
	}

	return nil
}

func (c *Config) validatePlot() error {
	if c.Plot.DepthPadding < 0 {
		return ErrInvalidDepthPadding
	}

	switch c.Plot.Theme {
	case "dark", "light":
		return nil
	default:
		return ErrInvalidTheme
	}
}
