package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/wellfang/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, cfg.Detect.Sigma, 1e-9)
	assert.InDelta(t, 1.5, cfg.Detect.IQRMultiplier, 1e-9)
	assert.Equal(t, []string{"prior-rule", "three-sigma", "iqr"}, cfg.Detect.Detectors)
	assert.Equal(t, "output", cfg.Plot.OutputDir)
	assert.InDelta(t, 20.0, cfg.Plot.DepthPadding, 1e-9)
	assert.Equal(t, "dark", cfg.Plot.Theme)
	assert.Empty(t, cfg.Observability.OTLPEndpoint)
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wellfang.yaml")
	content := `
detect:
  sigma: 2.5
  detectors: [iqr]
plot:
  theme: light
  depth_padding: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, cfg.Detect.Sigma, 1e-9)
	assert.Equal(t, []string{"iqr"}, cfg.Detect.Detectors)
	assert.Equal(t, "light", cfg.Plot.Theme)
	assert.InDelta(t, 5.0, cfg.Plot.DepthPadding, 1e-9)

	// Unset keys keep their defaults.
	assert.InDelta(t, 1.5, cfg.Detect.IQRMultiplier, 1e-9)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "zero_sigma", content: "detect:\n  sigma: 0\n", wantErr: config.ErrInvalidSigma},
		{name: "negative_iqr", content: "detect:\n  iqr_multiplier: -1\n", wantErr: config.ErrInvalidIQRMultiplier},
		{name: "bad_detector", content: "detect:\n  detectors: [zscore]\n", wantErr: config.ErrUnknownDetector},
		{name: "negative_padding", content: "plot:\n  depth_padding: -2\n", wantErr: config.ErrInvalidDepthPadding},
		{name: "bad_theme", content: "plot:\n  theme: sepia\n", wantErr: config.ErrInvalidTheme},
		{name: "bad_ratio", content: "observability:\n  sample_ratio: 2\n", wantErr: config.ErrInvalidSampleRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "wellfang.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := config.LoadConfig(path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Direct(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Detect: config.DetectConfig{Sigma: 3, IQRMultiplier: 1.5},
		Plot:   config.PlotConfig{Theme: "dark"},
	}

	require.NoError(t, cfg.Validate())

	cfg.Observability.SampleRatio = -0.1
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidSampleRatio)
}
