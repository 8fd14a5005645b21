package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/wellfang/internal/config"
	"github.com/Sumatoshi-tech/wellfang/internal/detect"
	"github.com/Sumatoshi-tech/wellfang/internal/las"
	"github.com/Sumatoshi-tech/wellfang/internal/report"
	"github.com/Sumatoshi-tech/wellfang/internal/rulesfile"
	"github.com/Sumatoshi-tech/wellfang/pkg/anomaly"
)

// DetectCommand holds configuration and dependencies for the detect command.
type DetectCommand struct {
	configPath    string
	format        string
	curves        []string
	detectors     []string
	sigma         float64
	iqrMultiplier float64
	rulesFile     string
	noColor       bool
	verbose       bool
	silent        bool

	out    io.Writer
	errOut io.Writer
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	return newDetectCommand(os.Stdout, os.Stderr)
}

func newDetectCommand(out, errOut io.Writer) *cobra.Command {
	dc := &DetectCommand{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "detect <las-file>",
		Short: "Flag anomalous samples in well-log curves",
		Long: `Detect anomalous samples in the curves of a LAS 2.0 file.

Three detectors are available:
  prior-rule    physical-range bounds from the built-in rule table
  three-sigma   samples deviating more than sigma standard deviations
  iqr           samples outside the interquartile-range fences`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          dc.run,
	}

	cmd.Flags().StringVarP(&dc.configPath, "config", "c", "", "Config file path (default: .wellfang.yaml in CWD or $HOME)")
	cmd.Flags().StringVar(&dc.format, "format", report.FormatTable, "Output format: table, json, yaml")
	cmd.Flags().StringSliceVar(&dc.curves, "curves", nil, "Curve mnemonics to analyze (default: every data curve)")
	cmd.Flags().StringSliceVar(&dc.detectors, "detectors", nil,
		"Detectors to run: prior-rule, three-sigma, iqr (default: all)")
	cmd.Flags().Float64Var(&dc.sigma, "sigma", anomaly.DefaultSigma, "Standard deviation multiplier for the 3-sigma filter")
	cmd.Flags().Float64Var(&dc.iqrMultiplier, "iqr-multiplier", anomaly.DefaultIQRMultiplier, "IQR fence multiplier")
	cmd.Flags().StringVar(&dc.rulesFile, "rules-file", "", "JSON file overlaying the built-in rule table")
	cmd.Flags().BoolVar(&dc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&dc.verbose, "verbose", "v", false, "Show detector diagnostics")
	cmd.Flags().BoolVar(&dc.silent, "silent", false, "Suppress warnings and progress output")

	return cmd
}

func (dc *DetectCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(dc.configPath)
	if err != nil {
		return err
	}

	dc.applyConfig(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(dc.errOut, dc.verbose, dc.silent)

	rules := anomaly.Table()

	if dc.rulesFile != "" {
		custom, loadErr := rulesfile.Load(dc.rulesFile)
		if loadErr != nil {
			return loadErr
		}

		rules = rulesfile.Merge(custom)
	}

	file, err := las.Open(args[0])
	if err != nil {
		return err
	}

	params := detect.Params{
		Sigma:         dc.sigma,
		IQRMultiplier: dc.iqrMultiplier,
		Detectors:     dc.detectors,
		Rules:         rules,
		Source:        args[0],
		ReporterFor: func(mnemonic string) anomaly.Reporter {
			return slogReporter{logger: logger.With(slog.String("curve", mnemonic))}
		},
	}

	outcome, missing := detect.Run(file, dc.curves, params)
	for _, name := range missing {
		logger.Warn("curve not found in file", slog.String("curve", name))
	}

	return outcome.Summary.Render(dc.out, dc.format, dc.noColor)
}

// applyConfig fills settings from the config file for flags the user left
// untouched, then writes the effective values back so Validate covers both.
func (dc *DetectCommand) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("sigma") {
		dc.sigma = cfg.Detect.Sigma
	}

	if !cmd.Flags().Changed("iqr-multiplier") {
		dc.iqrMultiplier = cfg.Detect.IQRMultiplier
	}

	if !cmd.Flags().Changed("detectors") && len(cfg.Detect.Detectors) > 0 {
		dc.detectors = cfg.Detect.Detectors
	}

	if !cmd.Flags().Changed("rules-file") && cfg.Detect.RulesFile != "" {
		dc.rulesFile = cfg.Detect.RulesFile
	}

	cfg.Detect.Sigma = dc.sigma
	cfg.Detect.IQRMultiplier = dc.iqrMultiplier
	cfg.Detect.Detectors = dc.detectors
	cfg.Detect.RulesFile = dc.rulesFile
}
