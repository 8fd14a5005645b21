package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/wellfang/internal/config"
	"github.com/Sumatoshi-tech/wellfang/internal/horizon"
	"github.com/Sumatoshi-tech/wellfang/internal/las"
	"github.com/Sumatoshi-tech/wellfang/internal/plot"
)

const outputDirPerm = 0o755

// PlotCommand holds configuration and dependencies for the plot command.
type PlotCommand struct {
	configPath   string
	curves       []string
	horizonsPath string
	well         string
	depthPadding float64
	outputDir    string
	theme        string
	verbose      bool
	silent       bool

	errOut io.Writer
}

// NewPlotCommand creates the plot command.
func NewPlotCommand() *cobra.Command {
	return newPlotCommand(os.Stderr)
}

func newPlotCommand(errOut io.Writer) *cobra.Command {
	pc := &PlotCommand{errOut: errOut}

	cmd := &cobra.Command{
		Use:   "plot <las-file>",
		Short: "Render a multi-track depth plot as HTML",
		Long: `Render selected curves of a LAS 2.0 file as a multi-track depth plot.

Each curve gets its own track sharing an inverted depth axis. An optional
horizons CSV overlays geological surface markers as labeled dashed lines and
narrows the depth window to the horizon span.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          pc.run,
	}

	cmd.Flags().StringVarP(&pc.configPath, "config", "c", "", "Config file path (default: .wellfang.yaml in CWD or $HOME)")
	cmd.Flags().StringSliceVar(&pc.curves, "curves", nil, "Curve mnemonics to plot (default: every data curve)")
	cmd.Flags().StringVar(&pc.horizonsPath, "horizons", "", "Horizons CSV with Well, MD and Surface columns")
	cmd.Flags().StringVar(&pc.well, "well", "", "Well name for horizon lookup and the page title (default: from the file)")
	cmd.Flags().Float64Var(&pc.depthPadding, "depth-padding", plot.DefaultDepthPadding,
		"Extra depth shown beyond the horizon span")
	cmd.Flags().StringVarP(&pc.outputDir, "output-dir", "o", "", "Directory for the rendered HTML (default: output)")
	cmd.Flags().StringVar(&pc.theme, "theme", "", "Page color theme: dark, light (default: dark)")
	cmd.Flags().BoolVarP(&pc.verbose, "verbose", "v", false, "Show plot diagnostics")
	cmd.Flags().BoolVar(&pc.silent, "silent", false, "Suppress warnings and progress output")

	return cmd
}

func (pc *PlotCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(pc.configPath)
	if err != nil {
		return err
	}

	pc.applyConfig(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(pc.errOut, pc.verbose, pc.silent)

	file, err := las.Open(args[0])
	if err != nil {
		return err
	}

	well := pc.well
	if well == "" {
		well = file.Well
	}

	markers, err := pc.loadMarkers(well, logger)
	if err != nil {
		return err
	}

	curves := pc.curves
	if len(curves) == 0 {
		curves = dataCurves(file)
	}

	page, err := plot.BuildPage(file, curves, markers, plot.Options{
		Well:         well,
		DepthPadding: pc.depthPadding,
		Theme:        plot.Theme(pc.theme),
		Warnf: func(format string, warnArgs ...any) {
			logger.Warn(fmt.Sprintf(format, warnArgs...))
		},
	})
	if err != nil {
		return err
	}

	outPath, err := pc.writePage(page, well)
	if err != nil {
		return err
	}

	logger.Info("plot written", slog.String("path", outPath))

	return nil
}

func (pc *PlotCommand) loadMarkers(well string, logger *slog.Logger) ([]horizon.Marker, error) {
	if pc.horizonsPath == "" {
		return nil, nil
	}

	set, err := horizon.Open(pc.horizonsPath)
	if err != nil {
		return nil, err
	}

	markers := set.ForWell(well)
	if len(markers) == 0 {
		logger.Warn("no horizons for well", slog.String("well", well))
	}

	return markers, nil
}

func (pc *PlotCommand) writePage(page *plot.Page, well string) (string, error) {
	if err := os.MkdirAll(pc.outputDir, outputDirPerm); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := well
	if name == "" {
		name = "well"
	}

	outPath := filepath.Join(pc.outputDir, name+"_well_log.html")

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return "", err
	}

	return outPath, nil
}

func (pc *PlotCommand) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("depth-padding") {
		pc.depthPadding = cfg.Plot.DepthPadding
	}

	if pc.outputDir == "" {
		pc.outputDir = cfg.Plot.OutputDir
	}

	if pc.theme == "" {
		pc.theme = cfg.Plot.Theme
	}

	cfg.Plot.DepthPadding = pc.depthPadding
	cfg.Plot.OutputDir = pc.outputDir
	cfg.Plot.Theme = pc.theme
}

// dataCurves returns every curve except the depth index in the first column.
func dataCurves(file *las.File) []string {
	mnemonics := file.Mnemonics()
	if len(mnemonics) <= 1 {
		return nil
	}

	return mnemonics[1:]
}
