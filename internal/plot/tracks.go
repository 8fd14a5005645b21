package plot

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/wellfang/internal/horizon"
	"github.com/Sumatoshi-tech/wellfang/internal/las"
	"github.com/Sumatoshi-tech/wellfang/pkg/alg/stats"
)

const (
	trackWidth  = "320px"
	trackHeight = "860px"

	curveLineWidth   = 1
	horizonLineWidth = 2
)

// DefaultDepthPadding is the extra depth shown above the shallowest and below
// the deepest horizon, in depth units.
const DefaultDepthPadding = 20.0

// ErrNoPlottableCurves indicates none of the requested curves exist in the file.
var ErrNoPlottableCurves = errors.New("plot: no plottable curves")

// Options controls page construction.
type Options struct {
	// Well names the well, used for the page title and horizon labels.
	Well string

	// DepthPadding extends the horizon depth window on both ends.
	DepthPadding float64

	// Theme selects the page color theme.
	Theme Theme

	// Warnf receives non-fatal degradation notices (missing curves, missing
	// styles). Nil discards them.
	Warnf func(format string, args ...any)
}

func (o Options) warnf(format string, args ...any) {
	if o.Warnf != nil {
		o.Warnf(format, args...)
	}
}

// BuildPage assembles a multi-track depth plot for the requested curves.
// Curves absent from the file are skipped with a warning; an empty result is
// an error. Horizon markers outside the depth window are dropped.
func BuildPage(file *las.File, curveNames []string, markers []horizon.Marker, options Options) (*Page, error) {
	if options.DepthPadding < 0 {
		options.DepthPadding = 0
	}

	depths := file.Depths()
	minDepth, maxDepth := depthWindow(depths, markers, options.DepthPadding)

	theme := GetThemeConfig(options.Theme)
	page := NewPage(options.Well, theme)

	var visibleMarkers []horizon.Marker

	for _, m := range markers {
		if m.MD >= minDepth && m.MD <= maxDepth {
			visibleMarkers = append(visibleMarkers, m)
		}
	}

	page.Surfaces = surfaceNames(visibleMarkers)

	first := true

	for _, name := range curveNames {
		samples, ok := file.Curve(name)
		if !ok {
			options.warnf("curve %q not present in LAS file, skipping", name)

			continue
		}

		style, ok := StyleFor(name)
		if !ok {
			style = DefaultCurveStyle(name)
			options.warnf("curve %q has no built-in style, using default", name)
		}

		track := buildTrack(theme, name, style, depths, samples, minDepth, maxDepth, visibleMarkers, first)
		page.AddTrack(track)

		first = false
	}

	if len(page.Tracks) == 0 {
		return nil, ErrNoPlottableCurves
	}

	subtitle := fmt.Sprintf("depth %.2f to %.2f", minDepth, maxDepth)
	if len(visibleMarkers) > 0 {
		subtitle += fmt.Sprintf(", %d horizons", len(visibleMarkers))
	}

	page.Subtitle = subtitle

	return page, nil
}

// depthWindow picks the plotted depth range: the horizon span padded on both
// ends when markers exist, the full finite depth range otherwise.
func depthWindow(depths []float64, markers []horizon.Marker, padding float64) (minDepth, maxDepth float64) {
	if len(markers) > 0 {
		mds := make([]float64, len(markers))
		for i, m := range markers {
			mds[i] = m.MD
		}

		return stats.Min(mds) - padding, stats.Max(mds) + padding
	}

	finite := stats.Finite(depths)

	return stats.Min(finite), stats.Max(finite)
}

func buildTrack(
	theme ThemeConfig,
	mnemonic string,
	style CurveStyle,
	depths, samples []float64,
	minDepth, maxDepth float64,
	markers []horizon.Marker,
	labelHorizons bool,
) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           trackWidth,
			Height:          trackHeight,
			BackgroundColor: "transparent",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(valueAxis(theme, style)),
		charts.WithYAxisOpts(depthAxis(theme, minDepth, maxDepth)),
		charts.WithGridOpts(opts.Grid{Top: "50", Bottom: "30", Left: "60", Right: "20"}),
	)

	data := make([]opts.LineData, 0, len(samples))

	for i, depth := range depths {
		if depth < minDepth || depth > maxDepth {
			continue
		}

		v := samples[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		data = append(data, opts.LineData{Value: []any{v, depth}})
	}

	seriesOpts := []charts.SeriesOpts{
		charts.WithItemStyleOpts(opts.ItemStyle{Color: style.Color}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: style.Color, Width: curveLineWidth}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	}

	for _, m := range markers {
		seriesOpts = append(seriesOpts, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  m.Surface,
			YAxis: m.MD,
		}))
	}

	if len(markers) > 0 {
		seriesOpts = append(seriesOpts, charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol: []string{"none", "none"},
			Label: &opts.Label{
				Show:      opts.Bool(labelHorizons),
				Formatter: "{b}",
				Color:     theme.ChartText,
				Position:  "insideStartTop",
			},
			LineStyle: &opts.LineStyle{
				Color: theme.HorizonLine,
				Type:  "dashed",
				Width: horizonLineWidth,
			},
		}))
	}

	line.AddSeries(mnemonic, data, seriesOpts...)

	return line
}

func valueAxis(theme ThemeConfig, style CurveStyle) opts.XAxis {
	axis := opts.XAxis{
		Name:      style.Label,
		Type:      "value",
		AxisLabel: &opts.AxisLabel{Color: theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: theme.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: theme.ChartGrid},
		},
	}

	if style.LogScale {
		axis.Type = "log"
	}

	if style.Min != nil {
		axis.Min = *style.Min
	}

	if style.Max != nil {
		axis.Max = *style.Max
	}

	return axis
}

func depthAxis(theme ThemeConfig, minDepth, maxDepth float64) opts.YAxis {
	// Depth increases downward.
	return opts.YAxis{
		Name:      "Depth",
		Type:      "value",
		Inverse:   opts.Bool(true),
		Min:       minDepth,
		Max:       maxDepth,
		AxisLabel: &opts.AxisLabel{Color: theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: theme.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: theme.ChartGrid},
		},
	}
}

func surfaceNames(markers []horizon.Marker) []string {
	names := make([]string, len(markers))
	for i, m := range markers {
		names[i] = m.Surface
	}

	return names
}
