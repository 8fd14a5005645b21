// Package report renders per-curve anomaly detection summaries for terminal
// and machine consumption. It counts masks; it never alters them.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/wellfang/pkg/anomaly"
)

// Output format names.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Flagged-percentage thresholds for severity coloring.
const (
	flaggedWarningPercent = 10.0
	flaggedErrorPercent   = 25.0
)

const percentScale = 100.0

// ErrUnknownFormat indicates an unsupported output format name.
var ErrUnknownFormat = errors.New("report: unknown output format")

// CurveSummary aggregates the detection outcome for one curve. Detector
// counts are nil when that detector was not run.
type CurveSummary struct {
	Mnemonic       string  `json:"mnemonic"                       yaml:"mnemonic"`
	Samples        int     `json:"samples"                        yaml:"samples"`
	Finite         int     `json:"finite"                         yaml:"finite"`
	PriorRule      *int    `json:"prior_rule,omitempty"           yaml:"prior_rule,omitempty"`
	ThreeSigma     *int    `json:"three_sigma,omitempty"          yaml:"three_sigma,omitempty"`
	IQR            *int    `json:"iqr,omitempty"                  yaml:"iqr,omitempty"`
	Union          int     `json:"union"                          yaml:"union"`
	FlaggedPercent float64 `json:"flagged_percent"                yaml:"flagged_percent"`
	RuleRationale  string  `json:"rule_rationale,omitempty"       yaml:"rule_rationale,omitempty"`
}

// Summary is the full detection report for one LAS file.
type Summary struct {
	Well   string         `json:"well,omitempty"   yaml:"well,omitempty"`
	Source string         `json:"source,omitempty" yaml:"source,omitempty"`
	Curves []CurveSummary `json:"curves"           yaml:"curves"`
}

// AddCurve appends the summary row for one curve from its masks.
// Nil masks mean the corresponding detector was not run.
func (s *Summary) AddCurve(mnemonic string, samples, finite int, prior, sigma, iqr []bool, rationale string) {
	cs := CurveSummary{
		Mnemonic:      mnemonic,
		Samples:       samples,
		Finite:        finite,
		RuleRationale: rationale,
	}

	var masks [][]bool

	if prior != nil {
		n := anomaly.Count(prior)
		cs.PriorRule = &n
		masks = append(masks, prior)
	}

	if sigma != nil {
		n := anomaly.Count(sigma)
		cs.ThreeSigma = &n
		masks = append(masks, sigma)
	}

	if iqr != nil {
		n := anomaly.Count(iqr)
		cs.IQR = &n
		masks = append(masks, iqr)
	}

	if len(masks) > 0 {
		cs.Union = anomaly.Count(anomaly.Union(masks...))
	}

	if samples > 0 {
		cs.FlaggedPercent = percentScale * float64(cs.Union) / float64(samples)
	}

	s.Curves = append(s.Curves, cs)
}

// Render writes the summary in the requested format.
func (s *Summary) Render(w io.Writer, format string, noColor bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode report json: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode report yaml: %w", err)
		}

		return nil
	case FormatTable:
		s.renderTable(w, noColor)

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (s *Summary) renderTable(w io.Writer, noColor bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	if s.Well != "" {
		tw.SetTitle("Well %s", s.Well)
	}

	tw.AppendHeader(table.Row{"Curve", "Samples", "Finite", "Prior", "3-sigma", "IQR", "Union", "Flagged"})

	for _, cs := range s.Curves {
		tw.AppendRow(table.Row{
			cs.Mnemonic,
			humanize.Comma(int64(cs.Samples)),
			humanize.Comma(int64(cs.Finite)),
			countCell(cs.PriorRule),
			countCell(cs.ThreeSigma),
			countCell(cs.IQR),
			humanize.Comma(int64(cs.Union)),
			flaggedCell(cs.FlaggedPercent, noColor),
		})
	}

	tw.Render()
}

// countCell formats an optional detector count; a dash marks "not run".
func countCell(n *int) string {
	if n == nil {
		return "-"
	}

	return humanize.Comma(int64(*n))
}

// flaggedCell colors the flagged percentage by severity.
func flaggedCell(percent float64, noColor bool) string {
	text := fmt.Sprintf("%.1f%%", percent)
	if noColor {
		return text
	}

	switch {
	case percent >= flaggedErrorPercent:
		return color.New(color.FgRed).Sprint(text)
	case percent >= flaggedWarningPercent:
		return color.New(color.FgYellow).Sprint(text)
	default:
		return color.New(color.FgGreen).Sprint(text)
	}
}
