// Package detect runs the configured anomaly detectors over the curves of a
// parsed LAS file and aggregates the outcome into a report summary. It is the
// shared engine behind the detect command and the MCP detect tool.
package detect

import (
	"github.com/Sumatoshi-tech/wellfang/internal/config"
	"github.com/Sumatoshi-tech/wellfang/internal/las"
	"github.com/Sumatoshi-tech/wellfang/internal/report"
	"github.com/Sumatoshi-tech/wellfang/pkg/alg/stats"
	"github.com/Sumatoshi-tech/wellfang/pkg/anomaly"
)

// Params control which detectors run and with what thresholds.
type Params struct {
	// Sigma is the 3-sigma fence width. Non-positive falls back to the default.
	Sigma float64

	// IQRMultiplier is the IQR fence multiplier. Non-positive falls back to the default.
	IQRMultiplier float64

	// Detectors names the detectors to run. Empty runs all three.
	Detectors []string

	// Rules maps mnemonics to prior-rule bounds. Nil uses the built-in table.
	Rules map[string]anomaly.Rule

	// Source labels the summary with the input file path.
	Source string

	// ReporterFor, when non-nil, supplies a per-curve diagnostics sink.
	ReporterFor func(mnemonic string) anomaly.Reporter
}

// CurveMasks carries the sample-level outcome for one curve. A detector mask
// is nil when that detector did not run on the curve; Flagged lists the
// indices where the union of the masks is set.
type CurveMasks struct {
	Mnemonic   string `json:"mnemonic"`
	PriorRule  []bool `json:"prior_rule,omitempty"`
	ThreeSigma []bool `json:"three_sigma,omitempty"`
	IQR        []bool `json:"iqr,omitempty"`
	Flagged    []int  `json:"flagged_indices"`
}

// Outcome pairs the aggregated summary with the per-curve mask detail.
type Outcome struct {
	Summary *report.Summary `json:"summary"`
	Curves  []CurveMasks    `json:"curves"`
}

// Run applies the detectors to each named curve and returns the outcome plus
// the requested curves missing from the file. Empty curveNames means every
// curve except the index curve.
func Run(file *las.File, curveNames []string, params Params) (*Outcome, []string) {
	if params.Sigma <= 0 {
		params.Sigma = anomaly.DefaultSigma
	}

	if params.IQRMultiplier <= 0 {
		params.IQRMultiplier = anomaly.DefaultIQRMultiplier
	}

	rules := params.Rules
	if rules == nil {
		rules = anomaly.Table()
	}

	if len(curveNames) == 0 {
		curveNames = dataCurves(file)
	}

	runPrior := wantDetector(params.Detectors, config.DetectorPriorRule)
	runSigma := wantDetector(params.Detectors, config.DetectorThreeSigma)
	runIQR := wantDetector(params.Detectors, config.DetectorIQR)

	outcome := &Outcome{
		Summary: &report.Summary{Well: file.Well, Source: params.Source},
	}

	var missing []string

	for _, name := range curveNames {
		data, ok := file.Curve(name)
		if !ok {
			missing = append(missing, name)

			continue
		}

		var rep anomaly.Reporter
		if params.ReporterFor != nil {
			rep = params.ReporterFor(name)
		}

		var prior, sigma, iqr []bool

		var rationale string

		if runPrior {
			if rule, found := rules[name]; found {
				prior = anomaly.PriorRuleMask(data, rule.Min, rule.Max)
				rationale = rule.Description
			}
		}

		if runSigma {
			sigma = anomaly.ThreeSigmaMask(data, params.Sigma, rep)
		}

		if runIQR {
			iqr = anomaly.IQRMask(data, params.IQRMultiplier, rep)
		}

		outcome.Summary.AddCurve(name, len(data), len(stats.Finite(data)), prior, sigma, iqr, rationale)
		outcome.Curves = append(outcome.Curves, curveMasks(name, prior, sigma, iqr))
	}

	return outcome, missing
}

func curveMasks(name string, prior, sigma, iqr []bool) CurveMasks {
	detail := CurveMasks{
		Mnemonic:   name,
		PriorRule:  prior,
		ThreeSigma: sigma,
		IQR:        iqr,
		Flagged:    []int{},
	}

	var masks [][]bool

	for _, mask := range [][]bool{prior, sigma, iqr} {
		if mask != nil {
			masks = append(masks, mask)
		}
	}

	if len(masks) == 0 {
		return detail
	}

	for i, flagged := range anomaly.Union(masks...) {
		if flagged {
			detail.Flagged = append(detail.Flagged, i)
		}
	}

	return detail
}

// dataCurves returns every curve except the first, which holds the depth index.
func dataCurves(file *las.File) []string {
	mnemonics := file.Mnemonics()
	if len(mnemonics) <= 1 {
		return nil
	}

	return mnemonics[1:]
}

func wantDetector(detectors []string, name string) bool {
	if len(detectors) == 0 {
		return true
	}

	for _, d := range detectors {
		if d == name {
			return true
		}
	}

	return false
}
