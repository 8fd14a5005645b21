package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/wellfang/internal/report"
)

func buildSummary() *report.Summary {
	s := &report.Summary{Well: "W-1", Source: "w1.las"}

	prior := []bool{true, false, false, false}
	sigma := []bool{false, false, false, true}
	iqr := []bool{false, false, false, true}

	s.AddCurve("GR", 4, 3, prior, sigma, iqr, "gamma ray cannot be negative")
	s.AddCurve("DEN", 4, 4, nil, sigma, nil, "")

	return s
}

func TestAddCurve_Counts(t *testing.T) {
	t.Parallel()

	s := buildSummary()
	require.Len(t, s.Curves, 2)

	gr := s.Curves[0]
	require.NotNil(t, gr.PriorRule)
	assert.Equal(t, 1, *gr.PriorRule)
	require.NotNil(t, gr.ThreeSigma)
	assert.Equal(t, 1, *gr.ThreeSigma)
	assert.Equal(t, 2, gr.Union, "union counts distinct flagged indices")
	assert.InDelta(t, 50.0, gr.FlaggedPercent, 1e-9)

	den := s.Curves[1]
	assert.Nil(t, den.PriorRule, "detector not run stays nil")
	assert.Equal(t, 1, den.Union)
	assert.InDelta(t, 25.0, den.FlaggedPercent, 1e-9)
}

func TestAddCurve_ZeroSamples(t *testing.T) {
	t.Parallel()

	s := &report.Summary{}
	s.AddCurve("GR", 0, 0, []bool{}, nil, nil, "")

	assert.InDelta(t, 0, s.Curves[0].FlaggedPercent, 1e-9, "no division by zero on empty curve")
}

func TestRender_Table(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, buildSummary().Render(&buf, report.FormatTable, true))

	out := buf.String()
	assert.Contains(t, out, "Well W-1")
	assert.Contains(t, out, "GR")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "-", "detectors not run render as a dash")
}

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, buildSummary().Render(&buf, report.FormatJSON, true))

	var decoded report.Summary

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "W-1", decoded.Well)
	require.Len(t, decoded.Curves, 2)
	assert.Equal(t, "GR", decoded.Curves[0].Mnemonic)

	// Not-run detectors are omitted, not zeroed.
	assert.NotContains(t, buf.String(), `"prior_rule": 0`)
}

func TestRender_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, buildSummary().Render(&buf, report.FormatYAML, true))

	var decoded report.Summary

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Curves, 2)
	assert.Equal(t, 2, decoded.Curves[0].Union)
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := buildSummary().Render(&bytes.Buffer{}, "xml", true)
	require.ErrorIs(t, err, report.ErrUnknownFormat)
	assert.True(t, strings.Contains(err.Error(), "xml"))
}
