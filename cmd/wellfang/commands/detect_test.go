package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/wellfang/internal/config"
	"github.com/Sumatoshi-tech/wellfang/internal/report"
)

const commandLAS = `~Version
 VERS.          2.0 : CWLS log ASCII standard
~Well
 WELL.          W-3 : WELL
 NULL.      -999.25 : NULL VALUE
~Curve
 DEPT.M             : depth
 GR  .GAPI          : gamma ray
 DEN .G/CM3         : bulk density
~ASCII
 1500.0    55.0     2.40
 1500.5    -5.0     2.45
 1501.0    60.0     0.80
 1501.5    58.0  -999.25
`

func writeCommandLAS(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "w3.las")
	require.NoError(t, os.WriteFile(path, []byte(commandLAS), 0o600))

	return path
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestDetectCommand_JSONOutput(t *testing.T) {
	isolateConfig(t)

	var out, errOut bytes.Buffer

	cmd := newDetectCommand(&out, &errOut)
	cmd.SetArgs([]string{writeCommandLAS(t), "--format", "json"})

	require.NoError(t, cmd.Execute())

	var summary report.Summary

	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, "W-3", summary.Well)
	require.Len(t, summary.Curves, 2)
	assert.Equal(t, "GR", summary.Curves[0].Mnemonic)
	assert.Equal(t, "DEN", summary.Curves[1].Mnemonic)

	// The negative GR sample violates the built-in minimum.
	require.NotNil(t, summary.Curves[0].PriorRule)
	assert.Equal(t, 1, *summary.Curves[0].PriorRule)

	// DEN 0.80 is below the plausible density range; the null sample also counts.
	require.NotNil(t, summary.Curves[1].PriorRule)
	assert.Equal(t, 2, *summary.Curves[1].PriorRule)
}

func TestDetectCommand_TableOutput(t *testing.T) {
	isolateConfig(t)

	var out, errOut bytes.Buffer

	cmd := newDetectCommand(&out, &errOut)
	cmd.SetArgs([]string{writeCommandLAS(t), "--no-color"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Well W-3")
	assert.Contains(t, out.String(), "GR")
}

func TestDetectCommand_MissingCurveWarns(t *testing.T) {
	isolateConfig(t)

	var out, errOut bytes.Buffer

	cmd := newDetectCommand(&out, &errOut)
	cmd.SetArgs([]string{writeCommandLAS(t), "--curves", "GR,NOPE", "--format", "json"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, errOut.String(), "curve not found")

	var summary report.Summary

	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Len(t, summary.Curves, 1)
}

func TestDetectCommand_InvalidSigma(t *testing.T) {
	isolateConfig(t)

	var out, errOut bytes.Buffer

	cmd := newDetectCommand(&out, &errOut)
	cmd.SetArgs([]string{writeCommandLAS(t), "--sigma", "-1"})

	err := cmd.Execute()
	require.ErrorIs(t, err, config.ErrInvalidSigma)
}

func TestDetectCommand_UnknownFormat(t *testing.T) {
	isolateConfig(t)

	var out, errOut bytes.Buffer

	cmd := newDetectCommand(&out, &errOut)
	cmd.SetArgs([]string{writeCommandLAS(t), "--format", "xml"})

	err := cmd.Execute()
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestDetectCommand_RulesFileOverlay(t *testing.T) {
	isolateConfig(t)

	rulesPath := filepath.Join(t.TempDir(), "rules.json")
	rulesDoc := `{"GR": {"min": null, "max": 59.0, "description": "tight cap for testing"}}`
	require.NoError(t, os.WriteFile(rulesPath, []byte(rulesDoc), 0o600))

	var out, errOut bytes.Buffer

	cmd := newDetectCommand(&out, &errOut)
	cmd.SetArgs([]string{
		writeCommandLAS(t),
		"--rules-file", rulesPath,
		"--curves", "GR",
		"--detectors", "prior-rule",
		"--format", "json",
	})

	require.NoError(t, cmd.Execute())

	var summary report.Summary

	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	require.Len(t, summary.Curves, 1)

	// Overlay drops the min bound and caps at 59: only 60.0 is flagged.
	require.NotNil(t, summary.Curves[0].PriorRule)
	assert.Equal(t, 1, *summary.Curves[0].PriorRule)
	assert.Equal(t, "tight cap for testing", summary.Curves[0].RuleRationale)
}

func TestDetectCommand_MissingFile(t *testing.T) {
	isolateConfig(t)

	var out, errOut bytes.Buffer

	cmd := newDetectCommand(&out, &errOut)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.las")})

	require.Error(t, cmd.Execute())
}
