package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/wellfang/internal/report"
)

func TestRenderRules_Table(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, renderRules(&out, report.FormatTable))

	text := out.String()
	assert.Contains(t, text, "GR")
	assert.Contains(t, text, "DEN")

	// GR has no upper bound.
	assert.Contains(t, text, "-")
}

func TestRenderRules_JSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, renderRules(&out, report.FormatJSON))

	var rows []ruleRow

	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.NotEmpty(t, rows)

	byMnemonic := make(map[string]ruleRow, len(rows))
	for _, row := range rows {
		byMnemonic[row.Mnemonic] = row
	}

	gr, ok := byMnemonic["GR"]
	require.True(t, ok)
	require.NotNil(t, gr.Min)
	assert.InDelta(t, 0.0, *gr.Min, 1e-9)
	assert.Nil(t, gr.Max)
}

func TestRenderRules_UnknownFormat(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := renderRules(&out, "xml")
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestNewMCPCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := NewMCPCommand()
	assert.Equal(t, "mcp", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("debug"))
	assert.NotNil(t, cmd.Flags().Lookup("metrics-addr"))
}
