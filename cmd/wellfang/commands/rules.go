package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/wellfang/internal/report"
	"github.com/Sumatoshi-tech/wellfang/pkg/anomaly"
)

// ruleRow is one rule-table entry in machine-readable output.
type ruleRow struct {
	Mnemonic    string   `json:"mnemonic"              yaml:"mnemonic"`
	Min         *float64 `json:"min"                   yaml:"min"`
	Max         *float64 `json:"max"                   yaml:"max"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the built-in physical-range rule table",
		Long: `Show the physical-range bounds the prior-rule detector applies per
curve mnemonic. A dash marks an unbounded side.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return renderRules(os.Stdout, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", report.FormatTable, "Output format: table, json, yaml")

	return cmd
}

func renderRules(w io.Writer, format string) error {
	rows := ruleRows()

	switch format {
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode rules json: %w", err)
		}

		return nil
	case report.FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode rules yaml: %w", err)
		}

		return nil
	case report.FormatTable:
		renderRulesTable(w, rows)

		return nil
	default:
		return fmt.Errorf("%w: %q", report.ErrUnknownFormat, format)
	}
}

func ruleRows() []ruleRow {
	mnemonics := anomaly.Mnemonics()
	rows := make([]ruleRow, 0, len(mnemonics))

	for _, mnemonic := range mnemonics {
		rule, _ := anomaly.RuleFor(mnemonic)
		rows = append(rows, ruleRow{
			Mnemonic:    mnemonic,
			Min:         rule.Min,
			Max:         rule.Max,
			Description: rule.Description,
		})
	}

	return rows
}

func renderRulesTable(w io.Writer, rows []ruleRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Mnemonic", "Min", "Max", "Rationale"})

	for _, row := range rows {
		tw.AppendRow(table.Row{row.Mnemonic, boundCell(row.Min), boundCell(row.Max), row.Description})
	}

	tw.Render()
}

// boundCell formats an optional bound; a dash marks an unbounded side.
func boundCell(v *float64) string {
	if v == nil {
		return "-"
	}

	return strconv.FormatFloat(*v, 'g', -1, 64)
}
