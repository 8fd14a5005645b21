package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/wellfang/internal/config"
	"github.com/Sumatoshi-tech/wellfang/internal/detect"
	"github.com/Sumatoshi-tech/wellfang/internal/las"
	"github.com/Sumatoshi-tech/wellfang/pkg/anomaly"
)

// Tool name constants.
const (
	ToolNameDetect = "welllog_detect"
	ToolNameRules  = "welllog_rules"
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyLASPath indicates the las_path parameter is empty.
	ErrEmptyLASPath = errors.New("las_path parameter is required and must not be empty")
	// ErrLASPathNotAbsolute indicates the las_path is not an absolute path.
	ErrLASPathNotAbsolute = errors.New("las_path must be an absolute path")
	// ErrCurveNotFound indicates a requested curve is absent from the file.
	ErrCurveNotFound = errors.New("curve not found in file")
	// ErrUnknownMnemonic indicates the rule table has no entry for the mnemonic.
	ErrUnknownMnemonic = errors.New("no rule registered for mnemonic")
)

// Input types (auto-generate JSON schemas via struct tags).

// DetectInput is the input schema for the welllog_detect tool.
type DetectInput struct {
	Curves        []string `json:"curves,omitempty"         jsonschema:"optional list of curve mnemonics (default: every data curve)"`
	Detectors     []string `json:"detectors,omitempty"      jsonschema:"optional detectors to run: prior-rule three-sigma iqr (default: all)"`
	IQRMultiplier float64  `json:"iqr_multiplier,omitempty" jsonschema:"IQR fence multiplier (default: 1.5)"`
	LASPath       string   `json:"las_path"                 jsonschema:"absolute path to a LAS 2.0 well-log file"`
	Sigma         float64  `json:"sigma,omitempty"          jsonschema:"standard deviation multiplier for the 3-sigma filter (default: 3)"`
}

// RulesInput is the input schema for the welllog_rules tool.
type RulesInput struct {
	Mnemonic string `json:"mnemonic,omitempty" jsonschema:"optional curve mnemonic to look up (default: the full table)"`
}

// RuleEntry is one row of the rule table as returned by the rules tool.
type RuleEntry struct {
	Mnemonic    string   `json:"mnemonic"`
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Description string   `json:"description"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateDetectInput checks path and detector-name constraints.
func validateDetectInput(input DetectInput) error {
	if input.LASPath == "" {
		return ErrEmptyLASPath
	}

	if !filepath.IsAbs(input.LASPath) {
		return fmt.Errorf("%w: %q", ErrLASPathNotAbsolute, input.LASPath)
	}

	for _, name := range input.Detectors {
		switch name {
		case config.DetectorPriorRule, config.DetectorThreeSigma, config.DetectorIQR:
		default:
			return fmt.Errorf("%w: %q", config.ErrUnknownDetector, name)
		}
	}

	return nil
}

func handleDetect(
	_ context.Context, _ *mcpsdk.CallToolRequest, input DetectInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateDetectInput(input); err != nil {
		return errorResult(err)
	}

	file, err := las.Open(input.LASPath)
	if err != nil {
		return errorResult(err)
	}

	outcome, missing := detect.Run(file, input.Curves, detect.Params{
		Sigma:         input.Sigma,
		IQRMultiplier: input.IQRMultiplier,
		Detectors:     input.Detectors,
		Source:        input.LASPath,
	})
	if len(missing) > 0 {
		return errorResult(fmt.Errorf("%w: %s", ErrCurveNotFound, strings.Join(missing, ", ")))
	}

	return jsonResult(outcome)
}

func handleRules(
	_ context.Context, _ *mcpsdk.CallToolRequest, input RulesInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.Mnemonic != "" {
		rule, ok := anomaly.RuleFor(input.Mnemonic)
		if !ok {
			return errorResult(fmt.Errorf("%w: %q", ErrUnknownMnemonic, input.Mnemonic))
		}

		return jsonResult(ruleEntry(input.Mnemonic, rule))
	}

	mnemonics := anomaly.Mnemonics()
	entries := make([]RuleEntry, 0, len(mnemonics))

	for _, mnemonic := range mnemonics {
		rule, _ := anomaly.RuleFor(mnemonic)
		entries = append(entries, ruleEntry(mnemonic, rule))
	}

	return jsonResult(entries)
}

func ruleEntry(mnemonic string, rule anomaly.Rule) RuleEntry {
	return RuleEntry{
		Mnemonic:    mnemonic,
		Min:         rule.Min,
		Max:         rule.Max,
		Description: rule.Description,
	}
}
