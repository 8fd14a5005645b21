// Package rulesfile loads user-supplied anomaly rule tables from JSON files.
// Files are validated against an embedded JSON Schema before merging over the
// built-in rule table, so malformed documents fail loudly with the collected
// validation messages instead of silently producing wrong bounds.
package rulesfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/wellfang/pkg/anomaly"
)

// schema constrains rule documents: an object keyed by curve mnemonic, each
// entry holding optional numeric min/max (null means unbounded) and an
// optional description.
const schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 1,
  "patternProperties": {
    "^[A-Z][A-Z0-9_]{0,15}$": {
      "type": "object",
      "properties": {
        "min": {"type": ["number", "null"]},
        "max": {"type": ["number", "null"]},
        "description": {"type": "string"}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

// ErrInvalidRules indicates the document failed schema validation.
var ErrInvalidRules = errors.New("rulesfile: document failed validation")

// entry mirrors one JSON rule object.
type entry struct {
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Description string   `json:"description"`
}

// Load parses and validates the rule file at path, returning its entries as
// a rule table fragment.
func Load(path string) (map[string]anomaly.Rule, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	parsed, err := Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}

	return parsed, nil
}

// Parse validates and decodes a rule document.
func Parse(doc []byte) (map[string]anomaly.Rule, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("validate rules: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrInvalidRules, strings.Join(messages, "; "))
	}

	var entries map[string]entry

	if err := json.Unmarshal(doc, &entries); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	rules := make(map[string]anomaly.Rule, len(entries))
	for mnem, e := range entries {
		rules[mnem] = anomaly.Rule{Min: e.Min, Max: e.Max, Description: e.Description}
	}

	return rules, nil
}

// Merge overlays custom rules on the built-in table. File entries win; the
// built-ins are not modified.
func Merge(custom map[string]anomaly.Rule) map[string]anomaly.Rule {
	merged := anomaly.Table()
	for mnem, rule := range custom {
		merged[mnem] = rule
	}

	return merged
}
