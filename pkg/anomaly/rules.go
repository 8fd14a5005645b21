package anomaly

import "sort"

// Rule holds the prior physical-range bounds for one curve mnemonic.
// A nil bound means that side is unbounded. Description records the
// petrophysical rationale for the bounds.
type Rule struct {
	Min         *float64
	Max         *float64
	Description string
}

// rules is the built-in rule table keyed by curve mnemonic. It is constructed
// once at init and never mutated; callers get copies via RuleFor and Table.
var rules = map[string]Rule{
	"GR": {
		Min:         Bound(0),
		Description: "gamma ray cannot be negative (physical meaning)",
	},
	"DEN": {
		Min:         Bound(1.0),
		Max:         Bound(3.0),
		Description: "density below 1.0 indicates washout or drilling mud, above 3.0 is implausible",
	},
	"RHOB": {
		Min:         Bound(1.0),
		Max:         Bound(3.0),
		Description: "density below 1.0 indicates washout or drilling mud, above 3.0 is implausible",
	},
	"DT": {
		Min:         Bound(40),
		Max:         Bound(200),
		Description: "below 40 is cycle skipping, above 200 indicates extremely unconsolidated formation or error",
	},
	"AC": {
		Min:         Bound(40),
		Max:         Bound(200),
		Description: "below 40 is cycle skipping, above 200 indicates extremely unconsolidated formation or error",
	},
	"CAL": {
		Min:         Bound(8.5),
		Max:         Bound(16.0),
		Description: "caliper should not read below bit size; far above bit size indicates severe washout",
	},
	"CALI": {
		Min:         Bound(8.5),
		Max:         Bound(16.0),
		Description: "caliper should not read below bit size; far above bit size indicates severe washout",
	},
	"LLD": {
		Min:         Bound(0.1),
		Max:         Bound(2000),
		Description: "extremely low resistivity indicates tool short circuit, extreme highs need truncation",
	},
	"LLD1": {
		Min:         Bound(0.1),
		Max:         Bound(2000),
		Description: "extremely low resistivity indicates tool short circuit, extreme highs need truncation",
	},
	"POR": {
		Min:         Bound(0.1),
		Max:         Bound(1.0),
		Description: "0.1 porosity is a default fill value; samples at or below it are discarded",
	},
}

// RuleFor returns the built-in rule for a curve mnemonic. The lookup is
// exact; mnemonic aliasing is the caller's concern.
func RuleFor(mnemonic string) (Rule, bool) {
	rule, ok := rules[mnemonic]

	return rule, ok
}

// Mnemonics returns the sorted mnemonics covered by the built-in rule table.
func Mnemonics() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Table returns a copy of the built-in rule table. Mutating the copy does not
// affect the built-ins.
func Table() map[string]Rule {
	table := make(map[string]Rule, len(rules))
	for name, rule := range rules {
		table[name] = rule
	}

	return table
}

// Bound returns a pointer to v, for building Rule values with literal bounds.
func Bound(v float64) *float64 {
	return &v
}
