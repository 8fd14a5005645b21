// Package plot renders multi-track well-log depth plots as go-echarts HTML
// pages. Each selected curve gets its own track sharing an inverted depth
// axis; geological horizon markers are overlaid as labeled dashed lines.
package plot

// Theme selects a page color theme.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ThemeConfig holds theme-specific styling values for the page and charts.
type ThemeConfig struct {
	Background  string
	Surface     string
	Border      string
	TextPrimary string
	TextMuted   string

	ChartGrid      string
	ChartAxis      string
	ChartText      string
	ChartTextMuted string

	// HorizonLine colors the horizon marker lines.
	HorizonLine string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

var lightTheme = ThemeConfig{
	Background:  "#fafaf9", // stone-50.
	Surface:     "#ffffff",
	Border:      "#e7e5e4", // stone-200.
	TextPrimary: "#1c1917", // stone-900.
	TextMuted:   "#78716c", // stone-500.

	ChartGrid:      "#e7e5e4", // stone-200.
	ChartAxis:      "#a8a29e", // stone-400.
	ChartText:      "#44403c", // stone-700.
	ChartTextMuted: "#78716c", // stone-500.

	HorizonLine: "#1c1917", // stone-900.
}

var darkTheme = ThemeConfig{
	Background:  "#0c0a09", // stone-950.
	Surface:     "#1c1917", // stone-900.
	Border:      "#44403c", // stone-700.
	TextPrimary: "#fafaf9", // stone-50.
	TextMuted:   "#a8a29e", // stone-400.

	ChartGrid:      "#44403c", // stone-700.
	ChartAxis:      "#57534e", // stone-600.
	ChartText:      "#d6d3d1", // stone-300.
	ChartTextMuted: "#a8a29e", // stone-400.

	HorizonLine: "#fafaf9", // stone-50.
}

// CurveStyle describes how one curve mnemonic is drawn: line color, value
// axis range (nil bounds auto-scale), axis label, and whether the value axis
// is logarithmic (resistivity curves).
type CurveStyle struct {
	Color    string
	Min      *float64
	Max      *float64
	Label    string
	LogScale bool
}

// DefaultCurveStyle is used for curves without a built-in style entry.
func DefaultCurveStyle(mnemonic string) CurveStyle {
	return CurveStyle{Color: "#78716c", Label: mnemonic}
}

// curveStyles is the built-in style table keyed by mnemonic.
var curveStyles = map[string]CurveStyle{
	"GR":     {Color: "#16a34a", Min: f(0), Max: f(150), Label: "GR (gAPI)"},
	"GAMMA":  {Color: "#16a34a", Min: f(0), Max: f(150), Label: "GAMMA (gAPI)"},
	"DT":     {Color: "#2563eb", Min: f(40), Max: f(240), Label: "DT (us/ft)"},
	"AC":     {Color: "#2563eb", Min: f(40), Max: f(240), Label: "AC (us/ft)"},
	"DEN":    {Color: "#dc2626", Min: f(1.95), Max: f(2.95), Label: "DEN (g/cm3)"},
	"RHOB":   {Color: "#dc2626", Min: f(1.95), Max: f(2.95), Label: "RHOB (g/cm3)"},
	"NPHI":   {Color: "#0891b2", Min: f(-0.05), Max: f(0.45), Label: "NPHI (v/v)"},
	"SP":     {Color: "#ea580c", Min: f(-150), Max: f(50), Label: "SP (mV)"},
	"CN":     {Color: "#0891b2", Min: f(0), Max: f(0.45), Label: "CN (v/v)"},
	"LLD":    {Color: "#7c3aed", Min: f(0.2), Max: f(2000), Label: "LLD (ohm.m)", LogScale: true},
	"LLD1":   {Color: "#7c3aed", Min: f(0.2), Max: f(2000), Label: "LLD1 (ohm.m)", LogScale: true},
	"RT":     {Color: "#be185d", Min: f(0.2), Max: f(2000), Label: "RT (ohm.m)", LogScale: true},
	"CAL":    {Color: "#a16207", Min: f(6), Max: f(20), Label: "CAL (in)"},
	"CALI":   {Color: "#a16207", Min: f(6), Max: f(20), Label: "CALI (in)"},
	"INPEFA": {Color: "#1c1917", Min: f(-2), Max: f(2), Label: "INPEFA"},
	"POR":    {Color: "#0d9488", Min: f(0), Max: f(0.4), Label: "POR (v/v)"},
	"SW":     {Color: "#2563eb", Min: f(0), Max: f(1), Label: "SW (v/v)"},
	"VSH":    {Color: "#4d7c0f", Min: f(0), Max: f(1), Label: "VSH (v/v)"},
}

// StyleFor returns the built-in style for a curve mnemonic.
func StyleFor(mnemonic string) (CurveStyle, bool) {
	style, ok := curveStyles[mnemonic]

	return style, ok
}

func f(v float64) *float64 {
	return &v
}
