package plot

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = 8 // len("</style>").

// echartsAsset is the ECharts runtime loaded by the rendered page.
const echartsAsset = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

// Renderable is the interface for chart components.
type Renderable interface {
	Render(w io.Writer) error
}

// Page is one multi-track depth plot document.
type Page struct {
	// Title is the well name shown in the page header.
	Title string

	// Subtitle summarizes the depth window and horizon count.
	Subtitle string

	// Surfaces lists the horizon surface names in depth order.
	Surfaces []string

	// Tracks holds one chart per plotted curve, left to right.
	Tracks []Renderable

	theme ThemeConfig
}

// NewPage creates an empty plot page for a well.
func NewPage(title string, theme ThemeConfig) *Page {
	return &Page{
		Title: title,
		theme: theme,
	}
}

// AddTrack appends a chart track to the page.
func (p *Page) AddTrack(track Renderable) {
	p.Tracks = append(p.Tracks, track)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} well log</title>
<script src="{{.Asset}}"></script>
<style>
body { margin: 0; background: {{.Theme.Background}}; color: {{.Theme.TextPrimary}};
       font-family: ui-sans-serif, system-ui, sans-serif; }
header { padding: 16px 24px; border-bottom: 1px solid {{.Theme.Border}}; }
header h1 { margin: 0; font-size: 20px; }
header p { margin: 4px 0 0; color: {{.Theme.TextMuted}}; font-size: 13px; }
.surfaces { color: {{.Theme.TextMuted}}; font-size: 13px; }
.tracks { display: flex; flex-direction: row; overflow-x: auto; padding: 12px; gap: 4px; }
.track { background: {{.Theme.Surface}}; border: 1px solid {{.Theme.Border}}; border-radius: 6px; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}
{{if .Surfaces}}<p class="surfaces">horizons: {{range $i, $s := .Surfaces}}{{if $i}}, {{end}}{{$s}}{{end}}</p>{{end}}
</header>
<div class="tracks">
{{range .TrackHTML}}<div class="track">{{.}}</div>
{{end}}</div>
</body>
</html>
`))

type pageData struct {
	Title     string
	Subtitle  string
	Surfaces  []string
	Theme     ThemeConfig
	Asset     string
	TrackHTML []template.HTML
}

// Render writes the page as a standalone HTML document.
func (p *Page) Render(w io.Writer) error {
	trackHTML := make([]template.HTML, 0, len(p.Tracks))

	for _, track := range p.Tracks {
		var buf bytes.Buffer

		err := track.Render(&buf)
		if err != nil {
			return fmt.Errorf("render track: %w", err)
		}

		trackHTML = append(trackHTML, template.HTML(extractChartContent(buf.String())))
	}

	err := pageTemplate.Execute(w, pageData{
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		Surfaces:  p.Surfaces,
		Theme:     p.theme,
		Asset:     echartsAsset,
		TrackHTML: trackHTML,
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}

// extractChartContent lifts the chart div and script out of the full HTML
// page that echarts renders, so tracks can be embedded side by side.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			break
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			break
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}

	return content
}
