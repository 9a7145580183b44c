package salesdash

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	template "github.com/goliatone/go-template"
)

// DashboardTemplate is the page template name.
const DashboardTemplate = "dashboard.html"

//go:embed templates/*.html
var pageTemplates embed.FS

// NewTemplateRenderer loads the embedded page templates into go-template.
func NewTemplateRenderer() (Renderer, error) {
	return template.NewRenderer(
		template.WithFS(pageTemplates),
		template.WithBaseDir("templates"),
		template.WithExtension(".html"),
	)
}

// Renderer describes the template renderer contract needed by the page.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// PageOptions configures a Page.
type PageOptions struct {
	Renderer Renderer
	Charts   *ChartRenderer
	BasePath string
	Template string
}

// Page renders the full dashboard HTML for a session.
type Page struct {
	renderer Renderer
	charts   *ChartRenderer
	basePath string
	template string
}

// NewPage builds a page renderer. Charts default to a cached ChartRenderer.
func NewPage(opts PageOptions) (*Page, error) {
	if opts.Renderer == nil {
		return nil, fmt.Errorf("salesdash: page renderer is required")
	}
	charts := opts.Charts
	if charts == nil {
		charts = NewChartRenderer()
	}
	name := opts.Template
	if name == "" {
		name = DashboardTemplate
	}
	return &Page{
		renderer: opts.Renderer,
		charts:   charts,
		basePath: strings.TrimRight(opts.BasePath, "/"),
		template: name,
	}, nil
}

// Render writes the page for session to w.
func (p *Page) Render(w io.Writer, session *Session) error {
	data, err := p.TemplateData(session)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := p.renderer.Render(p.template, data, &buf); err != nil {
		return fmt.Errorf("salesdash: render %s: %w", p.template, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// TemplateData builds the template context: the view as plain maps plus the
// chart markup and theme variables.
func (p *Page) TemplateData(session *Session) (map[string]any, error) {
	if session == nil {
		return nil, ErrSessionNotFound
	}
	view := session.View()
	charts, err := p.charts.Render(session.State(), session.Dataset())
	if err != nil {
		return nil, err
	}
	view.Charts = charts

	payload, err := toTemplateValue(view)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"view":        payload,
		"charts":      map[string]any{"trend": charts.Trend, "products": charts.Products},
		"theme_style": view.ThemeStyle,
		"base_path":   p.basePath,
		"session_id":  session.ID,
	}, nil
}

func toTemplateValue(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("salesdash: encode view: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("salesdash: decode view: %w", err)
	}
	return out, nil
}
