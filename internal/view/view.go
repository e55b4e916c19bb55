// Package view renders the catalog's HTML. Each render replaces a cached
// fragment; handlers compose pages and htmx responses from the cache.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/lehmann314159/dreamcars/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type Fragments struct {
	Theme        models.Theme
	Cards        template.HTML
	Stats        template.HTML
	BrandOptions template.HTML
	Brands       []string
	StatsData    models.Stats
}

type View struct {
	tmpl   *template.Template
	logger *zap.Logger

	mu        sync.RWMutex
	fragments Fragments
}

func New(logger *zap.Logger) (*View, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	v := &View{tmpl: tmpl, logger: logger}
	v.fragments.Theme = models.ThemeLight
	v.RenderCards(nil)
	v.RenderStats(models.Stats{})
	v.RenderBrandOptions(nil, "")
	return v, nil
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"price":     FormatPrice,
		"carImage":  carImage,
		"themeIcon": themeIcon,
		"placeholderImage": func() string {
			return PlaceholderImage
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
}

func (v *View) RenderCards(cars []models.Car) {
	html := v.render("cards", cars)
	v.mu.Lock()
	v.fragments.Cards = html
	v.mu.Unlock()
}

func (v *View) RenderStats(stats models.Stats) {
	html := v.render("stats", stats)
	v.mu.Lock()
	v.fragments.Stats = html
	v.fragments.StatsData = stats
	v.mu.Unlock()
}

type brandOption struct {
	Brand    string
	Selected bool
}

// RenderBrandOptions keeps selected marked only while it is still one of the
// brands; otherwise the "all brands" option shows.
func (v *View) RenderBrandOptions(brands []string, selected string) {
	opts := make([]brandOption, len(brands))
	for i, b := range brands {
		opts[i] = brandOption{Brand: b, Selected: b == selected}
	}
	html := v.render("brand-options", opts)
	v.mu.Lock()
	v.fragments.BrandOptions = html
	v.fragments.Brands = slices.Clone(brands)
	v.mu.Unlock()
}

func (v *View) ApplyTheme(theme models.Theme) {
	v.mu.Lock()
	v.fragments.Theme = theme
	v.mu.Unlock()
}

func (v *View) Fragments() Fragments {
	v.mu.RLock()
	defer v.mu.RUnlock()
	f := v.fragments
	f.Brands = slices.Clone(f.Brands)
	return f
}

// Execute writes a named template directly, for pages and dialogs that are
// not cached.
func (v *View) Execute(w io.Writer, name string, data any) error {
	return v.tmpl.ExecuteTemplate(w, name, data)
}

func (v *View) render(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		v.logger.Error("render failed", zap.String("template", name), zap.Error(err))
		return ""
	}
	return template.HTML(buf.String())
}
