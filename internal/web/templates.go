package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/justestif/blocify/internal/render"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial template (without base layout) with the given data.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.ExecuteTemplate(w, partial, data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	// Common files to include with every page
	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		name := templateName(page)
		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.templates[name] = tmpl
	}

	// Partials are rendered on their own for htmx swaps. They may include one
	// another, so each one is parsed together with the full partial set.
	for _, partial := range partials {
		name := templateName(partial)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, partials...)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		if tmpl.Lookup(name) == nil {
			return fmt.Errorf("partial %s does not define template %q", partial, name)
		}
		t.partials[name] = tmpl
	}

	return nil
}

// templateName strips the directory and .html extension.
func templateName(path string) string {
	name := filepath.Base(path)
	return name[:len(name)-len(".html")]
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// buttonClass highlights the selected time range button.
		"buttonClass": func(selected bool) string {
			if selected {
				return "range-button selected"
			}
			return "range-button"
		},

		// tileCount counts the artist tiles across all tiers.
		"tileCount": func(tiers []render.Tier) int {
			n := 0
			for _, tier := range tiers {
				n += len(tier.Tiles)
			}
			return n
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title string
}

// FlashMessage represents a temporary notification message.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
}

// RangeOption is one time range button.
type RangeOption struct {
	Value    string
	Label    string
	Selected bool
}

// AppData contains data for the app partial, the part of the page that
// changes as the user logs in, picks a range and logs out.
type AppData struct {
	ViewID        string
	Authenticated bool
	LoginURL      string
	Ranges        []RangeOption
	RangeLabel    string
	Tiers         []render.Tier
	Tracks        []render.TrackLink
	HasTopItems   bool // artists were fetched, even if their tiles could not be laid out
	Flash         *FlashMessage
}
