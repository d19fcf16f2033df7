// Package templates renders the HTML fragments the Datastar dashboard
// patches into the page (stats panel, filter controls).
package templates

import (
	"bytes"
	"html/template"
	"path/filepath"
	"sync"
)

// funcMap exposes the helpers the dashboard fragments use.
var funcMap = template.FuncMap{
	// dict builds a map from key-value pairs for nested template calls
	"dict": func(values ...any) map[string]any {
		if len(values)%2 != 0 {
			return nil
		}
		m := make(map[string]any, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				continue
			}
			m[key] = values[i+1]
		}
		return m
	},
	// safeCSS lets fragments use area color tokens in style attributes
	"safeCSS": func(s string) template.CSS {
		return template.CSS(s)
	},
}

// Renderer manages the HTML fragment templates.
type Renderer struct {
	templates *template.Template
	mu        sync.RWMutex
}

// New parses all fragments in fragmentsDir (web/templates/fragments).
func New(fragmentsDir string) (*Renderer, error) {
	tmpl, err := parse(fragmentsDir)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

func parse(fragmentsDir string) (*template.Template, error) {
	pattern := filepath.Join(fragmentsDir, "*.html")
	return template.New("").Funcs(funcMap).ParseGlob(pattern)
}

// Render renders a named fragment to a string.
func (r *Renderer) Render(name string, data any) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToBuffer renders a named fragment into buf.
func (r *Renderer) RenderToBuffer(buf *bytes.Buffer, name string, data any) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.templates.ExecuteTemplate(buf, name, data)
}

// Reload re-parses fragments from disk (dev hot-reload).
func (r *Renderer) Reload(fragmentsDir string) error {
	tmpl, err := parse(fragmentsDir)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.templates = tmpl
	r.mu.Unlock()

	return nil
}
