package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// ParseTemplates parses the embedded page and partial templates.
func ParseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"themeClass": func(dark bool) string {
			if dark {
				return "dark"
			}
			return "light"
		},
		"themeIcon": func(dark bool) string {
			if dark {
				return "🌞"
			}
			return "🌛"
		},
	}

	tmpl := template.New("").Funcs(funcMap)

	patterns := []string{
		"templates/*.html",
		"templates/partials/*.html",
	}

	for _, pattern := range patterns {
		matches, err := fs.Glob(templatesFS, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}

		for _, match := range matches {
			content, err := templatesFS.ReadFile(match)
			if err != nil {
				return nil, fmt.Errorf("failed to read template %s: %w", match, err)
			}

			name := path.Base(match)
			_, err = tmpl.New(name).Parse(string(content))
			if err != nil {
				return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
			}
		}
	}

	return tmpl, nil
}

// StaticHandler serves the embedded stylesheet.
func StaticHandler() (http.Handler, error) {
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static files: %w", err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))), nil
}
