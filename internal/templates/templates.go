// Package templates loads a named template set and renders pages from it.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	apperrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

// Template file names every set must provide.
const (
	PostTemplate  = "post.html"
	PageTemplate  = "page.html"
	IndexTemplate = "index.html"
)

// Set is a parsed template set loaded from templates/<name>/.
type Set struct {
	name string
	tpl  *template.Template
}

// LoadSet parses all *.html files in dir as one template set.
func LoadSet(name, dir string) (*Set, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, apperrors.ConfigError(fmt.Sprintf("template set not found: %s", dir))
	}

	tpl, err := template.New(name).Option("missingkey=error").ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryRender, apperrors.SeverityFatal, fmt.Sprintf("parse template set %q", name))
	}
	return &Set{name: name, tpl: tpl}, nil
}

// Name returns the template set name.
func (s *Set) Name() string { return s.name }

// Render executes the named page template with data and returns the
// resulting HTML document.
func (s *Set) Render(page string, data map[string]any) ([]byte, error) {
	tpl := s.tpl.Lookup(page)
	if tpl == nil {
		return nil, apperrors.New(apperrors.CategoryRender, apperrors.SeverityError,
			fmt.Sprintf("template %q missing from set %q", page, s.name))
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryRender, apperrors.SeverityError,
			fmt.Sprintf("render template %q", page))
	}
	return buf.Bytes(), nil
}
