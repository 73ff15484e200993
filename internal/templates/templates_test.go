package templates

import (
	"html/template"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

func writeSet(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadSetAndRender(t *testing.T) {
	dir := writeSet(t, map[string]string{
		PostTemplate: `<html><head><title>{{.Title}}</title></head><body>{{.Content}}</body></html>`,
	})

	set, err := LoadSet("default", dir)
	require.NoError(t, err)
	assert.Equal(t, "default", set.Name())

	out, err := set.Render(PostTemplate, map[string]any{
		"Title":   "Hello",
		"Content": template.HTML("<p>body</p>"),
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<title>Hello</title>")
	// template.HTML content must not be escaped.
	assert.Contains(t, string(out), "<p>body</p>")
}

func TestLoadSetMissingDir(t *testing.T) {
	_, err := LoadSet("default", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCategory(err, apperrors.CategoryConfig))
}

func TestRenderMissingTemplate(t *testing.T) {
	dir := writeSet(t, map[string]string{PostTemplate: `ok`})
	set, err := LoadSet("default", dir)
	require.NoError(t, err)

	_, err = set.Render(IndexTemplate, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCategory(err, apperrors.CategoryRender))
}

func TestRenderMalformedTemplate(t *testing.T) {
	dir := writeSet(t, map[string]string{PostTemplate: `{{.Title`})
	_, err := LoadSet("default", dir)
	require.Error(t, err)
	assert.True(t, apperrors.IsCategory(err, apperrors.CategoryRender))
}
