// Package scaffold writes a skeleton mdpress project into a directory.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdpress/internal/config"
	apperrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

const defaultPostTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
</head>
<body>
  <article>
    <p class="date">{{.Date}}</p>
    {{.Content}}
  </article>
  <p><a href="{{.Site}}/index.html">Back to index</a></p>
</body>
</html>
`

const defaultPageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
</head>
<body>
  {{.Content}}
</body>
</html>
`

const defaultIndexTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Posts</title>
</head>
<body>
  {{range .Posts}}
  <article>
    <h2><a href="{{.URL}}">{{.Title}}</a></h2>
    <p class="date">{{.Date}}</p>
    <p>{{.Excerpt}}</p>
  </article>
  {{end}}
</body>
</html>
`

const samplePost = `# Welcome

This is your first post. Edit or delete it, then run ` + "`mdpress build`" + `.
`

// Init creates a skeleton project in root: example configuration, source
// directories, and the default template set.
func Init(root string, force bool) error {
	cfgPath := filepath.Join(root, config.DefaultFileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return apperrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", cfgPath))
	}

	buildDir := config.DefaultBuildDir
	tplName := config.DefaultTemplate
	example := config.File{
		URL:      "https://example.com",
		BuildDir: &buildDir,
		Template: &tplName,
		Environments: map[string]config.Environment{
			"staging": {URL: strptr("https://staging.example.com")},
		},
	}
	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal, "write config file")
	}

	tplDir := filepath.Join(root, "templates", tplName)
	for _, dir := range []string{filepath.Join(root, "posts"), filepath.Join(root, "pages"), tplDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal, "create project directory")
		}
	}

	skeleton := []struct {
		path string
		body string
	}{
		{filepath.Join(tplDir, "post.html"), defaultPostTemplate},
		{filepath.Join(tplDir, "page.html"), defaultPageTemplate},
		{filepath.Join(tplDir, "index.html"), defaultIndexTemplate},
		{filepath.Join(root, "posts", "welcome.md"), samplePost},
	}
	for _, f := range skeleton {
		// Existing files are never overwritten without --force.
		if !force {
			if _, err := os.Stat(f.path); err == nil {
				continue
			}
		}
		if err := os.WriteFile(f.path, []byte(f.body), 0o644); err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal, "write skeleton file")
		}
	}
	return nil
}

func strptr(s string) *string { return &s }
