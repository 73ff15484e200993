// Package content discovers markdown source items and derives their output
// names, titles, and excerpts.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Kind distinguishes posts from pages.
type Kind string

const (
	KindPost Kind = "post"
	KindPage Kind = "page"
)

// Item is one discovered post or page. Items are ephemeral: they are
// recreated by every build pass from a fresh filesystem scan.
type Item struct {
	Kind       Kind
	SourcePath string
	OutputPath string
	Slug       string
	ModTime    time.Time
}

// markdownExtensions are the source file extensions picked up by discovery.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Discover scans postsDir and pagesDir for markdown sources and maps each to
// its output path: posts under outputDir/posts/<slug>.html, pages directly
// under outputDir/<slug>.html. A missing source directory is not an error.
func Discover(postsDir, pagesDir, outputDir string) ([]Item, error) {
	var items []Item

	posts, err := scanDir(postsDir, KindPost, filepath.Join(outputDir, "posts"))
	if err != nil {
		return nil, err
	}
	items = append(items, posts...)

	pages, err := scanDir(pagesDir, KindPage, outputDir)
	if err != nil {
		return nil, err
	}
	items = append(items, pages...)

	return items, nil
}

func scanDir(dir string, kind Kind, outDir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s directory: %w", kind, err)
	}

	var items []Item
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !markdownExtensions[ext] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		slug := Slugify(strings.TrimSuffix(entry.Name(), ext))
		items = append(items, Item{
			Kind:       kind,
			SourcePath: filepath.Join(dir, entry.Name()),
			OutputPath: filepath.Join(outDir, slug+".html"),
			Slug:       slug,
			ModTime:    info.ModTime(),
		})
	}

	// Newest first, ties broken by slug for deterministic listings.
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ModTime.Equal(items[j].ModTime) {
			return items[i].ModTime.After(items[j].ModTime)
		}
		return items[i].Slug < items[j].Slug
	})
	return items, nil
}

// Title extracts the first ATX level-one heading from a markdown source, or
// returns fallback when the document has none.
func Title(source []byte, fallback string) string {
	for _, line := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return fallback
}
