package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	postsDir := filepath.Join(root, "posts")
	pagesDir := filepath.Join(root, "pages")
	outDir := filepath.Join(root, "build")
	require.NoError(t, os.MkdirAll(postsDir, 0o755))
	require.NoError(t, os.MkdirAll(pagesDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(postsDir, "Hello World.md"), []byte("# Hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(postsDir, "second.markdown"), []byte("# Second"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(postsDir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pagesDir, "about.md"), []byte("# About"), 0o644))

	items, err := Discover(postsDir, pagesDir, outDir)
	require.NoError(t, err)
	require.Len(t, items, 3)

	byKind := map[Kind]int{}
	for _, it := range items {
		byKind[it.Kind]++
	}
	assert.Equal(t, 2, byKind[KindPost])
	assert.Equal(t, 1, byKind[KindPage])

	for _, it := range items {
		switch {
		case it.Slug == "hello-world":
			assert.Equal(t, filepath.Join(outDir, "posts", "hello-world.html"), it.OutputPath)
		case it.Slug == "about":
			assert.Equal(t, filepath.Join(outDir, "about.html"), it.OutputPath)
		}
		assert.False(t, it.ModTime.IsZero())
	}
}

func TestDiscoverMissingDirs(t *testing.T) {
	root := t.TempDir()
	items, err := Discover(filepath.Join(root, "posts"), filepath.Join(root, "pages"), filepath.Join(root, "build"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDiscoverOrdersPostsNewestFirst(t *testing.T) {
	root := t.TempDir()
	postsDir := filepath.Join(root, "posts")
	require.NoError(t, os.MkdirAll(postsDir, 0o755))

	old := filepath.Join(postsDir, "old.md")
	recent := filepath.Join(postsDir, "recent.md")
	require.NoError(t, os.WriteFile(old, []byte("# Old"), 0o644))
	require.NoError(t, os.WriteFile(recent, []byte("# Recent"), 0o644))

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, base, base))
	require.NoError(t, os.Chtimes(recent, base.Add(time.Minute), base.Add(time.Minute)))

	items, err := Discover(postsDir, filepath.Join(root, "pages"), filepath.Join(root, "build"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "recent", items[0].Slug)
	assert.Equal(t, "old", items[1].Slug)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Café Crème", "cafe-creme"},
		{"2024-01-15 release notes", "2024-01-15-release-notes"},
		{"  spaced  out  ", "spaced-out"},
		{"UPPER_case", "upper-case"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Hello", Title([]byte("intro\n\n# Hello\nbody"), "fallback"))
	assert.Equal(t, "fallback", Title([]byte("no heading here"), "fallback"))
	assert.Equal(t, "Spaced", Title([]byte("  #  Spaced  "), "fallback"))
}

func TestExcerpt(t *testing.T) {
	fragment := []byte("<p>The quick brown fox jumps over the lazy dog.</p><p>Second paragraph.</p>")

	assert.Equal(t, "The quick brown…", Excerpt(fragment, 3))
	assert.Equal(t, "The quick brown fox jumps over the lazy dog. Second paragraph.", Excerpt(fragment, 100))
	assert.Equal(t, "", Excerpt(fragment, 0))
}

func TestExcerptIgnoresMarkup(t *testing.T) {
	fragment := []byte(`<h1>Title</h1><p>Some <a href="/x">linked</a> <em>text</em></p>`)
	assert.Equal(t, "Title Some linked text", Excerpt(fragment, 10))
}
