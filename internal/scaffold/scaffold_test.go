package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdpress/internal/build"
	"git.home.luguber.info/inful/mdpress/internal/config"
)

func TestInitCreatesSkeleton(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Init(root, false))

	assert.FileExists(t, filepath.Join(root, config.DefaultFileName))
	assert.DirExists(t, filepath.Join(root, "posts"))
	assert.DirExists(t, filepath.Join(root, "pages"))
	assert.FileExists(t, filepath.Join(root, "templates", "default", "post.html"))
	assert.FileExists(t, filepath.Join(root, "templates", "default", "page.html"))
	assert.FileExists(t, filepath.Join(root, "templates", "default", "index.html"))
	assert.FileExists(t, filepath.Join(root, "posts", "welcome.md"))
}

func TestInitRefusesExistingConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Init(root, false))

	err := Init(root, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	require.NoError(t, Init(root, true))
}

func TestInitDoesNotClobberContent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "posts"), 0o755))
	existing := filepath.Join(root, "posts", "welcome.md")
	require.NoError(t, os.WriteFile(existing, []byte("# Mine"), 0o644))

	require.NoError(t, Init(root, false))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "# Mine", string(data))
}

// The skeleton must build out of the box.
func TestInitProducesBuildableSite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Init(root, false))

	f, err := config.Load(filepath.Join(root, config.DefaultFileName))
	require.NoError(t, err)
	cfg, err := config.Resolve(f, root, "")
	require.NoError(t, err)

	require.NoError(t, build.New(cfg).Build(context.Background()))
	assert.FileExists(t, filepath.Join(cfg.OutputDir(), "posts", "welcome.html"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir(), "index.html"))
}
