// Package build implements the incremental build pipeline: discover content,
// decide per-item staleness, render stale items, and persist the cache
// marker on success.
package build

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdpress/internal/cache"
	"git.home.luguber.info/inful/mdpress/internal/config"
	"git.home.luguber.info/inful/mdpress/internal/content"
	apperrors "git.home.luguber.info/inful/mdpress/internal/errors"
	"git.home.luguber.info/inful/mdpress/internal/logfields"
	"git.home.luguber.info/inful/mdpress/internal/markdown"
	"git.home.luguber.info/inful/mdpress/internal/metrics"
	"git.home.luguber.info/inful/mdpress/internal/templates"
)

// excerptWords caps index excerpt length.
const excerptWords = 40

// Pipeline executes build passes for one resolved configuration. A single
// Pipeline may run many passes (watch mode); the cache gate is re-evaluated
// at the start of every pass.
type Pipeline struct {
	cfg      *config.BuildConfig
	noCache  bool
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNoCache forces a full rebuild on every pass (the --no-cache flag).
func WithNoCache(v bool) Option { return func(p *Pipeline) { p.noCache = v } }

// WithRecorder sets a metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(p *Pipeline) { p.recorder = r } }

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option { return func(p *Pipeline) { p.logger = l } }

// New creates a build pipeline for cfg.
func New(cfg *config.BuildConfig, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build runs one pass. The failure model is best effort: the first hard
// error aborts the pass and completed outputs stay in place.
func (p *Pipeline) Build(ctx context.Context) error {
	start := time.Now()
	logger := p.logger.With(logfields.BuildID(uuid.NewString()))

	err := p.run(ctx, logger)

	duration := time.Since(start)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	p.recorder.RecordBuild(outcome, duration)
	return err
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger) error {
	decision := cache.Decide(p.cfg.Root, p.cfg.URL, p.noCache || !p.cfg.CacheEnabled, logger)
	p.recorder.RecordCacheDecision(decision.Enabled)
	logger.Debug("Cache gate decided", slog.Bool("enabled", decision.Enabled), slog.String("reason", decision.Reason))

	outputDir := p.cfg.OutputDir()
	if err := os.MkdirAll(filepath.Join(outputDir, "posts"), 0o750); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal, "create build directory")
	}

	set, err := templates.LoadSet(p.cfg.Template, p.cfg.TemplateDir())
	if err != nil {
		return err
	}

	items, err := content.Discover(p.cfg.PostsDir(), p.cfg.PagesDir(), outputDir)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal, "discover content")
	}

	var rendered, skipped, renderedPosts int
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		isStale, err := stale(item, decision.Enabled)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityError, "check staleness").
				WithContext("source", item.SourcePath)
		}
		if !isStale {
			skipped++
			logger.Debug("Item up to date", logfields.File(item.SourcePath))
			continue
		}

		if err := p.renderItem(set, item); err != nil {
			return err
		}
		rendered++
		if item.Kind == content.KindPost {
			renderedPosts++
		}
		logger.Info("Rendered", logfields.File(item.SourcePath), logfields.Path(item.OutputPath))
	}

	if err := p.renderIndex(set, items, outputDir, decision.Enabled, renderedPosts); err != nil {
		return err
	}

	if err := cache.SaveMarker(p.cfg.Root, p.cfg.URL); err != nil {
		// Non-fatal: the build itself succeeded, only the next pass loses
		// the URL-change detection.
		logger.Warn("Failed to persist cache marker", logfields.Error(err))
	}

	logger.Info("Build completed",
		logfields.Rendered(rendered),
		logfields.Skipped(skipped),
		logfields.URL(p.cfg.URL))
	p.recorder.RecordItems(rendered, skipped)
	return nil
}

// stale reports whether an item needs rendering. With caching disabled every
// item is stale. With caching enabled the comparison is mtime-only: coarse
// by design, so sub-second filesystem resolution or clock skew can miss a
// change. No content hashing.
func stale(item content.Item, cacheEnabled bool) (bool, error) {
	if !cacheEnabled {
		return true, nil
	}
	info, err := os.Stat(item.OutputPath)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return item.ModTime.After(info.ModTime()), nil
}

func (p *Pipeline) renderItem(set *templates.Set, item content.Item) error {
	source, err := os.ReadFile(item.SourcePath)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityError, "read source").
			WithContext("source", item.SourcePath)
	}

	fragment, err := markdown.Render(source)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryRender, apperrors.SeverityError, "render markdown").
			WithContext("source", item.SourcePath)
	}

	page := templates.PageTemplate
	if item.Kind == content.KindPost {
		page = templates.PostTemplate
	}
	doc, err := set.Render(page, map[string]any{
		"Site":    p.cfg.URL,
		"Title":   content.Title(source, item.Slug),
		"Content": template.HTML(fragment),
		"Slug":    item.Slug,
		"Date":    item.ModTime.Format("2006-01-02"),
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(item.OutputPath, doc, 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityError, "write output").
			WithContext("output", item.OutputPath)
	}
	return nil
}

// renderIndex regenerates the posts index when caching is off, when any post
// was rendered this pass, or when the index file is missing. A pass that
// renders nothing leaves the index untouched so that an unchanged site
// invokes no render collaborator at all.
func (p *Pipeline) renderIndex(set *templates.Set, items []content.Item, outputDir string, cacheEnabled bool, renderedPosts int) error {
	indexPath := filepath.Join(outputDir, "index.html")
	if cacheEnabled && renderedPosts == 0 {
		if _, err := os.Stat(indexPath); err == nil {
			return nil
		}
	}

	type entry struct {
		Title   string
		URL     string
		Date    string
		Excerpt string
	}
	var posts []entry
	for _, item := range items {
		if item.Kind != content.KindPost {
			continue
		}
		source, err := os.ReadFile(item.SourcePath)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityError, "read source for index").
				WithContext("source", item.SourcePath)
		}
		fragment, err := markdown.Render(source)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryRender, apperrors.SeverityError, "render markdown for index").
				WithContext("source", item.SourcePath)
		}
		posts = append(posts, entry{
			Title:   content.Title(source, item.Slug),
			URL:     fmt.Sprintf("%s/posts/%s.html", p.cfg.URL, item.Slug),
			Date:    item.ModTime.Format("2006-01-02"),
			Excerpt: content.Excerpt(fragment, excerptWords),
		})
	}

	doc, err := set.Render(templates.IndexTemplate, map[string]any{
		"Site":  p.cfg.URL,
		"Posts": posts,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(indexPath, doc, 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityError, "write index").
			WithContext("output", indexPath)
	}
	return nil
}
