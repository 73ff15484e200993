package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdpress/internal/build"
	"git.home.luguber.info/inful/mdpress/internal/config"
	"git.home.luguber.info/inful/mdpress/internal/scaffold"
	"git.home.luguber.info/inful/mdpress/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Target  string `arg:"" optional:"" help:"Environment name or literal site URL"`
		NoCache bool   `help:"Disable incremental caching and rebuild everything"`
		Watch   bool   `short:"w" help:"Rebuild whenever content or templates change"`
	} `cmd:"" help:"Build the site into the configured build directory"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Create a skeleton project in the current directory"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	root, err := os.Getwd()
	if err != nil {
		slog.Error("Failed to determine working directory", "error", err)
		os.Exit(1)
	}

	switch kctx.Command() {
	case "build", "build <target>":
		if err := runBuild(root, CLI.Build.Target, CLI.Build.NoCache, CLI.Build.Watch); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := scaffold.Init(root, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Project initialized", "path", root)
	}
}

func runBuild(root, target string, noCache, watchMode bool) error {
	f, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(f, root, target)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pipeline := build.New(cfg, build.WithNoCache(noCache))
	if err := pipeline.Build(ctx); err != nil {
		return err
	}
	slog.Info("Site built", "url", cfg.URL, "output", cfg.OutputDir())

	if !watchMode {
		return nil
	}

	// Watch templates for the active set plus both content directories.
	// The watcher itself is created only after a successful first build so
	// a platform without watch support still completes the one-shot build.
	w, err := watch.New([]string{cfg.PostsDir(), cfg.PagesDir(), cfg.TemplateDir()})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			slog.Warn("Failed to close watcher", "error", cerr)
		}
	}()

	slog.Info("Watching for changes", "posts", cfg.PostsDir(), "pages", cfg.PagesDir(), "templates", cfg.TemplateDir())
	return w.Run(ctx, func() error {
		// Each rebuild re-evaluates the cache gate; the marker may have
		// been rewritten by the previous pass.
		return pipeline.Build(ctx)
	})
}
