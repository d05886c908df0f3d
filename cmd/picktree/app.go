package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-cz/devslog"

	"github.com/hayeah/picktree/ignore"
	"github.com/hayeah/picktree/internal/config"
	"github.com/hayeah/picktree/internal/listing"
	"github.com/hayeah/picktree/internal/store"
	"github.com/hayeah/picktree/internal/tree"
)

// RootDir is the absolute path of the project directory.
type RootDir string

// EntryLister produces the raw listing of the project.
type EntryLister interface {
	List() ([]tree.Entry, error)
}

// App holds what every subcommand needs.
type App struct {
	Root   RootDir
	Paths  config.Paths
	Logger *slog.Logger
	Store  *store.Store
	Rules  ignore.RuleSet
	Lister EntryLister
}

func ProvideRootDir(args Args) (RootDir, error) {
	abs, err := filepath.Abs(args.Root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", args.Root, err)
	}
	return RootDir(abs), nil
}

func ProvidePaths(root RootDir) (config.Paths, error) {
	return config.Resolve(string(root))
}

func ProvideLogger(args Args) *slog.Logger {
	level := slog.LevelWarn
	if args.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(devslog.NewHandler(os.Stderr, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{Level: level},
	}))
}

func ProvideStore(paths config.Paths, logger *slog.Logger) (*store.Store, func(), error) {
	s, err := store.Open(paths.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { s.Close() }, nil
}

func ProvideRules(paths config.Paths, logger *slog.Logger) (ignore.RuleSet, error) {
	rules, err := config.LoadRules(paths)
	if err != nil {
		return ignore.RuleSet{}, err
	}
	logger.Debug("loaded ignore rules", "global", paths.Global, "project", paths.Project)
	return rules, nil
}

func ProvideLister(root RootDir, args Args, logger *slog.Logger) (*listing.Lister, error) {
	return listing.New(string(root), listing.Options{
		UseGitignore: !args.NoGit,
		Logger:       logger,
	})
}

// LoadTree lists the project and restores its saved selection.
func (app *App) LoadTree() (*tree.Tree, error) {
	entries, err := app.Lister.List()
	if err != nil {
		return nil, err
	}
	prior, err := app.Store.LoadState(string(app.Root))
	if err != nil {
		return nil, err
	}
	t, err := tree.BuildWithState(entries, app.Rules, prior)
	if err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	app.Logger.Debug("built tree", "root", app.Root, "nodes", t.Len())
	return t, nil
}

// SaveTree stores the selection of t for the project.
func (app *App) SaveTree(t *tree.Tree) error {
	return app.Store.SaveState(string(app.Root), t.Snapshot())
}
