// Package listing walks a directory and produces the raw listing the tree is
// built from.
package listing

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/hayeah/picktree/ignore"
	"github.com/hayeah/picktree/internal/tree"
)

const gitDirName = ".git"

// Options controls a Lister.
type Options struct {
	// UseGitignore skips paths matched by the .gitignore files of the root.
	UseGitignore bool
	Logger       *slog.Logger
}

// Lister produces tree entries from a filesystem.
type Lister struct {
	fs        billy.Filesystem
	gitignore *ignore.GitIgnore
	logger    *slog.Logger
}

// New creates a Lister for the directory at root.
func New(root string, opts Options) (*Lister, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}
	return NewFromFS(osfs.New(root), opts)
}

// NewFromFS creates a Lister over fs, listing from its root.
func NewFromFS(fs billy.Filesystem, opts Options) (*Lister, error) {
	l := &Lister{fs: fs, logger: opts.Logger}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.UseGitignore {
		gi, err := ignore.LoadGitIgnore(fs)
		if err != nil {
			return nil, err
		}
		l.gitignore = gi
	}
	return l, nil
}

// List returns the entries below the root. Directories come before files and
// each group is sorted by name. Symbolic links and the .git directory are
// skipped; unreadable directories are logged and listed as empty.
func (l *Lister) List() ([]tree.Entry, error) {
	return l.readDir("")
}

func (l *Lister) readDir(rel string) ([]tree.Entry, error) {
	dir := rel
	if dir == "" {
		dir = "."
	}
	infos, err := l.fs.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return nil, fmt.Errorf("failed to read root directory: %w", err)
		}
		l.logger.Warn("skipping unreadable directory", "path", rel, "err", err)
		return nil, nil
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].IsDir() != infos[j].IsDir() {
			return infos[i].IsDir()
		}
		return infos[i].Name() < infos[j].Name()
	})

	var entries []tree.Entry
	for _, info := range infos {
		name := info.Name()
		p := path.Join(rel, name)
		isDir := info.IsDir()

		if info.Mode()&os.ModeSymlink != 0 {
			l.logger.Debug("skipping symlink", "path", p)
			continue
		}
		if isDir && name == gitDirName {
			continue
		}
		if l.gitignore.IsIgnored(p, isDir) {
			l.logger.Debug("gitignored", "path", p)
			continue
		}

		if !isDir {
			entries = append(entries, tree.Entry{
				Name: name,
				Path: p,
				Kind: tree.KindFile,
				Size: info.Size(),
			})
			continue
		}

		children, err := l.readDir(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, tree.Entry{
			Name:     name,
			Path:     p,
			Kind:     tree.KindDir,
			Children: children,
		})
	}
	return entries, nil
}
