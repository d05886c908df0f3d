package ignore

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// GitIgnore matches slash-separated paths against the .gitignore files of a
// filesystem. It complements RuleSet, which matches single names.
type GitIgnore struct {
	matcher gitignore.Matcher
}

// LoadGitIgnore reads the .gitignore files found under the root of fs.
func LoadGitIgnore(fs billy.Filesystem) (*GitIgnore, error) {
	patterns, err := gitignore.ReadPatterns(fs, []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to read gitignore patterns: %w", err)
	}
	return &GitIgnore{matcher: gitignore.NewMatcher(patterns)}, nil
}

// IsIgnored reports whether relPath, relative to the filesystem root, is ignored.
// The root itself is never ignored. A nil GitIgnore ignores nothing.
func (g *GitIgnore) IsIgnored(relPath string, isDir bool) bool {
	if g == nil {
		return false
	}
	relPath = path.Clean(strings.TrimPrefix(relPath, "/"))
	if relPath == "." || relPath == "" {
		return false
	}
	return g.matcher.Match(strings.Split(relPath, "/"), isDir)
}
