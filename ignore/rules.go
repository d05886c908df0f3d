package ignore

import (
	"sort"
	"strings"

	"github.com/hayeah/picktree/internal/set"
)

// Config is the serializable form of a rule set. Missing categories decode as
// nil and are treated as empty.
type Config struct {
	Dirs       []string `toml:"dirs" json:"dirs"`
	Files      []string `toml:"files" json:"files"`
	Extensions []string `toml:"extensions" json:"extensions"`
}

// RuleSet holds the directory names, file names and extensions that exclude an
// entry from the tree. A RuleSet is not modified after construction; the zero
// value excludes nothing.
type RuleSet struct {
	dirs       *set.Set[string]
	files      *set.Set[string]
	extensions *set.Set[string]
}

// NewRuleSet builds a RuleSet from a Config. Blank entries are skipped,
// extensions are lowercased and stripped of a leading dot.
func NewRuleSet(cfg Config) RuleSet {
	rs := RuleSet{
		dirs:       set.NewSet[string](),
		files:      set.NewSet[string](),
		extensions: set.NewSet[string](),
	}
	for _, d := range cfg.Dirs {
		if d = strings.TrimSpace(d); d != "" {
			rs.dirs.Add(d)
		}
	}
	for _, f := range cfg.Files {
		if f = strings.TrimSpace(f); f != "" {
			rs.files.Add(f)
		}
	}
	for _, e := range cfg.Extensions {
		if e = NormalizeExtension(e); e != "" {
			rs.extensions.Add(e)
		}
	}
	return rs
}

// NormalizeExtension lowercases ext and removes surrounding space and a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.TrimPrefix(ext, ".")
	return strings.ToLower(ext)
}

// Merge returns the union of the global and project rule sets.
func Merge(global, project RuleSet) RuleSet {
	merged := RuleSet{
		dirs:       set.NewSet[string](),
		files:      set.NewSet[string](),
		extensions: set.NewSet[string](),
	}
	for _, rs := range []RuleSet{global, project} {
		merged.dirs.Union(rs.dirs)
		merged.files.Union(rs.files)
		merged.extensions.Union(rs.extensions)
	}
	return merged
}

// IsExcluded reports whether an entry named name is excluded by rules.
// Directory names and file names match exactly and case-sensitively; file
// extensions (the text after the final dot) match case-insensitively.
func IsExcluded(name string, isDir bool, rules RuleSet) bool {
	if isDir {
		return rules.dirs.Contains(name)
	}
	if rules.files.Contains(name) {
		return true
	}
	ext, ok := Extension(name)
	if !ok {
		return false
	}
	return rules.extensions.Contains(ext)
}

// Extension returns the lowercased text after the final dot of name.
// It reports false when name has no dot or ends with one.
func Extension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return "", false
	}
	return strings.ToLower(name[i+1:]), true
}

// Config returns the serializable form of rs with each category sorted.
func (rs RuleSet) Config() Config {
	return Config{
		Dirs:       sorted(rs.dirs),
		Files:      sorted(rs.files),
		Extensions: sorted(rs.extensions),
	}
}

// Empty reports whether rs excludes nothing.
func (rs RuleSet) Empty() bool {
	return rs.dirs.Len() == 0 && rs.files.Len() == 0 && rs.extensions.Len() == 0
}

func sorted(s *set.Set[string]) []string {
	values := s.Values()
	if values == nil {
		values = []string{}
	}
	sort.Strings(values)
	return values
}
