package listing

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

var lockFileNames = map[string]bool{
	"package-lock.json":   true,
	"npm-shrinkwrap.json": true,
	"yarn.lock":           true,
	"pnpm-lock.yaml":      true,
	"bun.lockb":           true,
	"go.sum":              true,
	"pipfile.lock":        true,
	"poetry.lock":         true,
	"pdm.lock":            true,
	"requirements.lock":   true,
	"gemfile.lock":        true,
	"cargo.lock":          true,
	"composer.lock":       true,
	"packages.lock.json":  true,
	"package.resolved":    true,
	"pubspec.lock":        true,
}

// IsLockFile reports whether path names a package manager lock file.
func IsLockFile(path string) bool {
	return lockFileNames[strings.ToLower(filepath.Base(path))]
}

// IsBinary guesses whether content is binary: more than 10% of its first
// 100 runes are invalid or unprintable.
func IsBinary(content []byte) bool {
	const sampleSize = 100
	var nonPrintable, total int

	for i := 0; i < len(content) && total < sampleSize; {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError || (!unicode.IsPrint(r) && !unicode.IsSpace(r)) {
			nonPrintable++
		}
		i += size
		total++
	}
	if total == 0 {
		return false
	}
	return float64(nonPrintable)/float64(total) > 0.1
}
