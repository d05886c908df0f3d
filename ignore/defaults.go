package ignore

// DefaultGlobalConfig is used when no global ignore configuration exists.
var DefaultGlobalConfig = Config{
	Dirs: []string{
		".git", ".svn", ".hg",
		"node_modules", "vendor", "bower_components",
		"dist", "build", "target", "out", "coverage",
		"__pycache__", ".venv", ".tox", ".mypy_cache", ".pytest_cache",
		".idea", ".vscode", ".next", ".nuxt", ".cache",
	},
	Files: []string{
		".DS_Store", "Thumbs.db", "desktop.ini",
	},
	Extensions: []string{
		// binaries and objects
		"exe", "dll", "so", "dylib", "a", "o", "obj", "class", "jar", "pyc", "wasm",
		// archives
		"zip", "tar", "gz", "tgz", "bz2", "xz", "7z", "rar",
		// images, audio, video
		"png", "jpg", "jpeg", "gif", "bmp", "ico", "webp", "tiff",
		"mp3", "wav", "ogg", "flac", "mp4", "mov", "avi", "mkv", "webm",
		// fonts and documents
		"ttf", "otf", "woff", "woff2", "eot", "pdf",
		// misc
		"log", "db", "sqlite", "bin",
	},
}

// DefaultGlobal returns the rule set built from DefaultGlobalConfig.
func DefaultGlobal() RuleSet {
	return NewRuleSet(DefaultGlobalConfig)
}
