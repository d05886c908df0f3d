// Package config locates and reads ignore configuration files.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"

	"github.com/hayeah/picktree/ignore"
)

const (
	// HomeEnv overrides the global configuration directory.
	HomeEnv = "PICKTREE_HOME"

	globalDirName        = ".picktree"
	globalIgnoreFileName = "ignore.toml"
	databaseFileName     = "state.db"
)

// ProjectFileNames are looked up in the project root, in order.
var ProjectFileNames = []string{".picktree.toml", ".picktree.jsonc", ".picktree.json"}

// Paths are the files a project reads its configuration and state from.
type Paths struct {
	Global   string // global ignore file
	Project  string // project ignore file; may not exist yet
	Database string // selection state database
}

// Resolve returns the configuration paths for the project at root.
func Resolve(root string) (Paths, error) {
	home, err := homeDir()
	if err != nil {
		return Paths{}, err
	}
	p := Paths{
		Global:   filepath.Join(home, globalIgnoreFileName),
		Project:  filepath.Join(root, ProjectFileNames[0]),
		Database: filepath.Join(home, databaseFileName),
	}
	for _, name := range ProjectFileNames {
		candidate := filepath.Join(root, name)
		if fileExists(candidate) {
			p.Project = candidate
			break
		}
	}
	return p, nil
}

func homeDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(userHome, globalDirName), nil
}

// LoadIgnoreFile reads an ignore configuration. The format follows the file
// extension: TOML for .toml, JSON with comments for .json and .jsonc. A
// missing file yields an empty configuration.
func LoadIgnoreFile(path string) (ignore.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ignore.Config{}, nil
		}
		return ignore.Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg ignore.Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return ignore.Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".json", ".jsonc":
		std, err := hujson.Standardize(data)
		if err != nil {
			return ignore.Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if err := json.Unmarshal(std, &cfg); err != nil {
			return ignore.Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	default:
		return ignore.Config{}, fmt.Errorf("unsupported config format %q: %s", ext, path)
	}
	return cfg, nil
}

// LoadRules merges the global rules with the project rules. When the global
// file does not exist the built-in defaults are used instead.
func LoadRules(p Paths) (ignore.RuleSet, error) {
	global := ignore.DefaultGlobal()
	if fileExists(p.Global) {
		cfg, err := LoadIgnoreFile(p.Global)
		if err != nil {
			return ignore.RuleSet{}, err
		}
		global = ignore.NewRuleSet(cfg)
	}

	projectCfg, err := LoadIgnoreFile(p.Project)
	if err != nil {
		return ignore.RuleSet{}, err
	}
	return ignore.Merge(global, ignore.NewRuleSet(projectCfg)), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
