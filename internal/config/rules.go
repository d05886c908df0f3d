package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"

	"github.com/hayeah/picktree/ignore"
)

// Category names a list of an ignore configuration.
type Category string

const (
	CategoryDirs       Category = "dirs"
	CategoryFiles      Category = "files"
	CategoryExtensions Category = "extensions"
)

// ParseCategory accepts the category names and their singular forms.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dir", "dirs":
		return CategoryDirs, nil
	case "file", "files":
		return CategoryFiles, nil
	case "ext", "extension", "extensions":
		return CategoryExtensions, nil
	}
	return "", fmt.Errorf("unknown ignore category %q (want dirs, files or extensions)", s)
}

// AddRule appends value to the category list of the ignore file at path,
// creating the file if needed. JSON files keep their comments and layout.
// Adding a rule that is already present does nothing.
func AddRule(path string, category Category, value string) error {
	value = strings.TrimSpace(value)
	if category == CategoryExtensions {
		value = ignore.NormalizeExtension(value)
	}
	if value == "" {
		return fmt.Errorf("empty %s rule", category)
	}

	cfg, err := LoadIgnoreFile(path)
	if err != nil {
		return err
	}
	if slices.Contains(categoryValues(cfg, category), value) {
		return nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return addTOMLRule(path, cfg, category, value)
	case ".json", ".jsonc":
		return addJSONRule(path, category, value)
	}
	return fmt.Errorf("unsupported config format: %s", path)
}

func categoryValues(cfg ignore.Config, category Category) []string {
	switch category {
	case CategoryDirs:
		return cfg.Dirs
	case CategoryFiles:
		return cfg.Files
	default:
		return cfg.Extensions
	}
}

func addTOMLRule(path string, cfg ignore.Config, category Category, value string) error {
	switch category {
	case CategoryDirs:
		cfg.Dirs = append(cfg.Dirs, value)
	case CategoryFiles:
		cfg.Files = append(cfg.Files, value)
	default:
		cfg.Extensions = append(cfg.Extensions, value)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return writeFile(path, buf.Bytes())
}

func addJSONRule(path string, category Category, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		data = []byte("{}")
	}

	root, err := hujson.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := appendToArray(&root, "/"+string(category), value); err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	root.Format()
	return writeFile(path, root.Pack())
}

// appendToArray appends val to the array at the JSON Pointer ptr, creating the
// array when it is missing.
func appendToArray(v *hujson.Value, ptr string, val any) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	elem, err := hujson.Parse(b)
	if err != nil {
		return err
	}

	if existing := v.Find(ptr); existing != nil {
		if _, ok := existing.Value.(*hujson.Array); !ok {
			return fmt.Errorf("%s is not an array", ptr)
		}
		patch := fmt.Sprintf(`[{"op":"add","path":"%s/-","value":%s}]`, ptr, elem.Pack())
		return v.Patch([]byte(patch))
	}

	patch := fmt.Sprintf(`[`+
		`{"op":"add","path":"%s","value":[]},`+
		`{"op":"add","path":"%s/-","value":%s}`+
		`]`, ptr, ptr, elem.Pack())
	return v.Patch([]byte(patch))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
