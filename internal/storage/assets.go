package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hiibolt/sabi/pkg/character"
)

// Script operations (filesystem-backed)

const scriptExt = ".sabi"

// validAssetName rejects names that could escape the data dir when
// joined into a path. Asset names are bare file stems, never paths.
func validAssetName(name string) bool {
	return name != "" &&
		!strings.Contains(name, "/") &&
		!strings.Contains(name, "\\") &&
		!strings.Contains(name, "..")
}

func (r *RedisStorage) ListScripts(ctx context.Context) ([]string, error) {
	scriptsDir := filepath.Join(r.dataDir, "scripts")
	var scripts []string

	err := filepath.WalkDir(scriptsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != scriptExt {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), scriptExt)
		scripts = append(scripts, name)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to walk scripts directory", "error", err)
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}

	sort.Strings(scripts)
	return scripts, nil
}

func (r *RedisStorage) GetScriptSource(ctx context.Context, name string) (string, error) {
	if !validAssetName(name) {
		return "", fmt.Errorf("invalid script name: %s", name)
	}

	path := filepath.Join(r.dataDir, "scripts", name+scriptExt)
	r.logger.Debug("Loading script", "name", name, "full_path", path)

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("script not found: %s", name)
		}
		return "", fmt.Errorf("failed to read script file: %w", err)
	}

	return string(file), nil
}

// Character operations (filesystem-backed)

func (r *RedisStorage) ListCharacters(ctx context.Context) ([]string, error) {
	charactersDir := filepath.Join(r.dataDir, "characters")
	var names []string

	err := filepath.WalkDir(charactersDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		names = append(names, strings.TrimSuffix(filepath.Base(path), ".json"))
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to walk characters directory", "error", err)
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

func (r *RedisStorage) GetCharacter(ctx context.Context, name string) (*character.Config, error) {
	if !validAssetName(name) {
		return nil, fmt.Errorf("invalid character name: %s", name)
	}

	path := filepath.Join(r.dataDir, "characters", name+".json")

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("character not found: %s", name)
		}
		return nil, fmt.Errorf("failed to read character file: %w", err)
	}

	var cfg character.Config
	if err := json.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character config: %w", err)
	}

	return &cfg, nil
}
