package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hiibolt/sabi/pkg/ast"
	"github.com/hiibolt/sabi/pkg/character"
	"github.com/hiibolt/sabi/pkg/loader"
	"github.com/hiibolt/sabi/pkg/script"
)

// validate checks script and character files without running them:
// *.json files are strictly decoded as character configs, *.sabi files
// are parsed and built. When both kinds are passed together, spawn and
// emotion directives are cross-checked against the configured cast.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <file.sabi|character.json> [...]\n", os.Args[0])
		os.Exit(1)
	}

	var scriptFiles []string
	cast := make(map[string]*character.Config)
	failed := false

	// Characters first, so scripts can be checked against the cast.
	for _, filename := range os.Args[1:] {
		switch filepath.Ext(filename) {
		case ".sabi":
			scriptFiles = append(scriptFiles, filename)
		case ".json":
			cfg, err := validateCharacter(filename)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
				failed = true
				continue
			}
			cast[cfg.Name] = cfg
			fmt.Printf("%s: ok\n", filename)
		default:
			fmt.Fprintf(os.Stderr, "%s: unsupported file type (want .sabi or .json)\n", filename)
			failed = true
		}
	}

	for _, filename := range scriptFiles {
		if err := validateScript(filename, cast); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func validateScript(filename string, cast map[string]*character.Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(filename), ".sabi")
	act, err := loader.Load(string(data), name)
	if err != nil {
		var syntaxErr *script.SyntaxError
		var buildErr *ast.BuildError
		switch {
		case errors.As(err, &syntaxErr):
			return syntaxErr
		case errors.As(err, &buildErr):
			return buildErr
		default:
			return err
		}
	}

	if errs := loader.ValidateCast(act, cast); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		}
		return fmt.Errorf("%d cast error(s)", len(errs))
	}

	fmt.Printf("%s: %d scene(s), %d statement(s)\n", filename, len(act.Scenes), act.StatementCount())
	return nil
}

func validateCharacter(filename string) (*character.Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	var cfg character.Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("strict decode failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
