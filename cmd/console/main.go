package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hiibolt/sabi/pkg/loader"
	"github.com/hiibolt/sabi/pkg/playback"
)

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	} else {
		scriptsDir := filepath.Join(getEnv("DATA_DIR", "./data"), "scripts")
		chosen, err := chooseScript(scriptsDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		path = chosen
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read script: %v\n", err)
		os.Exit(1)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	act, err := loader.Load(string(data), name)
	if err != nil {
		// A script that fails to compile blocks play; playback errors
		// later on never end up here.
		fmt.Fprintf(os.Stderr, "Failed to load script: %v\n", err)
		os.Exit(1)
	}

	playerName := getEnv("PLAYER_NAME", "")
	if playerName == "" {
		fmt.Print("Player name: ")
		if _, err := fmt.Scanln(&playerName); err != nil || playerName == "" {
			playerName = "Player"
		}
	}

	ui := NewConsoleUI(playback.New(act), playerName)
	p := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// chooseScript lists *.sabi files in dir and asks for a numbered choice,
// like picking a scenario from a menu.
func chooseScript(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list scripts in %s: %w (pass a script path as an argument)", dir, err)
	}

	var scripts []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sabi" {
			scripts = append(scripts, e.Name())
		}
	}
	if len(scripts) == 0 {
		return "", fmt.Errorf("no .sabi scripts found in %s", dir)
	}
	sort.Strings(scripts)

	fmt.Println("Available scripts:")
	for i, s := range scripts {
		fmt.Printf("  %d - %s\n", i+1, strings.TrimSuffix(s, ".sabi"))
	}
	fmt.Print("\nSelect a script by number: ")

	var choice int
	if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(scripts) {
		return "", fmt.Errorf("invalid selection")
	}

	return filepath.Join(dir, scripts[choice-1]), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
