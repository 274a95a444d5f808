// ABOUTME: Loads STACKRUSH_* settings from .env files at startup.
// ABOUTME: Sets variables only when not already present in the environment (no clobber).
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envPrefix = "STACKRUSH_"

// loadDotEnv reads a .env file and sets STACKRUSH_* variables that are not
// already in the environment. It returns how many were set. Other keys are
// ignored so a shared .env cannot reconfigure unrelated tools.
// Supports KEY=VALUE, KEY="VALUE", KEY='VALUE', and export KEY=VALUE.
func loadDotEnv(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	set := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return set, fmt.Errorf("setting %s: %w", key, err)
		}
		set++
	}
	if err := scanner.Err(); err != nil {
		return set, fmt.Errorf("reading %s: %w", path, err)
	}
	return set, nil
}

// parseEnvLine splits one .env line. Blank lines and # comments yield ok=false.
func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	// Values can contain '='.
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, key != ""
}

// loadDotEnvAuto loads .env from the current directory and its parents,
// nearest first, so a project-level file wins over a home-level one.
func loadDotEnvAuto() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	for dir := wd; ; {
		_, _ = loadDotEnv(filepath.Join(dir, ".env"))
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
