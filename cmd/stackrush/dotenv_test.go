// ABOUTME: Tests for the .env loader that reads STACKRUSH_* pairs into the process environment.
// ABOUTME: Covers plain and quoted values, comments, foreign keys, missing files, and no-clobber behavior.
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempEnv(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDotEnvSetsVariables(t *testing.T) {
	path := writeTempEnv(t, "STACKRUSH_TEST_A=hello\nexport STACKRUSH_TEST_B=world\n")
	unsetEnv(t, "STACKRUSH_TEST_A")
	unsetEnv(t, "STACKRUSH_TEST_B")

	n, err := loadDotEnv(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 variables set, got %d", n)
	}
	if got := os.Getenv("STACKRUSH_TEST_A"); got != "hello" {
		t.Errorf("expected STACKRUSH_TEST_A=hello, got %q", got)
	}
	if got := os.Getenv("STACKRUSH_TEST_B"); got != "world" {
		t.Errorf("expected STACKRUSH_TEST_B=world, got %q", got)
	}
}

func TestLoadDotEnvQuotedValues(t *testing.T) {
	path := writeTempEnv(t, "STACKRUSH_TEST_D=\"double quoted\"\nSTACKRUSH_TEST_S='single quoted'\n")
	unsetEnv(t, "STACKRUSH_TEST_D")
	unsetEnv(t, "STACKRUSH_TEST_S")

	if _, err := loadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("STACKRUSH_TEST_D"); got != "double quoted" {
		t.Errorf("expected 'double quoted', got %q", got)
	}
	if got := os.Getenv("STACKRUSH_TEST_S"); got != "single quoted" {
		t.Errorf("expected 'single quoted', got %q", got)
	}
}

func TestLoadDotEnvNoClobber(t *testing.T) {
	path := writeTempEnv(t, "STACKRUSH_TEST_KEEP=from-file\n")
	t.Setenv("STACKRUSH_TEST_KEEP", "from-env")

	n, err := loadDotEnv(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected nothing set, got %d", n)
	}
	if got := os.Getenv("STACKRUSH_TEST_KEEP"); got != "from-env" {
		t.Errorf("existing variable overwritten: %q", got)
	}
}

func TestLoadDotEnvIgnoresForeignKeys(t *testing.T) {
	path := writeTempEnv(t, "OTHER_TOOL_TOKEN=secret\n")
	unsetEnv(t, "OTHER_TOOL_TOKEN")

	if _, err := loadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if _, ok := os.LookupEnv("OTHER_TOOL_TOKEN"); ok {
		t.Error("expected non-STACKRUSH key to be ignored")
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	n, err := loadDotEnv(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil || n != 0 {
		t.Errorf("expected (0, nil) for a missing file, got (%d, %v)", n, err)
	}
}

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line      string
		key, val  string
		wantFound bool
	}{
		{"KEY=value", "KEY", "value", true},
		{"  KEY = value  ", "KEY", "value", true},
		{"KEY=a=b", "KEY", "a=b", true},
		{`KEY="x"`, "KEY", "x", true},
		{"export KEY=v", "KEY", "v", true},
		{"KEY=", "KEY", "", true},
		{"# comment", "", "", false},
		{"", "", "", false},
		{"novalue", "", "", false},
		{"=value", "", "value", false},
	}
	for _, tt := range tests {
		key, val, ok := parseEnvLine(tt.line)
		if ok != tt.wantFound {
			t.Errorf("parseEnvLine(%q) ok = %v, want %v", tt.line, ok, tt.wantFound)
			continue
		}
		if ok && (key != tt.key || val != tt.val) {
			t.Errorf("parseEnvLine(%q) = (%q, %q), want (%q, %q)", tt.line, key, val, tt.key, tt.val)
		}
	}
}
