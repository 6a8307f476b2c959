package driver

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"risl/interpreter-go/pkg/interpreter"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ConfigFileName)
	writeFile(t, path, `
max_call_depth: 64
debug: true
log_level: Info
color: never
history_file: .history
prelude:
  - lib/a.risl
  - " "
  - /abs/b.risl
check_parallelism: 3
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := &Config{
		Path:             path,
		MaxCallDepth:     64,
		Debug:            true,
		LogLevel:         slog.LevelInfo,
		Color:            ColorNever,
		HistoryFile:      filepath.Join(root, ".history"),
		Prelude:          []string{filepath.Join(root, "lib", "a.risl"), "/abs/b.risl"},
		CheckParallelism: 3,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPreludeScalar(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ConfigFileName)
	writeFile(t, path, "prelude: boot.risl\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(root, "boot.risl")}, cfg.Prelude); diff != "" {
		t.Fatalf("prelude mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxCallDepth != interpreter.DefaultMaxCallDepth || cfg.Color != ColorAuto || cfg.LogLevel != slog.LevelWarn {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, `
max_call_depth: 0
log_level: loud
color: sometimes
check_parallelism: -1
`)

	_, err := LoadConfig(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	want := []string{
		"max_call_depth must be positive, got 0",
		"check_parallelism must be positive, got -1",
		`log_level "loud" must be one of debug, info, warn, error`,
		`color "sometimes" must be one of auto, always, never`,
	}
	if diff := cmp.Diff(want, verr.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(err.Error(), "config: "+path+": validation failed:") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "max_depth: 3\n")

	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "max_depth") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "debug: true\n")
	child := filepath.Join(root, "src", "app")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindConfig(child)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if want := filepath.Join(root, ConfigFileName); found != want {
		t.Fatalf("FindConfig = %q, want %q", found, want)
	}

	script := filepath.Join(child, "main.risl")
	writeFile(t, script, "print 1;")
	if found, err := FindConfig(script); err != nil || found != filepath.Join(root, ConfigFileName) {
		t.Fatalf("FindConfig from a file = %q, %v", found, err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	root := t.TempDir()
	t.Setenv(ConfigEnv, "")

	cfg, err := DiscoverConfig(root)
	if err != nil {
		t.Fatalf("DiscoverConfig without file: %v", err)
	}
	if cfg.Path != "" {
		t.Fatalf("expected defaults, got config from %q", cfg.Path)
	}

	elsewhere := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, elsewhere, "max_call_depth: 9\n")
	t.Setenv(ConfigEnv, elsewhere)
	cfg, err = DiscoverConfig(root)
	if err != nil {
		t.Fatalf("DiscoverConfig with env: %v", err)
	}
	if cfg.MaxCallDepth != 9 {
		t.Fatalf("expected the env config to win, got %+v", cfg)
	}
}

func TestConfigDrivesInterpreter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCallDepth = 5
	var out strings.Builder
	opts := append(cfg.InterpreterOptions(), interpreter.WithOutput(&out))
	outcome := interpreter.Interpret("fn f(n) { return f(n + 1); } f(0);", opts...)
	if len(outcome.Diagnostics) != 1 || outcome.Diagnostics[0].Code != "StackOverflow" {
		t.Fatalf("expected StackOverflow, got %v", outcome.Diagnostics)
	}
}
