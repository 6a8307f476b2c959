// Package driver holds the host-side plumbing around the interpreter:
// the risl.yml configuration, source loading and the concurrent static checker.
package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"risl/interpreter-go/pkg/interpreter"
)

// ConfigFileName is the file searched for by FindConfig.
const ConfigFileName = "risl.yml"

// ConfigEnv names an environment variable that overrides the config search.
const ConfigEnv = "RISL_CONFIG"

var errConfigNotFound = errors.New("config: not found")

// ColorMode controls diagnostic colouring in the CLI.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config represents the parsed contents of risl.yml. Relative paths are
// resolved against the directory holding the file.
type Config struct {
	Path             string
	MaxCallDepth     int
	Debug            bool
	LogLevel         slog.Level
	Color            ColorMode
	HistoryFile      string
	Prelude          []string
	CheckParallelism int
}

// DefaultConfig returns the settings used when no risl.yml exists.
func DefaultConfig() *Config {
	return &Config{
		MaxCallDepth:     interpreter.DefaultMaxCallDepth,
		LogLevel:         slog.LevelWarn,
		Color:            ColorAuto,
		CheckParallelism: goruntime.GOMAXPROCS(0),
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString("validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses and validates the config file at path. An empty file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()
	return decodeConfig(file, absPath)
}

func decodeConfig(r io.Reader, absPath string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	return raw.toConfig(absPath)
}

// FindConfig walks up from start looking for risl.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, errConfigNotFound)
		}
		dir = parent
	}
}

// DiscoverConfig loads the file named by RISL_CONFIG, or else the nearest
// risl.yml above start. Without either it returns the defaults.
func DiscoverConfig(start string) (*Config, error) {
	if path := strings.TrimSpace(os.Getenv(ConfigEnv)); path != "" {
		return LoadConfig(path)
	}
	path, err := FindConfig(start)
	if errors.Is(err, errConfigNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadConfig(path)
}

// InterpreterOptions translates the config into interpreter options.
func (c *Config) InterpreterOptions() []interpreter.Option {
	return []interpreter.Option{
		interpreter.WithMaxCallDepth(c.MaxCallDepth),
		interpreter.WithDebug(c.Debug),
	}
}

// Logger builds a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

type configFile struct {
	MaxCallDepth     *int       `yaml:"max_call_depth"`
	Debug            bool       `yaml:"debug"`
	LogLevel         string     `yaml:"log_level"`
	Color            string     `yaml:"color"`
	HistoryFile      string     `yaml:"history_file"`
	Prelude          stringList `yaml:"prelude"`
	CheckParallelism *int       `yaml:"check_parallelism"`
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func (cf configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Debug = cf.Debug
	errs := ValidationError{Path: path}

	if cf.MaxCallDepth != nil {
		if *cf.MaxCallDepth < 1 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive, got %d", *cf.MaxCallDepth))
		} else {
			cfg.MaxCallDepth = *cf.MaxCallDepth
		}
	}
	if cf.CheckParallelism != nil {
		if *cf.CheckParallelism < 1 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("check_parallelism must be positive, got %d", *cf.CheckParallelism))
		} else {
			cfg.CheckParallelism = *cf.CheckParallelism
		}
	}
	if level := strings.ToLower(strings.TrimSpace(cf.LogLevel)); level != "" {
		if lvl, ok := logLevels[level]; ok {
			cfg.LogLevel = lvl
		} else {
			errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q must be one of debug, info, warn, error", cf.LogLevel))
		}
	}
	if mode := ColorMode(strings.ToLower(strings.TrimSpace(cf.Color))); mode != "" {
		switch mode {
		case ColorAuto, ColorAlways, ColorNever:
			cfg.Color = mode
		default:
			errs.Issues = append(errs.Issues, fmt.Sprintf("color %q must be one of auto, always, never", cf.Color))
		}
	}

	base := filepath.Dir(path)
	if history := strings.TrimSpace(cf.HistoryFile); history != "" {
		resolved, err := resolvePath(base, history)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("history_file: %v", err))
		}
		cfg.HistoryFile = resolved
	}
	for _, entry := range cf.Prelude.Clone() {
		resolved, err := resolvePath(base, entry)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("prelude %q: %v", entry, err))
			continue
		}
		cfg.Prelude = append(cfg.Prelude, resolved)
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// resolvePath expands a leading ~/ and anchors relative paths at base.
func resolvePath(base, p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p), nil
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("config: expected string or sequence but found %s", value.ShortTag())
	}
}
