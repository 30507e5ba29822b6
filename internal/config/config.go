// internal/config/config.go
//
// This package handles configuration and the .taskboard directory structure.
// Every project that runs taskboard gets a .taskboard/ folder in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/taskboard/internal/task"
	"github.com/kingrea/taskboard/internal/view"
)

const (
	// TaskboardDir is the name of the directory we create in each project
	TaskboardDir = ".taskboard"

	defaultLocale   = "und"
	defaultLogLines = 6
	maxLogLines     = 50
)

const defaultProjectConfigYAML = `# taskboard project configuration
version: 1

# BCP 47 tag used to collate task titles ("und" is the root collation).
locale: und

# Starting values for new tasks and for the list view.
defaults:
  priority: low
  # all, low, medium or high
  filter: all
  # asc or desc
  order: asc

ui:
  # Lines of the session journal shown under the task list (0 hides the panel).
  log_lines: 6
`

// DefaultsConfig captures the starting values for the board.
type DefaultsConfig struct {
	Priority string `yaml:"priority"`
	Filter   string `yaml:"filter"`
	Order    string `yaml:"order"`
}

// UIConfig captures presentation preferences.
type UIConfig struct {
	LogLines *int `yaml:"log_lines,omitempty"`
}

// ProjectConfig models .taskboard/config.yaml.
type ProjectConfig struct {
	Version  int            `yaml:"version"`
	Locale   string         `yaml:"locale"`
	Defaults DefaultsConfig `yaml:"defaults"`
	UI       UIConfig       `yaml:"ui"`
}

// Config holds the runtime configuration for taskboard.
type Config struct {
	// ProjectDir is the directory taskboard was started from
	ProjectDir string

	// BoardDir is ProjectDir/.taskboard
	BoardDir string

	Project ProjectConfig
}

// InitDir creates the .taskboard directory structure in the given project
// directory and writes a default config.yaml when none exists.
//
// Structure created:
// .taskboard/
// ├── config.yaml
// └── logs/        <- session journal
func InitDir(projectDir string) error {
	boardDir := filepath.Join(projectDir, TaskboardDir)
	if err := os.MkdirAll(filepath.Join(boardDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure %s: %w", boardDir, err)
	}
	return ensureProjectConfig(filepath.Join(boardDir, "config.yaml"))
}

// NewConfig loads .taskboard/config.yaml (defaults when missing) and applies
// TASKBOARD_LOCALE and TASKBOARD_ORDER overrides.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		BoardDir:   filepath.Join(projectDir, TaskboardDir),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.BoardDir, "logs")
}

// JournalPath returns the session journal file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "journey.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.BoardDir, "config.yaml")
}

// Locale returns the collation locale. Validation guarantees it parses.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.Project.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// DefaultPriority returns the priority preselected for new tasks.
func (c *Config) DefaultPriority() task.Priority {
	p, err := task.ParsePriority(c.Project.Defaults.Priority)
	if err != nil {
		return task.PriorityLow
	}
	return p
}

// ViewParams returns the initial search, filter and order.
func (c *Config) ViewParams() view.Params {
	params := view.Params{Order: view.Ascending}
	if f, err := view.ParseFilter(c.Project.Defaults.Filter); err == nil {
		params.Filter = f
	}
	if o, err := view.ParseOrder(c.Project.Defaults.Order); err == nil {
		params.Order = o
	}
	return params
}

// LogLines returns how many journal lines the UI shows.
func (c *Config) LogLines() int {
	if c.Project.UI.LogLines == nil {
		return defaultLogLines
	}
	return *c.Project.UI.LogLines
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if value := strings.TrimSpace(os.Getenv("TASKBOARD_LOCALE")); value != "" {
		c.Project.Locale = value
	}
	if value := strings.TrimSpace(os.Getenv("TASKBOARD_ORDER")); value != "" {
		c.Project.Defaults.Order = value
	}
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Locale) == "" {
		pc.Locale = defaultLocale
	}
	if strings.TrimSpace(pc.Defaults.Priority) == "" {
		pc.Defaults.Priority = string(task.PriorityLow)
	}
	if strings.TrimSpace(pc.Defaults.Filter) == "" {
		pc.Defaults.Filter = "all"
	}
	if strings.TrimSpace(pc.Defaults.Order) == "" {
		pc.Defaults.Order = "asc"
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Locale = strings.TrimSpace(pc.Locale)
	pc.Defaults.Priority = normalizeValue(pc.Defaults.Priority)
	pc.Defaults.Filter = normalizeValue(pc.Defaults.Filter)
	pc.Defaults.Order = normalizeValue(pc.Defaults.Order)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if _, err := language.Parse(pc.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", pc.Locale, err)
	}
	if _, err := task.ParsePriority(pc.Defaults.Priority); err != nil {
		return fmt.Errorf("defaults.priority: %w", err)
	}
	if _, err := view.ParseFilter(pc.Defaults.Filter); err != nil {
		return fmt.Errorf("defaults.filter: %w", err)
	}
	if _, err := view.ParseOrder(pc.Defaults.Order); err != nil {
		return fmt.Errorf("defaults.order: %w", err)
	}
	if n := pc.UI.LogLines; n != nil && (*n < 0 || *n > maxLogLines) {
		return fmt.Errorf("ui.log_lines must be between 0 and %d", maxLogLines)
	}
	return nil
}

func normalizeValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
