package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Prompt  PromptConfig  `yaml:"prompt,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
	Audit   AuditConfig   `yaml:"audit,omitempty"`
	Skills  SkillsConfig  `yaml:"skills,omitempty"`
	Scoring ScoringConfig `yaml:"scoring,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// PromptConfig configures prompt assembly defaults.
type PromptConfig struct {
	// MaxHistoryMessages caps the conversation-history window when a
	// request does not set its own limit.
	MaxHistoryMessages int `yaml:"max_history_messages,omitempty"`
	// DefaultOutputFormat is used when a request omits output_format.
	// "markdown" or "structured_json".
	DefaultOutputFormat string `yaml:"default_output_format,omitempty"`
}

// HistoryConfig configures the conversation store.
type HistoryConfig struct {
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// AuditConfig configures the prompt-assembly audit trail.
type AuditConfig struct {
	Enabled       bool   `yaml:"enabled,omitempty"`
	Dir           string `yaml:"dir,omitempty"`
	RetentionDays int    `yaml:"retention_days,omitempty"`
	FilePrefix    string `yaml:"file_prefix,omitempty"`
}

// SkillsConfig configures skill discovery.
type SkillsConfig struct {
	Dirs     []string `yaml:"dirs,omitempty"`
	Disabled []string `yaml:"disabled,omitempty"`
}

// ScoringConfig configures output scoring.
type ScoringConfig struct {
	// SectionsPath optionally points at a YAML file extending the
	// built-in action to expected-sections mapping.
	SectionsPath string `yaml:"sections_path,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Prompt: PromptConfig{
			MaxHistoryMessages:  200,
			DefaultOutputFormat: "markdown",
		},
		History: HistoryConfig{
			SQLitePath: ".docanalyze.db",
		},
		Audit: AuditConfig{
			Enabled:       false,
			Dir:           ".docanalyze/audit",
			RetentionDays: 7,
			FilePrefix:    "assemble",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".docanalyze.yaml")
}

func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads config from an explicit file path. A missing file
// yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0600)
}
