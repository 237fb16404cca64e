package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for config files that cannot be parsed or
// lack required settings.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Workbook string       `yaml:"workbook"`
	Sheet    string       `yaml:"sheet"`
	Columns  Columns      `yaml:"columns"`
	Prompt   PromptConfig `yaml:"prompt"`
	Output   OutputConfig `yaml:"output"`
}

// Columns names the story sheet headers the tool relies on.
type Columns struct {
	ID             string `yaml:"id"`
	LineOfBusiness string `yaml:"line_of_business"`
	Release        string `yaml:"release"`
	Area           string `yaml:"area"`
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
}

type PromptConfig struct {
	// Template is a text/template file replacing the built-in prompt.
	Template string        `yaml:"template,omitempty"`
	Fields   []PromptField `yaml:"fields"`
	// MaxChars splits the prompt into several files of at most this many
	// characters. Zero writes a single file.
	MaxChars int `yaml:"max_chars,omitempty"`
}

// PromptField is one story column shown in the prompt under Label.
type PromptField struct {
	Column string `yaml:"column"`
	Label  string `yaml:"label"`
}

type OutputConfig struct {
	Dir          string `yaml:"dir"`
	PromptPrefix string `yaml:"prompt_prefix"`
	ExportPrefix string `yaml:"export_prefix"`
}

func DefaultConfig() *Config {
	return &Config{
		Workbook: "HU Release 1.2.1.xlsx",
		Sheet:    "USER STORIES",
		Columns: Columns{
			ID:             "ID_US",
			LineOfBusiness: "Ramo",
			Release:        "Release",
			Area:           "Proceso",
			Title:          "Titulo",
			Description:    "Descripción de la HdU - IA",
		},
		Prompt: PromptConfig{
			Fields: []PromptField{
				{Column: "ID_US", Label: "ID_US"},
				{Column: "Titulo", Label: "Título"},
				{Column: "Ramo", Label: "Ramo"},
				{Column: "Release", Label: "Release"},
				{Column: "Descripción de la HdU - IA", Label: "Descripción de la HdU - IA"},
				{Column: "Proceso", Label: "Proceso"},
				{Column: "Funcionalidad2", Label: "Funcionalidad2"},
			},
		},
		Output: OutputConfig{
			Dir:          ".",
			PromptPrefix: "prompt_copilot",
			ExportPrefix: "historias",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "storyprompt"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the config from the default path. It returns nil, nil when no
// config file exists.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Keys missing from the file keep their
// default values. It returns nil, nil when the file does not exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "could not read config %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s: %v", path, err)
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "could not create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "could not encode config")
	}

	return errors.Wrapf(os.WriteFile(path, data, 0644), "could not write config %s", path)
}

// Validate reports settings the tool cannot run without.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Workbook) == "" {
		problems = append(problems, "workbook is empty")
	}
	if strings.TrimSpace(c.Columns.ID) == "" {
		problems = append(problems, "columns.id is empty")
	}
	if strings.TrimSpace(c.Output.PromptPrefix) == "" {
		problems = append(problems, "output.prompt_prefix is empty")
	}
	if strings.TrimSpace(c.Output.ExportPrefix) == "" {
		problems = append(problems, "output.export_prefix is empty")
	}
	if c.Prompt.MaxChars < 0 {
		problems = append(problems, "prompt.max_chars is negative")
	}
	for i, f := range c.Prompt.Fields {
		if strings.TrimSpace(f.Column) == "" {
			problems = append(problems, fmt.Sprintf("prompt.fields[%d].column is empty", i))
		}
	}
	if len(problems) > 0 {
		return errors.Wrap(ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Expected returns every column header the config refers to, without
// repeats, in declaration order.
func (c *Config) Expected() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	col := c.Columns
	for _, name := range []string{col.ID, col.LineOfBusiness, col.Release, col.Area, col.Title, col.Description} {
		add(name)
	}
	for _, f := range c.Prompt.Fields {
		add(f.Column)
	}
	return out
}
