// Package config loads msgc project files.
//
// A project file lists schemas to compile and the options to compile them
// with. YAML (.yaml, .yml) and TOML (.toml) are accepted:
//
//	output_dir: gen
//	targets: [c, python, manifest]
//	unique_names: true
//	log:
//	  level: debug
//	messages:
//	  - schema: schemas/Reading.msg
//	  - schema: schemas/status.msg
//	    name: Status
//	    out: status/status
//
// Relative paths are resolved against the directory holding the file.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/msgc"
	"github.com/wippyai/msgc/errors"
	"github.com/wippyai/msgc/schema"
)

// Environment variables that override the file.
const (
	EnvLogLevel  = "MSGC_LOG_LEVEL"
	EnvOutputDir = "MSGC_OUTPUT_DIR"
)

// Format is the syntax of a project file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Config is a project file.
type Config struct {
	OutputDir      string    `yaml:"output_dir" toml:"output_dir"`
	Log            LogConfig `yaml:"log" toml:"log"`
	Targets        []string  `yaml:"targets" toml:"targets"`
	Messages       []Message `yaml:"messages" toml:"messages"`
	UniqueNames    bool      `yaml:"unique_names" toml:"unique_names"`
	CheckConstants bool      `yaml:"check_constants" toml:"check_constants"`

	// BaseDir anchors relative paths. Load sets it to the file's directory.
	BaseDir string `yaml:"-" toml:"-"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // console or json
}

// Message is one schema to compile.
type Message struct {
	Schema string `yaml:"schema" toml:"schema"`
	Name   string `yaml:"name" toml:"name"` // defaults to the schema file stem
	Out    string `yaml:"out" toml:"out"`   // output base, defaults to the stem
}

// Default returns a configuration with every default applied and no
// messages.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
		Path(path).
		Detail("unsupported config extension %q", filepath.Ext(path)).
		Build()
}

// Load reads, defaults, overrides from the environment and validates a
// project file.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO("read config", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	cfg.BaseDir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes data in the given format. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return nil, errors.InvalidConfig("parse yaml", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.InvalidConfig("parse toml", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
				Token(undecoded[0].String()).
				Detail("unknown key").
				Build()
		}
	default:
		return nil, errors.InvalidConfig("unknown format "+string(format), nil)
	}

	ApplyEnv(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides cfg from MSGC_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
}

func setDefaults(cfg *Config) {
	if len(cfg.Targets) == 0 {
		cfg.Targets = append([]string(nil), msgc.DefaultTargets...)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// Validate checks targets, log settings and every message entry.
func (c *Config) Validate() error {
	for _, t := range c.Targets {
		if !msgc.KnownTarget(t) {
			return errors.UnknownTarget(errors.PhaseConfig, t)
		}
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
			Path("log", "level").
			Token(c.Log.Level).
			Cause(err).
			Build()
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
			Path("log", "format").
			Token(c.Log.Format).
			Detail("want console or json").
			Build()
	}
	for i, m := range c.Messages {
		if strings.TrimSpace(m.Schema) == "" {
			return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
				Path("messages", strconv.Itoa(i), "schema").
				Detail("schema path is required").
				Build()
		}
		if m.Name != "" && !schema.ValidIdentifier(m.Name) {
			return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
				Path("messages", strconv.Itoa(i), "name").
				Token(m.Name).
				Detail("not a valid identifier").
				Build()
		}
	}
	return nil
}

// Resolve anchors a relative path at BaseDir.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.BaseDir == "" {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}

// SchemaPath returns the resolved schema path of m.
func (c *Config) SchemaPath(m Message) string {
	return c.Resolve(m.Schema)
}

// OutputBase returns the resolved output base of m: Out, or the schema's
// file stem, under OutputDir.
func (c *Config) OutputBase(m Message) string {
	out := m.Out
	if out == "" {
		out = schema.NameFromPath(m.Schema)
	}
	if !filepath.IsAbs(out) && c.OutputDir != "" {
		out = filepath.Join(c.OutputDir, out)
	}
	return c.Resolve(out)
}

// GeneratorOptions translates the file into msgc options.
func (c *Config) GeneratorOptions() []msgc.Option {
	var parserOpts []schema.Option
	if c.UniqueNames {
		parserOpts = append(parserOpts, schema.WithUniqueNames())
	}
	if c.CheckConstants {
		parserOpts = append(parserOpts, schema.WithConstantCheck())
	}
	return []msgc.Option{
		msgc.WithTargets(c.Targets...),
		msgc.WithParserOptions(parserOpts...),
	}
}
