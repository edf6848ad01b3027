package memcheck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/securego/memcheck/checker"
)

const (
	// Globals are applicable to all rules and used for general
	// configuration settings for memcheck.
	Globals = "global"
	// ExcludeRulesKey is the configuration section holding path based
	// rule exclusions.
	ExcludeRulesKey = "exclude-rules"
)

// GlobalOption defines the name of the global options
type GlobalOption string

const (
	// LeakReport selects whether the end of unit check reports the first
	// offending variable ("first") or all of them ("all")
	LeakReport GlobalOption = "leak-report"
	// ReallocInvalidatesSource marks the argument of a successful realloc
	// as unknown
	ReallocInvalidatesSource GlobalOption = "realloc-invalidates-source"
	// Concurrency is the number of files analyzed in parallel
	Concurrency GlobalOption = "concurrency"
)

// Config is used to provide configuration and customization to the analyzer.
type Config map[string]interface{}

// NewConfig initializes a new configuration instance. The configuration data then
// needs to be loaded via c.ReadFrom(strings.NewReader("config data"))
// or from a *os.File.
func NewConfig() Config {
	cfg := make(Config)
	cfg[Globals] = make(map[GlobalOption]string)
	return cfg
}

// LoadConfig reads a configuration file. Files ending in .yml or .yaml are
// read as YAML, anything else as JSON.
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path) // #nosec
	if err != nil {
		return nil, err
	}
	defer file.Close() // #nosec

	cfg := NewConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = cfg.readYAML(file)
	default:
		_, err = cfg.ReadFrom(file)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) keyToGlobalOptions(key string) GlobalOption {
	return GlobalOption(key)
}

func (c Config) convertGlobals() {
	if globals, ok := c[Globals]; ok {
		if settings, ok := globals.(map[string]interface{}); ok {
			validGlobals := map[GlobalOption]string{}
			for k, v := range settings {
				validGlobals[c.keyToGlobalOptions(k)] = fmt.Sprintf("%v", v)
			}
			c[Globals] = validGlobals
		}
	}
	if _, ok := c[Globals]; !ok {
		c[Globals] = make(map[GlobalOption]string)
	}
}

// ReadFrom implements the io.ReaderFrom interface. This
// should be used with io.Reader to load configuration from
// file or from string etc.
func (c Config) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	if err = json.Unmarshal(data, &c); err != nil {
		return int64(len(data)), err
	}
	c.convertGlobals()
	return int64(len(data)), nil
}

func (c Config) readYAML(r io.Reader) error {
	var raw map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty configuration")
		}
		return err
	}
	for k, v := range raw {
		c[k] = v
	}
	c.convertGlobals()
	return nil
}

// WriteTo implements the io.WriteTo interface. This should
// be used to save or print out the configuration information.
func (c Config) WriteTo(w io.Writer) (int64, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return int64(len(data)), err
	}
	return io.Copy(w, bytes.NewReader(data))
}

// Get returns the configuration section for the supplied key
func (c Config) Get(section string) (interface{}, error) {
	settings, found := c[section]
	if !found {
		return nil, fmt.Errorf("Section %s not in configuration", section)
	}
	return settings, nil
}

// Set section in the configuration
func (c Config) Set(section string, value interface{}) {
	c[section] = value
}

// GetGlobal returns value associated with global configuration option
func (c Config) GetGlobal(option GlobalOption) (string, error) {
	if globals, ok := c[Globals]; ok {
		if settings, ok := globals.(map[GlobalOption]string); ok {
			if value, ok := settings[option]; ok {
				return value, nil
			}
			return "", fmt.Errorf("global setting for %s not found", option)
		}
	}
	return "", fmt.Errorf("no global config options found")
}

// SetGlobal associates a value with a global configuration option
func (c Config) SetGlobal(option GlobalOption, value string) {
	if globals, ok := c[Globals]; ok {
		if settings, ok := globals.(map[GlobalOption]string); ok {
			settings[option] = value
		}
	}
}

// IsGlobalEnabled checks if a global option is enabled
func (c Config) IsGlobalEnabled(option GlobalOption) (bool, error) {
	value, err := c.GetGlobal(option)
	if err != nil {
		return false, err
	}
	return (value == "true" || value == "enabled"), nil
}

// CheckerOptions builds the checker options from the global settings.
func (c Config) CheckerOptions() (checker.Options, error) {
	var opts checker.Options
	if value, err := c.GetGlobal(LeakReport); err == nil {
		mode, err := checker.ParseLeakMode(value)
		if err != nil {
			return opts, err
		}
		opts.LeakReport = mode
	}
	if enabled, err := c.IsGlobalEnabled(ReallocInvalidatesSource); err == nil {
		opts.ReallocInvalidatesSource = enabled
	}
	return opts, nil
}

// GetConcurrency returns the configured number of parallel workers, or
// fallback when none is set.
func (c Config) GetConcurrency(fallback int) (int, error) {
	value, err := c.GetGlobal(Concurrency)
	if err != nil {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback, fmt.Errorf("invalid %s %q", Concurrency, value)
	}
	return n, nil
}

// GetExcludeRules returns the path based rule exclusions of the
// configuration.
func (c Config) GetExcludeRules() ([]PathExcludeRule, error) {
	section, ok := c[ExcludeRulesKey]
	if !ok {
		return nil, nil
	}
	if rules, ok := section.([]PathExcludeRule); ok {
		return rules, nil
	}
	raw, err := json.Marshal(section)
	if err != nil {
		return nil, err
	}
	var rules []PathExcludeRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("%s: %w", ExcludeRulesKey, err)
	}
	return rules, nil
}
