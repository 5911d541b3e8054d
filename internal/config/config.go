// Package config holds the validated calculator configuration: the input
// base, the ordered set of output bases, and the optional expression file.
// Values come from an optional yaml file merged with defaults; command-line
// flags override both in cmd/basejump.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"basejump/internal/errors"
	"basejump/internal/numeral"

	"gopkg.in/yaml.v3"
)

// MaxOutputBases caps the output-base list; there are only 35 distinct
// bases, so a valid list can never be longer.
const MaxOutputBases = numeral.MaxBase

// Config represents the calculator configuration.
type Config struct {
	InputBase   int    `yaml:"input_base"`   // Base expressions are typed in (2-36)
	OutputBases []int  `yaml:"output_bases"` // Ordered unique bases results are shown in
	File        string `yaml:"-"`            // Optional expression file (flags only)
}

// New returns the default configuration: decimal input, results shown in
// binary, decimal, and hexadecimal.
func New() *Config {
	return &Config{
		InputBase:   10,
		OutputBases: []int{2, 10, 16},
	}
}

// LoadConfig loads configuration from the default location
// (~/.config/basejump/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(filepath.Join(home, ".config", "basejump", "config.yaml"))
}

// LoadConfigFile loads configuration from a specific file path. If the file
// doesn't exist, the defaults are returned.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.InputBase != 0 {
		cfg.InputBase = tempCfg.InputBase
	}
	if len(tempCfg.OutputBases) > 0 {
		cfg.OutputBases = tempCfg.OutputBases
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration invariants: input base in range and an
// output-base list that is non-empty, unique, in range, and within the cap.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New(errors.InvalidConfig, "nil config")
	}
	if !numeral.BaseInRange(c.InputBase) {
		return errors.Newf(errors.InvalidConfig, "input base %d out of range [%d,%d]", c.InputBase, numeral.MinBase, numeral.MaxBase)
	}
	if len(c.OutputBases) == 0 {
		return errors.New(errors.InvalidConfig, "no output bases configured")
	}
	if len(c.OutputBases) > MaxOutputBases {
		return errors.Newf(errors.InvalidConfig, "more than %d output bases", MaxOutputBases)
	}
	seen := make(map[int]bool, len(c.OutputBases))
	for _, base := range c.OutputBases {
		if !numeral.BaseInRange(base) {
			return errors.Newf(errors.InvalidConfig, "output base %d out of range [%d,%d]", base, numeral.MinBase, numeral.MaxBase)
		}
		if seen[base] {
			return errors.Newf(errors.InvalidConfig, "duplicate output base %d", base)
		}
		seen[base] = true
	}
	return nil
}

// DigitsOnly reports whether s is non-empty and contains only '0'-'9'.
func DigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseBase parses a decimal base value and checks it is in [2,36].
func ParseBase(s string) (int, error) {
	if !DigitsOnly(s) {
		return 0, errors.Newf(errors.InvalidConfig, "base %q is not a decimal number", s)
	}
	base, err := strconv.Atoi(s)
	if err != nil || !numeral.BaseInRange(base) {
		return 0, errors.Newf(errors.InvalidConfig, "base %q out of range [%d,%d]", s, numeral.MinBase, numeral.MaxBase)
	}
	return base, nil
}

// ParseOutputBases parses a comma-separated output-base list. The whole
// list is rejected on an empty string, a leading, trailing, or doubled
// comma, a non-digit token, an out-of-range or duplicate base, or more than
// MaxOutputBases entries. This validator serves both the --obases flag and
// the :o colon command.
func ParseOutputBases(s string) ([]int, error) {
	if s == "" || strings.HasPrefix(s, ",") || strings.HasSuffix(s, ",") || strings.Contains(s, ",,") {
		return nil, errors.Newf(errors.InvalidConfig, "malformed output base list %q", s)
	}

	tokens := strings.Split(s, ",")
	if len(tokens) > MaxOutputBases {
		return nil, errors.Newf(errors.InvalidConfig, "more than %d output bases", MaxOutputBases)
	}

	bases := make([]int, 0, len(tokens))
	seen := make(map[int]bool, len(tokens))
	for _, token := range tokens {
		base, err := ParseBase(token)
		if err != nil {
			return nil, err
		}
		if seen[base] {
			return nil, errors.Newf(errors.InvalidConfig, "duplicate output base %d", base)
		}
		seen[base] = true
		bases = append(bases, base)
	}
	return bases, nil
}
