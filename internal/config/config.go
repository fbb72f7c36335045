// Package config defines the data structures related to configuration and
// includes functions for loading the config and resolving region deductions.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/young626-jang/LTV-Calculator/pkg/amount"
	"github.com/young626-jang/LTV-Calculator/pkg/constants"
)

// Configuration holds all configuration for the LTV calculator.
type Configuration struct {
	Regions  map[string]int
	Profiles []Profile
	Rounding RoundingConfig `yaml:"rounding,omitempty"`
	History  HistoryConfig  `yaml:"history,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ServerConfig holds the HTTP API options.
type ServerConfig struct {
	Address            string `yaml:"address,omitempty"`
	MaxUploadSizeBytes int64  `yaml:"maxUploadSizeBytes,omitempty"`
}

// RoundingConfig holds the reporting-unit override.
type RoundingConfig struct {
	Unit int `yaml:"unit,omitempty"` // defaults to 100 (1,000,000 KRW)
}

// HistoryConfig selects and tunes the session history store.
type HistoryConfig struct {
	Enabled       bool   `yaml:"enabled,omitempty"`
	Backend       string `yaml:"backend,omitempty"` // memory, redis
	RedisAddr     string `yaml:"redisAddr,omitempty"`
	RetentionDays int    `yaml:"retentionDays,omitempty"`
}

// Profile is one saved estimation scenario run by the CLI. Amount fields are
// free-form text exactly as a form would hold them.
type Profile struct {
	Name         string
	Active       bool
	CustomerName string
	Address      string
	Valuation    string
	Area         string
	Region       string
	Deduction    string // manual override; wins over the region default
	Ratios       []int
	Liens        []LienEntry
}

// LienEntry mirrors one row of the lien form.
type LienEntry struct {
	Holder      string
	ClaimAmount string
	SetRatio    string
	Principal   string
	Status      string
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ResolveDeduction applies the manual-entry-wins rule: non-empty manual text
// is parsed as digits (malformed text counts as zero); otherwise the region
// default applies, with zero for an unknown or blank region.
func (c *Configuration) ResolveDeduction(region, manual string) int {
	if strings.TrimSpace(manual) != "" {
		return amount.ParseDigits(manual)
	}
	return c.Regions[region]
}

// RoundingUnit returns the configured reporting unit, defaulting to whole
// units of 1,000,000 KRW.
func (c *Configuration) RoundingUnit() int {
	if c.Rounding.Unit > 0 {
		return c.Rounding.Unit
	}
	return constants.DefaultRoundingUnit
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing here is fatal; the engine degrades silently, but
// operators want to know about inputs that will be dropped or defaulted.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	for _, profile := range c.Profiles {
		label := profile.Name
		if label == "" {
			label = profile.CustomerName
		}
		if profile.Region != "" {
			if _, ok := c.Regions[profile.Region]; !ok {
				warnings = append(warnings, fmt.Sprintf("profile %q references unknown region %q; deduction defaults to 0", label, profile.Region))
			}
		}
		for _, ratio := range profile.Ratios {
			if ratio < constants.MinLtvRatio || ratio > constants.MaxLtvRatio {
				warnings = append(warnings, fmt.Sprintf("profile %q has LTV ratio %d outside [%d,%d]; it will be ignored", label, ratio, constants.MinLtvRatio, constants.MaxLtvRatio))
			}
		}
		if len(profile.Liens) > constants.MaxLienItems {
			warnings = append(warnings, fmt.Sprintf("profile %q has %d lien rows; only the first %d are used", label, len(profile.Liens), constants.MaxLienItems))
		}
	}
	if c.History.Enabled && c.History.Backend == "redis" && c.History.RedisAddr == "" {
		warnings = append(warnings, "history backend is redis but redisAddr is empty")
	}
	return warnings
}
