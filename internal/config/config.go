// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/carbon-forecast/pkg/catalog"
	"github.com/iwvelando/carbon-forecast/pkg/constants"
	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for carbon-forecast.
type Configuration struct {
	Common    Common
	Scenarios []Scenario
	// CustomTypes are user-defined lookup entries keyed by domain name
	// (tree, cattle, soil, ...).
	CustomTypes map[string][]sequestration.TypeInfo `mapstructure:"customTypes"`
	// Products extend the built-in catalog.
	Products []catalog.Product
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, xlsx
	File   string `yaml:"file,omitempty"`   // required for xlsx
}

// Common holds the parameters and costs shared by all scenarios.
type Common struct {
	Years int
	// DiscountRate in percent.
	DiscountRate float64     `mapstructure:"discountRate"`
	CarbonPrice  CarbonPrice `mapstructure:"carbonPrice"`
	Costs        []Cost
}

// CarbonPrice configures the price schedule. A GrowthRate seeds a yearly
// table from Flat when no table is given.
type CarbonPrice struct {
	Flat       float64
	GrowthRate float64 `mapstructure:"growthRate"`
	UseYearly  bool    `mapstructure:"useYearly"`
	Table      []PricePoint
}

// PricePoint is one row of a yearly price table.
type PricePoint struct {
	Year  int
	Price float64
}

// Cost is a cost line as written in configuration.
type Cost struct {
	Name   string
	Kind   string
	Amount float64
	Year   int
}

// Scenario holds one project variant and the costs specific to it.
type Scenario struct {
	Name     string
	Active   bool
	Project  Project
	Costs    []Cost
	Products []string
	// DiscountRate and CarbonPrice override Common when set.
	DiscountRate *float64     `mapstructure:"discountRate"`
	CarbonPrice  *CarbonPrice `mapstructure:"carbonPrice"`
	// Optimizer requests a break-even search for this scenario.
	Optimizer *OptimizerConfig `mapstructure:"optimizer"`
}

// Project selects a project type and carries the parameters for it. Only
// the block matching Type is read.
type Project struct {
	Type         string
	Forestry     *sequestration.Forestry
	Livestock    *sequestration.Livestock
	Soil         *sequestration.Soil
	Renewable    *sequestration.Renewable
	BlueCarbon   *sequestration.BlueCarbon `mapstructure:"blueCarbon"`
	REDD         *sequestration.REDD       `mapstructure:"redd"`
	Construction *sequestration.Construction
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("common.years", constants.DefaultProjectYears)
	v.SetDefault("common.discountRate", constants.DefaultDiscountRate)
	v.SetDefault("common.carbonPrice.flat", constants.DefaultCarbonPrice)
	v.SetDefault("output.format", constants.OutputFormatPretty)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader parses a YAML configuration from r, as
// received by the HTTP API.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// LoadEnvironment loads KEY=VALUE pairs from the given .env files into the
// process environment so that CARBON_FORECAST_* overrides apply. Missing
// files are ignored; existing variables are not overwritten.
func LoadEnvironment(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading environment file %s: %w", path, err)
		}
	}
	return nil
}
