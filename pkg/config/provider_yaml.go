package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// LoadConfig loads the complete configuration from a YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig struct {
		PageSize      string `yaml:"page_size,omitempty"`
		TableStyle    string `yaml:"table_style,omitempty"`
		DeclFormat    string `yaml:"decl_format,omitempty"`
		DValue        string `yaml:"d_value,omitempty"`
		LDStrategy    string `yaml:"ld_strategy,omitempty"`
		LDTables      bool   `yaml:"ld_tables,omitempty"`
		Multiprocess  bool   `yaml:"multiprocess,omitempty"`
		UseIERS       bool   `yaml:"use_iers,omitempty"`
		EOPMaxAgeDays int    `yaml:"eop_max_age_days,omitempty"`
		EOPDir        string `yaml:"eop_dir,omitempty"`
		Ephemeris     int    `yaml:"ephemeris,omitempty"`
		EphemerisDir  string `yaml:"ephemeris_dir,omitempty"`
		MoonImage     bool   `yaml:"moon_image,omitempty"`
		SecondsOfTime bool   `yaml:"seconds_of_time,omitempty"`
		OutputFile    string `yaml:"output_file,omitempty"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		PageSize:      yamlConfig.PageSize,
		TableStyle:    yamlConfig.TableStyle,
		DeclFormat:    yamlConfig.DeclFormat,
		DValue:        yamlConfig.DValue,
		LDStrategy:    yamlConfig.LDStrategy,
		LDTables:      yamlConfig.LDTables,
		Multiprocess:  yamlConfig.Multiprocess,
		UseIERS:       yamlConfig.UseIERS,
		EOPMaxAgeDays: yamlConfig.EOPMaxAgeDays,
		EOPDir:        yamlConfig.EOPDir,
		Ephemeris:     yamlConfig.Ephemeris,
		EphemerisDir:  yamlConfig.EphemerisDir,
		MoonImage:     yamlConfig.MoonImage,
		SecondsOfTime: yamlConfig.SecondsOfTime,
		OutputFile:    yamlConfig.OutputFile,
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// IsReadOnly returns true; YAML files are not written by the application.
func (y *YAMLProvider) IsReadOnly() bool { return true }

// Close is a no-op for YAML providers.
func (y *YAMLProvider) Close() error { return nil }
