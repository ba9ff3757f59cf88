// Package config defines the almanac run configuration and its data sources.
// Configuration is loaded once at startup and frozen into a value before any
// workers are dispatched, so nothing downstream sees a later mutation.
package config

import "fmt"

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	IsReadOnly() bool
	Close() error
}

// Enumerated option values. Zero values are the defaults.
const (
	PageA4     = "a4"
	PageLetter = "letter"

	StyleTraditional = "traditional"
	StyleModern      = "modern"

	DeclCompressed = "usno-compressed"
	DeclSigned     = "signed-decimal"

	DValueHMNAO  = "hmnao"  // always-positive delta
	DValueSigned = "signed" // difference-then-round, sign preserved

	LDClosest   = "closest-to-moon"
	LDDelta     = "highest-hourly-delta"
	LDBrightest = "brightest-stars"
)

// ConfigData represents the complete almanac configuration.
type ConfigData struct {
	PageSize       string `json:"page_size,omitempty"`
	TableStyle     string `json:"table_style,omitempty"`
	DeclFormat     string `json:"decl_format,omitempty"`
	DValue         string `json:"d_value,omitempty"`
	LDStrategy     string `json:"ld_strategy,omitempty"`
	LDTables       bool   `json:"ld_tables,omitempty"`
	Multiprocess   bool   `json:"multiprocess,omitempty"`
	UseIERS        bool   `json:"use_iers,omitempty"`
	EOPMaxAgeDays  int    `json:"eop_max_age_days,omitempty"`
	EOPDir         string `json:"eop_dir,omitempty"`
	Ephemeris      int    `json:"ephemeris,omitempty"` // selection 0..4
	EphemerisDir   string `json:"ephemeris_dir,omitempty"`
	MoonImage      bool   `json:"moon_image,omitempty"`
	SecondsOfTime  bool   `json:"seconds_of_time,omitempty"` // hh:mm:ss event times
	OutputFile     string `json:"output_file,omitempty"`
}

// applyDefaults fills unset fields with their documented defaults.
func (c *ConfigData) applyDefaults() {
	if c.PageSize == "" {
		c.PageSize = PageA4
	}
	if c.TableStyle == "" {
		c.TableStyle = StyleTraditional
	}
	if c.DeclFormat == "" {
		c.DeclFormat = DeclCompressed
	}
	if c.DValue == "" {
		c.DValue = DValueHMNAO
	}
	if c.LDStrategy == "" {
		c.LDStrategy = LDClosest
	}
	if c.EOPMaxAgeDays < 1 {
		c.EOPMaxAgeDays = 30
	}
	if c.OutputFile == "" {
		c.OutputFile = "almanac.tex"
	}
}

// Validate rejects values outside the enumerated options.
func (c *ConfigData) Validate() error {
	switch c.PageSize {
	case PageA4, PageLetter:
	default:
		return fmt.Errorf("unknown page size %q", c.PageSize)
	}
	switch c.TableStyle {
	case StyleTraditional, StyleModern:
	default:
		return fmt.Errorf("unknown table style %q", c.TableStyle)
	}
	switch c.DeclFormat {
	case DeclCompressed, DeclSigned:
	default:
		return fmt.Errorf("unknown declination format %q", c.DeclFormat)
	}
	switch c.DValue {
	case DValueHMNAO, DValueSigned:
	default:
		return fmt.Errorf("unknown d-value convention %q", c.DValue)
	}
	switch c.LDStrategy {
	case LDClosest, LDDelta, LDBrightest:
	default:
		return fmt.Errorf("unknown lunar-distance strategy %q", c.LDStrategy)
	}
	if c.Ephemeris < 0 || c.Ephemeris > 4 {
		return fmt.Errorf("ephemeris selection %d out of range 0..4", c.Ephemeris)
	}
	return nil
}
