package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chrissnell/skyalmanac/internal/app"
	"github.com/chrissnell/skyalmanac/internal/constants"
	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to configuration source:\n\t\t\t  YAML: config.yaml\n\t\t\t  SQLite: config.db")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' for YAML files, 'sqlite' for SQLite databases")
	startStr := flag.String("start", "", "First tabulated date, YYYY-MM-DD (default: January 1 of next year)")
	days := flag.Int("days", 3, "Number of days to tabulate, rounded up to full 3-day pages")
	output := flag.String("output", "", "Output .tex file (overrides the configured output file)")
	seconds := flag.Bool("seconds", false, "Tabulate event times to the second instead of the minute")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("skyalmanac %s\n", constants.Version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	start, err := parseStart(*startStr)
	if err != nil {
		log.Errorf("Invalid -start date: %v", err)
		os.Exit(1)
	}
	if *days < 1 {
		log.Errorf("-days must be at least 1")
		os.Exit(1)
	}

	provider, err := newProvider(*cfgFile, *cfgBackend)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	defer provider.Close()

	application := app.New(provider, log.GetSugaredLogger(), app.Options{
		Start:   start,
		Days:    *days,
		Output:  *output,
		Seconds: *seconds,
	})
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func parseStart(s string) (almanac.Date, error) {
	if s == "" {
		y := time.Now().UTC().Year() + 1
		return almanac.Date{Y: y, M: time.January, D: 1}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return almanac.Date{}, err
	}
	return almanac.Date{Y: t.Year(), M: t.Month(), D: t.Day()}, nil
}

func newProvider(cfgFile, cfgBackend string) (config.ConfigProvider, error) {
	filename, _ := filepath.Abs(cfgFile)

	switch cfgBackend {
	case "yaml":
		return config.NewYAMLProvider(filename), nil
	case "sqlite":
		provider, err := config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
}
