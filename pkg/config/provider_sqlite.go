package config

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the configuration row named 'default' from the database.
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	query := `
		SELECT page_size, table_style, decl_format, d_value, ld_strategy,
		       ld_tables, multiprocess, use_iers, eop_max_age_days, eop_dir,
		       ephemeris, ephemeris_dir, moon_image, seconds_of_time, output_file
		FROM configs
		WHERE name = 'default'
	`

	config := &ConfigData{}
	err := s.db.QueryRow(query).Scan(
		&config.PageSize, &config.TableStyle, &config.DeclFormat,
		&config.DValue, &config.LDStrategy, &config.LDTables,
		&config.Multiprocess, &config.UseIERS, &config.EOPMaxAgeDays,
		&config.EOPDir, &config.Ephemeris, &config.EphemerisDir,
		&config.MoonImage, &config.SecondsOfTime, &config.OutputFile,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no 'default' configuration in %s", s.dbPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query configuration: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// IsReadOnly returns false; the database can hold multiple named configs.
func (s *SQLiteProvider) IsReadOnly() bool { return false }

// Close closes the database handle.
func (s *SQLiteProvider) Close() error { return s.db.Close() }
