package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider for SQLite database configuration
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

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from the SQLite database.
// Pipeline settings live in a key/value table; wells and storage backends
// in their own tables.
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	if err := s.loadPipeline(&config.Pipeline); err != nil {
		return nil, fmt.Errorf("failed to load pipeline settings: %w", err)
	}
	if err := s.loadWells(config); err != nil {
		return nil, fmt.Errorf("failed to load wells: %w", err)
	}
	if err := s.loadStorage(&config.Storage); err != nil {
		return nil, fmt.Errorf("failed to load storage settings: %w", err)
	}
	if err := s.loadLogging(&config.Logging); err != nil {
		return nil, fmt.Errorf("failed to load logging settings: %w", err)
	}

	return config, nil
}

func (s *SQLiteProvider) loadPipeline(pipeline *PipelineData) error {
	rows, err := s.db.Query(`SELECT key, value FROM pipeline_settings`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		switch key {
		case "window_size":
			fmt.Sscanf(value, "%d", &pipeline.WindowSize)
		case "threshold":
			fmt.Sscanf(value, "%g", &pipeline.Threshold)
		case "min_run":
			fmt.Sscanf(value, "%d", &pipeline.MinRun)
		case "window_frac":
			fmt.Sscanf(value, "%g", &pipeline.WindowFrac)
		case "baseline":
			pipeline.Baseline = value
		case "cross":
			pipeline.Cross = value
		case "magnitude":
			pipeline.Magnitude = value
		case "combine":
			pipeline.Combine = value
		case "epsilon":
			fmt.Sscanf(value, "%g", &pipeline.Epsilon)
		case "parallel":
			pipeline.Parallel = value == "true" || value == "1"
		}
	}
	return rows.Err()
}

func (s *SQLiteProvider) loadWells(config *ConfigData) error {
	rows, err := s.db.Query(`SELECT name, csv_path FROM wells ORDER BY name`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var well WellData
		if err := rows.Scan(&well.Name, &well.CSV); err != nil {
			return err
		}
		config.Wells = append(config.Wells, well)
	}
	return rows.Err()
}

func (s *SQLiteProvider) loadStorage(storage *StorageData) error {
	rows, err := s.db.Query(`SELECT backend, setting, value FROM storage_settings`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var backend, setting, value string
		if err := rows.Scan(&backend, &setting, &value); err != nil {
			return err
		}
		switch backend {
		case "sqlite":
			if setting == "path" {
				storage.SQLite = &SQLiteData{Path: value}
			}
		case "timescaledb":
			if setting == "connection_string" {
				storage.TimescaleDB = &TimescaleDBData{ConnectionString: value}
			}
		case "csv":
			if setting == "dir" {
				storage.CSVDir = value
			}
		}
	}
	return rows.Err()
}

func (s *SQLiteProvider) loadLogging(logging *LoggingData) error {
	rows, err := s.db.Query(`SELECT key, value FROM logging_settings`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		switch key {
		case "debug":
			logging.Debug = value == "true" || value == "1"
		case "logfile":
			logging.Logfile = value
		}
	}
	return rows.Err()
}

// IsReadOnly returns false; SQLite configuration can be updated in place
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
