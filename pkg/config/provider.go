// Package config provides configuration loading for the wellwarn pipeline
// from pluggable sources (YAML files, SQLite databases).
package config

// Provider defines the interface for configuration data sources
type Provider interface {
	// LoadConfig loads the complete configuration
	LoadConfig() (*ConfigData, error)

	// IsReadOnly reports whether the source can be written back
	IsReadOnly() bool

	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Pipeline PipelineData `json:"pipeline"`
	Wells    []WellData   `json:"wells"`
	Storage  StorageData  `json:"storage,omitempty"`
	Logging  LoggingData  `json:"logging,omitempty"`
}

// PipelineData holds the warning pipeline tunables. Zero values fall back
// to the pipeline's documented defaults.
type PipelineData struct {
	WindowSize int     `json:"window_size,omitempty"`
	Threshold  float64 `json:"threshold,omitempty"`
	MinRun     int     `json:"min_run,omitempty"`
	WindowFrac float64 `json:"window_frac,omitempty"`
	Baseline   string  `json:"baseline,omitempty"`
	Cross      string  `json:"cross,omitempty"`
	Magnitude  string  `json:"magnitude,omitempty"`
	Combine    string  `json:"combine,omitempty"`
	Epsilon    float64 `json:"epsilon,omitempty"`
	Parallel   bool    `json:"parallel,omitempty"`
}

// WellData identifies one well input source
type WellData struct {
	Name string `json:"name"`
	CSV  string `json:"csv"`
}

// StorageData holds the configuration for result storage backends
type StorageData struct {
	SQLite      *SQLiteData      `json:"sqlite,omitempty"`
	TimescaleDB *TimescaleDBData `json:"timescaledb,omitempty"`
	CSVDir      string           `json:"csv_dir,omitempty"`
}

// SQLiteData holds SQLite result store configuration
type SQLiteData struct {
	Path string `json:"path"`
}

// TimescaleDBData holds TimescaleDB/Postgres result store configuration
type TimescaleDBData struct {
	ConnectionString string `json:"connection_string"`
}

// LoggingData holds logging configuration
type LoggingData struct {
	Debug   bool   `json:"debug,omitempty"`
	Logfile string `json:"logfile,omitempty"`
}
