package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements Provider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from a YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig struct {
		Pipeline struct {
			WindowSize int     `yaml:"window_size"`
			Threshold  float64 `yaml:"threshold"`
			MinRun     int     `yaml:"min_run"`
			WindowFrac float64 `yaml:"window_frac"`
			Baseline   string  `yaml:"baseline"`
			Cross      string  `yaml:"cross"`
			Magnitude  string  `yaml:"magnitude"`
			Combine    string  `yaml:"combine"`
			Epsilon    float64 `yaml:"epsilon"`
			Parallel   bool    `yaml:"parallel"`
		} `yaml:"pipeline"`
		Wells []struct {
			Name string `yaml:"name"`
			CSV  string `yaml:"csv"`
		} `yaml:"wells"`
		Storage struct {
			SQLite *struct {
				Path string `yaml:"path"`
			} `yaml:"sqlite,omitempty"`
			TimescaleDB *struct {
				ConnectionString string `yaml:"connection_string"`
			} `yaml:"timescaledb,omitempty"`
			CSVDir string `yaml:"csv_dir,omitempty"`
		} `yaml:"storage,omitempty"`
		Logging struct {
			Debug   bool   `yaml:"debug"`
			Logfile string `yaml:"logfile"`
		} `yaml:"logging,omitempty"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	config := &ConfigData{
		Pipeline: PipelineData{
			WindowSize: yamlConfig.Pipeline.WindowSize,
			Threshold:  yamlConfig.Pipeline.Threshold,
			MinRun:     yamlConfig.Pipeline.MinRun,
			WindowFrac: yamlConfig.Pipeline.WindowFrac,
			Baseline:   yamlConfig.Pipeline.Baseline,
			Cross:      yamlConfig.Pipeline.Cross,
			Magnitude:  yamlConfig.Pipeline.Magnitude,
			Combine:    yamlConfig.Pipeline.Combine,
			Epsilon:    yamlConfig.Pipeline.Epsilon,
			Parallel:   yamlConfig.Pipeline.Parallel,
		},
		Wells: make([]WellData, len(yamlConfig.Wells)),
		Logging: LoggingData{
			Debug:   yamlConfig.Logging.Debug,
			Logfile: yamlConfig.Logging.Logfile,
		},
	}

	for i, well := range yamlConfig.Wells {
		config.Wells[i] = WellData{
			Name: well.Name,
			CSV:  well.CSV,
		}
	}

	config.Storage = StorageData{CSVDir: yamlConfig.Storage.CSVDir}
	if yamlConfig.Storage.SQLite != nil {
		config.Storage.SQLite = &SQLiteData{
			Path: yamlConfig.Storage.SQLite.Path,
		}
	}
	if yamlConfig.Storage.TimescaleDB != nil {
		config.Storage.TimescaleDB = &TimescaleDBData{
			ConnectionString: yamlConfig.Storage.TimescaleDB.ConnectionString,
		}
	}

	return config, nil
}

// IsReadOnly returns true; YAML files are not written back
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML files
func (y *YAMLProvider) Close() error {
	return nil
}
