package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/welldrift/wellwarn/internal/log"
	"github.com/welldrift/wellwarn/internal/storage"
	"github.com/welldrift/wellwarn/internal/warning"
	"github.com/welldrift/wellwarn/internal/wells"
	"github.com/welldrift/wellwarn/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to configuration source (YAML file or SQLite database)")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' or 'sqlite'")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("wellwarn %s\n", version)
		os.Exit(0)
	}

	cfgData, err := loadConfig(*cfgFile, *cfgBackend)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := log.InitWithFile(*debug || cfgData.Logging.Debug, cfgData.Logging.Logfile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), cfgData); err != nil {
		log.Errorf("Run failed: %v", err)
		os.Exit(1)
	}
}

func loadConfig(cfgFile, cfgBackend string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.Provider
	var err error

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return cfgData, nil
}

func run(ctx context.Context, cfgData *config.ConfigData) error {
	logger := log.GetSugaredLogger()

	pipeline, err := warning.NewPipeline(buildPipelineConfig(cfgData.Pipeline), logger)
	if err != nil {
		return err
	}

	if len(cfgData.Wells) == 0 {
		return fmt.Errorf("no wells configured")
	}

	inputs := make([]*wells.WellInput, 0, len(cfgData.Wells))
	for _, wellCfg := range cfgData.Wells {
		well, err := wells.LoadCSV(wellCfg.Name, wellCfg.CSV)
		if err != nil {
			return err
		}
		inputs = append(inputs, well)
	}

	manager, err := storage.NewManager(cfgData.Storage, logger)
	if err != nil {
		return err
	}
	defer manager.Close()

	results, runErr := pipeline.Run(inputs)

	for _, result := range results {
		if manager.Len() > 0 {
			if err := manager.SaveResult(ctx, result); err != nil {
				return fmt.Errorf("failed to persist well %s: %w", result.Well, err)
			}
		}
		logSummary(result)
	}

	// failed wells were already skipped and logged; surface the error so
	// the exit code reflects a partial run
	return runErr
}

// buildPipelineConfig merges the configured pipeline settings over the
// documented defaults.
func buildPipelineConfig(p config.PipelineData) warning.Config {
	cfg := warning.DefaultConfig()

	if p.WindowSize != 0 {
		cfg.WindowSize = p.WindowSize
	}
	if p.Threshold != 0 {
		cfg.Threshold = p.Threshold
	}
	if p.MinRun != 0 {
		cfg.MinRun = p.MinRun
	}
	if p.WindowFrac != 0 {
		cfg.WindowFrac = p.WindowFrac
	}
	if p.Baseline != "" {
		cfg.Baseline = warning.BaselineMode(p.Baseline)
	}
	if p.Cross != "" {
		cfg.Cross = warning.CrossRule(p.Cross)
	}
	if p.Magnitude != "" {
		cfg.Magnitude = warning.MagnitudeKind(p.Magnitude)
	}
	if p.Combine != "" {
		cfg.Combine = warning.CombineRule(p.Combine)
	}
	if p.Epsilon != 0 {
		cfg.Epsilon = p.Epsilon
	}
	cfg.Parallel = p.Parallel

	return cfg
}

func logSummary(result *warning.WellResult) {
	var spp, ap, common, difference int
	for _, row := range result.Rows {
		if row.SPPWarning {
			spp++
		}
		if row.APWarning {
			ap++
		}
		if row.CommonWarning {
			common++
		}
		if row.DifferenceWarning {
			difference++
		}
	}
	log.Infof("well %s: %d samples, warnings: SPP=%d AP=%d common=%d difference=%d (run %s)",
		result.Well, len(result.Rows), spp, ap, common, difference, result.RunID)
}
