package config

import (
	"os"
	"strconv"

	"churnprep/domain/core"
)

// Config represents the complete application configuration. Everything has
// a working default so both binaries run with no arguments; environment
// variables override for non-standard layouts.
type Config struct {
	Generator GeneratorConfig
	Pipeline  PipelineConfig
	Paths     PathConfig
}

// GeneratorConfig holds synthetic data generation settings
type GeneratorConfig struct {
	Samples     int
	Seed        int64
	MissingRate float64
}

// PipelineConfig holds preprocessing settings
type PipelineConfig struct {
	TrainRatio float64
	Seed       int64
}

// PathConfig holds file system paths
type PathConfig struct {
	DataFile     string
	ArtifactFile string
}

// Load reads configuration from environment variables, applies defaults,
// and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Generator: GeneratorConfig{
			Samples:     getEnvIntOrDefault("CHURNPREP_SAMPLES", 2000),
			Seed:        getEnvInt64OrDefault("CHURNPREP_SEED", 42),
			MissingRate: getEnvFloatOrDefault("CHURNPREP_MISSING_RATE", 0.02),
		},
		Pipeline: PipelineConfig{
			TrainRatio: getEnvFloatOrDefault("CHURNPREP_TRAIN_RATIO", 0.8),
			Seed:       getEnvInt64OrDefault("CHURNPREP_SEED", 42),
		},
		Paths: PathConfig{
			DataFile:     getEnvOrDefault("CHURNPREP_DATA_PATH", "data/customer_churn_data.csv"),
			ArtifactFile: getEnvOrDefault("CHURNPREP_ARTIFACT_PATH", "models/preprocessor.json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Generator.Samples < 1 {
		return core.NewGenerationError("CHURNPREP_SAMPLES must be at least 1")
	}
	if c.Generator.MissingRate < 0 || c.Generator.MissingRate >= 1 {
		return core.NewGenerationError("CHURNPREP_MISSING_RATE must be in [0, 1)")
	}
	if c.Pipeline.TrainRatio <= 0 || c.Pipeline.TrainRatio >= 1 {
		return core.NewGenerationError("CHURNPREP_TRAIN_RATIO must be in (0, 1)")
	}
	if c.Paths.DataFile == "" {
		return core.NewLoadError("CHURNPREP_DATA_PATH", nil)
	}
	if c.Paths.ArtifactFile == "" {
		return core.NewPersistenceError("CHURNPREP_ARTIFACT_PATH", nil)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
