package main

import (
	"log"
	"os"

	"churnprep/adapters/datafile"
	"churnprep/internal"
	"churnprep/internal/config"
	"churnprep/internal/generator"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env overrides; absence is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("[ERROR] invalid configuration: %v", err)
		os.Exit(1)
	}

	logger := internal.DefaultLogger
	logger.Info("generating %d synthetic customer churn samples (seed %d)",
		cfg.Generator.Samples, cfg.Generator.Seed)

	gen := generator.NewChurnDataGenerator(generator.Config{
		Samples:     cfg.Generator.Samples,
		Seed:        cfg.Generator.Seed,
		MissingRate: cfg.Generator.MissingRate,
	})
	tbl, err := gen.Generate()
	if err != nil {
		logger.Error("generation failed: %v", err)
		os.Exit(1)
	}

	if err := datafile.NewWriter(cfg.Paths.DataFile).Write(tbl); err != nil {
		logger.Error("could not write dataset: %v", err)
		os.Exit(1)
	}

	logger.Info("synthetic data saved to %s", cfg.Paths.DataFile)
}
