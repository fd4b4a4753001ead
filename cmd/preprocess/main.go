package main

import (
	"log"
	"os"

	"churnprep/adapters/datafile"
	"churnprep/internal"
	"churnprep/internal/config"
	"churnprep/internal/pipeline"

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

	ppConfig := pipeline.DefaultPreprocessorConfig()
	ppConfig.TrainRatio = cfg.Pipeline.TrainRatio
	ppConfig.Seed = cfg.Pipeline.Seed

	pp := pipeline.NewPreprocessor(ppConfig, logger)
	result, err := pp.Run(datafile.NewReader(cfg.Paths.DataFile), cfg.Paths.ArtifactFile)
	if err != nil {
		logger.Error("preprocessing failed: %v", err)
		os.Exit(1)
	}

	logger.Info("transformed matrix: %d train rows, %d test rows, %d features",
		len(result.XTrain), len(result.XTest), len(result.FeatureNames))
	logger.Info("fitted preprocessor persisted at %s", result.ArtifactPath)
}
