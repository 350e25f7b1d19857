// huntersim-api serves the hunter simulator over HTTP.
package main

import (
	"flag"
	"os"

	"github.com/lawnchairsociety/huntersim/internal/api"
	"github.com/lawnchairsociety/huntersim/internal/database"
	"github.com/lawnchairsociety/huntersim/internal/logger"
)

func main() {
	address := flag.String("addr", ":8080", "Listen address")
	noHistory := flag.Bool("no-history", false, "Disable the batch history store")
	dialect := flag.String("db-dialect", "sqlite", "History database dialect (sqlite or postgres)")
	dsn := flag.String("db", "data/huntersim.db", "History database path or connection string")
	maxIterations := flag.Int("max-iterations", 10000, "Per-request iteration cap")
	maxWorkers := flag.Int("max-workers", 16, "Per-request worker cap")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting hunter simulator API")

	var db *database.Database
	if !*noHistory {
		var err error
		db, err = database.Open(database.DialectType(*dialect), *dsn)
		if err != nil {
			logger.Error("Failed to open history store", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	server := api.NewServer(api.Options{
		DB:            db,
		MaxIterations: *maxIterations,
		MaxWorkers:    *maxWorkers,
	})

	if err := server.Start(*address); err != nil {
		logger.Error("API server failed", "error", err)
		os.Exit(1)
	}
}
