package main

import (
	"context"
	"log"

	"quantix/adapters/excel"
	"quantix/app"
	"quantix/internal"
	"quantix/internal/config"
	"quantix/internal/testkit"
	"quantix/ports"
	"quantix/ui"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(appConfig.Log.Level)
	logger := internal.DefaultLogger

	var source ports.DatasetSource
	if appConfig.Data.File != "" {
		excelConfig := excel.DefaultExcelConfig(appConfig.Data.File)
		excelConfig.Sheet = appConfig.Data.Sheet
		excelConfig.CoercionConfig.DecimalComma = appConfig.Data.DecimalComma
		source = excel.NewStudentSource(excelConfig)
		logger.Info("Using data file: %s", appConfig.Data.File)
	} else {
		source = testkit.NewSyntheticSource()
		logger.Info("No DATA_FILE configured, using the synthetic class")
	}

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ReloadTimeout)
	ds, err := source.Load(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	session, err := app.NewSession(ds,
		app.WithSource(source),
		app.WithBins(appConfig.Analysis.HistogramBins),
		app.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	server := ui.NewServer(session, ui.ServerOptions{
		GinMode:       appConfig.Server.GinMode,
		ReloadTimeout: appConfig.Server.ReloadTimeout,
		Logger:        logger,
	})
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
