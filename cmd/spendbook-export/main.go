// spendbook-export is a one-shot tool: it loads the persisted ledger,
// summarizes one month and writes the report to a Google Sheets tab.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"spendbook/internal/backend"
	"spendbook/internal/cli"
	"spendbook/internal/core"
	"spendbook/internal/export"
	"spendbook/internal/export/google"
	"spendbook/internal/log"
)

func main() {
	monthFlag := flag.String("month", "", "month to export as YYYY-MM (default: current month)")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(log.ComponentExport)
	cfg := cli.LoadAndValidateConfig(logger)
	if err := cfg.ValidateExport(); err != nil {
		logger.Error("Export configuration invalid", log.FieldError, err)
		os.Exit(1)
	}

	month := core.MonthOf(time.Now())
	if *monthFlag != "" {
		m, err := core.ParseMonth(*monthFlag)
		if err != nil {
			logger.Error("Invalid -month value, expected YYYY-MM", "value", *monthFlag)
			os.Exit(1)
		}
		month = m
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	// The exporter only reads; mutation events are not wanted here.
	backendCfg.AMQPURL = ""

	factory := backend.NewFactory(logger)
	result, err := factory.CreateLedger(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize ledger", log.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Warn("Cleanup failed", log.FieldError, err)
		}
	}()

	writer, err := google.New(ctx, google.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsFile: cfg.GoogleCredentialsFile,
		CredentialsJSON: cfg.GoogleCredentialsJSON,
	})
	if err != nil {
		logger.Error("Failed to initialize Sheets client", log.FieldError, err)
		os.Exit(1)
	}

	report := export.BuildReport(result.Ledger.Summary(month), time.Now())
	ref, err := writer.WriteMonthReport(ctx, report)
	if err != nil {
		logger.Error("Failed to write month report", log.FieldMonth, month.String(), log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Month report written",
		log.FieldMonth, month.String(),
		"rows", len(report.Rows),
		"range", ref)
}
