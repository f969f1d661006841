package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/export"
	"github.com/joseph-ayodele/invoice-ledger/internal/ingest"
	"github.com/joseph-ayodele/invoice-ledger/internal/invoices"
	"github.com/joseph-ayodele/invoice-ledger/internal/pipeline"
	repo "github.com/joseph-ayodele/invoice-ledger/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		envFile = flag.String("env", ".env", "optional .env file")
		input   = flag.String("input", "", "JSON file or directory of JSON files with documents (overrides SEED_INPUT)")
		inmem   = flag.Bool("inmem", false, "use in-memory SQLite database")
		xlsx    = flag.String("xlsx", "", "write an XLSX report to this path (overrides SEED_EXPORT)")
	)
	flag.Parse()

	if err := common.LoadEnvFile(*envFile); err != nil {
		printError("Error: loading %s: %v\n", *envFile, err)
		os.Exit(1)
	}
	cfg := common.LoadConfig()
	if *input != "" {
		cfg.Seed.InputPath = *input
	}
	if *xlsx != "" {
		cfg.Seed.ExportPath = *xlsx
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx = common.WithLogger(ctx, logger)
	if err := run(ctx, cfg, *inmem, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *common.Config, inmem bool, logger *slog.Logger) error {
	loader, err := ingest.NewLoader(logger)
	if err != nil {
		return err
	}
	docs, stats, err := loader.Load(cfg.Seed.InputPath)
	if err != nil {
		return err
	}
	logger.Info("documents loaded", "input", cfg.Seed.InputPath, "files", stats.Matched, "documents", stats.Documents)

	db, cleanup, err := repo.InitDatabase(ctx, cfg.Database, inmem, logger)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer cleanup()

	store := repo.NewStore(db, logger)
	driver := pipeline.NewDriver(store, logger, invoices.WithDefaultCurrency(cfg.Seed.DefaultCurrency))

	res, err := driver.Run(ctx, docs)
	if res != nil && res.Counts != nil {
		printSummary(res)
	}
	if err != nil {
		if errors.Is(err, pipeline.ErrAllDocumentsFailed) {
			return fmt.Errorf("%w (%d attempted)", err, res.Attempted())
		}
		return err
	}

	if cfg.Seed.ExportPath != "" {
		data, err := export.NewService(store, logger).InvoicesXLSX(ctx)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := os.WriteFile(cfg.Seed.ExportPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cfg.Seed.ExportPath, err)
		}
		logger.Info("report written", "output", cfg.Seed.ExportPath)
	}
	return nil
}

func printSummary(res *pipeline.Result) {
	rule := strings.Repeat("=", 50)
	fmt.Println()
	fmt.Println(rule)
	fmt.Println("Seed Summary:")
	fmt.Println(rule)
	for _, kind := range constants.SummaryOrder {
		fmt.Printf("%s: %d\n", kind.Label(), res.Counts[kind])
	}
	fmt.Println(rule)
	fmt.Printf("Documents: %d (skipped %d, failed %d)\n", res.Documents, res.Skipped, res.Failed)
}
