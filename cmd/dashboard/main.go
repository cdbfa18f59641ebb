package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"retail-dashboard/internal/config"
	"retail-dashboard/internal/domain"
	"retail-dashboard/internal/gateway"
	"retail-dashboard/internal/usecase"

	"github.com/rs/zerolog"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	source := flag.String("source", "", "Data source: mysql or csv (overrides config)")
	csvPath := flag.String("csv", "", "Path to a RETAIL_SALES CSV snapshot (implies -source csv)")
	startDateStr := flag.String("start", "", "Start sale date (YYYY-MM-DD), defaults to the earliest sale")
	endDateStr := flag.String("end", "", "End sale date (YYYY-MM-DD), defaults to the latest sale")
	categoriesStr := flag.String("categories", "", "Comma-separated list of categories to include")
	gendersStr := flag.String("genders", "", "Comma-separated list of genders to include")
	minAge := flag.Int("min-age", -1, "Minimum customer age (inclusive)")
	maxAge := flag.Int("max-age", -1, "Maximum customer age (inclusive)")
	export := flag.Bool("export", false, "Write the filtered rows as CSV into the export directory")
	pretty := flag.Bool("pretty", false, "Human-readable log output")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if *pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := loadConfig(*configPath, *source, *csvPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// --- Dependency Injection (Wiring the application) ---
	repo, closeRepo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Database Connection Failed: %v\n", err)
		os.Exit(1)
	}
	defer closeRepo()

	loader := usecase.NewSnapshotLoader(repo, usecase.WithTTL(cfg.Cache.TTL), usecase.WithLogger(logger))
	dashboard := usecase.NewDashboardUseCase(loader, cfg.Insights)

	// --- Build the filter from the snapshot's bounds ---
	opts, err := dashboard.Options(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load data. Please check your database connection: %v\n", err)
		os.Exit(1)
	}

	spec, err := buildFilterSpec(opts, *startDateStr, *endDateStr, *categoriesStr, *gendersStr, *minAge, *maxAge)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid filter")
	}

	// --- Execute the Usecase ---
	report, err := dashboard.Build(ctx, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not build dashboard: %v\n", err)
		os.Exit(1)
	}
	if report.MatchedRecords == 0 {
		logger.Warn().Msg("no data for selected filters, expand filters")
	}

	if *export {
		path, err := writeExport(ctx, dashboard, spec, cfg.Export.Dir)
		if err != nil {
			logger.Fatal().Err(err).Msg("export failed")
		}
		logger.Info().Str("path", path).Int("records", report.MatchedRecords).Msg("export written")
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to generate JSON report")
	}

	fmt.Println(string(output))
}

func loadConfig(path, source, csvPath string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(os.Getenv)

	if source != "" {
		cfg.Source.Kind = source
	}
	if csvPath != "" {
		cfg.Source.Kind = config.SourceCSV
		cfg.Source.CSVPath = csvPath
	}
	return cfg, cfg.Validate()
}

func newRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (usecase.TransactionRepository, func(), error) {
	if cfg.Source.Kind == config.SourceCSV {
		return gateway.NewCSVTransactionRepository(cfg.Source.CSVPath), func() {}, nil
	}

	db, err := gateway.OpenMySQL(ctx, cfg.Source.MySQL)
	if err != nil {
		return nil, nil, &domain.DataSourceError{Op: "connect", Err: err}
	}
	repo, err := gateway.NewMySQLTransactionRepository(db, cfg.Source.MySQL.Table, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, func() { db.Close() }, nil
}

// buildFilterSpec mirrors the sidebar defaults: the full date span, and no
// restriction on any dimension the user left blank.
func buildFilterSpec(opts domain.FilterOptions, start, end, categories, genders string, minAge, maxAge int) (domain.FilterSpec, error) {
	var spec domain.FilterSpec

	if start != "" || end != "" {
		dates := domain.DateRange{Start: opts.MinDate, End: opts.MaxDate}
		if start != "" {
			t, err := time.Parse(time.DateOnly, start)
			if err != nil {
				return spec, fmt.Errorf("error parsing start date: %w", err)
			}
			dates.Start = t
		}
		if end != "" {
			t, err := time.Parse(time.DateOnly, end)
			if err != nil {
				return spec, fmt.Errorf("error parsing end date: %w", err)
			}
			dates.End = t
		}
		spec.Dates = &dates
	}

	spec.Categories = splitList(categories)
	spec.Genders = splitList(genders)

	if minAge >= 0 || maxAge >= 0 {
		ages := domain.AgeRange{Min: opts.MinAge, Max: opts.MaxAge}
		if minAge >= 0 {
			ages.Min = minAge
		}
		if maxAge >= 0 {
			ages.Max = maxAge
		}
		spec.Ages = &ages
	}

	return spec, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeExport(ctx context.Context, dashboard *usecase.DashboardUseCase, spec domain.FilterSpec, dir string) (string, error) {
	data, err := dashboard.Export(ctx, spec, gateway.SerializeCSV)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, gateway.ExportFileName(time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
