package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bikeshare/internal/config"
	"bikeshare/internal/dataprocessing"
	"bikeshare/internal/files"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/report"
	"bikeshare/internal/shell"
	"bikeshare/internal/statistics"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts"

	"github.com/fatih/color"
)

// options holds the command-line flags
type options struct {
	configFile string
	dataDir    string
	logLevel   string
	noColor    bool
	version    bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if opts.version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "bikeshare: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("bikeshare", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configFile, "config", "", "path to a YAML config file (default: bikeshare.yaml, config.yaml or configs/config.yaml if present)")
	fs.StringVar(&opts.dataDir, "data-dir", "", "directory holding the city trip files (overrides data.dir)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides logging.level)")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")
	err := fs.Parse(args)
	return opts, err
}

// applyOverrides lets flags win over file and environment settings
func applyOverrides(cfg *config.Config, opts options) error {
	if opts.dataDir != "" {
		cfg.Data.Dir = opts.dataDir
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.noColor {
		cfg.Display.Color = false
	}
	return cfg.Validate()
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	paths, err := config.GetPaths(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	logDataDirectory(ctx, logger, paths.DataDir)

	tel, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tel.LogSnapshot(shutdownCtx)
		if err := tel.Shutdown(shutdownCtx); err != nil {
			infrastructure.WithError(logger, err).Warn("Telemetry shutdown failed")
		}
	}()

	catalog := config.NewCatalog(cfg.Data.Cities)
	loader := dataprocessing.NewLoader(catalog, paths.DataDir, logger, dataprocessing.WithLoadRecorder(tel))
	engine := statistics.NewEngine(statistics.Options{
		IncludeUnspecifiedBirthYear: cfg.Statistics.IncludeUnspecifiedBirthYear,
	}, logger, tel)
	printer := report.NewPrinter(stdout, cfg.Display.Color)

	logger.InfoContext(ctx, "Starting bikeshare",
		slog.String("version", contracts.Version),
		slog.String("data_dir", paths.DataDir),
		slog.Int("cities", len(cfg.Data.Cities)),
		slog.Int("page_size", cfg.Display.PageSize))

	sh := shell.New(stdin, printer, catalog, loader, engine, shell.Options{PageSize: cfg.Display.PageSize}, logger)
	if err := sh.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stdout, "\nGoodbye.")
			return nil
		}
		return err
	}
	return nil
}

// logDataDirectory reports which sources are available. A missing directory
// is not fatal here; each load reports its own missing source.
func logDataDirectory(ctx context.Context, logger *slog.Logger, dir string) {
	if err := validation.NewFileValidator(logger).ValidateDataDirectory(dir); err != nil {
		return
	}
	sources, err := files.NewDiscovery(dir).FindSources(".")
	if err != nil {
		infrastructure.WithError(logger, err).WarnContext(ctx, "Could not list data directory")
		return
	}
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name
	}
	logger.DebugContext(ctx, "Trip sources found", slog.String("dir", dir), slog.Any("files", names))
}
