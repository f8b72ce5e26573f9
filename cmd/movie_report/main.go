package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/hetulpatel/moviecatalog/internal/cache"
	"github.com/hetulpatel/moviecatalog/internal/catalog"
	"github.com/hetulpatel/moviecatalog/internal/config"
	"github.com/hetulpatel/moviecatalog/internal/kafka"
	"github.com/hetulpatel/moviecatalog/internal/logging"
	"github.com/hetulpatel/moviecatalog/internal/queue"
	"github.com/hetulpatel/moviecatalog/internal/runner"
	"github.com/hetulpatel/moviecatalog/internal/storage/sqlite"
)

const (
	exitOK      = 0
	exitFailure = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(execute(ctx, os.Args[1:], os.Stdout))
}

func execute(ctx context.Context, args []string, out io.Writer) int {
	var (
		configFile string
		dbPath     string
	)
	code := exitOK

	cmd := &cobra.Command{
		Use:           "movie_report",
		Short:         "Create the movie schema, seed sample rows and print aggregation reports",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				fmt.Fprintf(out, "Could not load configuration: %v\n", err)
				code = exitFailure
				return nil
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			logging.Init(cfg.LogLevel)
			code = report(cmd.Context(), cfg, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "Optional YAML config file")
	cmd.Flags().StringVar(&dbPath, "db", config.DefaultDBPath, "Path to SQLite database file")

	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return exitFailure
	}
	return code
}

func report(ctx context.Context, cfg *config.Config, out io.Writer) int {
	fmt.Fprintf(out, "Using database: %s\n", cfg.DBPath)

	store, err := sqlite.Open(cfg.DBPath, sqlite.WithForeignKeys(cfg.ForeignKeys))
	if err != nil {
		var ce *sqlite.ConnectionError
		if errors.As(err, &ce) {
			err = ce.Err
		}
		fmt.Fprintf(out, "Could not open database '%s': %v\n", cfg.DBPath, err)
		return exitFailure
	}
	defer store.Close()

	if err := store.CreateTables(ctx); err != nil {
		fmt.Fprintf(out, "Could not create schema: %v\n", err)
		return exitFailure
	}
	if err := store.EnsureSeedData(ctx); err != nil {
		fmt.Fprintf(out, "Could not seed sample data: %v\n", err)
		return exitFailure
	}
	if counts, err := store.Counts(ctx); err != nil {
		logging.Errorf("[movie_report] count rows: %v", err)
	} else {
		logging.Infof("[movie_report] row counts: %v", counts)
	}
	fmt.Fprintln(out, "Sample data inserted (or already present). Running queries...")

	querier, closeCache, err := cache.Wrap(store, cfg.Redis)
	if err != nil {
		fmt.Fprintf(out, "Could not set up result cache: %v\n", err)
		return exitFailure
	}
	defer closeCache()

	reports := catalog.Reports()
	collector := queue.NewCollector(reports.Name())
	r := runner.New(querier, reports, out, runner.WithObserver(collector.Observe))
	reportErr := r.Report(ctx)

	if cfg.PublishEnabled() {
		publish(ctx, cfg.Kafka, collector)
	}

	fmt.Fprintln(out, "\nDone.")
	if reportErr != nil {
		logging.Errorf("[movie_report] %v", reportErr)
		return exitFailure
	}
	return exitOK
}

// publish sends the collected results to kafka. Failures are logged only;
// the printed report is already complete.
func publish(ctx context.Context, cfg config.KafkaConfig, collector *queue.Collector) {
	brokers := kafka.ParseBrokers(cfg.Brokers)
	pubCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := kafka.EnsureTopic(pubCtx, brokers, cfg.Topic); err != nil {
		logging.Errorf("[movie_report] ensure topic warning: %v", err)
	}
	writer := kafka.NewWriter(brokers, cfg.Topic)
	defer writer.Close()

	if err := queue.PublishResults(pubCtx, writer, collector); err != nil {
		logging.Errorf("[movie_report] publish %d results: %v", collector.Len(), err)
		return
	}
	logging.Infof("[movie_report] published %d results to %s (run %s)", collector.Len(), writer.Topic, collector.RunID())
}
