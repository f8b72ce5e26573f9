package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hetulpatel/moviecatalog/internal/cache"
	"github.com/hetulpatel/moviecatalog/internal/catalog"
	"github.com/hetulpatel/moviecatalog/internal/config"
	"github.com/hetulpatel/moviecatalog/internal/logging"
	"github.com/hetulpatel/moviecatalog/internal/runner"
	"github.com/hetulpatel/moviecatalog/internal/storage/sqlite"
)

const (
	exitOK      = 0
	exitFailure = 1
)

type options struct {
	configFile string
	dbPath     string
	list       bool
	run        int
	init       bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout))
}

// execute runs the CLI and returns the process exit status.
func execute(args []string, out io.Writer) int {
	var opts options
	code := exitOK

	cmd := &cobra.Command{
		Use:           "moviequery",
		Short:         "Run example queries against a SQLite movies DB",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code = run(cmd.Context(), cmd, opts, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Optional YAML config file")
	cmd.Flags().StringVar(&opts.dbPath, "db", config.DefaultDBPath, "Path to SQLite database file")
	cmd.Flags().BoolVar(&opts.list, "list", false, "List example queries")
	cmd.Flags().IntVar(&opts.run, "run", 0, "Run a single example query by its 1-based index")
	cmd.Flags().BoolVar(&opts.init, "init", false, "Create the schema and seed sample rows before running")
	cmd.MarkFlagsMutuallyExclusive("list", "run")

	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return exitFailure
	}
	return code
}

func run(ctx context.Context, cmd *cobra.Command, opts options, out io.Writer) int {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(out, "Could not load configuration: %v\n", err)
		return exitFailure
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = opts.dbPath
	}
	logging.Init(cfg.LogLevel)

	examples := catalog.Examples()
	if opts.list {
		runner.New(nil, examples, out).List()
		return exitOK
	}
	// A bad index must not open, create or seed anything.
	if cmd.Flags().Changed("run") {
		if _, err := examples.At(opts.run); err != nil {
			// RunOne only prints the invalid-index message here.
			_ = runner.New(nil, examples, out).RunOne(ctx, opts.run)
			return exitOK
		}
	}

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

	if opts.init {
		if err := store.CreateTables(ctx); err != nil {
			fmt.Fprintf(out, "Could not create schema: %v\n", err)
			return exitFailure
		}
		if err := store.EnsureSeedData(ctx); err != nil {
			fmt.Fprintf(out, "Could not seed sample data: %v\n", err)
			return exitFailure
		}
		logging.Infof("[moviequery] schema and sample data ready at %s", store.Path())
	}

	querier, closeCache, err := cache.Wrap(store, cfg.Redis)
	if err != nil {
		fmt.Fprintf(out, "Could not set up result cache: %v\n", err)
		return exitFailure
	}
	defer closeCache()

	r := runner.New(querier, examples, out, runner.WithLimit(cfg.RowLimit))
	if cmd.Flags().Changed("run") {
		err := r.RunOne(ctx, opts.run)
		var ie *catalog.IndexError
		if err != nil && !errors.As(err, &ie) {
			return exitFailure
		}
		return exitOK
	}

	if failed := r.RunAll(ctx); failed > 0 {
		logging.Infof("[moviequery] %d of %d queries failed", failed, examples.Len())
	}
	return exitOK
}
