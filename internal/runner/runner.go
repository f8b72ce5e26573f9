package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hetulpatel/moviecatalog/internal/catalog"
	"github.com/hetulpatel/moviecatalog/internal/logging"
	"github.com/hetulpatel/moviecatalog/internal/models"
	"github.com/hetulpatel/moviecatalog/internal/render"
)

const (
	DefaultLimit = 10

	separatorWidth = 80
	invalidIndex   = "Invalid query index. Use --list to see available queries."
)

// Querier executes a single catalog query.
type Querier interface {
	Query(ctx context.Context, query string) (*models.ResultSet, error)
}

// Observer is called with every successful result, before truncation.
type Observer func(ctx context.Context, index int, entry catalog.Entry, rs *models.ResultSet)

// Runner dispatches catalog entries to a Querier and prints the results.
type Runner struct {
	q         Querier
	catalog   *catalog.Catalog
	out       io.Writer
	limit     int
	observers []Observer
}

type Option func(*Runner)

// WithLimit sets how many rows RunAll prints per entry. n <= 0 prints everything.
func WithLimit(n int) Option {
	return func(r *Runner) {
		r.limit = n
	}
}

func WithObserver(fn Observer) Option {
	return func(r *Runner) {
		if fn != nil {
			r.observers = append(r.observers, fn)
		}
	}
}

// New builds a runner. q may be nil when only List is used.
func New(q Querier, c *catalog.Catalog, out io.Writer, opts ...Option) *Runner {
	r := &Runner{q: q, catalog: c, out: out, limit: DefaultLimit}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List prints every entry as "{index}. {name}: {sql}".
func (r *Runner) List() {
	for i, e := range r.catalog.Entries() {
		fmt.Fprintf(r.out, "%d. %s: %s\n", i+1, e.Name, e.SQL)
	}
}

// RunOne executes the entry at the 1-based index and prints its full result.
// An out-of-range index prints a message and runs nothing.
func (r *Runner) RunOne(ctx context.Context, index int) error {
	entry, err := r.catalog.At(index)
	if err != nil {
		fmt.Fprintln(r.out, invalidIndex)
		return err
	}
	fmt.Fprintf(r.out, "Running [%d] %s...\nSQL: %s\n\n", index, entry.Name, entry.SQL)

	rs, err := r.execute(ctx, index, entry)
	if err != nil {
		fmt.Fprintf(r.out, "SQL error: %v\n", err)
		return err
	}
	return render.Write(r.out, rs)
}

// RunAll executes every entry in order, printing at most the configured number
// of rows for each. A failing entry is reported and the batch continues.
// It returns how many entries failed.
func (r *Runner) RunAll(ctx context.Context) int {
	failed := 0
	for i, entry := range r.catalog.Entries() {
		index := i + 1
		fmt.Fprintln(r.out, strings.Repeat("=", separatorWidth))
		fmt.Fprintf(r.out, "%d. %s\n", index, entry.Name)

		rs, err := r.execute(ctx, index, entry)
		if err != nil {
			fmt.Fprintf(r.out, "SQL error: %v\n", err)
			failed++
			continue
		}
		if err := render.Write(r.out, rs.Head(r.limit)); err != nil {
			logging.WithField("entry", index).Errorf("write result: %v", err)
		}
	}
	return failed
}

// Report executes every entry under a "---- NAME ----" heading and prints full
// results. Query and output failures are reported per entry and joined into
// the returned error.
func (r *Runner) Report(ctx context.Context) error {
	var errs []error
	for i, entry := range r.catalog.Entries() {
		index := i + 1
		fmt.Fprintf(r.out, "\n---- %s ----\n", Heading(entry.Name))

		rs, err := r.execute(ctx, index, entry)
		if err != nil {
			fmt.Fprintf(r.out, "SQL error: %v\n", err)
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name, err))
			continue
		}
		if err := render.Write(r.out, rs); err != nil {
			logging.WithField("entry", index).Errorf("write result: %v", err)
			errs = append(errs, fmt.Errorf("%s: write result: %w", entry.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) execute(ctx context.Context, index int, entry catalog.Entry) (*models.ResultSet, error) {
	if r.q == nil {
		return nil, fmt.Errorf("runner: no database connection")
	}
	rs, err := r.q.Query(ctx, entry.SQL)
	if err != nil {
		logging.WithField("entry", index).Debugf("query failed: %v", err)
		return nil, err
	}
	logging.WithField("entry", index).Debugf("%s returned %d rows", entry.Name, rs.Len())
	for _, obs := range r.observers {
		obs(ctx, index, entry, rs)
	}
	return rs, nil
}

// Heading turns a snake_case entry name into an upper-case title.
func Heading(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}
