// Package catalog holds the fixed, read-only query definitions run against the
// movie database. Catalogs are built once and never change afterwards.
package catalog

import "fmt"

// Entry is a named query with no parameters.
type Entry struct {
	Name string
	SQL  string
}

// Catalog is an ordered, immutable list of entries addressed by 1-based index.
type Catalog struct {
	name    string
	entries []Entry
}

// New copies entries into a catalog.
func New(name string, entries ...Entry) *Catalog {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Catalog{name: name, entries: cp}
}

// Name identifies the catalog, e.g. in published messages.
func (c *Catalog) Name() string {
	return c.name
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// At returns the entry at the 1-based index.
func (c *Catalog) At(index int) (Entry, error) {
	if index < 1 || index > len(c.entries) {
		return Entry{}, &IndexError{Index: index, Len: len(c.entries)}
	}
	return c.entries[index-1], nil
}

// IndexError reports a 1-based index outside [1, Len].
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid query index %d (valid: 1-%d)", e.Index, e.Len)
}
