package persist

import (
	"context"
	"fmt"

	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/store"
)

// Gateway reads and writes the full record collection.
type Gateway interface {
	// Save replaces the persisted collection with records, in order.
	Save(ctx context.Context, records []record.Record) error

	// Load returns every decodable record in persisted order.
	Load(ctx context.Context) (*LoadResult, error)

	// Location describes where records are kept, for messages.
	Location() string

	Close() error
}

var (
	_ Gateway = (*TextFile)(nil)
	_ Gateway = (*SQLite)(nil)
)

// LoadResult is the outcome of a load.
type LoadResult struct {
	Records []record.Record
	Corrupt []*codec.CorruptError
}

// IOError reports a storage that could not be opened, read or written.
type IOError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Restore loads the collection from gw into st, replacing its contents and
// advancing its id counter past every loaded id.
// Corrupt lines are returned in the result, not as an error.
func Restore(ctx context.Context, gw Gateway, st *store.Store) (*LoadResult, error) {
	res, err := gw.Load(ctx)
	if err != nil {
		return nil, err
	}
	st.Replace(res.Records)
	return res, nil
}
