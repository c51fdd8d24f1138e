package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xolan/daylog/internal/entry"
)

// Appender persists one entry.
type Appender interface {
	Append(ctx context.Context, e entry.Entry) (entry.Entry, error)
}

// Import reads a JSON export and appends every entry to store. Entries are
// appended last to first so the file's first entry ends up newest. It
// returns the number of entries appended before any failure.
func Import(ctx context.Context, r io.Reader, store Appender) (int, error) {
	entries, err := ReadJSON(r)
	if err != nil {
		return 0, err
	}

	n := 0
	for i := len(entries) - 1; i >= 0; i-- {
		if _, err := store.Append(ctx, entries[i]); err != nil {
			return n, fmt.Errorf("import entry %d: %w", i+1, err)
		}
		n++
	}
	return n, nil
}
