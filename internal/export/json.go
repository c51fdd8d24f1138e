package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xolan/daylog/internal/entry"
)

// WriteJSON writes entries as an indented JSON array of records.
func WriteJSON(w io.Writer, entries []entry.Entry) error {
	records := make([]entry.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, entry.FromEntry(e))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

// ReadJSON parses a JSON array of records and validates every one of
// them. Nothing is returned unless the whole file is valid.
func ReadJSON(r io.Reader) ([]entry.Entry, error) {
	var records []entry.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("invalid file format: expected a JSON array of entries: %w", err)
	}

	entries := make([]entry.Entry, 0, len(records))
	for i, rec := range records {
		e, err := rec.Entry()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		e, err = e.Normalize()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		e.ID = ""
		e.UserID = ""
		entries = append(entries, e)
	}
	return entries, nil
}
