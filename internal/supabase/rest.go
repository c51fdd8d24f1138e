package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xolan/daylog/internal/entry"
)

const entriesTable = "entries"

// TokenFunc returns the access token of the signed-in user. Row level
// security on the entries table is evaluated against it.
type TokenFunc func(ctx context.Context) (string, error)

// Entries is the hosted entry backend.
type Entries struct {
	client *Client
	token  TokenFunc
}

// NewEntries returns a backend for the entries table.
func NewEntries(client *Client, token TokenFunc) *Entries {
	return &Entries{client: client, token: token}
}

// Insert stores e and returns the row echoed by the service, including its
// generated id and created_at.
func (r *Entries) Insert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	token, err := r.token(ctx)
	if err != nil {
		return entry.Entry{}, err
	}

	rec := entry.FromEntry(e)
	rec.ID = ""
	status, data, err := r.client.do(ctx, request{
		method:  http.MethodPost,
		path:    restPath + "/" + entriesTable,
		token:   token,
		body:    []entry.Record{rec},
		headers: map[string]string{"Prefer": "return=representation"},
	})
	if err != nil {
		return entry.Entry{}, err
	}
	if !success(status) {
		return entry.Entry{}, decodeAPIError(status, data)
	}

	var rows []entry.Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to parse inserted row: %w", err)
	}
	if len(rows) == 0 {
		return entry.Entry{}, fmt.Errorf("insert returned no rows")
	}
	return rows[0].Entry()
}

// SelectByOwner returns every entry of userID, newest first.
func (r *Entries) SelectByOwner(ctx context.Context, userID string) ([]entry.Entry, error) {
	token, err := r.token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("select", "*")
	params.Add("user_id", "eq."+userID)
	params.Add("order", "created_at.desc")

	status, data, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   restPath + "/" + entriesTable,
		query:  params,
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, decodeAPIError(status, data)
	}

	var rows []entry.Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse entries: %w", err)
	}
	entries := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := row.Entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// DeleteByOwner removes every entry of userID.
func (r *Entries) DeleteByOwner(ctx context.Context, userID string) error {
	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	status, data, err := r.client.do(ctx, request{
		method: http.MethodDelete,
		path:   restPath + "/" + entriesTable,
		query:  url.Values{"user_id": {"eq." + userID}},
		token:  token,
	})
	if err != nil {
		return err
	}
	if !success(status) {
		return decodeAPIError(status, data)
	}
	return nil
}
