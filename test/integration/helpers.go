// Package integration exercises the full service in-process: real SQLite
// store, deterministic classifier, production router.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkwellhq/moodlog/internal/api"
	"github.com/inkwellhq/moodlog/internal/journal"
	"github.com/inkwellhq/moodlog/internal/mood"
	"github.com/inkwellhq/moodlog/internal/store"
	"github.com/inkwellhq/moodlog/internal/types"
)

// env bundles a running test server with direct store access so tests
// can seed legacy state the API cannot create.
type env struct {
	srv   *httptest.Server
	store *store.SQLiteStore
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "integration.db"))
	if err != nil {
		t.Fatal(err)
	}

	service := journal.NewService(db, mood.NewLexicon(), journal.Options{
		Fallback:       journal.FallbackPolicy{Enabled: true, Mood: "neutral"},
		ExtractTimeout: 5 * time.Second,
	})
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(service)))

	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})
	return &env{srv: srv, store: db}
}

func (e *env) request(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, raw
}

func (e *env) createEntry(t *testing.T, text string) string {
	t.Helper()

	resp, raw := e.request(t, http.MethodPost, "/entries", fmt.Sprintf(`{"text":%q}`, text))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create %q: expected 201, got %d (%s)", text, resp.StatusCode, raw)
	}

	var body types.EntryIDResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	return body.ID
}

func (e *env) getEntry(t *testing.T, id string) types.JournalEntry {
	t.Helper()

	resp, raw := e.request(t, http.MethodGet, "/entries/"+id, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s: expected 200, got %d (%s)", id, resp.StatusCode, raw)
	}

	var entry types.JournalEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatal(err)
	}
	return entry
}

func (e *env) listEntries(t *testing.T, query string) []types.JournalEntry {
	t.Helper()

	resp, raw := e.request(t, http.MethodGet, "/entries"+query, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list %q: expected 200, got %d (%s)", query, resp.StatusCode, raw)
	}

	var entries []types.JournalEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatal(err)
	}
	return entries
}
