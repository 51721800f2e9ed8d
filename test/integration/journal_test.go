package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestLifecycle_CreateGetUpdateDelete(t *testing.T) {
	e := newEnv(t)

	id := e.createEntry(t, "I feel happy and wonderful today")

	entry := e.getEntry(t, id)
	if entry.Text != "I feel happy and wonderful today" {
		t.Errorf("unexpected text %q", entry.Text)
	}
	if entry.Mood != "happy" {
		t.Errorf("expected mood happy from the classifier, got %q", entry.Mood)
	}
	if entry.UpdatedAt != nil {
		t.Error("fresh entry must not carry updatedAt")
	}

	resp, _ := e.request(t, http.MethodPut, "/entries/"+id, `{"text":"actually quite sad now"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}

	updated := e.getEntry(t, id)
	if updated.Text != "actually quite sad now" {
		t.Errorf("unexpected text after update: %q", updated.Text)
	}
	if updated.UpdatedAt == nil {
		t.Fatal("expected updatedAt after update")
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("updatedAt must be >= createdAt")
	}
	// Mood is intentionally not recomputed on edit.
	if updated.Mood != "happy" {
		t.Errorf("mood must survive a text update, got %q", updated.Mood)
	}

	resp, raw := e.request(t, http.MethodDelete, "/entries/"+id, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	if len(raw) != 0 {
		t.Errorf("delete: expected empty body, got %q", raw)
	}

	resp, _ = e.request(t, http.MethodGet, "/entries/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestLegacyEntry_MoodBackfilledOnRead(t *testing.T) {
	e := newEnv(t)

	// Seed directly through the store, the way an entry created before
	// the extraction feature would exist: no mood.
	legacy, err := e.store.CreateEntry(context.Background(), "so tired and exhausted")
	if err != nil {
		t.Fatal(err)
	}
	if legacy.HasMood() {
		t.Fatal("seeded entry must start without a mood")
	}

	entry := e.getEntry(t, legacy.ID)
	if entry.Mood != "tired" {
		t.Errorf("expected backfilled mood tired, got %q", entry.Mood)
	}

	// The backfill is persisted: the store now carries the mood.
	stored, err := e.store.GetEntry(context.Background(), legacy.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Mood != "tired" {
		t.Errorf("expected mood persisted by backfill, got %q", stored.Mood)
	}
}

func TestLegacyEntries_BackfilledOnList(t *testing.T) {
	e := newEnv(t)

	for _, text := range []string{"so happy and glad", "sad and lonely"} {
		if _, err := e.store.CreateEntry(context.Background(), text); err != nil {
			t.Fatal(err)
		}
	}

	entries := e.listEntries(t, "")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Mood == "" {
			t.Errorf("entry %s surfaced without a mood", entry.ID)
		}
	}
}

func TestFiltering_MoodsAndDates(t *testing.T) {
	e := newEnv(t)

	e.createEntry(t, "happy happy joy")
	e.createEntry(t, "sad and miserable")
	e.createEntry(t, "furious about everything")

	happyOnly := e.listEntries(t, "?moods=happy")
	if len(happyOnly) != 1 || happyOnly[0].Mood != "happy" {
		t.Errorf("moods=happy: got %+v", happyOnly)
	}

	both := e.listEntries(t, "?moods=happy,sad")
	if len(both) != 2 {
		t.Errorf("moods=happy,sad: expected 2, got %d", len(both))
	}

	all := e.listEntries(t, "")
	empty := e.listEntries(t, "?moods=")
	if len(all) != 3 || len(empty) != 3 {
		t.Errorf("empty filter must equal no filter: %d vs %d", len(all), len(empty))
	}

	// Entries were created just now, so a wide range includes them and a
	// past range excludes them.
	inRange := e.listEntries(t, "?startDate=2020-01-01")
	if len(inRange) != 3 {
		t.Errorf("wide range: expected 3, got %d", len(inRange))
	}
	outOfRange := e.listEntries(t, "?startDate=2020-01-01&endDate=2020-12-31")
	if len(outOfRange) != 0 {
		t.Errorf("past range: expected 0, got %d", len(outOfRange))
	}
}

func TestSummary_DistributionAndDateBounds(t *testing.T) {
	e := newEnv(t)

	e.createEntry(t, "happy happy joy")
	e.createEntry(t, "glad and wonderful")
	e.createEntry(t, "sad tonight")

	resp, raw := e.request(t, http.MethodGet, "/mood/summary", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var summary map[string]int
	if err := json.Unmarshal(raw, &summary); err != nil {
		t.Fatal(err)
	}
	if summary["happy"] != 2 || summary["sad"] != 1 {
		t.Errorf("unexpected summary %v", summary)
	}
	if _, ok := summary["angry"]; ok {
		t.Error("zero-count labels must be omitted")
	}

	resp, raw = e.request(t, http.MethodGet, "/mood/summary?startDate=2020-01-01&endDate=2020-12-31", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var pastSummary map[string]int
	if err := json.Unmarshal(raw, &pastSummary); err != nil {
		t.Fatal(err)
	}
	if len(pastSummary) != 0 {
		t.Errorf("expected empty mapping for out-of-range summary, got %v", pastSummary)
	}
}

func TestErrorBodies_AlwaysCarryErrorKey(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/entries", `{"text":""}`, http.StatusBadRequest},
		{http.MethodGet, "/entries/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodGet, "/entries/00000000-0000-0000-0000-000000000000", "", http.StatusNotFound},
		{http.MethodPut, "/entries/not-a-uuid", `{"text":"x"}`, http.StatusBadRequest},
		{http.MethodDelete, "/entries/00000000-0000-0000-0000-000000000000", "", http.StatusNotFound},
		{http.MethodGet, "/entries?startDate=invalid", "", http.StatusBadRequest},
		{http.MethodGet, "/mood/summary?endDate=invalid", "", http.StatusBadRequest},
	}

	for _, tc := range cases {
		resp, raw := e.request(t, tc.method, tc.path, tc.body)
		if resp.StatusCode != tc.want {
			t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, resp.StatusCode)
			continue
		}

		var body map[string]string
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("%s %s: error body is not JSON: %s", tc.method, tc.path, raw)
			continue
		}
		if body["error"] == "" {
			t.Errorf("%s %s: missing error message in %s", tc.method, tc.path, raw)
		}
	}
}

func TestHealth_ExactBody(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.request(t, http.MethodGet, "/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "OK" {
		t.Errorf(`expected {"status":"OK"}, got %s`, raw)
	}
}
