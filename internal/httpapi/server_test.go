package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/history"
	"github.com/rtalgs/rtalgs/internal/kernel"
)

func setupServer(t *testing.T) (*Server, *history.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("history.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewServer(store), store
}

func saveSampleRun(t *testing.T, store *history.Store) string {
	t.Helper()
	ts := &domain.TaskSet{
		Title:   "sample",
		Tasks:   []*domain.Task{{Name: "A", SysID: 'a', Period: 4, CPUTime: 2}},
		Idle:    domain.NewIdleTask(),
		MaxTime: 7,
	}
	tickHistory := make([]byte, 8)
	copy(tickHistory, "AA..AA..")
	result := kernel.Result{
		History:         tickHistory,
		ContextSwitches: 4,
		Verdict:         kernel.Verdict{Utilization: 0.5, Bound: 1.0, Label: "schedulable"},
	}
	id, err := store.SaveRun(ts, kernel.RM, result)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	return id
}

func TestHealthz_ReturnsOK(t *testing.T) {
	server, _ := setupServer(t)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGetRun_ReturnsSavedSummary(t *testing.T) {
	server, store := setupServer(t)
	id := saveSampleRun(t, store)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/runs/" + id)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got runSummary
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Policy != "RM" || got.ContextSwitches != 4 {
		t.Errorf("got = %+v, unexpected fields", got)
	}
}

func TestGetRun_UnknownIDReturns404(t *testing.T) {
	server, _ := setupServer(t)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/runs/does-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetTimeline_RendersASCIITimeline(t *testing.T) {
	server, store := setupServer(t)
	id := saveSampleRun(t, store)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/runs/" + id + "/timeline")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "AA..AA..") {
		t.Errorf("body missing rendered history: %q", body)
	}
	if !strings.Contains(string(body), "4 context switches") {
		t.Errorf("body missing switch count: %q", body)
	}
}

func TestListRuns_ReturnsAllSavedRuns(t *testing.T) {
	server, store := setupServer(t)
	saveSampleRun(t, store)
	saveSampleRun(t, store)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/runs/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var summaries []runSummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Errorf("len(summaries) = %d, want 2", len(summaries))
	}
}

func TestMetrics_EndpointServesPrometheusFormat(t *testing.T) {
	server, _ := setupServer(t)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
