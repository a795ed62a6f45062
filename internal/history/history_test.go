package history

import (
	"testing"

	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/kernel"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTaskSet() *domain.TaskSet {
	return &domain.TaskSet{
		Title:   "sample",
		Tasks:   []*domain.Task{{Name: "A", SysID: 'a', Period: 4, CPUTime: 2}},
		Idle:    domain.NewIdleTask(),
		MaxTime: 7,
	}
}

func sampleResult() kernel.Result {
	history := make([]byte, 8)
	copy(history, "AA..AA..")
	return kernel.Result{
		History:         history,
		ContextSwitches: 4,
		Verdict:         kernel.Verdict{Utilization: 0.5, Bound: 1.0, Label: "schedulable"},
		Diagnostics: []kernel.Event{
			{Kind: kernel.EventDeadlineMiss, Tick: 3, SysID: 'a', Name: "A", Instance: 1, Message: "deadline miss"},
		},
	}
}

func TestSaveAndGetRun_RoundTrips(t *testing.T) {
	s := openTestStore(t)
	ts := sampleTaskSet()
	result := sampleResult()

	id, err := s.SaveRun(ts, kernel.RM, result)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() returned empty id")
	}

	rec, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if rec.Title != "sample" || rec.Policy != "RM" || rec.ContextSwitches != 4 {
		t.Errorf("rec = %+v, unexpected fields", rec)
	}
	if rec.Timeline != "AA..AA.." {
		t.Errorf("Timeline = %q, want AA..AA..", rec.Timeline)
	}
}

func TestGetRun_UnknownIDReturnsErrNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun("does-not-exist")
	if err == nil {
		t.Fatal("GetRun() error = nil, want ErrNotFound")
	}
}

func TestTimeline_ReturnsStoredHistory(t *testing.T) {
	s := openTestStore(t)
	ts := sampleTaskSet()
	id, err := s.SaveRun(ts, kernel.EDF, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Timeline(id)
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if got != "AA..AA.." {
		t.Errorf("Timeline() = %q, want AA..AA..", got)
	}
}

func TestListRuns_ReturnsSavedRuns(t *testing.T) {
	s := openTestStore(t)
	ts := sampleTaskSet()
	if _, err := s.SaveRun(ts, kernel.RM, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveRun(ts, kernel.LLF, sampleResult()); err != nil {
		t.Fatal(err)
	}

	records, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
}
