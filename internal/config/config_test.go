package config

import (
	"strings"
	"testing"
)

const validTaskSet = `
; sample taskset
title Two task EDF demo
tasks 2
task Alpha,HIGH,4,2
task Bravo,LOW,6,3
end
`

func TestParse_Valid(t *testing.T) {
	ts, err := parse(strings.NewReader(validTaskSet), "test")
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if ts.Title != "Two task EDF demo" {
		t.Errorf("Title = %q", ts.Title)
	}
	if len(ts.Tasks) != 2 {
		t.Fatalf("len(Tasks) = %d, want 2", len(ts.Tasks))
	}
	// Reverse-declaration-order: Alpha was declared first, so it must
	// end up last in storage (Bravo precedes it in the slice).
	if ts.Tasks[0].Name != "Bravo" || ts.Tasks[1].Name != "Alpha" {
		t.Errorf("Tasks = [%s, %s], want [Bravo, Alpha]", ts.Tasks[0].Name, ts.Tasks[1].Name)
	}
	if ts.Tasks[1].SysID != 'a' || ts.Tasks[0].SysID != 'b' {
		t.Errorf("sys_ids = %c,%c want a,b", ts.Tasks[1].SysID, ts.Tasks[0].SysID)
	}
	if ts.MaxTimeWasExplicit {
		t.Error("MaxTimeWasExplicit should be false when maxtime omitted")
	}
	if ts.MaxTime != 12 {
		t.Errorf("MaxTime = %d, want hyperperiod 12", ts.MaxTime)
	}
	if ts.Idle == nil {
		t.Error("Idle task must be populated")
	}
}

func TestParse_ExplicitMaxTime(t *testing.T) {
	src := `
tasks 1
maxtime 100
task Solo,HIGH,5,1
end
`
	ts, err := parse(strings.NewReader(src), "test")
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if !ts.MaxTimeWasExplicit || ts.MaxTime != 100 {
		t.Errorf("MaxTime = %d, explicit = %v, want 100/true", ts.MaxTime, ts.MaxTimeWasExplicit)
	}
}

func TestParse_MaxTimeBelowHyperperiodIsNotFatal(t *testing.T) {
	src := `
tasks 1
maxtime 2
task Solo,HIGH,5,1
end
`
	ts, err := parse(strings.NewReader(src), "test")
	if err != nil {
		t.Fatalf("parse() error = %v, want no error (warning only)", err)
	}
	if ts.MaxTime != 2 {
		t.Errorf("MaxTime = %d, want the supplied 2 (proceed verbatim)", ts.MaxTime)
	}
}

func TestParse_UnknownKeyword(t *testing.T) {
	src := "bogus foo\nend\n"
	if _, err := parse(strings.NewReader(src), "test"); err == nil {
		t.Fatal("expected error for unknown keyword")
	}
}

func TestParse_TooManyTasks(t *testing.T) {
	src := "tasks 25\nend\n"
	if _, err := parse(strings.NewReader(src), "test"); err == nil {
		t.Fatal("expected error for tasks count > 24")
	}
}

func TestParse_MismatchedTaskCount(t *testing.T) {
	src := "tasks 2\ntask Solo,HIGH,5,1\nend\n"
	if _, err := parse(strings.NewReader(src), "test"); err == nil {
		t.Fatal("expected error when declared count does not match actual tasks")
	}
}

func TestParse_CPUTimeExceedsPeriod(t *testing.T) {
	src := "tasks 1\ntask Solo,HIGH,5,6\nend\n"
	if _, err := parse(strings.NewReader(src), "test"); err == nil {
		t.Fatal("expected error when cpu_time > period")
	}
}

func TestParse_NoTasks(t *testing.T) {
	src := "title empty\nend\n"
	if _, err := parse(strings.NewReader(src), "test"); err == nil {
		t.Fatal("expected error when no tasks declared")
	}
}

func TestParse_CommentsAndCaseInsensitiveKeywords(t *testing.T) {
	src := `
* star comment
; semicolon comment

TASKS 1
TASK Solo,high,5,1
END
`
	ts, err := parse(strings.NewReader(src), "test")
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if len(ts.Tasks) != 1 {
		t.Fatalf("len(Tasks) = %d, want 1", len(ts.Tasks))
	}
}
