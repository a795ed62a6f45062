// Package render turns a kernel.Result into the ASCII reports spec §6.4
// describes: the wrapped single-row timeline, the optional per-task-row
// layout, the schedulability report, and the sys_id cross-reference.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/kernel"
)

// DefaultWidth is the screen width used when the caller does not
// override it with -w (spec §6.3).
const DefaultWidth = 72

// timeAxis builds the three-row tick ruler printed under a timeline:
// the ones digit always, the tens and hundreds digits only at each
// multiple of ten (ported from the reference implementation's
// draw_timeline, which derives med/high purely from whether the low
// digit just computed is '0').
func timeAxis(maxTime int) (low, med, high string) {
	l := make([]byte, maxTime+1)
	m := make([]byte, maxTime+1)
	h := make([]byte, maxTime+1)
	for t := 0; t <= maxTime; t++ {
		l[t] = byte('0' + t%10)
		if l[t] == '0' {
			m[t] = byte('0' + (t/10)%10)
			h[t] = byte('0' + (t/100)%10)
		} else {
			m[t] = ' '
			h[t] = ' '
		}
	}
	return string(l), string(m), string(h)
}

func chunks(s string, width int) []string {
	var out []string
	for len(s) > width {
		out = append(out, s[:width])
		s = s[width:]
	}
	out = append(out, s)
	return out
}

// Timeline writes the wrapped single-row layout: the history line plus
// its three-row tick ruler, in chunks of width columns.
func Timeline(w io.Writer, result kernel.Result, maxTime, width int) {
	if width <= 0 {
		width = DefaultWidth
	}
	history := string(result.History[:maxTime+1])
	low, med, high := timeAxis(maxTime)

	historyLines := chunks(history, width)
	lowLines := chunks(low, width)
	medLines := chunks(med, width)
	highLines := chunks(high, width)

	for i := range historyLines {
		fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", historyLines[i], lowLines[i], medLines[i], highLines[i])
	}
	fmt.Fprintf(w, "\n%d context switches\n", result.ContextSwitches)
}

// PerTaskRows writes one row per task (plus the idle task), marking
// with the task's own sys_id every tick it occupied the processor and
// '.' elsewhere, so concurrent tasks' activity can be compared at a
// glance instead of read off a single merged row.
func PerTaskRows(w io.Writer, result kernel.Result, ts *domain.TaskSet, maxTime, width int) {
	if width <= 0 {
		width = DefaultWidth
	}
	history := result.History[:maxTime+1]
	low, med, high := timeAxis(maxTime)

	// Declaration order (task 1 first), matching CrossReference, with
	// idle trailing last.
	tasks := make([]*domain.Task, 0, len(ts.Tasks)+1)
	for i := len(ts.Tasks) - 1; i >= 0; i-- {
		tasks = append(tasks, ts.Tasks[i])
	}
	tasks = append(tasks, ts.Idle)
	rows := make(map[byte]string, len(tasks))
	for _, t := range tasks {
		row := make([]byte, maxTime+1)
		for i, occupant := range history {
			if occupant == t.SysID {
				row[i] = t.SysID
			} else {
				row[i] = '.'
			}
		}
		rows[t.SysID] = string(row)
	}

	rowChunks := make(map[byte][]string, len(tasks))
	for sysID, row := range rows {
		rowChunks[sysID] = chunks(row, width)
	}
	lowLines := chunks(low, width)
	medLines := chunks(med, width)
	highLines := chunks(high, width)

	for i := range lowLines {
		fmt.Fprintln(w)
		for _, t := range tasks {
			fmt.Fprintf(w, "%c %s\n", t.SysID, rowChunks[t.SysID][i])
		}
		fmt.Fprintf(w, "  %s\n  %s\n  %s\n", lowLines[i], medLines[i], highLines[i])
	}
	fmt.Fprintf(w, "\n%d context switches\n", result.ContextSwitches)
}

// SchedulabilityReport writes the static verdict a policy's Init
// produced: the Liu-Layland bound (RM only), total utilization, the
// critical/admitted set when the policy names one, and the verdict
// label.
func SchedulabilityReport(w io.Writer, pol kernel.ID, v kernel.Verdict) {
	fmt.Fprintf(w, "\nSelected Scheduling Algorithm: %s\n", pol)
	if pol == kernel.RM {
		fmt.Fprintf(w, "which has a schedulability bound of %.1f%% for the given task set.\n", 100*v.Bound)
	}
	fmt.Fprintf(w, "Utilization: %.3f\n", v.Utilization)
	if len(v.CriticalSet) > 0 {
		label := "Critical set"
		if pol == kernel.MUF {
			label = "Admitted HIGH set"
		}
		fmt.Fprintf(w, "%s is composed of: %s\n", label, strings.Join(v.CriticalSet, ", "))
	}
	fmt.Fprintf(w, "Verdict: %s\n", v.Label)
}

// Diagnostics writes every runtime event in tick order, one line per
// event. The simulation loop itself prints nothing; events are only
// written here, after the run.
func Diagnostics(w io.Writer, events []kernel.Event) {
	for _, e := range events {
		fmt.Fprintf(w, "At %d: task %c (%q), instance %d: %s\n", e.Tick, e.SysID, e.Name, e.Instance, e.Message)
	}
}

// CrossReference writes the sys_id -> name table, task 1 first.
func CrossReference(w io.Writer, ts *domain.TaskSet) {
	fmt.Fprintln(w, "Cross-reference Names:")
	for i := len(ts.Tasks) - 1; i >= 0; i-- {
		t := ts.Tasks[i]
		fmt.Fprintf(w, "%c\t%s\n", t.SysID, t.Name)
	}
}
