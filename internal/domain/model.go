// Package domain contains pure scheduling types with ZERO infrastructure
// imports. This is the innermost ring of the repository — it depends on
// nothing but the standard library.
package domain

import "fmt"

// ─── Criticality ────────────────────────────────────────────────────────────

// Criticality is the binary static criticality label MUF uses to
// stratify the ready set.
type Criticality int

const (
	Low Criticality = iota
	High
)

func (c Criticality) String() string {
	if c == High {
		return "HIGH"
	}
	return "LOW"
}

// ─── State ──────────────────────────────────────────────────────────────────

// State is a task instance's position in its lifecycle. Ordering matters:
// any state strictly less than Ready is ineligible to be dispatched —
// Task.Eligible and the policy package's defaultDispatcher rely on this.
type State int

const (
	Dead State = iota
	Idle
	Blocked
	Ready
	Running
)

func (s State) String() string {
	switch s {
	case Dead:
		return "dead"
	case Idle:
		return "idle"
	case Blocked:
		return "blocked"
	case Ready:
		return "ready"
	case Running:
		return "running"
	default:
		return "?"
	}
}

// MeritField selects which mutable field of a Task a policy consults as
// its figure of merit. RM keys on Period (static), EDF and LLF key on a
// field that changes over the run (Deadline, Laxity respectively).
type MeritField int

const (
	MeritPeriod MeritField = iota
	MeritDeadline
	MeritLaxity
)

// IdleSysID is the reserved glyph for the synthetic idle task.
const IdleSysID = '.'

// MaxTasks is the conservative cap from spec §6.2: single-glyph sys_ids
// must stay unique within the alphabet rtalgs draws from.
const MaxTasks = 24

// MaxLaxity is the largest representable laxity, assigned to the idle
// task so it never wins a laxity comparison against a real task.
const MaxLaxity = 1<<31 - 1

// ─── Task ───────────────────────────────────────────────────────────────────

// Task is both the static descriptor and the mutable per-instance state
// of one periodic task. A uniprocessor with deadline == period has at
// most one live instance per task, so the dynamic fields live directly
// on the Task rather than in a separate collection.
type Task struct {
	Name        string
	SysID       byte
	Criticality Criticality
	Period      int
	CPUTime     int

	// Dynamic instance state, reset by Release at every new instance.
	State     State
	Remaining int
	Deadline  int
	Laxity    int
	Instance  int
	Cycles    int

	// Merit points at whichever field above a policy uses for ordering.
	Merit MeritField
}

// MeritValue returns the value of whichever field Merit selects.
func (t *Task) MeritValue() int {
	switch t.Merit {
	case MeritPeriod:
		return t.Period
	case MeritDeadline:
		return t.Deadline
	case MeritLaxity:
		return t.Laxity
	default:
		return 0
	}
}

// Eligible reports whether the task may be picked by a dispatcher:
// only Ready and Running instances are candidates (spec §4.6).
func (t *Task) Eligible() bool {
	return t.State >= Ready
}

// NewIdleTask returns the synthetic idle task: permanently Ready, with
// an unreachable laxity so it never wins a merit comparison, and its
// own (always-zero) deadline as merit so RM/EDF can treat it uniformly.
func NewIdleTask() *Task {
	return &Task{
		Name:   "Idle Task",
		SysID:  IdleSysID,
		State:  Ready,
		Laxity: MaxLaxity,
		Merit:  MeritDeadline,
	}
}

func (t *Task) String() string {
	return fmt.Sprintf("%c(%s)", t.SysID, t.Name)
}

// Utilization returns this task's contribution to total CPU utilization.
func (t *Task) Utilization() float64 {
	return float64(t.CPUTime) / float64(t.Period)
}

// ─── TaskSet ────────────────────────────────────────────────────────────────

// TaskSet is the fully validated, in-memory task set a simulation run
// consumes. Tasks is stored in reverse of declaration order (spec §6.2):
// the first-declared task is last, so printers that list tasks in
// declaration order (task 1 at the top) walk it from the end.
type TaskSet struct {
	Title              string
	Tasks              []*Task
	Idle               *Task
	MaxTime            int
	MaxTimeWasExplicit bool
}

// Utilization returns the total system utilization U = Σ cpu_time/period.
func (ts *TaskSet) Utilization() float64 {
	var u float64
	for _, t := range ts.Tasks {
		u += t.Utilization()
	}
	return u
}

// Periods returns every task's period, for hyperperiod computation.
func (ts *TaskSet) Periods() []int {
	periods := make([]int, len(ts.Tasks))
	for i, t := range ts.Tasks {
		periods[i] = t.Period
	}
	return periods
}

// Clone returns a TaskSet with the same static task descriptors but
// freshly zeroed dynamic state, so the same parsed file can be
// simulated under multiple policies without one run's mutations
// leaking into the next (spec §7's "state is fully reset between
// files" applies equally between policies run against one file).
func (ts *TaskSet) Clone() *TaskSet {
	tasks := make([]*Task, len(ts.Tasks))
	for i, t := range ts.Tasks {
		tasks[i] = &Task{
			Name:        t.Name,
			SysID:       t.SysID,
			Criticality: t.Criticality,
			Period:      t.Period,
			CPUTime:     t.CPUTime,
			State:       Idle,
		}
	}
	return &TaskSet{
		Title:              ts.Title,
		Tasks:              tasks,
		Idle:               NewIdleTask(),
		MaxTime:            ts.MaxTime,
		MaxTimeWasExplicit: ts.MaxTimeWasExplicit,
	}
}
