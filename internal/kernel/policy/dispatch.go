// Package policy implements the four scheduling algorithms the kernel
// can run: Rate Monotonic, Earliest-Deadline-First, Least-Laxity-First,
// and Maximum-Urgency-First. Each is a small type implementing
// kernel.Policy; this file holds the two dispatcher shapes every
// policy is built from.
package policy

import (
	"fmt"

	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/dsa"
	"github.com/rtalgs/rtalgs/internal/kernel"
)

// defaultDispatcher implements spec §4.4.5: the first entry in list
// (walked in ascending merit order) whose state is at least READY is
// the candidate. Current-task hysteresis suppresses a preemption when
// the candidate's merit ties the running task's merit.
func defaultDispatcher(ctx *kernel.Context, list *dsa.CompositeIndex) *domain.Task {
	var candidate *domain.Task
	list.Walk(func(_ int64, task *domain.Task) bool {
		if task.State >= domain.Ready {
			candidate = task
			return false
		}
		return true
	})
	if candidate == nil {
		return ctx.TaskSet.Idle
	}
	// Hysteresis only applies against a task genuinely still running
	// this tick — not idle, and not one that just completed or missed
	// its deadline, both of which leave ctx.Current pointing at a
	// no-longer-eligible task until step 5 reconciles it.
	if ctx.Current.State != domain.Running {
		return candidate
	}
	if candidate.MeritValue() == ctx.Current.MeritValue() {
		return ctx.Current
	}
	return candidate
}

// laxityDispatcher implements spec §4.4.4: every READY entry in list
// has its laxity decremented by one tick; an entry whose laxity goes
// negative is reported as laxity-exhausted and demoted to BLOCKED.
// Among the surviving READY/RUNNING entries, the smallest laxity wins,
// with the currently running task winning ties. Returns the task set's
// idle task if nothing in list is eligible.
func laxityDispatcher(ctx *kernel.Context, list *dsa.CompositeIndex) *domain.Task {
	var best *domain.Task
	list.Walk(func(_ int64, task *domain.Task) bool {
		if task.State == domain.Ready {
			task.Laxity--
			if task.Laxity < 0 {
				ctx.Diagnostics(kernel.Event{
					Kind: kernel.EventLaxityExhausted, Tick: ctx.Now,
					SysID: task.SysID, Name: task.Name, Instance: task.Instance,
					Message: fmt.Sprintf("%c (%s) will lose its deadline at %d", task.SysID, task.Name, task.Deadline),
				})
				task.State = domain.Blocked
				return true
			}
		}
		if task.State != domain.Ready && task.State != domain.Running {
			return true
		}
		switch {
		case best == nil:
			best = task
		case task.Laxity < best.Laxity:
			best = task
		case task.Laxity == best.Laxity && task == ctx.Current:
			best = task
		}
		return true
	})
	if best == nil {
		return ctx.TaskSet.Idle
	}
	return best
}
