package kernel

import (
	"fmt"

	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/dsa"
)

// Result is everything a run produces: the timeline, the
// context-switch tally, every runtime diagnostic in tick order, and
// the policy's static schedulability verdict.
type Result struct {
	History         []byte
	ContextSwitches int
	Diagnostics     []Event
	Verdict         Verdict
}

// mustRemove enforces spec §4.1's contract that removing an absent
// key is a programmer error, not a condition the loop can recover
// from: every Remove here targets a (primary, task) pair the loop
// itself just inserted or read off the index's own head.
func mustRemove(list *dsa.CompositeIndex, primary int64, task *domain.Task) {
	if !list.Remove(primary, task) {
		panic(fmt.Errorf("%w: primary=%d sys_id=%c", domain.ErrIndexKeyNotFound, primary, task.SysID))
	}
}

// Run drives ctx through ticks 0..ctx.TaskSet.MaxTime inclusive,
// implementing the six numbered steps of spec §4.5 in the fixed
// mutation order spec §5 requires: the laxity decrement a policy's
// PickNext performs always happens strictly after this tick's release
// sweep, never before it.
func Run(ctx *Context, pol Policy) Result {
	var diagnostics []Event
	ctx.Diagnostics = func(e Event) { diagnostics = append(diagnostics, e) }

	verdict := pol.Init(ctx)

	maxTime := ctx.TaskSet.MaxTime
	for t := 0; t <= maxTime; t++ {
		ctx.Now = t
		previous := ctx.Current

		// 1. Account for one tick of current work. previous is left
		// pointing at the completed task (marked DEAD) rather than
		// reset to idle here: step 5 below needs to see what was
		// actually running a moment ago to count the idle-handoff as
		// a switch, matching the history's own transitions.
		if previous != ctx.TaskSet.Idle {
			previous.Remaining--
			if previous.Remaining <= 0 {
				previous.State = domain.Dead
				previous.Cycles++
				mustRemove(ctx.DeadlineList, int64(previous.Deadline), previous)
			}
		}

		// 2. Deadline-miss sweep.
		for {
			primary, task, ok := ctx.DeadlineList.Head()
			if !ok || primary > int64(t) {
				break
			}
			if task.State != domain.Dead {
				ctx.Diagnostics(Event{
					Kind: EventDeadlineMiss, Tick: t, SysID: task.SysID,
					Name: task.Name, Instance: task.Instance,
					Message: "deadline miss",
				})
			}
			mustRemove(ctx.DeadlineList, primary, task)
		}

		// 3. Release sweep.
		for {
			primary, task, ok := ctx.RequestList.Head()
			if !ok || primary > int64(t) {
				break
			}
			mustRemove(ctx.RequestList, primary, task)
			Release(task, t, pol.ID())
			ctx.DeadlineList.Insert(int64(task.Deadline), task)
			ctx.RequestList.Insert(int64(task.Deadline), task)
		}

		// 4. Select next task.
		pick := pol.PickNext(ctx)

		// 5. Context-switch bookkeeping. A switch is counted whenever
		// the processor's occupant changes from one tick's history
		// entry to the next — including the handoff to idle when a
		// task completes, not only a policy's own preemption decision.
		if pick != previous {
			ctx.ContextSwitches++
			if previous.State == domain.Running {
				previous.State = domain.Ready
			}
			if pick != ctx.TaskSet.Idle {
				pick.State = domain.Running
			}
		}
		ctx.Current = pick

		// 6. Record.
		ctx.History[t] = ctx.Current.SysID
	}

	pol.End(ctx)

	return Result{
		History:         ctx.History,
		ContextSwitches: ctx.ContextSwitches,
		Diagnostics:     diagnostics,
		Verdict:         verdict,
	}
}
