package kernel

import "github.com/rtalgs/rtalgs/internal/domain"

// Release (re)initializes a task's dynamic per-instance state at the
// start of a new period (spec §4.3). LLF and MUF apply a +1 laxity
// pre-correction: the laxity dispatcher unconditionally decrements
// every READY task's laxity once per tick, and without this
// correction a freshly released instance would be charged for a tick
// it has not yet been given a chance to run on.
func Release(task *domain.Task, now int, pol ID) {
	task.State = domain.Ready
	task.Remaining = task.CPUTime
	task.Deadline = now + task.Period
	task.Instance++

	laxity := task.Deadline - now - task.Remaining
	if pol == LLF || pol == MUF {
		laxity++
	}
	task.Laxity = laxity
}
