package policy

import (
	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/kernel"
)

// EDF is Earliest-Deadline-First: dynamic priority by absolute
// deadline, recomputed at every release.
type EDF struct{}

func (EDF) ID() kernel.ID { return kernel.EDF }
func (EDF) Label() string { return "Earliest Deadline First" }

func (EDF) Init(ctx *kernel.Context) kernel.Verdict {
	// deadline_list and merit_list are the same index: ordering by
	// deadline is exactly EDF's figure of merit, so there is no
	// reason to keep two copies in sync.
	ctx.MeritList = ctx.DeadlineList

	var u float64
	for _, t := range ctx.TaskSet.Tasks {
		t.Merit = domain.MeritDeadline
		ctx.RequestList.Insert(0, t)
		u += t.Utilization()
	}

	label := "schedulable"
	if u > 1 {
		label = "not schedulable"
	}
	return kernel.Verdict{Policy: kernel.EDF, Bound: 1, Utilization: u, Label: label}
}

func (EDF) PickNext(ctx *kernel.Context) *domain.Task {
	return defaultDispatcher(ctx, ctx.MeritList)
}

func (EDF) End(*kernel.Context) {}
