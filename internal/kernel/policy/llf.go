package policy

import (
	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/kernel"
)

// LLF is Least-Laxity-First: dynamic priority by laxity (slack time),
// recomputed every tick by the laxity dispatcher rather than only at
// release.
type LLF struct{}

func (LLF) ID() kernel.ID { return kernel.LLF }
func (LLF) Label() string { return "Least Laxity First" }

func (LLF) Init(ctx *kernel.Context) kernel.Verdict {
	var u float64
	for _, t := range ctx.TaskSet.Tasks {
		t.Merit = domain.MeritLaxity
		// A task has no live instance yet at t=0; Period-CPUTime is
		// a reasonable standing-in initial key purely for the index's
		// bookkeeping. The laxity dispatcher never trusts this key
		// for ordering once the run starts — it walks every entry
		// and recomputes the minimum itself every tick.
		ctx.MeritList.Insert(int64(t.Period-t.CPUTime), t)
		ctx.RequestList.Insert(0, t)
		u += t.Utilization()
	}

	label := "schedulable"
	if u > 1 {
		label = "not schedulable"
	}
	return kernel.Verdict{Policy: kernel.LLF, Bound: 1, Utilization: u, Label: label}
}

func (LLF) PickNext(ctx *kernel.Context) *domain.Task {
	return laxityDispatcher(ctx, ctx.MeritList)
}

func (LLF) End(*kernel.Context) {}
