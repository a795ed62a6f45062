package policy

import (
	"fmt"

	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/dsa"
	"github.com/rtalgs/rtalgs/internal/kernel"
)

// MUF is Maximum-Urgency-First: HIGH-criticality tasks are guaranteed
// admission ahead of LOW-criticality ones (stratified by a one-time
// admission test at Init), and within each stratum tasks are ordered
// by laxity exactly as LLF orders its single pool.
type MUF struct{}

func (MUF) ID() kernel.ID { return kernel.MUF }
func (MUF) Label() string { return "Maximum Urgency First" }

func (MUF) Init(ctx *kernel.Context) kernel.Verdict {
	ctx.HighCritList = ctx.MeritList

	temp := dsa.NewCompositeIndex()
	var uTotal float64
	for _, t := range ctx.TaskSet.Tasks {
		t.Merit = domain.MeritLaxity
		temp.Insert(int64(t.Period), t)
		ctx.RequestList.Insert(0, t)
		uTotal += t.Utilization()
	}

	var uHigh float64
	var admitted []string
	locked := false
	temp.Walk(func(_ int64, t *domain.Task) bool {
		if t.Criticality != domain.High {
			ctx.LowCritList.Insert(int64(t.Period-t.CPUTime), t)
			return true
		}
		// Once one HIGH task overflows the HIGH pool's utilization
		// budget, every later HIGH task is demoted too, regardless of
		// its own utilization — the admission test never re-opens
		// once it has failed once.
		if !locked && uHigh+t.Utilization() <= 1 {
			uHigh += t.Utilization()
			ctx.HighCritList.Insert(int64(t.Period-t.CPUTime), t)
			admitted = append(admitted, t.Name)
		} else {
			locked = true
			ctx.Diagnostics(kernel.Event{
				Kind: kernel.EventMUFDemotion, Tick: ctx.Now,
				SysID: t.SysID, Name: t.Name,
				Message: fmt.Sprintf("%c (%s) found NOT Schedulable as HIGH criticality, demoted to LOW", t.SysID, t.Name),
			})
			ctx.LowCritList.Insert(int64(t.Period-t.CPUTime), t)
		}
		return true
	})

	label := "may be schedulable"
	if uTotal > 1 {
		label = "not schedulable"
	}
	return kernel.Verdict{Policy: kernel.MUF, Bound: 1, Utilization: uTotal, CriticalSet: admitted, Label: label}
}

func (MUF) PickNext(ctx *kernel.Context) *domain.Task {
	// Both dispatchers run every tick, HIGH before LOW, so HIGH
	// laxities are always up to date before LOW is considered
	// (spec §4.4.6). The LOW pick is still needed even when HIGH
	// wins, since LOW-criticality instances must keep accruing their
	// own laxity decrements.
	highPick := laxityDispatcher(ctx, ctx.HighCritList)
	lowPick := laxityDispatcher(ctx, ctx.LowCritList)

	least := highPick
	if least == ctx.TaskSet.Idle {
		least = lowPick
	}

	// Current-task tie-break across the combined pool, as in §4.4.5:
	// the running task keeps the processor against a candidate of
	// equal merit. Gated on ctx.Current.State == Running for the same
	// reason as defaultDispatcher — a task that just completed or
	// missed its deadline still leaves ctx.Current pointing at it
	// until step 5 reconciles the pointer.
	if least == ctx.TaskSet.Idle || ctx.Current.State != domain.Running {
		return least
	}
	if least.MeritValue() == ctx.Current.MeritValue() {
		return ctx.Current
	}
	return least
}

func (MUF) End(*kernel.Context) {}
