package policy

import (
	"math"

	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/kernel"
)

// RM is the Rate Monotonic policy: static priority by period, shortest
// period wins. Schedulability is assessed against the Liu-Layland
// bound rather than raw utilization.
type RM struct{}

func (RM) ID() kernel.ID { return kernel.RM }
func (RM) Label() string { return "Rate Monotonic" }

func (RM) Init(ctx *kernel.Context) kernel.Verdict {
	for _, t := range ctx.TaskSet.Tasks {
		t.Merit = domain.MeritPeriod
		ctx.MeritList.Insert(int64(t.Period), t)
		ctx.RequestList.Insert(0, t)
	}

	n := len(ctx.TaskSet.Tasks)
	bound := liuLaylandBound(n)

	var u float64
	var criticalSet []string
	underBound := true
	ctx.MeritList.Walk(func(_ int64, t *domain.Task) bool {
		u += t.Utilization()
		if underBound {
			if u <= bound {
				criticalSet = append(criticalSet, t.Name)
			} else {
				underBound = false
			}
		}
		return true
	})

	return kernel.Verdict{
		Policy:      kernel.RM,
		Bound:       bound,
		Utilization: u,
		CriticalSet: criticalSet,
		Label:       scheduleLabel(u, bound),
	}
}

func (RM) PickNext(ctx *kernel.Context) *domain.Task {
	return defaultDispatcher(ctx, ctx.MeritList)
}

func (RM) End(*kernel.Context) {}

// liuLaylandBound computes B(n) = n*(2^(1/n) - 1), the classical
// sufficient (not necessary) RM schedulability bound.
func liuLaylandBound(n int) float64 {
	if n <= 0 {
		return 1
	}
	return float64(n) * (math.Pow(2, 1.0/float64(n)) - 1)
}

// scheduleLabel renders the three-way RM verdict from spec §4.4.1:
// at or under the bound is a sufficient guarantee; over 1.0 is
// infeasible; the gap between is genuinely undecided by this test.
func scheduleLabel(u, bound float64) string {
	switch {
	case u <= bound:
		return "schedulable"
	case u > 1:
		return "not schedulable"
	default:
		return "may not be schedulable"
	}
}
