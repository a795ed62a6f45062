package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Configuration file errors (spec §7.i)
	ErrUnknownKeyword   = errors.New("unknown configuration keyword")
	ErrMissingField     = errors.New("missing required field")
	ErrOutOfRangeValue  = errors.New("numeric value out of range")
	ErrTooManyTasks     = errors.New("too many tasks for the sys_id alphabet")
	ErrNoTasks          = errors.New("at least one valid task must be specified")

	// Configuration file I/O errors (spec §7.ii)
	ErrTaskSetIO = errors.New("could not read taskset file")

	// CLI errors (spec §7.iv, §7.v)
	ErrNoAlgorithmSelected = errors.New("no scheduling algorithm selected")

	// Index / kernel programmer errors (spec §4.1)
	ErrIndexKeyNotFound = errors.New("composite index: key not present")
)

// MaxTimeBelowHyperperiod is not a fatal error — spec §7(vi) and §9's
// Open Question both preserve the legacy behavior of warning and
// continuing with the user-supplied value. It is a distinct type (not
// part of the sentinel var block above) so callers can log.Printf it
// without ever mistaking it for something that aborts a run.
type MaxTimeBelowHyperperiod struct {
	Supplied, Hyperperiod int
}

func (e *MaxTimeBelowHyperperiod) Error() string {
	return "max_time supplied is below the hyperperiod; proceeding with the supplied value"
}
