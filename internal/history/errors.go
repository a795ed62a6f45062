package history

import "errors"

// ErrNotFound is returned when a run ID has no matching ledger entry.
var ErrNotFound = errors.New("run not found")
