package dsa

import "github.com/rtalgs/rtalgs/internal/domain"

// ─── Composite-Key Index ────────────────────────────────────────────────────
// Several task instances can share the same primary ordering value (two
// tasks releasing at the same tick, two tasks with equal laxity). The
// reference implementation packed sys_id into the low byte of the key
// so every entry stayed individually addressable for O(log n) deletion
// without a linear scan. CompositeIndex keeps that contract: composeKey
// packs sys_id into the low byte of an int64 key with a plain shift and
// or (no pointer casts), and Head/Walk recover the primary by shifting
// right 8 bits (spec §3's "Composite key" note).

func composeKey(primary int64, sysID byte) int64 {
	return (primary << 8) | int64(sysID)
}

// CompositeIndex is an OrderedMap<int64, *domain.Task> keyed by
// (primary, task.SysID), ascending by primary and then by sys_id.
type CompositeIndex struct {
	list *SkipList[int64, *domain.Task]
}

// NewCompositeIndex returns an empty index.
func NewCompositeIndex() *CompositeIndex {
	return &CompositeIndex{list: NewSkipList[int64, *domain.Task]()}
}

// Insert adds task under the given primary ordering value.
func (c *CompositeIndex) Insert(primary int64, task *domain.Task) {
	c.list.Insert(composeKey(primary, task.SysID), task)
}

// Remove deletes the entry previously inserted for (primary, task).
// Both values are required to reconstruct the composite key — the
// index never scans by value. Returns false if no such entry existed.
func (c *CompositeIndex) Remove(primary int64, task *domain.Task) bool {
	return c.list.Delete(composeKey(primary, task.SysID))
}

// Head returns the entry with the least primary/sys_id, or ok=false
// if the index is empty.
func (c *CompositeIndex) Head() (primary int64, task *domain.Task, ok bool) {
	n, ok := c.list.Head()
	if !ok {
		return 0, nil, false
	}
	return n.Key() >> 8, n.Value(), true
}

// IsEmpty reports whether the index holds no entries.
func (c *CompositeIndex) IsEmpty() bool { return c.list.IsEmpty() }

// Walk calls fn for every (primary, task) pair in ascending order.
// Stops early if fn returns false. Used by the dispatchers on every
// tick (the laxity dispatcher must see every live entry, not just the
// head) and by RM's and MUF's Init for their one-time admission walks.
func (c *CompositeIndex) Walk(fn func(primary int64, task *domain.Task) bool) {
	n, ok := c.list.Head()
	for ok {
		if !fn(n.Key()>>8, n.Value()) {
			return
		}
		n, ok = c.list.Next(n)
	}
}
