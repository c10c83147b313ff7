package domain

import "strings"

// Task is one renewal-workflow milestone for one policy.
// CompletedAt is the single source of truth for completion state;
// Completed is a derived cache and is never trusted on its own.
type Task struct {
	ID          int    `json:"id"`
	Label       string `json:"label"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt"`
	Notes       string `json:"notes"`
}

// Done reports completion from the timestamp, never from the cached flag.
func (t Task) Done() bool {
	return strings.TrimSpace(t.CompletedAt) != ""
}

// Checklist is the ordered list of renewal tasks for one policy.
// Order is template insertion order; added tasks append at the end.
type Checklist []Task

// Clone returns a deep copy so callers never alias shared state.
func (c Checklist) Clone() Checklist {
	if c == nil {
		return nil
	}
	out := make(Checklist, len(c))
	copy(out, c)
	return out
}

// IndexOf returns the position of the task with the given id, or -1.
func (c Checklist) IndexOf(taskID int) int {
	for i := range c {
		if c[i].ID == taskID {
			return i
		}
	}
	return -1
}

// MaxID returns the highest task id in the checklist, 0 if empty.
func (c Checklist) MaxID() int {
	max := 0
	for i := range c {
		if c[i].ID > max {
			max = c[i].ID
		}
	}
	return max
}

// Normalize returns a copy of the checklist with Completed recomputed
// from CompletedAt for every task. This is the single rule for deriving
// the flag; every read and write path goes through it. Idempotent, and
// the caller's slice is never mutated.
func Normalize(c Checklist) Checklist {
	out := make(Checklist, len(c))
	for i, t := range c {
		t.Completed = t.Done()
		out[i] = t
	}
	return out
}

// CountViolations reports how many tasks carry a Completed flag that
// disagrees with their timestamp. Violations are healed by Normalize;
// the count only feeds drift stats.
func CountViolations(c Checklist) int {
	n := 0
	for i := range c {
		if c[i].Completed != c[i].Done() {
			n++
		}
	}
	return n
}

// Equal reports field-by-field equality of two checklists.
func (c Checklist) Equal(other Checklist) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}
