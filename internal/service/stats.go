package service

import "sync/atomic"

// Stats counts reconciliation activity. Invariant violations are healed
// silently; these counters exist so regressions show up on /stats
// instead of as user-visible bugs.
type Stats struct {
	violationsCorrected atomic.Int64
	checklistsHealed    atomic.Int64
	sweepsRun           atomic.Int64
}

// NewStats returns zeroed counters.
func NewStats() *Stats {
	return &Stats{}
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	ViolationsCorrected int64 `json:"violations_corrected"`
	ChecklistsHealed    int64 `json:"checklists_healed"`
	SweepsRun           int64 `json:"sweeps_run"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		ViolationsCorrected: s.violationsCorrected.Load(),
		ChecklistsHealed:    s.checklistsHealed.Load(),
		SweepsRun:           s.sweepsRun.Load(),
	}
}
