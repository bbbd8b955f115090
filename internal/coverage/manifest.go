package coverage

import (
	"fmt"
	"sort"
	"time"

	"NewsPipeline/internal/domain"
)

// RunStats aggregates the collection runs recorded for one calendar date.
type RunStats struct {
	Count int       `json:"count"`
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start domain.Date `json:"start"`
	End   domain.Date `json:"end"`
}

// Window bounds the intended collection period for a topic. The end date only
// ever moves forward.
type Window struct {
	StartDate   domain.Date `json:"start_date"`
	EndDate     domain.Date `json:"end_date"`
	LastUpdated time.Time   `json:"last_updated,omitzero"`
}

// Manifest is the authoritative coverage ledger for one topic: which dates
// have been collected, run history per date, and the gaps still open within
// the coverage window.
type Manifest struct {
	Topic          string              `json:"topic"`
	Coverage       Window              `json:"coverage"`
	DatesCollected []domain.Date       `json:"dates_collected"`
	DailyRuns      map[string]RunStats `json:"daily_runs"`
	RecordCount    int                 `json:"record_count"`
	Gaps           []DateRange         `json:"gaps"`
}

// NewManifest creates an empty ledger starting at the configured date. The
// end date stays unset until the first run is recorded.
func NewManifest(topic string, start domain.Date) *Manifest {
	return &Manifest{
		Topic:          topic,
		Coverage:       Window{StartDate: start},
		DatesCollected: []domain.Date{},
		DailyRuns:      map[string]RunStats{},
		Gaps:           []DateRange{},
	}
}

// Collected reports whether at least one run has been recorded for the date.
func (m *Manifest) Collected(day domain.Date) bool {
	for _, d := range m.DatesCollected {
		if d.Equal(day) {
			return true
		}
	}
	return false
}

// RecordRun marks a successful collection run for the given date: the date
// joins dates_collected, its run stats are updated, the window extends
// forward if needed, and gaps are recomputed from scratch.
func (m *Manifest) RecordRun(day domain.Date, added int, now time.Time) error {
	if day.IsZero() {
		return fmt.Errorf("record run: date is unset")
	}
	if day.Before(m.Coverage.StartDate) {
		return fmt.Errorf("record run: date %s precedes coverage start %s", day, m.Coverage.StartDate)
	}

	m.ExtendWindow(day)

	if !m.Collected(day) {
		m.DatesCollected = append(m.DatesCollected, day)
		sort.Slice(m.DatesCollected, func(i, j int) bool {
			return m.DatesCollected[i].Before(m.DatesCollected[j])
		})
	}

	if m.DailyRuns == nil {
		m.DailyRuns = map[string]RunStats{}
	}
	stats := m.DailyRuns[day.String()]
	stats.Count++
	if stats.First.IsZero() || now.Before(stats.First) {
		stats.First = now
	}
	if now.After(stats.Last) {
		stats.Last = now
	}
	m.DailyRuns[day.String()] = stats

	m.RecordCount += added
	m.Coverage.LastUpdated = now
	m.Gaps = m.ComputeGaps()
	return nil
}

// ComputeGaps scans the coverage window day by day and returns the maximal
// contiguous runs of dates with no recorded collection. Gaps are always
// derived from dates_collected, never mutated on their own.
func (m *Manifest) ComputeGaps() []DateRange {
	gaps := []DateRange{}
	start, end := m.Coverage.StartDate, m.Coverage.EndDate
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return gaps
	}

	collected := make(map[string]struct{}, len(m.DatesCollected))
	for _, d := range m.DatesCollected {
		collected[d.String()] = struct{}{}
	}

	var current DateRange
	open := false
	for day := start; !day.After(end); day = day.Next() {
		if _, ok := collected[day.String()]; ok {
			if open {
				gaps = append(gaps, current)
				open = false
			}
			continue
		}
		if open {
			current.End = day
		} else {
			current = DateRange{Start: day, End: day}
			open = true
		}
	}
	if open {
		gaps = append(gaps, current)
	}
	return gaps
}

// ExtendWindow raises the coverage end date to at least the given date. The
// window never shrinks.
func (m *Manifest) ExtendWindow(end domain.Date) {
	if end.IsZero() {
		return
	}
	if m.Coverage.EndDate.IsZero() || end.After(m.Coverage.EndDate) {
		m.Coverage.EndDate = end
	}
}

// SetRecordCount pins the total to the deduplicated store cardinality.
func (m *Manifest) SetRecordCount(n int) {
	m.RecordCount = n
}
