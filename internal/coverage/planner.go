package coverage

import "NewsPipeline/internal/domain"

// Plan returns the dates still needing collection, oldest first: every date
// inside an open gap, then the forward extension from the day after the
// current window end up to today. Historical backfill therefore runs before
// the catch-up to the present. Calling Plan twice without an intervening
// RecordRun yields the identical sequence.
func Plan(m *Manifest, today domain.Date) []domain.Date {
	var days []domain.Date

	for _, gap := range m.ComputeGaps() {
		for day := gap.Start; !day.After(gap.End); day = day.Next() {
			days = append(days, day)
		}
	}

	next := m.Coverage.StartDate
	if !m.Coverage.EndDate.IsZero() {
		next = m.Coverage.EndDate.Next()
	}
	for day := next; !day.After(today); day = day.Next() {
		days = append(days, day)
	}

	return days
}
