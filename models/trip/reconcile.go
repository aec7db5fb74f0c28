package trip

import (
	"time"

	"github.com/wayplan/wayplan-backend/types"
)

// TruncateToDay normalizes a timestamp to midnight UTC. Day matching works at
// calendar-date granularity; later timestamp components are ignored.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateDays returns one day per calendar date in [start, end] inclusive,
// indexed 0..n-1 in ascending date order. start > end yields no days.
func GenerateDays(start, end time.Time) []*types.Day {
	s, e := TruncateToDay(start), TruncateToDay(end)

	days := []*types.Day{}
	for d, i := s, 0; !d.After(e); d, i = d.AddDate(0, 0, 1), i+1 {
		days = append(days, &types.Day{Date: d, Index: i})
	}
	return days
}

// PlanReconciliation diffs an existing day set against a new date range by
// calendar date (not identity). Days whose date survives keep their identity
// and activities and get their position in the new range; missing dates
// become creates; days strictly outside [start, end] become deletes.
//
// start > end enumerates no dates, so every existing day is deleted. That is
// accepted silently; callers must validate ordering upstream.
//
// Running the plan for a range the day set already matches yields an empty
// plan, making reconciliation idempotent.
func PlanReconciliation(existing []*types.Day, start, end time.Time) types.DayPlan {
	byDate := make(map[time.Time]*types.Day, len(existing))
	for _, d := range existing {
		byDate[TruncateToDay(d.Date)] = d
	}

	var plan types.DayPlan
	inRange := make(map[time.Time]bool)

	s, e := TruncateToDay(start), TruncateToDay(end)
	idx := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		inRange[d] = true
		if existingDay, ok := byDate[d]; ok {
			if existingDay.Index != idx {
				plan.Reindex = append(plan.Reindex, types.DayReindex{DayID: existingDay.ID, Index: idx})
			}
		} else {
			plan.Create = append(plan.Create, &types.Day{Date: d, Index: idx})
		}
		idx++
	}

	for _, d := range existing {
		if !inRange[TruncateToDay(d.Date)] {
			plan.Delete = append(plan.Delete, d.ID)
		}
	}
	return plan
}
