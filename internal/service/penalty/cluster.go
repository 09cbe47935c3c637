package penalty

import (
	"strings"

	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
)

// Cluster is one connected component of mutually overlapping shifts on a
// single calendar date, with the resolved interval of each constituent.
type Cluster struct {
	Date      string
	Shifts    []schedule.AssignedShift
	Intervals []Interval // parallel to Shifts
	Bounds    Interval   // earliest start .. latest end across constituents
}

// ClusterShifts partitions shifts into maximal groups of transitively
// overlapping intervals. Two shifts that never touch still share a cluster
// when a third bridges them. Shifts already flagged penalty-processed and
// shifts with unparseable slots are skipped; clusters never span dates.
//
// Quadratic per date, which is fine for the single-digit-to-low-tens shift
// counts a venue schedules per day.
func ClusterShifts(shifts []schedule.AssignedShift) []Cluster {
	type resolved struct {
		shift    schedule.AssignedShift
		interval Interval
	}

	// Group by calendar date, preserving first-seen order.
	byDate := make(map[string][]resolved)
	var dates []string
	for _, s := range shifts {
		if s.IsPenaltyProcessed {
			continue
		}
		iv, err := ShiftInterval(s.Date, s.TimeSlot)
		if err != nil {
			continue
		}
		if _, ok := byDate[s.Date]; !ok {
			dates = append(dates, s.Date)
		}
		byDate[s.Date] = append(byDate[s.Date], resolved{shift: s, interval: iv})
	}

	var clusters []Cluster
	for _, date := range dates {
		day := byDate[date]
		processed := make([]bool, len(day))

		for i := range day {
			if processed[i] {
				continue
			}
			group := []int{i}
			processed[i] = true

			// Grow the group to a fixpoint: any unprocessed shift overlapping
			// any current member joins.
			for changed := true; changed; {
				changed = false
				for j := range day {
					if processed[j] {
						continue
					}
					for _, member := range group {
						if Overlaps(day[j].interval, day[member].interval) {
							group = append(group, j)
							processed[j] = true
							changed = true
							break
						}
					}
				}
			}

			cluster := Cluster{Date: date}
			for _, idx := range group {
				cluster.Shifts = append(cluster.Shifts, day[idx].shift)
				cluster.Intervals = append(cluster.Intervals, day[idx].interval)
			}
			cluster.Bounds = clusterBounds(cluster.Intervals)
			clusters = append(clusters, cluster)
		}
	}

	return clusters
}

// clusterBounds computes the earliest start and latest end over parsed
// instants. Comparing instants, not clock strings, keeps overnight ends
// ordered correctly ("02:00" next day sorts after "23:00").
func clusterBounds(intervals []Interval) Interval {
	bounds := intervals[0]
	for _, iv := range intervals[1:] {
		if iv.Start.Before(bounds.Start) {
			bounds.Start = iv.Start
		}
		if iv.End.After(bounds.End) {
			bounds.End = iv.End
		}
	}
	return bounds
}

// megaShift derives the synthetic union shift for a cluster.
func (c Cluster) megaShift() penalty.MegaShift {
	labels := make([]string, 0, len(c.Shifts))
	slot := schedule.TimeSlot{}
	for i, s := range c.Shifts {
		labels = append(labels, s.Label)
		if c.Intervals[i].Start.Equal(c.Bounds.Start) && slot.Start == "" {
			slot.Start = s.TimeSlot.Start
		}
		if c.Intervals[i].End.Equal(c.Bounds.End) {
			slot.End = s.TimeSlot.End
		}
	}

	return penalty.MegaShift{
		Date:           c.Date,
		Label:          strings.Join(labels, " + "),
		Start:          c.Bounds.Start,
		End:            c.Bounds.End,
		TimeSlot:       slot,
		OriginalShifts: c.Shifts,
	}
}
