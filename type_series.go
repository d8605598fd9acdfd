package marketrisk

import (
	"iter"
	"slices"
	"sort"
)

// Series stores a chronological series of float64 values, each associated
// with a specific date. It ensures that dates are unique and the series is
// always sorted.
//
// A Series is the unit of exchange between the pipeline stages: prices in,
// returns out, conditional volatilities out. Stages never mutate their
// input Series.
type Series struct {
	days []Date
	vals []float64
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.days) }

// chronological is a private implementation to make this series chronologically sorted.
type chronological struct{ *Series }

func (c chronological) Len() int           { return len(c.days) }
func (c chronological) Less(i, j int) bool { return c.days[i].time().Before(c.days[j].time()) }

func (c chronological) Swap(i, j int) {
	c.days[i], c.days[j] = c.days[j], c.days[i]
	c.vals[i], c.vals[j] = c.vals[j], c.vals[i]
}

// sort sorts the series in chronological order.
func (s *Series) sort() { sort.Sort(chronological{s}) }

// Append adds a point to the series.
//
// Existing value at that date are overwritten.
func (s *Series) Append(on Date, v float64) *Series {
	if i := slices.Index(s.days, on); i >= 0 {
		// Found a point at that exact same day.
		// We choose to replace, because it gives higher priority to the last data.
		s.vals[i] = v
		return s
	}
	s.days, s.vals = append(s.days, on), append(s.vals, v)
	s.sort()
	return s
}

// Values returns an iterator over all date/value pairs in the series, in chronological order.
func (s *Series) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range s.days {
			if !yield(on, s.vals[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true, or zero and false.
func (s *Series) Get(day Date) (float64, bool) {
	if i := slices.Index(s.days, day); i >= 0 {
		return s.vals[i], true
	}
	return 0, false
}

// At returns the i-th point in chronological order. It panics if i is out of
// range, like a slice index.
func (s *Series) At(i int) (Date, float64) { return s.days[i], s.vals[i] }

// First returns the earliest date and value in the series.
// If the series is empty, it returns zero values.
func (s *Series) First() (day Date, value float64) {
	if len(s.days) == 0 {
		return Date{}, 0
	}
	return s.days[0], s.vals[0]
}

// Latest returns the latest date and value in the series.
// If the series is empty, it returns zero values.
func (s *Series) Latest() (day Date, value float64) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, 0
	}
	return s.days[last], s.vals[last]
}

// ValueAsOf returns the value on a given day, or the most recent value before it.
// It returns the value and true if found, otherwise zero and false.
func (s *Series) ValueAsOf(day Date) (float64, bool) {
	// The days slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(s.days, day, func(d, t Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})

	if found {
		return s.vals[i], true
	}

	// Not found. `i` is the index where `day` would be inserted.
	// The value we want is at `i-1`, the last entry before the target date.
	if i == 0 {
		return 0, false // No date on or before the given day.
	}
	return s.vals[i-1], true
}

// Slice returns a new series restricted to points with from ≤ day ≤ to.
// The receiver is left untouched.
func (s *Series) Slice(from, to Date) *Series {
	out := &Series{}
	for i, on := range s.days {
		if on.Before(from) || on.After(to) {
			continue
		}
		out.days = append(out.days, on)
		out.vals = append(out.vals, s.vals[i])
	}
	return out
}

// Floats returns a copy of the series values in chronological order.
func (s *Series) Floats() []float64 { return slices.Clone(s.vals) }

// Dates returns a copy of the series dates in chronological order.
func (s *Series) Dates() []Date { return slices.Clone(s.days) }

// Align inner-joins two series on their dates. It returns the common dates in
// chronological order and the two value slices over exactly those dates.
// Dates present in only one series are dropped.
func Align(a, b *Series) (days []Date, x, y []float64) {
	i, j := 0, 0
	for i < len(a.days) && j < len(b.days) {
		switch {
		case a.days[i].Before(b.days[j]):
			i++
		case a.days[i].After(b.days[j]):
			j++
		default:
			days = append(days, a.days[i])
			x = append(x, a.vals[i])
			y = append(y, b.vals[j])
			i++
			j++
		}
	}
	return days, x, y
}
