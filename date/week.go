package date

import "fmt"

// Week is an ISO 8601 week bucket, identified by the Monday that starts it.
type Week struct {
	monday Date
}

// WeekOf returns the ISO week d belongs to.
func WeekOf(d Date) Week {
	// ISO weeks start on Monday, time.Weekday starts on Sunday.
	offset := (int(d.Weekday()) + 6) % 7
	return Week{monday: d.Add(-offset)}
}

// ISO returns the ISO year and week number of w.
func (w Week) ISO() (year, week int) { return w.monday.ISOWeek() }

// Next returns the week following w.
func (w Week) Next() Week { return Week{monday: w.monday.Add(7)} }

// Prev returns the week preceding w.
func (w Week) Prev() Week { return Week{monday: w.monday.Add(-7)} }

// Sub returns the number of weeks between x and w (w - x).
func (w Week) Sub(x Week) int { return w.monday.Sub(x.monday) / 7 }

// Range returns the days covered by w, Monday to Sunday.
func (w Week) Range() Range { return Range{From: w.monday, To: w.monday.Add(6)} }

// String formats the week as "2006-W01".
func (w Week) String() string {
	year, week := w.ISO()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// SameWeek reports whether a and b fall in the same ISO week.
func SameWeek(a, b Date) bool { return WeekOf(a) == WeekOf(b) }

// SameOrAdjacentWeek reports whether a and b fall in the same ISO week or in
// two consecutive ISO weeks, in either order. Week 52 or 53 of a year is
// adjacent to week 1 of the next one.
func SameOrAdjacentWeek(a, b Date) bool {
	switch WeekOf(a).Sub(WeekOf(b)) {
	case -1, 0, 1:
		return true
	default:
		return false
	}
}

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
