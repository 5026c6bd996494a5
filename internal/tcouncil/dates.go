package tcouncil

import "time"

// dateLayout is the directory and filename date format.
const dateLayout = "20060102"

// NextMonday returns the Monday of the upcoming week, or ref itself when ref
// falls on a Monday.
func NextMonday(ref time.Time) time.Time {
	ref = truncateDay(ref)
	offset := (int(time.Monday) - int(ref.Weekday()) + 7) % 7
	return ref.AddDate(0, 0, offset)
}

// PreviousMonday returns the Monday one week before.
func PreviousMonday(monday time.Time) time.Time {
	return monday.AddDate(0, 0, -7)
}

// MondaysOfYear returns every Monday in the given year in order.
func MondaysOfYear(year int) []time.Time {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	var mondays []time.Time
	for d.Year() == year {
		mondays = append(mondays, d)
		d = d.AddDate(0, 0, 7)
	}
	return mondays
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
