package untis

import (
	"fmt"
	"strings"
	"time"
)

// WeekFor returns the ISO week whose plan should be shown at t. On weekends
// that is the upcoming school week, so the week of the next Monday is used,
// which also takes care of the roll-over into the next ISO year.
func WeekFor(t time.Time) int {
	_, week := schoolDay(t).ISOWeek()
	return week
}

// MondayOf returns midnight of the Monday of the week WeekFor(t) refers to.
func MondayOf(t time.Time) time.Time {
	t = schoolDay(t)
	offset := (int(t.Weekday()) + 6) % 7
	year, month, day := t.AddDate(0, 0, -offset).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func schoolDay(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

// WeekURL builds `<base>/<week:02d>/w/<classFile>`.
func WeekURL(base, classFile string, week int) string {
	return fmt.Sprintf(
		"%s/%02d/w/%s",
		strings.TrimSuffix(base, "/"),
		week,
		strings.TrimPrefix(classFile, "/"),
	)
}
