package render

import (
	"fmt"
	"strings"
	"substplan/internal/scrapers/untis"
	"time"

	ics "github.com/arran4/golang-ical"
)

const calendarProductId = "-//substplan//Vertretungsplan//DE"

// Calendar renders days as an iCalendar feed with one all-day event per row.
// monday is the date of the plan's Monday, stamp is written as DTSTAMP of
// every event.
func Calendar(days []untis.Day, monday time.Time, stamp time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductId)

	for _, day := range days {
		offset, ok := weekdayOffset(day.Date)
		if !ok {
			return "", fmt.Errorf("calendar: unknown weekday %q", day.Date)
		}
		date := monday.AddDate(0, 0, offset)

		for i, row := range day.Rows {
			event := cal.AddEvent(fmt.Sprintf("%s-%d@substplan", date.Format("20060102"), i))
			event.SetDtStampTime(stamp)
			event.SetAllDayStartAt(date)
			event.SetAllDayEndAt(date.AddDate(0, 0, 1))
			event.SetSummary(eventSummary(row))
			event.SetDescription(eventDescription(row))
			if room := strings.TrimSpace(row.Room); room != "" {
				event.SetLocation(room)
			}
		}
	}

	return cal.Serialize(), nil
}

func weekdayOffset(label string) (int, bool) {
	for i, weekday := range untis.Weekdays {
		if weekday == label {
			return i, true
		}
	}
	return 0, false
}

func eventSummary(row untis.ScheduleRow) string {
	period := strings.TrimSpace(row.Period)
	subject := strings.TrimSpace(row.Subject)
	kind := strings.TrimSpace(row.Kind)
	return strings.TrimSpace(fmt.Sprintf("%s. Stunde %s: %s", period, subject, kind))
}

func eventDescription(row untis.ScheduleRow) string {
	var parts []string
	for i, field := range row.Fields() {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", columns[i].name, field))
	}
	return strings.Join(parts, "\n")
}
