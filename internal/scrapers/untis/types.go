package untis

// Weekdays are the labels of the school week in the order the plan lists them.
var Weekdays = [5]string{
	"Montag",
	"Dienstag",
	"Mittwoch",
	"Donnerstag",
	"Freitag",
}

// ScheduleRow is one substitution entry. All fields are the verbatim text of
// their table cell.
type ScheduleRow struct {
	Period            string
	Teacher           string
	Subject           string
	Kind              string
	Substitute        string
	SubstituteSubject string
	Room              string
}

// Fields returns the row's fields in column order.
func (r ScheduleRow) Fields() [7]string {
	return [7]string{
		r.Period,
		r.Teacher,
		r.Subject,
		r.Kind,
		r.Substitute,
		r.SubstituteSubject,
		r.Room,
	}
}

func rowFromFields(f [7]string) ScheduleRow {
	return ScheduleRow{
		Period:            f[0],
		Teacher:           f[1],
		Subject:           f[2],
		Kind:              f[3],
		Substitute:        f[4],
		SubstituteSubject: f[5],
		Room:              f[6],
	}
}

// Day holds the substitutions of one weekday. Rows may be empty, days without
// any substitutions at all are never constructed.
type Day struct {
	Date string
	Rows []ScheduleRow
}
