package render

import (
	"strings"
	"substplan/internal/scrapers/untis"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/text"
)

type column struct {
	name  string
	width int
}

// columns are the data columns in the order of untis.ScheduleRow.Fields.
var columns = [7]column{
	{name: "Stunde", width: 7},
	{name: "Lehrer", width: 7},
	{name: "Fach", width: 5},
	{name: "Art", width: 18},
	{name: "Vertreter", width: 10},
	{name: "Fach", width: 5},
	{name: "Raum", width: 6},
}

// WeekdayWidth is the width of the leading "Wochentag" column.
const WeekdayWidth = 11

const columnSeparator = "|"

// SeparatorWidth is the length of the underscore line below the header: every
// column width, one separator before each data column and the closing one.
func SeparatorWidth() int {
	width := WeekdayWidth
	for _, c := range columns {
		width += c.width
	}
	return width + len(columns) + 1
}

type options struct {
	truncate bool
}

type Option func(o *options)

// WithTruncation cuts fields longer than their column. By default such fields
// are written in full and push the rest of their line to the right.
func WithTruncation() Option {
	return func(o *options) {
		o.truncate = true
	}
}

// Text renders days as a fixed width table: a header, a line of underscores
// and one line per row. The weekday is only written on the first row of a day.
// Days without rows are left out and if no day has any row the result is empty.
func Text(days []untis.Day, opts ...Option) string {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	var out strings.Builder

	rows := 0
	for _, day := range days {
		for i, row := range day.Rows {
			if i == 0 {
				writeCell(&out, day.Date, WeekdayWidth, cfg)
			} else {
				out.WriteString(strings.Repeat(" ", WeekdayWidth))
			}
			out.WriteString(columnSeparator)
			for col, field := range row.Fields() {
				writeCell(&out, field, columns[col].width, cfg)
				out.WriteString(columnSeparator)
			}
			out.WriteString("\n")
			rows++
		}
	}
	if rows == 0 {
		return ""
	}

	return stripBlankLines(header() + out.String())
}

func header() string {
	var out strings.Builder
	out.WriteString(strings.Repeat(" ", WeekdayWidth))
	for _, c := range columns {
		out.WriteString(columnSeparator)
		out.WriteString(text.Pad(c.name, c.width, ' '))
	}
	out.WriteString(columnSeparator)
	out.WriteString("\n")
	out.WriteString(strings.Repeat("_", SeparatorWidth()))
	out.WriteString("\n")
	return out.String()
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// cleanCell keeps a cell on one line and drops control characters, padding
// counts display width and those have none.
func cleanCell(field string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, lineBreaks.Replace(field))
}

func writeCell(out *strings.Builder, field string, width int, cfg options) {
	field = cleanCell(field)
	if cfg.truncate {
		field = text.Trim(field, width)
	}
	out.WriteString(text.Pad(field, width, ' '))
}

func stripBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
