package render

import (
	"substplan/internal/scrapers/untis"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Pretty renders days as a boxed table for terminals, it carries the same
// content as Text.
func Pretty(days []untis.Day) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	headerRow := table.Row{"Wochentag"}
	for _, c := range columns {
		headerRow = append(headerRow, c.name)
	}
	t.AppendHeader(headerRow)

	rows := 0
	for _, day := range days {
		if len(day.Rows) == 0 {
			continue
		}
		if rows > 0 {
			t.AppendSeparator()
		}
		for i, row := range day.Rows {
			label := ""
			if i == 0 {
				label = day.Date
			}
			out := table.Row{label}
			for _, field := range row.Fields() {
				out = append(out, field)
			}
			t.AppendRow(out)
			rows++
		}
	}
	if rows == 0 {
		return ""
	}

	return t.Render()
}
