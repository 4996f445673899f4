package render

import (
	"substplan/internal/scrapers/untis"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPretty(t *testing.T) {
	require.Equal(t, "", Pretty([]untis.Day{{Date: "Montag"}}))

	out := Pretty([]untis.Day{
		{Date: "Montag", Rows: []untis.ScheduleRow{row("1", "Hm", "M", "Vertretung", "Kr", "M", "201")}},
		{Date: "Mittwoch", Rows: []untis.ScheduleRow{row("5", "Wb", "Ch", "Entfall")}},
	})
	require.Contains(t, out, "Montag")
	require.Contains(t, out, "Mittwoch")
	require.Contains(t, out, "Vertretung")
	require.Contains(t, out, "╭")
}
