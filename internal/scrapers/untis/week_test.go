package untis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekFor(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{name: "monday", now: time.Date(2025, 1, 20, 8, 0, 0, 0, berlin), expected: 4},
		{name: "friday", now: time.Date(2025, 1, 24, 16, 0, 0, 0, berlin), expected: 4},
		{name: "saturday rolls over", now: time.Date(2025, 1, 25, 10, 0, 0, 0, berlin), expected: 5},
		{name: "sunday rolls over", now: time.Date(2025, 1, 26, 23, 59, 0, 0, berlin), expected: 5},
		{name: "saturday at the end of the iso year", now: time.Date(2025, 12, 27, 10, 0, 0, 0, berlin), expected: 1},
		{name: "iso week 1 belonging to the next year", now: time.Date(2024, 12, 30, 10, 0, 0, 0, berlin), expected: 1},
		{name: "saturday before week 53", now: time.Date(2026, 12, 26, 10, 0, 0, 0, berlin), expected: 53},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, WeekFor(test.now), test.name)
	}
}

func TestMondayOf(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		now      time.Time
		expected time.Time
	}{
		{now: time.Date(2025, 1, 20, 8, 0, 0, 0, berlin), expected: time.Date(2025, 1, 20, 0, 0, 0, 0, berlin)},
		{now: time.Date(2025, 1, 22, 13, 5, 0, 0, berlin), expected: time.Date(2025, 1, 20, 0, 0, 0, 0, berlin)},
		{now: time.Date(2025, 1, 25, 10, 0, 0, 0, berlin), expected: time.Date(2025, 1, 27, 0, 0, 0, 0, berlin)},
		{now: time.Date(2025, 12, 27, 10, 0, 0, 0, berlin), expected: time.Date(2025, 12, 29, 0, 0, 0, 0, berlin)},
	}

	for _, test := range testCases {
		monday := MondayOf(test.now)
		require.True(t, test.expected.Equal(monday), "%s: got %s", test.now, monday)
		_, week := monday.ISOWeek()
		require.Equal(t, WeekFor(test.now), week)
	}
}

func TestWeekURL(t *testing.T) {
	require.Equal(
		t,
		"https://www.wvsgym.de/vertretungsplans/04/w/w00022.htm",
		WeekURL("https://www.wvsgym.de/vertretungsplans", "w00022.htm", 4),
	)
	require.Equal(
		t,
		"http://127.0.0.1/plans/12/w/w00001.htm",
		WeekURL("http://127.0.0.1/plans/", "/w00001.htm", 12),
	)
}
