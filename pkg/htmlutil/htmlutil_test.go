package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<div>Mon<b>tag</b> <i>22.1.</i></div>`))
	require.NoError(t, err)
	require.Equal(t, "Montag 22.1.", GetText(doc))
	require.Equal(t, "", GetText(nil))
}

func TestCleanText(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "  Keine Vertretungen \n", expected: "Keine Vertretungen"},
		{in: "\tDienstag\r\n 23.1.", expected: "Dienstag 23.1."},
		{in: "\u00a0", expected: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, CleanText(test.in), test.in)
	}
}
