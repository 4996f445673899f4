package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		content  string
		expected Command
	}{
		{content: "!plan", expected: Command{Kind: CommandImage}},
		{content: "  !plan \n", expected: Command{Kind: CommandImage}},
		{content: "!plan text", expected: Command{Kind: CommandText, Option: "text"}},
		{content: "!plan TEXT bitte", expected: Command{Kind: CommandText, Option: "TEXT"}},
		{content: "!plan html", expected: Command{Kind: CommandHTML, Option: "html"}},
		{content: "!plan txet", expected: Command{Kind: CommandUnknown, Option: "txet", Suggestion: "text"}},
		{content: "!plan htm", expected: Command{Kind: CommandUnknown, Option: "htm", Suggestion: "html"}},
		{content: "!plan morgen", expected: Command{Kind: CommandUnknown, Option: "morgen"}},
		{content: "!planx", expected: Command{Kind: CommandNone}},
		{content: "schick mal !plan text", expected: Command{Kind: CommandNone}},
		{content: "", expected: Command{Kind: CommandNone}},
		{content: "!Plan", expected: Command{Kind: CommandNone}},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ParseCommand(test.content), test.content)
	}
}

func TestTextCommandIsNotImageCommand(t *testing.T) {
	require.NotEqual(t, CommandImage, ParseCommand("!plan text").Kind)
}
