package bot

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

const commandPrefix = "!plan"

type CommandKind int

const (
	// CommandNone is any message that is not addressed to the bot.
	CommandNone CommandKind = iota
	CommandImage
	CommandText
	CommandHTML
	CommandUnknown
)

func (k CommandKind) String() string {
	switch k {
	case CommandNone:
		return "none"
	case CommandImage:
		return "image"
	case CommandText:
		return "text"
	case CommandHTML:
		return "html"
	case CommandUnknown:
		return "unknown"
	}
	return "invalid"
}

type Command struct {
	Kind CommandKind
	// Option is the raw second token, if any.
	Option string
	// Suggestion is the closest known option for CommandUnknown, may be empty.
	Suggestion string
}

var commandOptions = map[string]CommandKind{
	"text": CommandText,
	"html": CommandHTML,
}

// maxSuggestionDistance is the largest edit distance an option may have from
// what the user typed to still be suggested.
const maxSuggestionDistance = 2

// ParseCommand tokenizes a chat message. Only messages whose first token is
// exactly `!plan` are commands, the second token (case-insensitive) selects
// the output, further tokens are ignored.
func ParseCommand(content string) Command {
	fields := strings.Fields(content)
	if len(fields) == 0 || fields[0] != commandPrefix {
		return Command{Kind: CommandNone}
	}
	if len(fields) == 1 {
		return Command{Kind: CommandImage}
	}

	option := fields[1]
	kind, ok := commandOptions[strings.ToLower(option)]
	if ok {
		return Command{Kind: kind, Option: option}
	}
	return Command{
		Kind:       CommandUnknown,
		Option:     option,
		Suggestion: suggestOption(strings.ToLower(option)),
	}
}

func knownOptions() []string {
	names := make([]string, 0, len(commandOptions))
	for name := range commandOptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func suggestOption(option string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, name := range knownOptions() {
		distance := matchr.Levenshtein(option, name)
		if distance < bestDistance {
			best = name
			bestDistance = distance
		}
	}
	return best
}
