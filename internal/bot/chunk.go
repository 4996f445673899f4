package bot

import "strings"

// MessageLimit is the maximum length of a discord message.
const MessageLimit = 2000

const fence = "```"

// FencedChunks splits text at line boundaries into code blocks that each fit
// into a single message. Lines that are too long on their own are cut.
func FencedChunks(text string, limit int) []string {
	// "```\n" + body + "\n```"
	maxBody := limit - 2*len(fence) - 2
	if maxBody <= 0 {
		return nil
	}

	var chunks []string
	var body strings.Builder
	flush := func() {
		if body.Len() == 0 {
			return
		}
		chunks = append(chunks, fence+"\n"+body.String()+"\n"+fence)
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		for len(line) > maxBody {
			flush()
			cut := cutIndex(line, maxBody)
			body.WriteString(line[:cut])
			flush()
			line = line[cut:]
		}

		extra := len(line)
		if body.Len() > 0 {
			extra++
		}
		if body.Len()+extra > maxBody {
			flush()
		}
		if body.Len() > 0 {
			body.WriteByte('\n')
		}
		body.WriteString(line)
	}
	flush()

	return chunks
}

// cutIndex returns the largest index <= max that does not split a utf-8
// sequence. Invalid input without any sequence start is cut at max.
func cutIndex(s string, max int) int {
	cut := max
	for cut > 0 && cut < len(s) && s[cut]&0xC0 == 0x80 {
		cut--
	}
	if cut == 0 {
		return max
	}
	return cut
}
