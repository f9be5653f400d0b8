package llm

import "strings"

// leadIns are conversational openers models put before a checklist.
// Each is matched case-insensitively against the start of a line.
var leadIns = []string{
	"here is",
	"here's",
	"here are",
	"i'll ",
	"i will ",
	"i've ",
	"let me ",
	"sure,",
	"sure!",
	"okay,",
	"certainly",
	"absolutely",
	"of course",
	"great question",
	"based on",
	"looking at",
	"after reviewing",
}

// signOffs are closing remarks appended after the checklist.
var signOffs = []string{
	"let me know",
	"feel free to",
	"hope this helps",
	"is there anything",
	"would you like",
	"shall i ",
	"do you want",
	"i can also",
	"if you need",
	"if you'd like",
}

// maxLeadInLines bounds how many opening lines Sanitize may drop.
const maxLeadInLines = 3

// Sanitize strips conversational lead-ins, sign-offs and a wrapping code
// fence from a reply, leaving the checklist itself. A reply with nothing
// left after stripping is returned trimmed but otherwise unchanged.
func Sanitize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	lines = dropLeadIns(lines)
	lines = dropSignOffs(lines)
	lines = unfence(lines)

	cleaned := strings.TrimSpace(strings.Join(lines, "\n"))
	if cleaned == "" {
		return text
	}
	return cleaned
}

func dropLeadIns(lines []string) []string {
	dropped := 0
	for dropped < len(lines) && dropped < maxLeadInLines {
		line := strings.TrimSpace(lines[dropped])
		if line != "" && !hasAnyPrefix(line, leadIns) {
			break
		}
		dropped++
	}
	return lines[dropped:]
}

func dropSignOffs(lines []string) []string {
	end := len(lines)
	for end > 0 {
		line := strings.TrimSpace(lines[end-1])
		if line != "" && !hasAnyPrefix(line, signOffs) {
			break
		}
		end--
	}
	return lines[:end]
}

// unfence removes a ``` fence that wraps the whole reply.
func unfence(lines []string) []string {
	first, last := -1, -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || first == last {
		return lines
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[first]), "```") || strings.TrimSpace(lines[last]) != "```" {
		return lines
	}
	return lines[first+1 : last]
}

func hasAnyPrefix(line string, prefixes []string) bool {
	lower := strings.ToLower(line)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
