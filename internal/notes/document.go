// Package notes assembles, writes and publishes the build notes file.
package notes

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout renders the header timestamp: ISO-8601 with microseconds.
// The header appends a literal "Z"; the time is always converted to UTC first.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Title is the fixed text of the header line.
const Title = "AI Build Notes"

// Section is one provider's contribution: its heading and either the reply
// or a failure note.
type Section struct {
	Heading string
	Body    string
}

// Document is a complete notes file.
type Document struct {
	GeneratedAt time.Time
	Sections    []Section
}

// Header returns the first line of the document, without a newline.
func (d Document) Header() string {
	return fmt.Sprintf("# %s (%sZ)", Title, d.GeneratedAt.UTC().Format(TimestampLayout))
}

// String renders the document. Sections keep their order; each starts on its
// own line after a blank line. With no sections only the header line remains.
func (d Document) String() string {
	var b strings.Builder
	b.WriteString(d.Header())
	b.WriteByte('\n')
	for _, s := range d.Sections {
		fmt.Fprintf(&b, "\n## %s\n%s\n", s.Heading, strings.TrimRight(s.Body, "\n"))
	}
	return b.String()
}

// Render is shorthand for Document{at, sections}.String().
func Render(at time.Time, sections []Section) string {
	return Document{GeneratedAt: at, Sections: sections}.String()
}

// ParseHeader extracts the generation time from a rendered header line.
func ParseHeader(line string) (time.Time, error) {
	prefix := "# " + Title + " ("
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, "Z)") {
		return time.Time{}, fmt.Errorf("not a notes header: %q", line)
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(line, prefix), "Z)")
	t, err := time.ParseInLocation(TimestampLayout, stamp, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse header timestamp: %w", err)
	}
	return t, nil
}
