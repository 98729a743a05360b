package script

import (
	"regexp"
	"strings"
)

const maxTextLength = 10000

// Role markers are bold-markup tokens at the start of a line, e.g.
// "**Narrator:** Once upon a time". The label is the shortest run between the
// delimiters; a trailing colon stays part of the label.
var (
	roleMarkerRe = regexp.MustCompile(`^\s*\*\*(.*?)\*\*`)
	unsafeRe     = regexp.MustCompile(`[<>"'\\]`)
)

type ScriptServiceAPI interface {
	Sanitize(text string) string
	Parse(content string) ([]Segment, []string)
}

type ScriptService struct{}

// Sanitize strips characters that could be replayed into logs or markup and
// caps the text at 10,000 characters. It is idempotent and never fails.
func (s *ScriptService) Sanitize(text string) string {
	sanitized := unsafeRe.ReplaceAllString(text, "")
	runes := []rune(sanitized)
	if len(runes) > maxTextLength {
		return string(runes[:maxTextLength])
	}
	return sanitized
}

type parseState int

const (
	awaitingRole parseState = iota
	inRole
)

// Parse walks the document line by line as a two-state machine. A role marker
// closes any open segment and opens a new one; non-blank lines accumulate into
// the open segment; blank lines are skipped without closing it. Text before
// the first marker is dropped. Returned roles keep first-seen order.
func (s *ScriptService) Parse(content string) ([]Segment, []string) {
	var (
		segments    []Segment
		roles       []string
		currentRole string
		currentText []string
	)
	seen := make(map[string]bool)
	state := awaitingRole

	closeSegment := func() {
		if state != inRole || len(currentText) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(currentText, " "))
		if text != "" {
			segments = append(segments, Segment{Role: currentRole, Text: text})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		loc := roleMarkerRe.FindStringSubmatchIndex(line)
		if loc != nil {
			closeSegment()

			label := strings.TrimSpace(line[loc[2]:loc[3]])
			if label == "" {
				// A marker with an empty label closes the open segment but
				// cannot accumulate text.
				state = awaitingRole
				currentText = nil
				continue
			}

			currentRole = label
			state = inRole
			if !seen[label] {
				seen[label] = true
				roles = append(roles, label)
			}

			currentText = nil
			if rest := strings.TrimSpace(line[loc[1]:]); rest != "" {
				currentText = append(currentText, rest)
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed != "" && state == inRole {
			currentText = append(currentText, trimmed)
		}
	}

	closeSegment()

	if segments == nil {
		segments = []Segment{}
	}
	if roles == nil {
		roles = []string{}
	}
	return segments, roles
}
