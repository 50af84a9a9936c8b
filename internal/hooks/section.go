package hooks

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Section markers. They are matched as whole lines; surrounding whitespace
// and a trailing carriage return are ignored.
const (
	BeginMarker = "# BEGIN git-pair"
	EndMarker   = "# END git-pair"
)

// Shebang is the interpreter line written when the section creates the file.
const Shebang = "#!/bin/sh"

// ErrMalformedHook is returned when a begin marker has no end marker after it.
var ErrMalformedHook = errors.New("malformed hook: begin marker without matching end marker")

// MarkerState classifies the markers found in hook content.
type MarkerState string

const (
	MarkerNone   MarkerState = "none"
	MarkerValid  MarkerState = "valid"
	MarkerBroken MarkerState = "broken"
)

// Merge installs section into existing hook content.
//
// If existing already holds a section, it is replaced in place. Otherwise the
// section is appended after a blank line, or placed under a shebang when
// existing is blank. section must carry its own marker lines.
func Merge(existing, section string) (string, error) {
	start, end, found, err := locateSection(existing)
	if err != nil {
		return "", err
	}
	if found {
		return splice(existing[:start], section, existing[end:]), nil
	}

	if strings.TrimSpace(existing) == "" {
		return Shebang + "\n" + section, nil
	}
	return strings.TrimRightFunc(existing, unicode.IsSpace) + "\n\n" + section, nil
}

// Strip removes the section from content. ok is false when content has no
// section, in which case the caller should leave the file alone.
func Strip(content string) (stripped string, ok bool, err error) {
	start, end, found, err := locateSection(content)
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}
	return splice(content[:start], "", content[end:]), true, nil
}

// IsEffectivelyEmpty reports whether every line is blank or a comment. A bare
// shebang counts as empty.
func IsEffectivelyEmpty(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return false
	}
	return true
}

// HasSection reports whether content holds a well-formed section.
func HasSection(content string) (bool, error) {
	_, _, found, err := locateSection(content)
	return found, err
}

// DetectMarkerState classifies content without failing. A lone end marker is
// reported as broken even though Merge and Strip tolerate it.
func DetectMarkerState(content string) MarkerState {
	found, err := HasSection(content)
	switch {
	case err != nil:
		return MarkerBroken
	case found:
		return MarkerValid
	}
	if start, _ := findMarkerLine(content, EndMarker, 0); start >= 0 {
		return MarkerBroken
	}
	return MarkerNone
}

// splice joins before, middle and after. before loses trailing whitespace,
// after loses leading whitespace, and a single newline separates non-empty
// neighbours.
func splice(before, middle, after string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{
		strings.TrimRightFunc(before, unicode.IsSpace),
		middle,
		strings.TrimLeftFunc(after, unicode.IsSpace),
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}

// locateSection returns the offset of the begin-marker line and the offset
// just past the end-marker line content (its newline excluded).
func locateSection(content string) (start, end int, found bool, err error) {
	beginStart, beginEnd := findMarkerLine(content, BeginMarker, 0)
	if beginStart < 0 {
		return 0, 0, false, nil
	}
	_, endEnd := findMarkerLine(content, EndMarker, beginEnd+1)
	if endEnd < 0 {
		line := strings.Count(content[:beginStart], "\n") + 1
		return 0, 0, false, fmt.Errorf("%w (begin marker on line %d)", ErrMalformedHook, line)
	}
	return beginStart, endEnd, true, nil
}

// findMarkerLine scans lines starting at offset from, which must be a line
// start, and returns the bounds of the first line equal to marker.
func findMarkerLine(content, marker string, from int) (lineStart, lineEnd int) {
	for pos := from; pos <= len(content); {
		lineEnd := len(content)
		nl := strings.IndexByte(content[pos:], '\n')
		if nl >= 0 {
			lineEnd = pos + nl
		}
		if strings.TrimSpace(content[pos:lineEnd]) == marker {
			return pos, lineEnd
		}
		if nl < 0 {
			break
		}
		pos = lineEnd + 1
	}
	return -1, -1
}
