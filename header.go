package linecat

import (
	"fmt"
	"regexp"
)

// headerPattern matches the commit header emitted by
// `git log --pretty=format:'"%H","%ae","%ai"'`. The sha and author are runs
// of non-whitespace; the timestamp keeps its embedded spaces.
var headerPattern = regexp.MustCompile(`^"(\S+)","(\S+)","(.+)"$`)

// Header identifies one commit. All fields are carried as opaque strings,
// exactly as they appear on the header line.
type Header struct {
	Sha       string
	Author    string
	Timestamp string
}

// HeaderError reports a line that did not match the commit header grammar.
type HeaderError struct {
	Line string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("malformed commit header: %q", e.Line)
}

// ParseHeader parses a commit header line. The returned error is a
// *HeaderError when the line does not match, so callers can fall back to
// another grammar.
func ParseHeader(line string) (Header, error) {
	groups := headerPattern.FindStringSubmatch(line)
	if groups == nil {
		return Header{}, &HeaderError{Line: line}
	}

	return Header{Sha: groups[1], Author: groups[2], Timestamp: groups[3]}, nil
}
