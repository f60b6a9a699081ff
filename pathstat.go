package linecat

import (
	"fmt"
	"regexp"
	"strconv"
)

// pathStatPattern matches one numstat line: additions, deletions, path.
// Binary files use "-" in place of the counts and deliberately fail this
// pattern; the state machine screens them out before parsing.
var pathStatPattern = regexp.MustCompile(`^(\d+)\s+(\d+)\s+(\S+)`)

// PathStat reports the line counts for one file changed in a commit.
type PathStat struct {
	Additions uint64
	Deletions uint64
	Path      string
}

// PathStatError reports a line that did not match the numstat grammar.
type PathStatError struct {
	Line string
}

func (e *PathStatError) Error() string {
	return fmt.Sprintf("malformed numstat line: %q", e.Line)
}

// ParsePathStat parses a numstat line. The returned error is a
// *PathStatError when the line does not match.
func ParsePathStat(line string) (PathStat, error) {
	groups := pathStatPattern.FindStringSubmatch(line)
	if groups == nil {
		return PathStat{}, &PathStatError{Line: line}
	}

	additions, err := strconv.ParseUint(groups[1], 10, 64)
	if err != nil {
		return PathStat{}, &PathStatError{Line: line}
	}

	deletions, err := strconv.ParseUint(groups[2], 10, 64)
	if err != nil {
		return PathStat{}, &PathStatError{Line: line}
	}

	return PathStat{Additions: additions, Deletions: deletions, Path: groups[3]}, nil
}
