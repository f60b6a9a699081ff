package linecat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePathStat(t *testing.T) {
	for _, tc := range []struct {
		line string
		want PathStat
	}{
		{"6\t3\tfoo/bar/baz.rs", PathStat{Additions: 6, Deletions: 3, Path: "foo/bar/baz.rs"}},
		{"6       3       foo/bar/baz.rs", PathStat{Additions: 6, Deletions: 3, Path: "foo/bar/baz.rs"}},
		{"0\t0\tREADME.md", PathStat{Additions: 0, Deletions: 0, Path: "README.md"}},
		{"1204\t7\tsrc/main.rs", PathStat{Additions: 1204, Deletions: 7, Path: "src/main.rs"}},
	} {
		stat, err := ParsePathStat(tc.line)

		assert.NoError(t, err, "line %q", tc.line)
		assert.Equal(t, tc.want, stat)
	}
}

func TestParsePathStatRejectsBinaryMarkers(t *testing.T) {
	// Binary numstat lines carry no usable counts and must fail the parse
	// rather than coerce to zero.
	_, err := ParsePathStat("-\t-\tsome/binary.png")

	var statErr *PathStatError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &statErr))
	assert.Equal(t, "-\t-\tsome/binary.png", statErr.Line)
}

func TestParsePathStatRejectsMalformedLines(t *testing.T) {
	for _, line := range []string{
		"",
		"foo/bar/baz.rs",
		"6\tfoo/bar/baz.rs",
		"6\t-\tfoo/bar/baz.rs",
		`"sha","author","ts"`,
	} {
		_, err := ParsePathStat(line)

		assert.Error(t, err, "line %q should not parse", line)
	}
}
