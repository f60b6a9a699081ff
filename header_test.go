package linecat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeader(t *testing.T) {
	header, err := ParseHeader(`"61708727af02089cef4a72c6a532ddf332111b14","luna@moon.com","2019-08-08 18:03:38 -0400"`)

	assert.NoError(t, err)
	assert.Equal(t, Header{
		Sha:       "61708727af02089cef4a72c6a532ddf332111b14",
		Author:    "luna@moon.com",
		Timestamp: "2019-08-08 18:03:38 -0400",
	}, header)
}

func TestParseHeaderKeepsFieldsVerbatim(t *testing.T) {
	// No trimming beyond the capture boundaries of the grammar.
	header, err := ParseHeader(`"abc123","Luna<luna@moon.com>","  padded  "`)

	assert.NoError(t, err)
	assert.Equal(t, "abc123", header.Sha)
	assert.Equal(t, "Luna<luna@moon.com>", header.Author)
	assert.Equal(t, "  padded  ", header.Timestamp)
}

func TestParseHeaderRejectsMalformedLines(t *testing.T) {
	for _, line := range []string{
		"",
		"6\t3\tfoo/bar/baz.rs",
		`"only one field"`,
		`"sha","author"`,
		`"sha with space","author","ts"`,
		`"sha","author","ts" trailing`,
	} {
		_, err := ParseHeader(line)

		assert.Error(t, err, "line %q should not parse", line)

		var headerErr *HeaderError
		assert.True(t, errors.As(err, &headerErr))
		assert.Equal(t, line, headerErr.Line)
	}
}
