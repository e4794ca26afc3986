package rangefmt

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/crogenix/tsfmt/options"
)

func TestFormatOnlyReformatsSelectedStatement(t *testing.T) {
	src := "function f(){\n  x=1 ;y =2;\n}\n"
	rangeStart := strings.Index(src, "y")
	rangeEnd := strings.Index(src, "2;") + len("2;")

	opts, err := options.Normalize(options.Options{})
	require.NoErrorf(t, err, "Normalize")

	got, err := Format([]byte(src), rangeStart, rangeEnd, opts)
	require.NoErrorf(t, err, "Format")

	assert.True(t, strings.Contains(got, "x=1 ;"), "unformatted prefix must survive untouched")
	assert.True(t, strings.Contains(got, "y = 2;"), "selected statement must be reformatted")
}
