package bench

import (
	"testing"

	"github.com/hephbuild/hsize/lib/hiter"
	"github.com/stretchr/testify/assert"
)

func TestFormatHint(t *testing.T) {
	assert.Equal(t, "5", FormatHint(hiter.Exact(5)))
	assert.Equal(t, "3..", FormatHint(hiter.AtLeast(3)))
	assert.Equal(t, "0..10", FormatHint(hiter.Hint{Upper: 10, Bounded: true}))
}
