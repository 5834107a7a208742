package fake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriverCountsFrames(t *testing.T) {
	d := &Driver{}
	assert.NoError(t, d.Write([]byte{255, 0, 0, 0, 0, 255}))
	assert.NoError(t, d.Write(nil))
	assert.Equal(t, 2, d.Count)
	assert.Empty(t, d.Last)
	assert.NoError(t, d.Close())
}
