package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys_pressRelease(t *testing.T) {
	var k Keys

	assert.False(t, k.Pressed(0x5))

	k.Press(0x5)
	k.Press(0xF)
	assert.True(t, k.Pressed(0x5))
	assert.True(t, k.Pressed(0xF))
	assert.False(t, k.Pressed(0x0))

	k.Release(0x5)
	assert.False(t, k.Pressed(0x5))
	assert.True(t, k.Pressed(0xF))
}

func TestKeys_releaseIsIdempotent(t *testing.T) {
	var k Keys
	k.Release(0x3)
	assert.False(t, k.Pressed(0x3))

	k.Press(0x3)
	k.Release(0x3)
	k.Release(0x3)
	assert.False(t, k.Pressed(0x3))
}
