package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFrameBuffer_startsLores(t *testing.T) {
	fb := NewFrameBuffer()

	assert.Equal(t, LoresWidth, fb.Width())
	assert.Equal(t, LoresHeight, fb.Height())
	assert.False(t, fb.Hires())

	for _, p := range fb.ToSlice() {
		assert.False(t, p)
	}
}

func TestSetHires_reallocatesAndClears(t *testing.T) {
	fb := NewFrameBuffer()
	fb.FlipPixel(10, 10)

	fb.SetHires(true)
	assert.Equal(t, HiresWidth, fb.Width())
	assert.Equal(t, HiresHeight, fb.Height())
	assert.False(t, fb.GetPixel(10, 10), "stale pixels must not survive a mode switch")

	fb.FlipPixel(100, 50)
	fb.SetHires(false)
	assert.Equal(t, LoresWidth, fb.Width())
	for _, p := range fb.ToSlice() {
		assert.False(t, p)
	}
}

func TestFlipPixel(t *testing.T) {
	fb := NewFrameBuffer()

	erased := fb.FlipPixel(3, 4)
	assert.False(t, erased)
	assert.True(t, fb.GetPixel(3, 4))

	erased = fb.FlipPixel(3, 4)
	assert.True(t, erased)
	assert.False(t, fb.GetPixel(3, 4))
}

func TestScrollDown(t *testing.T) {
	fb := NewFrameBuffer()
	fb.FlipPixel(5, 0)
	fb.FlipPixel(7, 30)

	fb.ScrollDown(3)

	assert.True(t, fb.GetPixel(5, 3))
	assert.False(t, fb.GetPixel(5, 0), "new top rows are blank")
	assert.False(t, fb.GetPixel(7, 30), "bottom rows are discarded")
}

func TestScrollRight(t *testing.T) {
	fb := NewFrameBuffer()
	fb.FlipPixel(0, 2)
	fb.FlipPixel(62, 5)

	fb.ScrollRight(4)

	assert.True(t, fb.GetPixel(4, 2))
	assert.False(t, fb.GetPixel(0, 2))
	assert.False(t, fb.GetPixel(62, 5), "columns scrolled off the edge vanish")
}

func TestScrollLeft(t *testing.T) {
	fb := NewFrameBuffer()
	fb.FlipPixel(10, 7)
	fb.FlipPixel(1, 9)

	fb.ScrollLeft(4)

	assert.True(t, fb.GetPixel(6, 7))
	assert.False(t, fb.GetPixel(10, 7))
	assert.False(t, fb.GetPixel(1, 9))

	// Vacated right columns are blank.
	for y := 0; y < fb.Height(); y++ {
		for x := fb.Width() - 4; x < fb.Width(); x++ {
			assert.False(t, fb.GetPixel(x, y))
		}
	}
}

func TestToSlice_isACopy(t *testing.T) {
	fb := NewFrameBuffer()
	snap := fb.ToSlice()
	fb.FlipPixel(0, 0)
	assert.False(t, snap[0])
}
