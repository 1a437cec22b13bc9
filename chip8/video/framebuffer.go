package video

// Display dimensions for the two resolution modes.
const (
	LoresWidth  = 64
	LoresHeight = 32
	HiresWidth  = 128
	HiresHeight = 64
)

// FrameBuffer is a 1-bit pixel grid. Sprites are XOR composited onto it and
// the whole surface can be scrolled, cleared or switched between the low and
// high resolution modes.
type FrameBuffer struct {
	width  int
	height int
	hires  bool
	pixels []bool
}

// NewFrameBuffer creates a cleared low resolution frame buffer.
func NewFrameBuffer() *FrameBuffer {
	fb := &FrameBuffer{}
	fb.SetHires(false)
	return fb
}

// SetHires switches the resolution mode, reallocating and clearing the grid.
func (fb *FrameBuffer) SetHires(hires bool) {
	fb.hires = hires
	if hires {
		fb.width, fb.height = HiresWidth, HiresHeight
	} else {
		fb.width, fb.height = LoresWidth, LoresHeight
	}
	fb.pixels = make([]bool, fb.width*fb.height)
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }
func (fb *FrameBuffer) Hires() bool { return fb.hires }

// GetPixel returns whether the pixel at (x, y) is lit.
func (fb *FrameBuffer) GetPixel(x, y int) bool {
	return fb.pixels[y*fb.width+x]
}

// FlipPixel toggles the pixel at (x, y) and reports whether it was erased
// (lit before, off after), which is what the collision flag tracks.
func (fb *FrameBuffer) FlipPixel(x, y int) (erased bool) {
	i := y*fb.width + x
	erased = fb.pixels[i]
	fb.pixels[i] = !fb.pixels[i]
	return erased
}

// Clear switches every pixel off.
func (fb *FrameBuffer) Clear() {
	for i := range fb.pixels {
		fb.pixels[i] = false
	}
}

// ScrollDown moves the whole grid down by n rows, discarding the bottom
// rows and filling the top with blank ones.
func (fb *FrameBuffer) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	if n > fb.height {
		n = fb.height
	}
	copy(fb.pixels[n*fb.width:], fb.pixels[:(fb.height-n)*fb.width])
	for i := 0; i < n*fb.width; i++ {
		fb.pixels[i] = false
	}
}

// ScrollRight moves the whole grid right by n columns.
func (fb *FrameBuffer) ScrollRight(n int) {
	if n <= 0 {
		return
	}
	if n > fb.width {
		n = fb.width
	}
	for y := 0; y < fb.height; y++ {
		row := fb.pixels[y*fb.width : (y+1)*fb.width]
		copy(row[n:], row[:fb.width-n])
		for x := 0; x < n; x++ {
			row[x] = false
		}
	}
}

// ScrollLeft moves the whole grid left by n columns.
func (fb *FrameBuffer) ScrollLeft(n int) {
	if n <= 0 {
		return
	}
	if n > fb.width {
		n = fb.width
	}
	for y := 0; y < fb.height; y++ {
		row := fb.pixels[y*fb.width : (y+1)*fb.width]
		copy(row[:fb.width-n], row[n:])
		for x := fb.width - n; x < fb.width; x++ {
			row[x] = false
		}
	}
}

// ToSlice returns a copy of the pixel grid in row-major order.
func (fb *FrameBuffer) ToSlice() []bool {
	out := make([]bool, len(fb.pixels))
	copy(out, fb.pixels)
	return out
}
