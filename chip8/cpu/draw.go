package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
)

// draw implements DXYN. The sprite origin always wraps onto the display;
// pixels past the edges wrap or clip per the screen-wrap quirk. N=0 draws a
// 16x16 super sprite read as two bytes per row. VF reports whether any lit
// pixel was erased.
func (c *CPU) draw(x, y int, n uint8) error {
	width, height := c.fb.Width(), c.fb.Height()
	col := int(c.regs[x]) % width
	row := int(c.regs[y]) % height

	rows, cols := int(n), 8
	if n == 0 {
		rows, cols = 16, 16
	}

	c.regs[0xF] = 0

	for r := 0; r < rows; r++ {
		py := row + r
		if py >= height {
			if !c.quirks.ScreenWrap {
				break
			}
			py %= height
		}

		// Sprite rows are drawn most significant bit first, so the row is
		// held in the top bits of a 16 bit word regardless of sprite width.
		var rowBits uint16
		if cols == 16 {
			high, err := c.readAt(c.addrReg, r*2)
			if err != nil {
				return err
			}
			low, err := c.readAt(c.addrReg, r*2+1)
			if err != nil {
				return err
			}
			rowBits = bit.Combine(high, low)
		} else {
			b, err := c.readAt(c.addrReg, r)
			if err != nil {
				return err
			}
			rowBits = uint16(b) << 8
		}

		for i := 0; i < cols; i++ {
			if rowBits&(0x8000>>i) == 0 {
				continue
			}

			px := col + i
			if px >= width {
				if !c.quirks.ScreenWrap {
					continue
				}
				px %= width
			}

			if c.fb.FlipPixel(px, py) {
				c.regs[0xF] = 1
			}
		}
	}

	return nil
}
