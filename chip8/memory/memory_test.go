package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_installsFonts(t *testing.T) {
	ram := New()

	// Glyph 0 starts with 0xF0 at FontStart.
	b, err := ram.Read(FontStart)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xF0), b)

	// Glyph F ends with 0x80.
	b, err = ram.Read(FontStart + 16*5 - 1)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x80), b)

	// Hires font sits immediately after the lores one.
	assert.Equal(t, 0xA0, HiresFontStart)

	// Hires glyph 0 first row: 0xF0 stretched to 0xFF, duplicated.
	b, _ = ram.Read(uint16(HiresFontStart))
	assert.Equal(t, uint8(0xFF), b)
	b, _ = ram.Read(uint16(HiresFontStart + 1))
	assert.Equal(t, uint8(0xFF), b)

	// Second row of glyph 0: 0x90 -> 0b11000011.
	b, _ = ram.Read(uint16(HiresFontStart + 2))
	assert.Equal(t, uint8(0xC3), b)
}

func TestStretchRow(t *testing.T) {
	testCases := []struct {
		row  uint8
		want uint8
	}{
		{row: 0xF0, want: 0xFF},
		{row: 0x90, want: 0xC3},
		{row: 0x20, want: 0x0C},
		{row: 0x00, want: 0x00},
		{row: 0x80, want: 0xC0},
	}
	for _, tC := range testCases {
		assert.Equal(t, tC.want, stretchRow(tC.row))
	}
}

func TestLoadROM(t *testing.T) {
	ram := New()
	rom := []uint8{0x12, 0x00, 0xAB}

	assert.NoError(t, ram.LoadROM(rom))

	for i, want := range rom {
		b, err := ram.Read(uint16(ProgramStart + i))
		assert.NoError(t, err)
		assert.Equal(t, want, b)
	}

	// Fonts are untouched.
	b, _ := ram.Read(FontStart)
	assert.Equal(t, uint8(0xF0), b)
}

func TestLoadROM_replacesPreviousProgram(t *testing.T) {
	ram := New()
	assert.NoError(t, ram.LoadROM([]uint8{0x11, 0x22, 0x33, 0x44}))
	assert.NoError(t, ram.LoadROM([]uint8{0xAA}))

	b, _ := ram.Read(ProgramStart)
	assert.Equal(t, uint8(0xAA), b)
	b, _ = ram.Read(ProgramStart + 1)
	assert.Equal(t, uint8(0x00), b)
}

func TestLoadROM_tooLarge(t *testing.T) {
	ram := New()
	err := ram.LoadROM(make([]uint8, Size-ProgramStart+1))
	assert.ErrorIs(t, err, ErrROMTooLarge)
}

func TestReadWrite_bounds(t *testing.T) {
	ram := New()

	assert.NoError(t, ram.Write(Size-1, 0x42))
	b, err := ram.Read(Size - 1)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x42), b)

	_, err = ram.Read(Size)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorIs(t, ram.Write(Size, 0), ErrOutOfBounds)
}

func TestGlyphAddresses(t *testing.T) {
	assert.Equal(t, uint16(0x50), GlyphAddress(0))
	assert.Equal(t, uint16(0x50+5*0xA), GlyphAddress(0xA))
	assert.Equal(t, uint16(0xA0), HiresGlyphAddress(0))
	assert.Equal(t, uint16(0xA0+10*0xF), HiresGlyphAddress(0xF))
}
