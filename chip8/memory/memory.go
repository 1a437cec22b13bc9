package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the total amount of addressable RAM.
	Size = 4096

	// ProgramStart is the address ROMs are loaded at and the PC reset vector.
	ProgramStart = 0x200

	// FontStart is the base address of the low resolution font (16 glyphs, 5 bytes each).
	FontStart = 0x50

	// HiresFontStart is the base address of the high resolution font
	// (16 glyphs, 10 bytes each), placed right after the low resolution one.
	HiresFontStart = FontStart + len(fontData)
)

var (
	// ErrOutOfBounds signals a memory access outside the 4KB address space.
	ErrOutOfBounds = errors.New("memory access out of bounds")

	// ErrROMTooLarge signals a ROM image that does not fit above ProgramStart.
	ErrROMTooLarge = errors.New("ROM image too large")
)

// fontData holds the 4x5 hex digit glyphs, one bit per pixel in the high nibble.
var fontData = [5 * 16]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// RAM is the flat 4KB memory image: fonts, loaded program and work RAM.
type RAM struct {
	bytes [Size]uint8
}

// New returns a zeroed RAM image with both fonts installed.
func New() *RAM {
	r := &RAM{}
	copy(r.bytes[FontStart:], fontData[:])

	// The 8x10 hires glyphs are the 4x5 ones scaled 2x: every bit is
	// widened to two columns and every row written twice.
	for glyph := 0; glyph < 16; glyph++ {
		for row := 0; row < 5; row++ {
			wide := stretchRow(fontData[glyph*5+row])
			base := HiresFontStart + glyph*10 + row*2
			r.bytes[base] = wide
			r.bytes[base+1] = wide
		}
	}

	return r
}

// stretchRow widens the 4 pixel columns in the high nibble to 8 columns.
func stretchRow(row uint8) uint8 {
	var out uint8
	for i := uint8(0); i < 4; i++ {
		if row&(0x80>>i) != 0 {
			out |= 0xC0 >> (2 * i)
		}
	}
	return out
}

// LoadROM copies a program image to ProgramStart, leaving fonts intact.
func (r *RAM) LoadROM(rom []uint8) error {
	if len(rom) > Size-ProgramStart {
		return fmt.Errorf("%w: %d bytes, max %d", ErrROMTooLarge, len(rom), Size-ProgramStart)
	}

	// Clear any previously loaded program before copying the new one.
	for i := ProgramStart; i < Size; i++ {
		r.bytes[i] = 0
	}
	copy(r.bytes[ProgramStart:], rom)

	return nil
}

// Read returns the byte at the given address.
func (r *RAM) Read(address uint16) (uint8, error) {
	if int(address) >= Size {
		return 0, fmt.Errorf("%w: read at 0x%04X", ErrOutOfBounds, address)
	}
	return r.bytes[address], nil
}

// Write stores a byte at the given address.
func (r *RAM) Write(address uint16, value uint8) error {
	if int(address) >= Size {
		return fmt.Errorf("%w: write at 0x%04X", ErrOutOfBounds, address)
	}
	r.bytes[address] = value
	return nil
}

// GlyphAddress returns the address of a low resolution font glyph.
func GlyphAddress(digit uint8) uint16 {
	return uint16(FontStart) + uint16(digit)*5
}

// HiresGlyphAddress returns the address of a high resolution font glyph.
func HiresGlyphAddress(digit uint8) uint16 {
	return uint16(HiresFontStart) + uint16(digit)*10
}
