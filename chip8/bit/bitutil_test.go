package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.Equal(t, uint16(0x1234), Combine(0x12, 0x34))
	assert.Equal(t, uint16(0x00FF), Combine(0x00, 0xFF))
}

func TestCheckedAdd(t *testing.T) {
	testCases := []struct {
		desc     string
		a, b     uint8
		want     uint8
		overflow bool
	}{
		{desc: "no overflow", a: 0x10, b: 0x20, want: 0x30},
		{desc: "wraps on overflow", a: 0xFF, b: 0x02, want: 0x01, overflow: true},
		{desc: "boundary is exact", a: 0x80, b: 0x80, want: 0x00, overflow: true},
		{desc: "max without overflow", a: 0xFF, b: 0x00, want: 0xFF},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, overflow := CheckedAdd(tC.a, tC.b)
			assert.Equal(t, tC.want, got)
			assert.Equal(t, tC.overflow, overflow)
		})
	}
}

func TestCheckedSub(t *testing.T) {
	testCases := []struct {
		desc   string
		a, b   uint8
		want   uint8
		borrow bool
	}{
		{desc: "no borrow", a: 0x30, b: 0x20, want: 0x10},
		{desc: "wraps on borrow", a: 0x01, b: 0x02, want: 0xFF, borrow: true},
		{desc: "equal values do not borrow", a: 0x42, b: 0x42, want: 0x00},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, borrow := CheckedSub(tC.a, tC.b)
			assert.Equal(t, tC.want, got)
			assert.Equal(t, tC.borrow, borrow)
		})
	}
}

func TestHighLow(t *testing.T) {
	assert.Equal(t, uint8(0xAB), High(0xABCD))
	assert.Equal(t, uint8(0xCD), Low(0xABCD))
}

func TestIsSet(t *testing.T) {
	assert.True(t, IsSet(0, 0b0000_0001))
	assert.False(t, IsSet(1, 0b0000_0001))
	assert.True(t, IsSet16(15, 0x8000))
	assert.False(t, IsSet16(14, 0x8000))
}
