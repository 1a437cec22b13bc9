package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	testCases := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x00C3, "SCD 3"},
		{0x00FB, "SCR"},
		{0x00FD, "EXIT"},
		{0x00FF, "HIGH"},
		{0x1234, "JP 0x234"},
		{0x2ABC, "CALL 0xABC"},
		{0x3A42, "SE VA, 0x42"},
		{0x5120, "SE V1, V2"},
		{0x6A02, "LD VA, 0x02"},
		{0x8124, "ADD V1, V2"},
		{0x812E, "SHL V1, V2"},
		{0x9120, "SNE V1, V2"},
		{0xA22A, "LD I, 0x22A"},
		{0xC177, "RND V1, 0x77"},
		{0xD01F, "DRW V0, V1, 15"},
		{0xD120, "DRW V1, V2, 0"},
		{0xE09E, "SKP V0"},
		{0xF30A, "LD V3, K"},
		{0xF433, "LD B, V4"},
		{0xF855, "LD [I], V8"},
		{0xF230, "LD HF, V2"},
		{0x5121, ".DW 0x5121"},
		{0x0123, ".DW 0x0123"},
	}
	for _, tC := range testCases {
		assert.Equal(t, tC.want, Disassemble(tC.opcode))
	}
}
