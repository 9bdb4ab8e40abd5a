// Package disasm renders a byte region as x86-64 assembly. Decoding is
// abstracted behind [Decoder] so tests can substitute a [FakeDecoder]
// instead of exercising a real instruction decoder.
package disasm

import (
	"fmt"
	"strings"
)

// Decoder decodes a single instruction starting at b[0]. It returns the
// instruction's length in bytes and its formatted text. addr is the
// virtual address of b[0], used for rendering RIP-relative operands.
type Decoder interface {
	DecodeOne(b []byte, addr uint64) (length int, text string, err error)
}

// Region renders data[offset : offset+size), clamped to len(data), as a
// sequence of decoded instructions starting at baseAddress+offset. A
// decode failure silently truncates the listing at the last successful
// instruction rather than surfacing a decode error mid-page.
func Region(dec Decoder, data []byte, offset, size, baseAddress uint64) string {
	end := offset + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}

	if end <= offset {
		return "(empty)\r\n"
	}

	var out strings.Builder

	fmt.Fprintf(&out, "Disasm @ offset 0x%x\r\n\r\n", offset)

	cur := uint64(0)
	total := end - offset

	for cur < total {
		length, text, err := dec.DecodeOne(data[offset+cur:end], baseAddress+offset+cur)
		if err != nil || length <= 0 {
			break
		}

		fmt.Fprintf(&out, "0x%x  %s\r\n", baseAddress+offset+cur, text)

		cur += uint64(length)
	}

	return out.String()
}
