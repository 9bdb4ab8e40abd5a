// Package vft walks a virtual-function-table-shaped region: an array of
// 8-byte little-endian RVAs, each re-entered into the disassembler when
// it falls inside the file.
package vft

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/binpatch/orw/internal/disasm"
)

// entryDisasmSize is how many bytes are disassembled as a fixed-size
// preview at each resolved RVA.
const entryDisasmSize = 64

// Walk renders count 8-byte entries starting at offset as a virtual
// function table: each entry's value is treated as an RVA, and RVAs that
// fall inside the file are disassembled.
func Walk(dec disasm.Decoder, data []byte, offset, count, baseAddress uint64) string {
	var out strings.Builder

	fmt.Fprintf(&out, "VFT @ file offset 0x%x, count %d\r\n\r\n", offset, count)

	if offset+count*8 > uint64(len(data)) {
		out.WriteString("(out of range)\r\n")

		return out.String()
	}

	for i := uint64(0); i < count; i++ {
		off := offset + i*8
		rva := binary.LittleEndian.Uint64(data[off : off+8])

		fmt.Fprintf(&out, "[#%d] RVA 0x%x", i, rva)

		if rva < uint64(len(data)) {
			fmt.Fprintf(&out, " (file off 0x%x)\r\n", rva)
			out.WriteString(disasm.Region(dec, data, rva, entryDisasmSize, baseAddress))
			out.WriteString("\r\n")
		} else {
			out.WriteString(" (out of file range)\r\n")
		}
	}

	return out.String()
}
