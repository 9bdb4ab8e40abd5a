// Package hexdump renders a byte region as the workbench's canonical
// hex+ASCII page: an 8-digit address, 16 space-separated two-digit hex
// byte groups, and a trailing ASCII column, one line per 16 bytes.
package hexdump

import (
	"fmt"
	"strings"
)

const bytesPerLine = 16

// Page renders data[off : off+count), clamped to len(data), as hex lines
// terminated with "\r\n". A line short of 16 bytes pads the missing hex
// groups with three spaces each so the ASCII column still lines up.
func Page(data []byte, off, count uint64) string {
	end := off + count
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}

	if end <= off {
		return ""
	}

	n := end - off

	var out strings.Builder

	for i := uint64(0); i < n; i += bytesPerLine {
		addr := off + i

		fmt.Fprintf(&out, "%08x  ", addr)

		lineLen := bytesPerLine
		if i+uint64(lineLen) > n {
			lineLen = int(n - i)
		}

		for j := 0; j < bytesPerLine; j++ {
			if j < lineLen {
				fmt.Fprintf(&out, "%02x ", data[off+i+uint64(j)])
			} else {
				out.WriteString("   ")
			}
		}

		out.WriteByte(' ')

		for j := 0; j < lineLen; j++ {
			c := data[off+i+uint64(j)]
			if c >= 0x20 && c < 0x7F {
				out.WriteByte(c)
			} else {
				out.WriteByte('.')
			}
		}

		out.WriteString("\r\n")
	}

	return out.String()
}

// DumpRegion renders the "dump <off> <size>" command output: a header
// line naming the offset and the (possibly clamped) size, a blank line,
// then the hex page.
func DumpRegion(data []byte, off, size uint64) string {
	end := off + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}

	n := uint64(0)
	if end > off {
		n = end - off
	}

	var out strings.Builder

	fmt.Fprintf(&out, "Dump @ 0x%x, size %d\r\n\r\n", off, n)
	out.WriteString(Page(data, off, n))

	return out.String()
}
