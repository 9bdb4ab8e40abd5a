// Package mainview composes the workbench's standing view: the
// File/Size/Page header, the bookmark list, and the current hex page.
// It is what every command other than dump/disasm/vft/export leaves on
// screen after it runs.
package mainview

import (
	"fmt"
	"strings"

	"github.com/binpatch/orw/internal/engine"
	"github.com/binpatch/orw/internal/hexdump"
)

// Compose renders the standing view for eng. If the page cursor has
// drifted past the end of the file (the file shrank, or nothing was
// ever clamped after a reload), it is snapped back to the last valid
// page as a side effect.
func Compose(eng *engine.Engine) string {
	if eng.File == nil {
		return "No file loaded."
	}

	size := uint64(eng.File.Size())

	if eng.View.PageOffset >= size {
		if size == 0 {
			eng.View.PageOffset = 0
		} else {
			eng.View.PageOffset = ((size - 1) / engine.PageSize) * engine.PageSize
		}
	}

	pageStart := eng.View.PageOffset

	pageEnd := pageStart + engine.PageSize
	if pageEnd > size {
		pageEnd = size
	}

	lastShown := uint64(0)
	if pageEnd > 0 {
		lastShown = pageEnd - 1
	}

	var out strings.Builder

	fmt.Fprintf(&out, "File: %s\r\n", eng.File.Path())
	fmt.Fprintf(&out, "Size: %d bytes\r\n", size)
	fmt.Fprintf(&out, "Page: %d - %d\r\n\r\n", pageStart, lastShown)

	out.WriteString("[Bookmarks]\r\n")

	for _, b := range eng.View.Bookmarks {
		fmt.Fprintf(&out, "0x%x = %s\r\n", b.Offset, b.Label)
	}

	out.WriteString("\r\n[Hex]\r\n")
	out.WriteString(hexdump.Page(eng.File.Bytes(), pageStart, engine.PageSize))

	return out.String()
}
