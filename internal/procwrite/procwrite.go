//go:build linux

// Package procwrite writes bytes into another live process's address
// space. On Linux this is a single process_vm_writev(2) call, with no
// persistent handle to open or close.
package procwrite

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrShortWrite is returned when the kernel accepts fewer bytes than
// requested. The caller decides whether that is fatal or merely worth
// surfacing as a status line.
var ErrShortWrite = errors.New("short write")

// Write writes data into pid's address space starting at addr. It
// returns the number of bytes actually written and, if that count is
// less than len(data), [ErrShortWrite] alongside it.
func Write(pid int, addr uint64, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	local := []unix.Iovec{iovecFor(data)}
	remote := []unix.Iovec{remoteIovecAt(addr, len(data))}

	n, err := unix.ProcessVMWritev(pid, local, remote, 0)
	if err != nil {
		return n, fmt.Errorf("process_vm_writev pid %d at 0x%x: %w", pid, addr, err)
	}

	if n < len(data) {
		return n, fmt.Errorf("%w: wrote %d of %d bytes", ErrShortWrite, n, len(data))
	}

	return n, nil
}
