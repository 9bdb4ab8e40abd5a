//go:build linux

package procwrite



import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func iovecFor(data []byte) unix.Iovec {
	iov := unix.Iovec{Base: &data[0]}
	iov.SetLen(len(data))

	return iov
}

func remoteIovecAt(addr uint64, length int) unix.Iovec {
	iov := unix.Iovec{Base: (*byte)(unsafe.Pointer(uintptr(addr)))}
	iov.SetLen(length)

	return iov
}
