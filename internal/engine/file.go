package engine

import (
	"bytes"
	"fmt"
	"os"

	"github.com/binpatch/orw/internal/fs"
)

// PageSize is the granularity the standing view's pages and goto snap
// to.
const PageSize = 4096

// FileModel holds the loaded binary, in memory and mirrored on disk. A
// successful [FileModel.Patch] keeps both copies consistent; it does not
// roll back the in-memory buffer if the on-disk write subsequently fails,
// matching what a reverse-engineer expects when toggling a byte back and
// forth across repeated attempts.
type FileModel struct {
	fsys fs.FS
	path string
	buf  []byte
}

// LoadFile reads path fully into memory.
func LoadFile(fsys fs.FS, path string) (*FileModel, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s: %w", ErrFileIo, path, err)
	}

	return &FileModel{fsys: fsys, path: path, buf: data}, nil
}

// Path returns the path the file was loaded from.
func (m *FileModel) Path() string { return m.path }

// Size returns the number of bytes currently held in memory.
func (m *FileModel) Size() int { return len(m.buf) }

// Bytes returns the in-memory buffer. Callers must not retain or mutate
// the returned slice beyond the current command; [FileModel.Patch]
// writes into it in place.
func (m *FileModel) Bytes() []byte { return m.buf }

// Patch overwrites len(data) bytes starting at off, in memory first and
// then on disk. The on-disk write holds an exclusive lock on the file
// for the duration of the write only, opens the file for read-write
// without truncation, seeks to off so the rest of the file is untouched,
// writes, and syncs before releasing the lock.
//
// If the on-disk write fails, the in-memory buffer already reflects the
// patch; the caller sees [ErrFileIo] and the memory/disk copies diverge
// until the next successful patch or reload.
func (m *FileModel) Patch(off uint64, data []byte) error {
	end := off + uint64(len(data))
	if end > uint64(len(m.buf)) {
		return fmt.Errorf("%w: patch at 0x%x, len %d exceeds file size %d", ErrOutOfRange, off, len(data), len(m.buf))
	}

	copy(m.buf[off:end], data)

	lock, err := m.fsys.Lock(m.path)
	if err != nil {
		return fmt.Errorf("%w: locking %s for patch: %w", ErrFileIo, m.path, err)
	}
	defer lock.Close()

	f, err := m.fsys.OpenFile(m.path, os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s for patch: %w", ErrFileIo, m.path, err)
	}
	defer f.Close()

	if _, err := f.Seek(int64(off), 0); err != nil {
		return fmt.Errorf("%w: seeking %s: %w", ErrFileIo, m.path, err)
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrFileIo, m.path, err)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: syncing %s: %w", ErrFileIo, m.path, err)
	}

	return nil
}

// Region returns a bounds-checked slice [off, off+size) of the buffer,
// clamped to the end of the file. The returned slice may be shorter than
// size, or empty if off is already past the end.
func (m *FileModel) Region(off, size uint64) []byte {
	if off >= uint64(len(m.buf)) {
		return nil
	}

	end := off + size
	if end > uint64(len(m.buf)) {
		end = uint64(len(m.buf))
	}

	return m.buf[off:end]
}

// HasPrefix reports whether the buffer at off starts with want.
func (m *FileModel) HasPrefix(off uint64, want []byte) bool {
	return bytes.HasPrefix(m.Region(off, uint64(len(want))), want)
}
