package fs

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
)

// ErrInjected is returned by a Fake operation configured to fail.
var ErrInjected = errors.New("injected failure")

// Fake is an in-memory [FS] used by tests that need to exercise I/O
// error paths (the FileIo error kind) without touching the real disk.
type Fake struct {
	mu    sync.Mutex
	files map[string][]byte

	// FailOpenFile, when non-nil, is returned by the next OpenFile call
	// and resets to nil after firing once.
	FailOpenFile error

	// FailWriteAfter causes the N-th Write on any fake file, and every
	// Write after it, to fail. Zero disables injection.
	FailWriteAfter int

	// FailSync, when non-nil, is returned by the next Sync call and
	// resets to nil after firing once.
	FailSync error

	writeCount int
}

// NewFake returns an empty Fake filesystem seeded with files.
func NewFake(seed map[string][]byte) *Fake {
	f := &Fake{files: make(map[string][]byte, len(seed))}
	for k, v := range seed {
		cp := make([]byte, len(v))
		copy(cp, v)
		f.files[k] = cp
	}

	return f
}

type fakeFile struct {
	fake *Fake
	name string
	pos  int64
	buf  *bytes.Buffer
}

func (f *Fake) Open(path string) (File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}

	return &fakeFile{fake: f, name: path, buf: bytes.NewBuffer(append([]byte(nil), data...))}, nil
}

func (f *Fake) Create(path string) (File, error) {
	f.mu.Lock()
	f.files[path] = nil
	f.mu.Unlock()

	return &fakeFile{fake: f, name: path, buf: &bytes.Buffer{}}, nil
}

func (f *Fake) OpenFile(path string, flag int, _ os.FileMode) (File, error) {
	f.mu.Lock()
	fail := f.FailOpenFile
	f.FailOpenFile = nil
	f.mu.Unlock()

	if fail != nil {
		return nil, fail
	}

	f.mu.Lock()
	data, ok := f.files[path]
	if !ok {
		if flag&os.O_CREATE == 0 {
			f.mu.Unlock()

			return nil, os.ErrNotExist
		}

		f.files[path] = nil
	} else if flag&os.O_TRUNC != 0 {
		data = nil
	}

	cp := append([]byte(nil), data...)
	f.mu.Unlock()

	return &fakeFile{fake: f, name: path, buf: bytes.NewBuffer(cp)}, nil
}

func (f *Fake) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}

	return append([]byte(nil), data...), nil
}

func (f *Fake) WriteFileAtomic(path string, data []byte, _ os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.files[path] = append([]byte(nil), data...)

	return nil
}

func (f *Fake) ReadDir(string) ([]os.DirEntry, error) { return nil, nil }
func (f *Fake) MkdirAll(string, os.FileMode) error    { return nil }

func (f *Fake) Stat(path string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.files[path]; !ok {
		return nil, os.ErrNotExist
	}

	return nil, nil
}

func (f *Fake) Exists(path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]

	return ok, nil
}

func (f *Fake) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)

	return nil
}

func (f *Fake) RemoveAll(path string) error { return f.Remove(path) }

func (f *Fake) Rename(oldpath, newpath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.files[oldpath]
	if !ok {
		return os.ErrNotExist
	}

	f.files[newpath] = data
	delete(f.files, oldpath)

	return nil
}

// fakeLock is a no-op Locker: Fake is single-threaded in tests.
type fakeLock struct{}

func (fakeLock) Close() error { return nil }

func (f *Fake) Lock(string) (Locker, error) { return fakeLock{}, nil }

// --- fakeFile ---

func (ff *fakeFile) Read(p []byte) (int, error) {
	n := copy(p, ff.buf.Bytes()[ff.clampPos():])
	ff.pos += int64(n)

	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

func (ff *fakeFile) Write(p []byte) (int, error) {
	ff.fake.mu.Lock()
	ff.fake.writeCount++
	fail := ff.fake.FailWriteAfter != 0 && ff.fake.writeCount >= ff.fake.FailWriteAfter
	ff.fake.mu.Unlock()

	if fail {
		return 0, ErrInjected
	}

	raw := ff.buf.Bytes()
	end := int(ff.pos) + len(p)

	if end > len(raw) {
		grown := make([]byte, end)
		copy(grown, raw)
		raw = grown
	}

	copy(raw[ff.pos:end], p)
	ff.buf = bytes.NewBuffer(raw)
	ff.pos += int64(len(p))

	ff.fake.mu.Lock()
	ff.fake.files[ff.name] = append([]byte(nil), raw...)
	ff.fake.mu.Unlock()

	return len(p), nil
}

func (ff *fakeFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		ff.pos = offset
	case io.SeekCurrent:
		ff.pos += offset
	case io.SeekEnd:
		ff.pos = int64(ff.buf.Len()) + offset
	}

	return ff.pos, nil
}

func (ff *fakeFile) Close() error { return nil }

func (ff *fakeFile) Fd() uintptr { return 0 }

func (ff *fakeFile) Stat() (os.FileInfo, error) { return nil, nil }

func (ff *fakeFile) Sync() error {
	ff.fake.mu.Lock()
	fail := ff.fake.FailSync
	ff.fake.FailSync = nil
	ff.fake.mu.Unlock()

	return fail
}

func (ff *fakeFile) clampPos() int64 {
	if ff.pos > int64(ff.buf.Len()) {
		return int64(ff.buf.Len())
	}

	return ff.pos
}

var (
	_ FS   = (*Fake)(nil)
	_ File = (*fakeFile)(nil)
)
