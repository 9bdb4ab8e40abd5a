package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

// errInodeMismatch is an internal sentinel indicating the lock file was
// replaced between open and flock. Callers should retry.
var errInodeMismatch = errors.New("inode mismatch")

// FileLocker hands out exclusive, blocking flock(2) locks scoped to a
// single path. orw only ever needs one lock shape: [FileModel.Patch]
// holds the lock across its seek-write-sync and releases it before
// returning, so unlike a general-purpose lock API this one does not
// offer shared/read locks or timeout variants nobody calls.
//
// flock locks an inode (the open file), not a pathname. Callers should
// lock the binary's own path directly rather than a separate lock file,
// since orw never replaces the binary out from under an open patch.
//
// FileLocker has no mutable state beyond its dependencies. It is safe
// for concurrent use as long as the underlying [FS] implementation is.
type FileLocker struct {
	fs    FS
	flock func(fd int, how int) error
}

// NewLocker creates a FileLocker that uses the given filesystem for file operations.
func NewLocker(fs FS) *FileLocker {
	return &FileLocker{
		fs:    fs,
		flock: syscall.Flock,
	}
}

// Lock represents a held file lock. Call [Lock.Close] to release it.
type Lock struct {
	mu    sync.Mutex
	file  File
	flock func(fd int, how int) error
}

// Close releases the lock and closes the underlying file descriptor.
//
// Close is idempotent - calling it multiple times is safe and subsequent
// calls return nil. On Unix, closing a file descriptor typically releases
// any flock held by that descriptor/process; Close attempts an explicit
// unlock first, and if that fails but the close succeeds the lock is
// usually still released regardless.
func (lk *Lock) Close() error {
	lk.mu.Lock()
	defer lk.mu.Unlock()

	if lk.file == nil {
		return nil
	}

	fd := int(lk.file.Fd())

	unlockErr := flockRetryEINTR(lk.flock, fd, syscall.LOCK_UN)
	closeErr := lk.file.Close()
	lk.file = nil

	if unlockErr != nil {
		return fmt.Errorf("unlocking lock: %w", unlockErr)
	}

	if closeErr != nil {
		return fmt.Errorf("closing lock fd: %w", closeErr)
	}

	return nil
}

// Lock acquires an exclusive lock on the file at path, blocking until the
// lock is available. If the file or its parent directories do not exist,
// they are created lazily. The lock is held on the exact path provided,
// not a temporary file.
//
// This method blocks in the kernel with no timeout: a patch against a
// binary someone else is simultaneously flocking waits it out rather than
// failing, since orw has no fallback behavior to offer in that case.
//
// Race conditions where the file is replaced (renamed, deleted+recreated)
// during lock acquisition are handled automatically - the lock is always
// acquired on the inode currently at path. See [FileLocker.inodeMatchesPath]
// for details.
func (l *FileLocker) Lock(path string) (*Lock, error) {
	for {
		file, err := l.openLockFile(path)
		if err != nil {
			return nil, fmt.Errorf("opening lockfile: %w", err)
		}

		err = l.acquire(file, path)
		if err == nil {
			return &Lock{file: file, flock: l.flock}, nil
		}

		_ = file.Close()

		if errors.Is(err, errInodeMismatch) {
			continue
		}

		return nil, err
	}
}

// acquire attempts to flock the given file and verify the inode still matches
// path. On success, the file is locked and ready to use. On failure, the file
// is unlocked (if needed) but NOT closed - the caller must close it.
func (l *FileLocker) acquire(file File, path string) error {
	fd := int(file.Fd())

	if err := flockRetryEINTR(l.flock, fd, syscall.LOCK_EX); err != nil {
		return err
	}

	match, err := l.inodeMatchesPath(path, file)
	if err != nil {
		_ = flockRetryEINTR(l.flock, fd, syscall.LOCK_UN)
		if errors.Is(err, os.ErrNotExist) {
			return errInodeMismatch
		}
		return fmt.Errorf("verifying inode match: %w", err)
	}

	if !match {
		_ = flockRetryEINTR(l.flock, fd, syscall.LOCK_UN)
		return errInodeMismatch
	}

	return nil
}

const (
	lockFilePerm = 0o600
	lockDirPerm  = 0o755
)

func (l *FileLocker) openLockFile(path string) (File, error) {
	f, err := l.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFilePerm)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return f, err
	}

	if err := l.fs.MkdirAll(filepath.Dir(path), lockDirPerm); err != nil {
		return nil, err
	}

	return l.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFilePerm)
}

// inodeMatchesPath verifies that f (the open file descriptor we're about to
// use as the lock) still refers to the file currently at path.
//
// flock locks by inode, not pathname. A pathname can be replaced while
// you're acquiring the lock (or while you're blocked waiting): rename,
// delete+recreate, editors writing via temp+rename, etc. Then you can end
// up with this situation:
//
//  1. A opens path → gets inode X
//  2. path is replaced → now points to inode Y
//  3. A successfully flocks inode X (still valid, but no longer "the file at path")
//  4. B opens path → inode Y, and flocks it successfully too
//
// Without this check, both A and B believe they "locked the path", but
// they're actually coordinating on different inodes. This compares
// (dev,inode) of the open fd (via File.Stat) to the current (dev,inode)
// at path (via [FS.Stat]). Callers use it immediately after flock; on
// mismatch they unlock and retry.
func (l *FileLocker) inodeMatchesPath(path string, f File) (bool, error) {
	openInfo, err := f.Stat()
	if err != nil {
		return false, err
	}

	openSys, ok := openInfo.Sys().(*syscall.Stat_t)
	if !ok || openSys == nil {
		return false, fmt.Errorf("file.Stat Sys=%T, want *syscall.Stat_t", openInfo.Sys())
	}

	pathInfo, err := l.fs.Stat(path)
	if err != nil {
		return false, err
	}

	pathSys, ok := pathInfo.Sys().(*syscall.Stat_t)
	if !ok || pathSys == nil {
		return false, fmt.Errorf("fs.Stat Sys=%T, want *syscall.Stat_t", pathInfo.Sys())
	}

	return openSys.Dev == pathSys.Dev && openSys.Ino == pathSys.Ino, nil
}

// flockRetryEINTR wraps flock, retrying on EINTR: a signal (SIGWINCH,
// SIGCHLD, ...) interrupting the blocking syscall doesn't mean it failed,
// only that it needs to be retried. Capped to avoid spinning forever
// under a pathological signal storm, which should never happen in
// practice.
func flockRetryEINTR(flock func(fd int, how int) error, fd int, how int) error {
	const maxEINTRRetries = 10000

	var err error
	for range maxEINTRRetries {
		err = flock(fd, how)
		if err == nil || !errors.Is(err, syscall.EINTR) {
			return err
		}
	}

	return err
}
