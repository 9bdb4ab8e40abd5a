package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempBinary(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "a.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	return path
}

func TestRunSingleShotDump(t *testing.T) {
	path := tempBinary(t, []byte{0xDE, 0xAD, 0xBE, 0xEF})

	outFile, errFile := newCapture(t)

	code := run([]string{"-c", "dump 0 4", path}, nil, outFile, errFile)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	out := readBack(t, outFile)
	if !strings.Contains(out, "de ad be ef") {
		t.Fatalf("output = %q", out)
	}
}

func TestRunRejectsTooManyPositionalArgs(t *testing.T) {
	outFile, errFile := newCapture(t)

	code := run([]string{"-c", "dump 0 4", "a.bin", "b.bin"}, nil, outFile, errFile)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	errText := readBack(t, errFile)
	if !strings.Contains(errText, "usage: orw") {
		t.Fatalf("stderr = %q, want a usage message", errText)
	}
}

func TestRunWithoutFileStillDispatchesCommands(t *testing.T) {
	outFile, errFile := newCapture(t)

	code := run([]string{"-c", "dump 0 4"}, nil, outFile, errFile)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	errText := readBack(t, errFile)
	if !strings.Contains(errText, "no file loaded") {
		t.Fatalf("stderr = %q, want the dispatcher's no-file-loaded status, not a startup error", errText)
	}
}

func TestRunParsesHexBaseAddress(t *testing.T) {
	path := tempBinary(t, []byte{0x90})

	outFile, errFile := newCapture(t)

	code := run([]string{"--base", "0x1000", "-c", "disasm 0 1", path}, nil, outFile, errFile)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	out := readBack(t, outFile)
	if !strings.Contains(out, "0x1000") {
		t.Fatalf("output = %q, want base address applied", out)
	}
}

func newCapture(t *testing.T) (*os.File, *os.File) {
	t.Helper()

	dir := t.TempDir()

	outFile, err := os.Create(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("create out: %v", err)
	}

	t.Cleanup(func() { outFile.Close() })

	errFile, err := os.Create(filepath.Join(dir, "err"))
	if err != nil {
		t.Fatalf("create err: %v", err)
	}

	t.Cleanup(func() { errFile.Close() })

	return outFile, errFile
}

func readBack(t *testing.T, f *os.File) string {
	t.Helper()

	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		t.Fatalf("read: %v", err)
	}

	return buf.String()
}
