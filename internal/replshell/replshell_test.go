package replshell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/binpatch/orw/internal/command"
	"github.com/binpatch/orw/internal/disasm"
	"github.com/binpatch/orw/internal/engine"
	"github.com/binpatch/orw/internal/fs"
)

func newTestShell(t *testing.T, data []byte) (*Shell, *bytes.Buffer) {
	t.Helper()

	fsys := fs.NewFake(map[string][]byte{"a.bin": data})

	eng := engine.New(fsys)
	if err := eng.LoadFile("a.bin"); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	dec := disasm.FakeDecoder{Text: map[byte]string{0x90: "nop"}}
	d := command.New(dec, nil, "")

	var buf bytes.Buffer

	return New(eng, d, &buf), &buf
}

func TestRunOneRendersReplaceOutput(t *testing.T) {
	s, buf := newTestShell(t, []byte{0xDE, 0xAD})

	s.runOne("dump 0 2")

	if !strings.Contains(buf.String(), "de ad") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestRunOneRendersStandingViewOnLabel(t *testing.T) {
	s, buf := newTestShell(t, make([]byte, 16))

	s.runOne("label 0 entry")

	if !strings.Contains(buf.String(), "[Bookmarks]") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestRunOneSurfacesStatus(t *testing.T) {
	s, buf := newTestShell(t, make([]byte, 16))

	s.runOne("frobnicate")

	if !strings.Contains(buf.String(), "unknown command") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestCompleterMatchesPrefix(t *testing.T) {
	s, _ := newTestShell(t, make([]byte, 4))

	got := s.completer("dis")
	if len(got) != 1 || got[0] != "disasm" {
		t.Fatalf("completer(\"dis\") = %v", got)
	}
}
