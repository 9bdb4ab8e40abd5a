package command_test

import (
	"os"
	"strings"
	"testing"

	"github.com/binpatch/orw/internal/command"
	"github.com/binpatch/orw/internal/disasm"
	"github.com/binpatch/orw/internal/engine"
	"github.com/binpatch/orw/internal/fs"
)

func newTestEngine(t *testing.T, data []byte) *engine.Engine {
	t.Helper()

	fsys := fs.NewFake(map[string][]byte{"a.bin": data})
	eng := engine.New(fsys)

	if err := eng.LoadFile("a.bin"); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	return eng
}

func fakeDisp() *command.Dispatcher {
	dec := disasm.FakeDecoder{Text: map[byte]string{0x90: "nop"}}

	return command.New(dec, nil, "")
}

// fakeLauncher records the path it was asked to open instead of shelling
// out to a real editor.
type fakeLauncher struct {
	launchedPath string
	err          error
}

func (f *fakeLauncher) Launch(path string) error {
	f.launchedPath = path
	return f.err
}

func TestDispatchUnknownVerb(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 16))
	d := fakeDisp()

	res := d.Dispatch(eng, "frobnicate")
	if !strings.Contains(res.Status, "unknown command") {
		t.Fatalf("Status = %q", res.Status)
	}
}

func TestDispatchEmptyLineIsNoop(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 16))
	d := fakeDisp()

	res := d.Dispatch(eng, "   ")
	if res.Kind != engine.None || res.Status != "" {
		t.Fatalf("res = %+v, want zero value", res)
	}
}

func TestPatchRejectsWildcard(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 16))
	d := fakeDisp()

	res := d.Dispatch(eng, "patch 0 90 ?? 90")
	if !strings.Contains(res.Status, "bad pattern") {
		t.Fatalf("Status = %q, want a bad-pattern error", res.Status)
	}
}

func TestPatchWritesBytesAndForgetsFind(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 16))
	d := fakeDisp()

	d.Dispatch(eng, "find 00 00")
	if _, _, ok := eng.View.LastFind(); !ok {
		t.Fatal("find should set the last-find cursor")
	}

	res := d.Dispatch(eng, "patch 0 90 90")
	if res.Kind != engine.RefreshStandingView {
		t.Fatalf("Kind = %v, want RefreshStandingView", res.Kind)
	}

	if eng.File.Bytes()[0] != 0x90 || eng.File.Bytes()[1] != 0x90 {
		t.Fatalf("buffer = %v", eng.File.Bytes())
	}

	if _, _, ok := eng.View.LastFind(); ok {
		t.Fatal("patch should clear the last-find cursor")
	}
}

func TestGotoClampsPastEndOfFile(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 16))
	d := fakeDisp()

	d.Dispatch(eng, "goto 9999")

	if eng.View.PageOffset != 0 {
		t.Fatalf("PageOffset = %d, want 0 (only one page in a 16-byte file)", eng.View.PageOffset)
	}
}

func TestFindThenFindNext(t *testing.T) {
	data := make([]byte, 32)
	data[4] = 0xAA
	data[20] = 0xAA

	eng := newTestEngine(t, data)
	d := fakeDisp()

	res := d.Dispatch(eng, "find AA")
	if res.Kind != engine.RefreshStandingView {
		t.Fatalf("find Kind = %v", res.Kind)
	}

	res = d.Dispatch(eng, "findnext")
	if res.Kind != engine.RefreshStandingView {
		t.Fatalf("findnext Kind = %v", res.Kind)
	}

	off, _, ok := eng.View.LastFind()
	if !ok || off != 20 {
		t.Fatalf("LastFind = %d, %v, want 20, true", off, ok)
	}
}

func TestSaveAndApplyTemplate(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 16))
	d := fakeDisp()

	d.Dispatch(eng, "savetpl nop 4 90 90")

	res := d.Dispatch(eng, "applytpl nop")
	if res.Kind != engine.RefreshStandingView {
		t.Fatalf("applytpl Kind = %v", res.Kind)
	}

	if eng.File.Bytes()[4] != 0x90 || eng.File.Bytes()[5] != 0x90 {
		t.Fatalf("buffer = %v", eng.File.Bytes())
	}
}

func TestApplyUnknownTemplate(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 16))
	d := fakeDisp()

	res := d.Dispatch(eng, "applytpl ghost")
	if !strings.Contains(res.Status, "unknown template") {
		t.Fatalf("Status = %q", res.Status)
	}
}

func TestDumpReplacesOutput(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	eng := newTestEngine(t, data)
	d := fakeDisp()

	res := d.Dispatch(eng, "dump 0 4")
	if res.Kind != engine.ReplaceOutput {
		t.Fatalf("Kind = %v", res.Kind)
	}

	if !strings.Contains(res.Output, "de ad be ef") {
		t.Fatalf("Output = %q", res.Output)
	}
}

func TestDisasmUsesInjectedDecoder(t *testing.T) {
	data := []byte{0x90, 0x90}

	eng := newTestEngine(t, data)
	d := fakeDisp()

	res := d.Dispatch(eng, "disasm 0 2")
	if res.Kind != engine.ReplaceOutput || !strings.Contains(res.Output, "nop") {
		t.Fatalf("res = %+v", res)
	}
}

func TestExportWithoutPriorOutputFails(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 4))
	d := fakeDisp()

	res := d.Dispatch(eng, "export")
	if !strings.Contains(res.Status, "nothing to export") {
		t.Fatalf("Status = %q", res.Status)
	}
}

func TestExportWritesLastOutput(t *testing.T) {
	data := []byte{1, 2, 3, 4}

	eng := newTestEngine(t, data)
	d := fakeDisp()

	d.Dispatch(eng, "dump 0 4")

	res := d.Dispatch(eng, "export out.txt")
	if !strings.Contains(res.Status, "exported to") {
		t.Fatalf("Status = %q", res.Status)
	}

	got, err := eng.FS.ReadFile("out.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if !strings.Contains(string(got), "01 02 03 04") {
		t.Fatalf("exported content = %q", got)
	}
}

func TestDisasmAcceptsOptionalBaseArgument(t *testing.T) {
	data := []byte{0x90}

	eng := newTestEngine(t, data)
	eng.BaseAddress = 0x1000

	d := fakeDisp()

	res := d.Dispatch(eng, "disasm 0 1 0x2000")
	if !strings.Contains(res.Output, "0x2000") {
		t.Fatalf("Output = %q, want the explicit base to override the engine default", res.Output)
	}
}

func TestDisasmFallsBackToEngineBaseAddress(t *testing.T) {
	data := []byte{0x90}

	eng := newTestEngine(t, data)
	eng.BaseAddress = 0x1000

	d := fakeDisp()

	res := d.Dispatch(eng, "disasm 0 1")
	if !strings.Contains(res.Output, "0x1000") {
		t.Fatalf("Output = %q, want the engine's base address", res.Output)
	}
}

func TestGotoRejectsBadOffset(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 16))
	d := fakeDisp()

	res := d.Dispatch(eng, "goto not-a-number")
	if !strings.Contains(res.Status, "bad offset") {
		t.Fatalf("Status = %q, want a bad-offset error", res.Status)
	}
}

func TestEditWithoutPriorOutputFails(t *testing.T) {
	eng := newTestEngine(t, make([]byte, 4))
	d := fakeDisp()

	res := d.Dispatch(eng, "edit")
	if !strings.Contains(res.Status, "nothing to edit") {
		t.Fatalf("Status = %q", res.Status)
	}
}

func TestEditOpensScratchFileWithLastOutput(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	eng := newTestEngine(t, data)

	dec := disasm.FakeDecoder{Text: map[byte]string{0x90: "nop"}}
	launcher := &fakeLauncher{}
	d := command.New(dec, launcher, "")

	d.Dispatch(eng, "dump 0 4")

	res := d.Dispatch(eng, "edit")
	if res.Status != "" {
		t.Fatalf("Status = %q, want empty", res.Status)
	}

	if launcher.launchedPath == "" {
		t.Fatal("edit should launch the editor on a scratch file")
	}

	got, err := os.ReadFile(launcher.launchedPath)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", launcher.launchedPath, err)
	}

	if !strings.Contains(string(got), "de ad be ef") {
		t.Fatalf("scratch file content = %q", got)
	}
}

func TestRequireFileErrorsWithoutLoad(t *testing.T) {
	eng := engine.New(fs.NewFake(nil))
	d := fakeDisp()

	res := d.Dispatch(eng, "goto 0")
	if !strings.Contains(res.Status, "no file loaded") {
		t.Fatalf("Status = %q", res.Status)
	}
}
