package command

import (
	"fmt"
	"os"
	"strconv"

	"github.com/binpatch/orw/internal/bytepattern"
	"github.com/binpatch/orw/internal/disasm"
	"github.com/binpatch/orw/internal/engine"
	"github.com/binpatch/orw/internal/export"
	"github.com/binpatch/orw/internal/hexdump"
	"github.com/binpatch/orw/internal/lex"
	"github.com/binpatch/orw/internal/offset"
	"github.com/binpatch/orw/internal/procwrite"
	"github.com/binpatch/orw/internal/vft"
)

// parsePattern parses a trailing hex-pattern argument and rejects
// wildcards for commands that need concrete bytes to write: patch,
// savetpl, applytpl (via its saved bytes), and mempatch. A pattern
// consisting only of junk parses to zero tokens and is rejected as
// empty; one containing any wildcard token is rejected for that.
func parsePattern(hexStr string) (bytepattern.Pattern, error) {
	pat := bytepattern.Parse(hexStr)

	if len(pat) == 0 {
		return nil, fmt.Errorf("%w: empty byte pattern", engine.ErrBadPattern)
	}

	if pat.HasWildcard() {
		return nil, fmt.Errorf("%w: wildcards are not allowed here", engine.ErrBadPattern)
	}

	return pat, nil
}

func errResult(err error) engine.CommandResult {
	return engine.CommandResult{Status: err.Error()}
}

// parseOffset wraps [offset.Parse], classifying any failure as
// [engine.ErrBadOffset] so handlers need not know the parser's own
// error type.
func parseOffset(token string, pageOffset uint64) (uint64, error) {
	off, err := offset.Parse(token, pageOffset)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", engine.ErrBadOffset, err)
	}

	return off, nil
}

func (d *Dispatcher) cmdPatch(eng *engine.Engine, args []string, rawLine string) engine.CommandResult {
	if len(args) < 2 {
		return errResult(fmt.Errorf("usage: patch <off> <hex bytes>"))
	}

	fm, err := eng.RequireFile()
	if err != nil {
		return errResult(err)
	}

	off, err := parseOffset(args[0], eng.View.PageOffset)
	if err != nil {
		return errResult(err)
	}

	pat, err := parsePattern(restFrom(rawLine, args, 1))
	if err != nil {
		return errResult(err)
	}

	if err := fm.Patch(off, pat.Bytes()); err != nil {
		return errResult(err)
	}

	eng.View.ForgetFind()

	return engine.CommandResult{Kind: engine.RefreshStandingView}
}

func (d *Dispatcher) cmdLabel(eng *engine.Engine, args []string, rawLine string) engine.CommandResult {
	if len(args) < 2 {
		return errResult(fmt.Errorf("usage: label <off> <name>"))
	}

	off, err := parseOffset(args[0], eng.View.PageOffset)
	if err != nil {
		return errResult(err)
	}

	name := lex.Trim(restFrom(rawLine, args, 1))

	eng.View.AddBookmark(off, name)

	return engine.CommandResult{Kind: engine.RefreshStandingView}
}

func (d *Dispatcher) cmdGoto(eng *engine.Engine, args []string, _ string) engine.CommandResult {
	if len(args) < 1 {
		return errResult(fmt.Errorf("usage: goto <off>"))
	}

	fm, err := eng.RequireFile()
	if err != nil {
		return errResult(err)
	}

	off, err := parseOffset(args[0], eng.View.PageOffset)
	if err != nil {
		return errResult(err)
	}

	size := uint64(fm.Size())
	if off >= size {
		if size == 0 {
			off = 0
		} else {
			off = size - 1
		}
	}

	eng.View.SetPageForOffset(off)

	return engine.CommandResult{Kind: engine.RefreshStandingView}
}

func (d *Dispatcher) cmdFind(eng *engine.Engine, args []string, rawLine string) engine.CommandResult {
	if len(args) < 1 {
		return errResult(fmt.Errorf("usage: find <hex bytes>"))
	}

	fm, err := eng.RequireFile()
	if err != nil {
		return errResult(err)
	}

	pat := bytepattern.Parse(restFrom(rawLine, args, 0))
	if len(pat) == 0 {
		return errResult(fmt.Errorf("%w: empty byte pattern", engine.ErrBadPattern))
	}

	hit := bytepattern.Find(fm.Bytes(), pat, 0)
	if hit == bytepattern.NotFound {
		return engine.CommandResult{Status: "not found"}
	}

	eng.View.RememberFind(uint64(hit), pat)
	eng.View.SetPageForOffset(uint64(hit))

	return engine.CommandResult{Kind: engine.RefreshStandingView}
}

func (d *Dispatcher) cmdFindNext(eng *engine.Engine, _ []string, _ string) engine.CommandResult {
	fm, err := eng.RequireFile()
	if err != nil {
		return errResult(err)
	}

	lastOff, pat, ok := eng.View.LastFind()
	if !ok {
		return engine.CommandResult{Status: "no previous find"}
	}

	hit := bytepattern.Find(fm.Bytes(), pat, int(lastOff)+1)
	if hit == bytepattern.NotFound {
		return engine.CommandResult{Status: "not found"}
	}

	eng.View.RememberFind(uint64(hit), pat)
	eng.View.SetPageForOffset(uint64(hit))

	return engine.CommandResult{Kind: engine.RefreshStandingView}
}

func (d *Dispatcher) cmdSaveTpl(eng *engine.Engine, args []string, rawLine string) engine.CommandResult {
	if len(args) < 3 {
		return errResult(fmt.Errorf("usage: savetpl <name> <off> <hex bytes>"))
	}

	name := args[0]

	off, err := parseOffset(args[1], eng.View.PageOffset)
	if err != nil {
		return errResult(err)
	}

	pat, err := parsePattern(restFrom(rawLine, args, 2))
	if err != nil {
		return errResult(err)
	}

	eng.View.SaveTemplate(name, off, pat.Bytes())

	return engine.CommandResult{}
}

func (d *Dispatcher) cmdApplyTpl(eng *engine.Engine, args []string, _ string) engine.CommandResult {
	if len(args) < 1 {
		return errResult(fmt.Errorf("usage: applytpl <name> [off]"))
	}

	fm, err := eng.RequireFile()
	if err != nil {
		return errResult(err)
	}

	tpl, ok := eng.View.Template(args[0])
	if !ok {
		return errResult(fmt.Errorf("%w: %s", engine.ErrUnknownTemplate, args[0]))
	}

	off := tpl.Offset

	if len(args) >= 2 {
		off, err = parseOffset(args[1], eng.View.PageOffset)
		if err != nil {
			return errResult(err)
		}
	}

	if err := fm.Patch(off, tpl.Bytes); err != nil {
		return errResult(err)
	}

	eng.View.ForgetFind()

	return engine.CommandResult{Kind: engine.RefreshStandingView}
}

func (d *Dispatcher) cmdMemPatch(eng *engine.Engine, args []string, rawLine string) engine.CommandResult {
	if len(args) < 3 {
		return errResult(fmt.Errorf("usage: mempatch <pid> <addr> <hex bytes>"))
	}

	pid, err := strconv.ParseInt(args[0], 0, 32)
	if err != nil {
		return errResult(fmt.Errorf("bad pid %q: %w", args[0], err))
	}

	addr, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return errResult(fmt.Errorf("bad address %q: %w", args[1], err))
	}

	pat, err := parsePattern(restFrom(rawLine, args, 2))
	if err != nil {
		return errResult(err)
	}

	n, err := procwrite.Write(int(pid), addr, pat.Bytes())
	if err != nil {
		if n > 0 {
			return engine.CommandResult{Status: fmt.Sprintf("%v: wrote %d of %d bytes", engine.ErrExternalWriteFailed, n, len(pat))}
		}

		return errResult(fmt.Errorf("%w: %w", engine.ErrExternalWriteFailed, err))
	}

	return engine.CommandResult{}
}

func (d *Dispatcher) cmdDump(eng *engine.Engine, args []string, _ string) engine.CommandResult {
	if len(args) < 2 {
		return errResult(fmt.Errorf("usage: dump <off> <size>"))
	}

	fm, err := eng.RequireFile()
	if err != nil {
		return errResult(err)
	}

	off, size, err := parseOffsetAndSize(eng, args)
	if err != nil {
		return errResult(err)
	}

	return engine.CommandResult{Kind: engine.ReplaceOutput, Output: hexdump.DumpRegion(fm.Bytes(), off, size)}
}

func (d *Dispatcher) cmdDisasm(eng *engine.Engine, args []string, _ string) engine.CommandResult {
	if len(args) < 2 {
		return errResult(fmt.Errorf("usage: disasm <off> <size> [base]"))
	}

	fm, err := eng.RequireFile()
	if err != nil {
		return errResult(err)
	}

	off, size, err := parseOffsetAndSize(eng, args)
	if err != nil {
		return errResult(err)
	}

	base, err := parseOptionalBase(eng, args, 2)
	if err != nil {
		return errResult(err)
	}

	dec := d.decoder
	if dec == nil {
		dec = disasm.X86Decoder{}
	}

	return engine.CommandResult{Kind: engine.ReplaceOutput, Output: disasm.Region(dec, fm.Bytes(), off, size, base)}
}

func (d *Dispatcher) cmdVft(eng *engine.Engine, args []string, _ string) engine.CommandResult {
	if len(args) < 2 {
		return errResult(fmt.Errorf("usage: vft <off> <count> [base]"))
	}

	fm, err := eng.RequireFile()
	if err != nil {
		return errResult(err)
	}

	off, count, err := parseOffsetAndSize(eng, args)
	if err != nil {
		return errResult(err)
	}

	base, err := parseOptionalBase(eng, args, 2)
	if err != nil {
		return errResult(err)
	}

	dec := d.decoder
	if dec == nil {
		dec = disasm.X86Decoder{}
	}

	return engine.CommandResult{Kind: engine.ReplaceOutput, Output: vft.Walk(dec, fm.Bytes(), off, count, base)}
}

// parseOptionalBase reads an optional trailing base-address argument at
// idx, falling back to the engine's configured base address when absent.
func parseOptionalBase(eng *engine.Engine, args []string, idx int) (uint64, error) {
	if len(args) <= idx {
		return eng.BaseAddress, nil
	}

	base, err := strconv.ParseUint(args[idx], 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad base %q: %w", args[idx], err)
	}

	return base, nil
}

func (d *Dispatcher) cmdExport(eng *engine.Engine, args []string, _ string) engine.CommandResult {
	if d.lastOutput == "" {
		return errResult(fmt.Errorf("nothing to export yet"))
	}

	name := "export.txt"
	if len(args) >= 1 {
		name = args[0]
	}

	path, err := export.Write(eng.FS, d.exportDir, name, d.lastOutput)
	if err != nil {
		return errResult(err)
	}

	return engine.CommandResult{Status: "exported to " + path}
}

// cmdEdit reopens the most recent ReplaceOutput text (a dump, disasm, or
// vft listing) in the configured editor, writing it to a scratch file
// first since $EDITOR takes a path, not a string.
func (d *Dispatcher) cmdEdit(_ *engine.Engine, _ []string, _ string) engine.CommandResult {
	if d.lastOutput == "" {
		return errResult(fmt.Errorf("nothing to edit yet"))
	}

	if d.editor == nil {
		return errResult(fmt.Errorf("no editor configured"))
	}

	f, err := os.CreateTemp("", "orw-*.txt")
	if err != nil {
		return errResult(fmt.Errorf("creating scratch file for edit: %w", err))
	}
	defer f.Close()

	if _, err := f.WriteString(d.lastOutput); err != nil {
		return errResult(fmt.Errorf("writing scratch file for edit: %w", err))
	}

	if err := d.editor.Launch(f.Name()); err != nil {
		return errResult(err)
	}

	return engine.CommandResult{}
}

func parseOffsetAndSize(eng *engine.Engine, args []string) (uint64, uint64, error) {
	off, err := parseOffset(args[0], eng.View.PageOffset)
	if err != nil {
		return 0, 0, err
	}

	size, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad size %q: %w", args[1], err)
	}

	return off, size, nil
}
