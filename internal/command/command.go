// Package command implements the verb dispatch table that drives the
// workbench: tokenizing a typed line, looking the verb up in a table of
// [Handler] functions, and running it against the shared [engine.Engine].
package command

import (
	"strings"
	"unicode"

	"github.com/binpatch/orw/internal/disasm"
	"github.com/binpatch/orw/internal/editorlaunch"
	"github.com/binpatch/orw/internal/engine"
	"github.com/binpatch/orw/internal/lex"
)

// Handler runs one command verb. args is the tokenized rest of the line
// (verb excluded); rawLine is the untouched input, needed by handlers
// whose final argument is a byte pattern that itself may contain spaces.
type Handler func(eng *engine.Engine, args []string, rawLine string) engine.CommandResult

// Dispatcher tokenizes input lines and routes them to a verb's Handler.
// It is not safe for concurrent use; callers run one command at a time,
// same as the REPL that drives it.
type Dispatcher struct {
	handlers  map[string]Handler
	decoder   disasm.Decoder
	editor    editorlaunch.Launcher
	exportDir string

	lastOutput string
}

// New returns a Dispatcher with every built-in verb registered. dec is
// used by disasm and vft; editor is used by edit; exportDir is the
// directory export writes into (relative names are joined against it;
// empty means the current directory).
func New(dec disasm.Decoder, editor editorlaunch.Launcher, exportDir string) *Dispatcher {
	d := &Dispatcher{decoder: dec, editor: editor, exportDir: exportDir}

	d.handlers = map[string]Handler{
		"patch":    d.cmdPatch,
		"label":    d.cmdLabel,
		"goto":     d.cmdGoto,
		"find":     d.cmdFind,
		"findnext": d.cmdFindNext,
		"savetpl":  d.cmdSaveTpl,
		"applytpl": d.cmdApplyTpl,
		"mempatch": d.cmdMemPatch,
		"dump":     d.cmdDump,
		"disasm":   d.cmdDisasm,
		"vft":      d.cmdVft,
		"export":   d.cmdExport,
		"edit":     d.cmdEdit,
	}

	return d
}

// LastOutput returns the text of the most recent ReplaceOutput result,
// the source export writes to disk.
func (d *Dispatcher) LastOutput() string { return d.lastOutput }

// Dispatch tokenizes line, finds the matching verb, and runs it. An
// empty or whitespace-only line is a no-op that returns a zero-value
// [engine.CommandResult]; an unrecognized verb runs nothing and returns
// a result whose Status names it.
func (d *Dispatcher) Dispatch(eng *engine.Engine, line string) engine.CommandResult {
	trimmed := lex.Trim(line)
	if trimmed == "" {
		return engine.CommandResult{}
	}

	fields := lex.Fields(trimmed)
	if len(fields) == 0 {
		return engine.CommandResult{}
	}

	verb := strings.ToLower(fields[0])

	h, ok := d.handlers[verb]
	if !ok {
		return engine.CommandResult{Status: "unknown command: " + verb}
	}

	result := h(eng, fields[1:], line)

	if result.Kind == engine.ReplaceOutput {
		d.lastOutput = result.Output
	}

	return result
}

// restFrom returns the suffix of rawLine starting at args[idx]'s own
// position (the verb and the idx tokens before it are skipped),
// preserving any internal whitespace a byte pattern argument depends on.
// Earlier tokens are consumed individually, so only the final argument
// needs this.
func restFrom(rawLine string, args []string, idx int) string {
	if idx < 0 || idx >= len(args) {
		return ""
	}

	rest := rawLine
	for i := 0; i <= idx; i++ {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if end := strings.IndexFunc(rest, unicode.IsSpace); end >= 0 {
			rest = rest[end:]
		}
	}

	return strings.TrimLeftFunc(rest, unicode.IsSpace)
}
