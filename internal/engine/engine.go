// Package engine holds the workbench's core state: the loaded binary,
// the current page and search cursor, bookmarks, and patch templates.
// Nothing here knows about the REPL, the command verbs, or rendering;
// those live in [github.com/binpatch/orw/internal/command] and the
// render packages.
package engine

import "github.com/binpatch/orw/internal/fs"

// Engine wires a [FileModel] to its [ViewState]. It is the single
// mutable value the command dispatcher operates on; there is no package
// global state.
type Engine struct {
	FS   fs.FS
	File *FileModel
	View ViewState

	// BaseAddress is added to file offsets before they are shown or
	// passed to the decoder, so addresses in disasm/vft output line up
	// with a debugger attached to the same image.
	BaseAddress uint64
}

// New returns an Engine with no file loaded.
func New(fsys fs.FS) *Engine {
	return &Engine{FS: fsys}
}

// LoadFile opens path and resets all session state: bookmarks,
// templates, the page cursor, and the search cursor all start over.
func (e *Engine) LoadFile(path string) error {
	fm, err := LoadFile(e.FS, path)
	if err != nil {
		return err
	}

	e.File = fm
	e.View = ViewState{}

	return nil
}

// RequireFile returns the loaded file or [ErrNoFileLoaded].
func (e *Engine) RequireFile() (*FileModel, error) {
	if e.File == nil {
		return nil, ErrNoFileLoaded
	}

	return e.File, nil
}

// ResultKind distinguishes how a dispatched command wants the standing
// view refreshed.
type ResultKind int

const (
	// None means the command produced no view change (e.g. savetpl).
	None ResultKind = iota

	// RefreshStandingView means the command changed state that the
	// main File/Size/Page/Bookmarks/Hex view reflects.
	RefreshStandingView

	// ReplaceOutput means the command produced its own text (dump,
	// disasm, vft) that should replace the displayed output
	// instead of the standing view.
	ReplaceOutput
)

// CommandResult is returned by every command handler.
type CommandResult struct {
	Kind ResultKind

	// Output holds the replacement text when Kind is ReplaceOutput.
	Output string

	// Status holds a non-fatal diagnostic that does not itself abort
	// the command (for example, a mempatch short write). Empty when
	// there is nothing to report.
	Status string
}
