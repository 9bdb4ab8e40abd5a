// Package replshell is the interactive command loop: a liner-backed
// prompt that reads one line at a time, hands it to a
// [command.Dispatcher], and redraws the standing view or replacement
// output depending on what came back.
package replshell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/binpatch/orw/internal/command"
	"github.com/binpatch/orw/internal/engine"
	"github.com/binpatch/orw/internal/lex"
	"github.com/binpatch/orw/internal/mainview"
)

var verbs = []string{
	"patch", "label", "goto", "find", "findnext",
	"savetpl", "applytpl", "mempatch", "dump", "disasm",
	"vft", "export", "edit", "exit", "quit", "help",
}

// Shell drives the REPL loop against a single [engine.Engine].
type Shell struct {
	Engine     *engine.Engine
	Dispatcher *command.Dispatcher
	Out        io.Writer

	line *liner.State
}

// New returns a Shell ready to [Shell.Run].
func New(eng *engine.Engine, d *command.Dispatcher, out io.Writer) *Shell {
	return &Shell{Engine: eng, Dispatcher: d, Out: out}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".orw_history")
}

// Run starts the prompt loop. It returns when the user exits or stdin
// is closed.
func (s *Shell) Run() error {
	s.line = liner.NewLiner()
	defer s.line.Close()

	s.line.SetCtrlCAborts(true)
	s.line.SetCompleter(s.completer)

	if f, err := os.Open(historyPath()); err == nil {
		s.line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintln(s.Out, mainview.Compose(s.Engine))

	for {
		input, err := s.line.Prompt("orw> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Fprintln(s.Out, "bye")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		trimmed := lex.Trim(input)
		if trimmed == "" {
			continue
		}

		s.line.AppendHistory(trimmed)

		lower := strings.ToLower(trimmed)
		if lower == "exit" || lower == "quit" {
			fmt.Fprintln(s.Out, "bye")

			break
		}

		if lower == "help" || lower == "?" {
			s.printHelp()

			continue
		}

		s.runOne(trimmed)
	}

	s.saveHistory()

	return nil
}

func (s *Shell) runOne(line string) {
	result := s.Dispatcher.Dispatch(s.Engine, line)

	switch result.Kind {
	case engine.ReplaceOutput:
		fmt.Fprint(s.Out, result.Output)
	case engine.RefreshStandingView:
		fmt.Fprintln(s.Out, mainview.Compose(s.Engine))
	}

	if result.Status != "" {
		fmt.Fprintln(s.Out, result.Status)
	}
}

func (s *Shell) saveHistory() {
	path := historyPath()
	if path == "" {
		return
	}

	if f, err := os.Create(path); err == nil {
		s.line.WriteHistory(f)
		f.Close()
	}
}

func (s *Shell) completer(line string) []string {
	var completions []string

	lower := strings.ToLower(line)
	for _, v := range verbs {
		if strings.HasPrefix(v, lower) {
			completions = append(completions, v)
		}
	}

	return completions
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.Out, "commands:")
	fmt.Fprintln(s.Out, "  patch <off> <hex>              overwrite bytes in memory and on disk")
	fmt.Fprintln(s.Out, "  label <off> <name>             add a bookmark")
	fmt.Fprintln(s.Out, "  goto <off>                     jump the page cursor to an offset")
	fmt.Fprintln(s.Out, "  find <hex with ?? wildcards>   search from the start of the file")
	fmt.Fprintln(s.Out, "  findnext                       resume the last search")
	fmt.Fprintln(s.Out, "  savetpl <name> <off> <hex>     save a named patch template")
	fmt.Fprintln(s.Out, "  applytpl <name> [off]          replay a saved template")
	fmt.Fprintln(s.Out, "  mempatch <pid> <addr> <hex>    write into another process")
	fmt.Fprintln(s.Out, "  dump <off> <size>              render a hex dump")
	fmt.Fprintln(s.Out, "  disasm <off> <size>            disassemble a region")
	fmt.Fprintln(s.Out, "  vft <off> <count>              walk a virtual function table")
	fmt.Fprintln(s.Out, "  export [name]                  write the last output to disk")
	fmt.Fprintln(s.Out, "  edit                           reopen the last dump/disasm/vft output in $EDITOR")
	fmt.Fprintln(s.Out, "  exit / quit                    leave the workbench")
}
