// Command orw is an interactive workbench for reading, searching, and
// patching a binary file: hex dumps, a wildcard byte-pattern search, an
// x86-64 disassembler, a virtual-function-table walker, and both
// on-disk and live-process patching.
//
// Usage:
//
//	orw [flags] [file]
//
// With no file argument, orw starts the REPL with nothing loaded.
//
// Flags:
//
//	-c, --command <line>   run a single command non-interactively and exit
//	    --config <file>    use a specific .orw.json instead of the default
//	    --base <addr>      base address added to disasm/vft output
//	-h, --help             show this help
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/binpatch/orw/internal/command"
	"github.com/binpatch/orw/internal/config"
	"github.com/binpatch/orw/internal/disasm"
	"github.com/binpatch/orw/internal/editorlaunch"
	"github.com/binpatch/orw/internal/engine"
	"github.com/binpatch/orw/internal/fs"
	"github.com/binpatch/orw/internal/mainview"
	"github.com/binpatch/orw/internal/replshell"
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

func run(args []string, rawEnv []string, out, errOut *os.File) int {
	flags := flag.NewFlagSet("orw", flag.ContinueOnError)
	flags.SetOutput(errOut)

	flagCommand := flags.StringP("command", "c", "", "run a single command and exit")
	flagConfig := flags.String("config", "", "path to a .orw.json config file")
	flagBase := flags.String("base", "", "base address added to disasm/vft output")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}

		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	rest := flags.Args()
	if len(rest) > 1 {
		fmt.Fprintln(errOut, "usage: orw [flags] [file]")

		return 1
	}

	var path string
	if len(rest) == 1 {
		path = rest[0]
	}

	env := envMap(rawEnv)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{WorkDir: cwd, ConfigPath: *flagConfig})
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	if *flagBase != "" {
		base, err := parseBaseAddress(*flagBase)
		if err != nil {
			fmt.Fprintln(errOut, "error: bad --base:", err)

			return 1
		}

		cfg.BaseAddress = base
	}

	fsys := fs.NewReal()

	eng := engine.New(fsys)
	eng.BaseAddress = cfg.BaseAddress

	if path != "" {
		if err := eng.LoadFile(path); err != nil {
			fmt.Fprintln(errOut, "error:", err)

			return 1
		}
	}

	editor := editorlaunch.NewExec(cfg.Editor, env)
	dispatcher := command.New(disasm.X86Decoder{}, editor, cfg.ExportDir)

	if *flagCommand != "" {
		result := dispatcher.Dispatch(eng, *flagCommand)

		switch result.Kind {
		case engine.ReplaceOutput:
			fmt.Fprint(out, result.Output)
		case engine.RefreshStandingView:
			fmt.Fprintln(out, mainview.Compose(eng))
		}

		if result.Status != "" {
			fmt.Fprintln(errOut, result.Status)

			return 1
		}

		return 0
	}

	shell := replshell.New(eng, dispatcher, out)
	if err := shell.Run(); err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	return 0
}

func parseBaseAddress(s string) (uint64, error) {
	var v uint64

	_, err := fmt.Sscanf(s, "0x%x", &v)
	if err == nil {
		return v, nil
	}

	_, err = fmt.Sscanf(s, "%d", &v)

	return v, err
}

func envMap(rawEnv []string) map[string]string {
	env := make(map[string]string, len(rawEnv))

	for _, kv := range rawEnv {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				env[kv[:i]] = kv[i+1:]

				break
			}
		}
	}

	return env
}
