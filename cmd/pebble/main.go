// Command pebble runs a Pebble source file, or starts an interactive REPL
// when stdin is a terminal and no script is given.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/pebblelang/pebble/internal/config"
	"github.com/pebblelang/pebble/pkg/interpreter"
	"github.com/pebblelang/pebble/pkg/parser"
	"github.com/pebblelang/pebble/pkg/runtime"
)

const version = "0.1.0"

const usage = `pebble

Usage:
  pebble [SCRIPT]
  pebble -h
  pebble -v

Arguments:
  SCRIPT  Path to a Pebble source file. Read from stdin if omitted.

Options:
  -h, --help     Show this help.
  -v, --version  Show version.
`

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		panic(err.Error())
	}

	if ok, _ := opts.Bool("--version"); ok {
		fmt.Println("pebble " + version)
		return
	}

	script, _ := opts.String("SCRIPT")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pebble: "+err.Error())
		os.Exit(1)
	}

	switch {
	case script != "":
		err = runFile(script)
	case isatty.IsTerminal(os.Stdin.Fd()):
		err = runREPL(cfg)
	default:
		err = runReader(os.Stdin)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "pebble: "+err.Error())
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(filepath.Join(home, ".pebblerc.yml"))
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return runSource(src)
}

func runReader(r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return runSource(src)
}

func runSource(src []byte) error {
	p, err := parser.New(src)
	if err != nil {
		return err
	}
	stmts, err := p.ParseModule()
	if err != nil {
		return err
	}
	return interpreter.New(os.Stdout).Run(stmts)
}

// runREPL reads statements interactively, evaluating each one against a
// scope that persists for the life of the session, the way the ambient
// interactive drivers in the teacher's code keep one long-lived state.
func runREPL(cfg *config.Config) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	it := interpreter.New(os.Stdout)
	scope := runtime.NewScope()

	for {
		chunk, err := readChunk(line, cfg.Prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		line.AppendHistory(chunk)

		p, err := parser.New([]byte(chunk + "\n"))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		stmts, err := p.ParseModule()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		result, err := it.EvalChunk(stmts, scope)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if cfg.Echo {
			if s, err := it.Stringify(result); err == nil {
				fmt.Fprintln(os.Stdout, s)
			}
		}
	}

	if cfg.HistoryFile != "" {
		if f, err := os.Create(cfg.HistoryFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

// readChunk reads lines until a blank line or EOF, the REPL's stand-in for
// the "end of a logical block" signal a file's trailing newline provides.
func readChunk(line *liner.State, prompt string) (string, error) {
	var b strings.Builder
	for {
		l, err := line.Prompt(prompt)
		if err != nil {
			if b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}
		if l == "" {
			return b.String(), nil
		}
		b.WriteString(l)
		b.WriteString("\n")
		prompt = "... "
	}
}
