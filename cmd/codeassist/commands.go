package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/algopatterns/codeassist/internal/config"
	"codeberg.org/algopatterns/codeassist/internal/logger"
	"codeberg.org/algopatterns/codeassist/internal/render"
	"codeberg.org/algopatterns/codeassist/internal/workflow"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/term"
)

// where headless commands print their results
type output struct {
	w     io.Writer
	in    io.Reader
	style string
	width int
	clip  func(string) error
}

func newOutput() *output {
	width := 80
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		width = w
	}

	return &output{
		w:     os.Stdout,
		in:    os.Stdin,
		style: terminalStyle(os.Stdout),
		width: width,
		clip:  clipboard.WriteAll,
	}
}

// picks a glamour style that suits where f points
func terminalStyle(f *os.File) string {
	if term.IsTerminal(f.Fd()) {
		return render.StyleDark
	}

	return render.StyleNoTTY
}

// generates code for the statement given as arguments and prints it
func runGenerate(ctx context.Context, ctrl *workflow.Controller, flags config.Flags, out *output) error {
	lang := ctrl.Snapshot().Language
	statement := strings.Join(flags.Args, " ")

	if err := ctrl.Generate(ctx, lang, statement); err != nil {
		return failure(ctrl.Snapshot())
	}

	if flags.Optimize {
		if err := ctrl.Optimize(ctx, lang, ctrl.Snapshot().GeneratedCode); err != nil {
			// the generated code is still worth printing, next to the failure
			s := ctrl.Snapshot()
			if printErr := out.printState(s); printErr != nil {
				return printErr
			}
			return fmt.Errorf("%w: %s", errShown, s.ErrorMessage())
		}
	}

	if err := out.print(ctrl.Snapshot()); err != nil {
		return err
	}

	if flags.Copy {
		return out.copyFinal(ctrl.Snapshot())
	}

	return nil
}

// optimizes code read from a file or stdin and prints the result
func runOptimize(ctx context.Context, ctrl *workflow.Controller, flags config.Flags, out *output) error {
	code, err := out.readCode(flags.File)
	if err != nil {
		return err
	}

	lang := ctrl.Snapshot().Language

	if err := ctrl.Optimize(ctx, lang, code); err != nil {
		return failure(ctrl.Snapshot())
	}

	if err := out.print(ctrl.Snapshot()); err != nil {
		return err
	}

	if flags.Copy {
		return out.copyFinal(ctrl.Snapshot())
	}

	return nil
}

func (o *output) readCode(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(o.in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is given by the user on purpose
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}

// prints the result panels
func (o *output) print(s workflow.State) error {
	r, err := render.New(o.width, o.style)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(o.w, r.Results(s))
	return err
}

// prints the result panels preceded by the error banner
func (o *output) printState(s workflow.State) error {
	r, err := render.New(o.width, o.style)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(o.w, r.State(s))
	return err
}

// copies the optimized code if there is any, the generated code otherwise
func (o *output) copyFinal(s workflow.State) error {
	code := s.GeneratedCode
	if s.Optimization != nil {
		code = s.Optimization.OptimizedCode
	}

	if err := o.clip(code); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	return nil
}

// marks a failure that was already printed with the results
var errShown = errors.New("failure already shown")

// turns the rendered failure of a snapshot into an error
func failure(s workflow.State) error {
	return errors.New(s.ErrorMessage())
}
