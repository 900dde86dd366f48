// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// fit.go - The fit command: one synchronous fit, printed.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/ellipsis-tui/internal/ellipsis"
	"github.com/jeranaias/ellipsis-tui/internal/source"
	"github.com/jeranaias/ellipsis-tui/internal/ui/components"
)

// HandleFit handles the "fit" command.
func HandleFit(args Args, stdin io.Reader, stdout, stderr io.Writer) error {
	s, err := loadSettings(args)
	if err != nil {
		return err
	}
	log, closeLog := newLogger(s, stderr)
	defer closeLog()

	text, err := fitInput(args, stdin)
	if err != nil {
		return err
	}

	width := s.Width
	if width == 0 {
		width = GetTerminalWidth()
	}

	data := RunFit(text, width, s)
	log.Debug().
		Int("width", data.Width).
		Int("height", data.Height).
		Int("tokens", data.Tokens).
		Int("total_tokens", data.TotalTokens).
		Int("checks", data.Checks).
		Bool("truncated", data.Truncated).
		Msg("fit")

	if args.JSON {
		return NewJSONResponse("fit", data).Write(stdout)
	}
	for _, line := range data.Lines {
		fmt.Fprintln(stdout, line)
	}
	return nil
}

// fitInput picks the text: --file, then positional text, then piped stdin.
func fitInput(args Args, stdin io.Reader) (string, error) {
	switch {
	case args.File == source.Stdin:
		return source.ReadFrom(stdin)
	case args.File != "":
		text, err := source.Read(args.File)
		if err != nil {
			return "", NewCommandError("fit", "read", err)
		}
		return text, nil
	case args.Text != nil:
		return source.Normalize(*args.Text), nil
	case stdin != os.Stdin || !IsTTY():
		return source.ReadFrom(stdin)
	}
	return "", NewValidationError("text", "", "give text as arguments, with --file, or on stdin")
}

// RunFit fits text into a width x s.Height box and returns the outcome with
// the box's visible lines, clipped as the box would draw them.
func RunFit(text string, width int, s Settings) FitData {
	box := components.NewTextBox(width, s.Height)
	box.SetWrap(s.Wrap)

	res := ellipsis.Fit(box, s.Options.Request(&text))

	lines := make([]string, 0, s.Height)
	for i, line := range box.Lines() {
		if i == s.Height {
			break
		}
		lines = append(lines, strings.TrimRight(runewidth.Truncate(line, width, ""), " "))
	}

	return FitData{
		Result: res,
		Width:  width,
		Height: s.Height,
		Lines:  lines,
	}
}
