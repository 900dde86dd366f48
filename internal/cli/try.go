// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// try.go - The try command: fit lines typed at a prompt.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/ellipsis-tui/internal/config"
	"github.com/jeranaias/ellipsis-tui/internal/ellipsis"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// TryCLI provides line editing and history for the try prompt.
type TryCLI struct {
	line        *liner.State
	historyFile string
}

// NewTryCLI creates a TryCLI and loads its history.
func NewTryCLI() *TryCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &TryCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "try_history"),
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

// ReadInput reads one line. Non-empty lines go into history.
func (c *TryCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (c *TryCLI) Close() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// errQuit ends the prompt loop.
var errQuit = errors.New("quit")

// TrySession holds the box the prompt fits into. It is separate from the
// line editor so commands can be tested without a terminal.
type TrySession struct {
	Settings Settings
	Width    int
	Out      io.Writer
}

// HandleTry handles the "try" command.
func HandleTry(args Args, stdout io.Writer) error {
	s, err := loadSettings(args)
	if err != nil {
		return err
	}
	width := s.Width
	if width == 0 {
		width = GetTerminalWidth()
	}

	session := &TrySession{Settings: s, Width: width, Out: stdout}
	cli := NewTryCLI()
	defer cli.Close()

	fmt.Fprintln(stdout, DimStyle.Render("Type text to fit it, /help for commands, Ctrl+D to quit."))
	session.Exec("/show")

	for {
		input, err := cli.ReadInput(PromptStyle.Render("fit> "))
		if err != nil {
			// Ctrl+C (liner.ErrPromptAborted), Ctrl+D (io.EOF) or a dead
			// terminal all end the session.
			fmt.Fprintln(stdout)
			return nil
		}
		if err := session.Exec(input); errors.Is(err, errQuit) {
			return nil
		} else if err != nil {
			fmt.Fprintf(stdout, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
		}
	}
}

// Exec runs one line of input: a slash command or text to fit.
func (t *TrySession) Exec(input string) error {
	if !strings.HasPrefix(input, "/") {
		if input == "" {
			return nil
		}
		t.fit(input)
		return nil
	}

	name, arg, hasArg := strings.Cut(strings.TrimPrefix(input, "/"), " ")
	switch name {
	case "quit", "exit", "q":
		return errQuit
	case "help":
		fmt.Fprintln(t.Out, "/width N  /height N  /marker M  /sep S  /append [A]  /show  /quit")
	case "show":
		opts := t.Settings.Options
		fmt.Fprintln(t.Out, RenderLabel("box", fmt.Sprintf("%dx%d", t.Width, t.Settings.Height)))
		fmt.Fprintln(t.Out, RenderLabel("separator", opts.Separator))
		fmt.Fprintln(t.Out, RenderLabel("marker", opts.Marker))
		fmt.Fprintln(t.Out, RenderLabel("append", opts.Append))
	case "width", "height":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 1 {
			return NewValidationError(name, arg, "must be a whole number of at least 1")
		}
		if name == "width" {
			t.Width = n
		} else {
			t.Settings.Height = n
		}
	case "marker", "sep":
		if !hasArg || arg == "" {
			return NewValidationError(name, "", "needs a value")
		}
		if name == "marker" {
			t.Settings.Options.Marker = arg
		} else {
			t.Settings.Options.Separator = arg
		}
	case "append":
		if hasArg {
			t.Settings.Options.Append = ellipsis.String(arg)
		} else {
			t.Settings.Options.Append = nil
		}
	default:
		return NewValidationError("command", "/"+name, "unknown; try /help")
	}
	return nil
}

func (t *TrySession) fit(text string) {
	data := RunFit(text, t.Width, t.Settings)
	for _, line := range data.Lines {
		fmt.Fprintln(t.Out, line)
	}

	state := SuccessStyle.Render("fits")
	if data.Truncated {
		state = WarningStyle.Render("truncated")
	}
	fmt.Fprintln(t.Out, DimStyle.Render(fmt.Sprintf("%s  tokens %d/%d  checks %d",
		state, data.Tokens, data.TotalTokens, data.Checks)))
}
