// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for ellipsis.

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdFit
	CmdView
	CmdTry
	CmdConfig
	CmdVersion
)

var commandNames = map[Command]string{
	CmdHelp:    "help",
	CmdFit:     "fit",
	CmdView:    "view",
	CmdTry:     "try",
	CmdConfig:  "config",
	CmdVersion: "version",
}

// String returns the command's name as typed.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Text is the positional text for fit; nil when none was given.
	Text *string
	// File is the input file; "-" is stdin.
	File string

	// Box geometry; nil means "use the config".
	Width  *int
	Height *int

	// Fitting options; nil means "use the config".
	Separator *string
	Marker    *string
	Append    *string
	Debounce  *int

	NoWrap   bool
	NoBorder bool
	Follow   bool
	JSON     bool
	Verbose  bool

	// ConfigPath overrides config file discovery.
	ConfigPath string

	// Subcommand is the first positional for config ("show", "init", ...).
	Subcommand string
	// Rest holds positionals after the subcommand.
	Rest []string
	// Force lets config init overwrite an existing file.
	Force bool
}

// boolFlags are the flags that never take a value.
var boolFlags = []string{"json", "nowrap", "no-border", "follow", "verbose", "help", "force"}

const usageText = `# ellipsis

Fits text into a fixed-size terminal box, showing as many whole words as fit
followed by a marker.

## Usage

    ellipsis fit [text...]       Fit text once and print the box
    ellipsis view [file]         Interactive viewer that refits on resize
    ellipsis try                 Fit lines typed at a prompt
    ellipsis config [show|init|path|get KEY]
    ellipsis version
    ellipsis help

Text for fit comes from the arguments, --file, or standard input.

## Options

    -f, --file FILE          Read text from FILE ("-" for stdin)
    -w, --width N            Box width in cells (default: terminal width)
    -H, --height N           Box height in rows (default: 1)
    -s, --separator S        Token separator (default: " ")
    -m, --marker M           Truncation marker (default: "...")
    -a, --append A           Suffix shown after the fitted text, never measured
    -d, --debounce MS        Refit delay for view, in milliseconds (default: 500)
    --nowrap                 Break lines only at newlines
    --no-border              Draw view boxes without borders
    --follow                 view: reload the file when it changes
    -c, --config FILE        Use FILE instead of ~/.ellipsis/config.toml
    -j, --json               Print a JSON response
    -v, --verbose            Log each fit to stderr

## Environment

    ELLIPSIS_CONFIG, ELLIPSIS_SEPARATOR, ELLIPSIS_MARKER, ELLIPSIS_APPEND,
    ELLIPSIS_DEBOUNCE_MS, ELLIPSIS_WRAP, ELLIPSIS_LOG_LEVEL, ELLIPSIS_LOG_FILE

## Examples

    ellipsis fit --width 18 The quick brown fox jumps over the lazy dog
    echo "a,b,c,d" | ellipsis fit -w 6 -s , -m ~ --json
    ellipsis view notes.txt --follow --height 3
`

// Parse parses argv (without the program name).
func Parse(argv []string) (Command, Args, error) {
	var args Args
	if len(argv) == 0 {
		return CmdHelp, args, nil
	}

	cmd, known := lookupCommand(argv[0])
	rest := argv
	if known {
		rest = argv[1:]
	} else {
		// "ellipsis some text --width 10" is a fit.
		cmd = CmdFit
	}

	p := NewArgParser(rest, boolFlags...)
	if p.BoolFlag("help") {
		return CmdHelp, args, nil
	}

	args.File = p.Flag("file")
	args.ConfigPath = p.Flag("config")
	args.NoWrap = p.BoolFlag("nowrap")
	args.NoBorder = p.BoolFlag("no-border")
	args.Follow = p.BoolFlag("follow")
	args.JSON = p.BoolFlag("json")
	args.Verbose = p.BoolFlag("verbose")
	args.Force = p.BoolFlag("force")

	for name, dst := range map[string]**string{
		"separator": &args.Separator,
		"marker":    &args.Marker,
		"append":    &args.Append,
	} {
		if v, ok := p.Lookup(name); ok {
			*dst = &v
		}
	}

	for name, dst := range map[string]**int{
		"width":    &args.Width,
		"height":   &args.Height,
		"debounce": &args.Debounce,
	} {
		n, ok, err := p.FlagInt(name)
		if err != nil {
			return cmd, args, err
		}
		if ok {
			*dst = &n
		}
	}

	switch cmd {
	case CmdFit:
		if p.PositionalCount() > 0 {
			text := strings.Join(p.PositionalFrom(0), " ")
			args.Text = &text
		}
	case CmdView:
		if args.File == "" {
			args.File = p.Positional(0)
		}
	case CmdConfig:
		args.Subcommand = p.Positional(0)
		if p.PositionalCount() > 1 {
			args.Rest = p.PositionalFrom(1)
		}
	}

	return cmd, args, nil
}

func lookupCommand(word string) (Command, bool) {
	switch strings.ToLower(word) {
	case "fit":
		return CmdFit, true
	case "view", "tui":
		return CmdView, true
	case "try", "repl":
		return CmdTry, true
	case "config":
		return CmdConfig, true
	case "version", "--version":
		return CmdVersion, true
	case "help", "--help", "-h":
		return CmdHelp, true
	}
	return CmdHelp, false
}

// Run parses argv, runs the command and returns the process exit code.
func Run(argv []string, stdout, stderr io.Writer) int {
	cmd, args, err := Parse(argv)
	if err != nil {
		DisplayError(stderr, cmd.String(), err, false)
		return GetExitCode(err)
	}

	switch cmd {
	case CmdFit:
		err = HandleFit(args, os.Stdin, stdout, stderr)
	case CmdView:
		err = HandleView(args)
	case CmdTry:
		err = HandleTry(args, stdout)
	case CmdConfig:
		err = HandleConfig(args, stdout)
	case CmdVersion:
		err = HandleVersion(args, stdout)
	default:
		err = HandleHelp(stdout)
	}

	if err != nil {
		out := stderr
		if args.JSON {
			out = stdout
		}
		DisplayError(out, cmd.String(), err, args.JSON)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// =============================================================================
// HELP AND VERSION
// =============================================================================

// HandleHelp prints the usage text, rendered as markdown on a terminal.
func HandleHelp(w io.Writer) error {
	_, err := io.WriteString(w, renderUsage(w == os.Stdout && IsStdoutTTY()))
	return err
}

func renderUsage(markdown bool) string {
	if !markdown {
		return usageText
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		return usageText
	}
	rendered, err := renderer.Render(usageText)
	if err != nil {
		return usageText
	}
	return rendered
}

// HandleVersion prints version information.
func HandleVersion(args Args, w io.Writer) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Write(w)
	}
	fmt.Fprintf(w, "ellipsis version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	return nil
}
