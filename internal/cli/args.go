// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Argument parsing shared by every ellipsis command.

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits a command's arguments into flags and positionals.
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: only the names passed to NewArgParser; they never
//     consume the next argument, so "--json some text" keeps "some text"
//   - "--" ends flag parsing; everything after it is positional
//   - A lone "-" is a value (stdin), both as a positional and after a flag
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
	raw        []string
}

// shortFlags maps one-letter flags to their long names.
var shortFlags = map[string]string{
	"f": "file",
	"w": "width",
	"H": "height",
	"s": "separator",
	"m": "marker",
	"a": "append",
	"d": "debounce",
	"c": "config",
	"j": "json",
	"v": "verbose",
	"h": "help",
}

// NewArgParser parses raw. boolNames lists the flags that take no value.
//
//	args := NewArgParser([]string{"The", "text", "--width", "18", "--json"}, "json")
//	args.Positional(0)   // "The"
//	args.Flag("width")   // "18"
//	args.BoolFlag("json") // true
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	isBool := make(map[string]bool, len(boolNames))
	for _, name := range boolNames {
		isBool[name] = true
	}

	p := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
		raw:        raw,
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if !isFlag(arg) {
			p.positional = append(p.positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		name = canonicalFlag(name)

		if isBool[name] {
			b := true
			if hasValue {
				parsed, err := ParseBoolString(value)
				if err == nil {
					b = parsed
				}
			}
			p.boolFlags[name] = b
			continue
		}

		switch {
		case hasValue:
			p.flags[name] = value
		case i+1 < len(raw) && !isFlag(raw[i+1]):
			p.flags[name] = raw[i+1]
			i++
		default:
			// A value flag at the end of the line, or followed by another
			// flag, is recorded as present and empty.
			p.flags[name] = ""
		}
	}

	return p
}

func isFlag(arg string) bool {
	return len(arg) > 1 && strings.HasPrefix(arg, "-")
}

func canonicalFlag(name string) string {
	if long, ok := shortFlags[name]; ok {
		return long
	}
	return name
}

// Flag returns the value of a string flag, or "" if it was not given.
func (p *ArgParser) Flag(name string) string {
	v, _ := p.Lookup(name)
	return v
}

// Lookup returns the value of a string flag and whether it was given, so an
// explicit empty value can be told apart from an absent flag.
func (p *ArgParser) Lookup(name string) (string, bool) {
	v, ok := p.flags[canonicalFlag(strings.TrimLeft(name, "-"))]
	return v, ok
}

// FlagOrDefault returns the flag value or a default if not found.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// FlagInt returns the flag value as a non-negative integer. ok is false when
// the flag was not given.
func (p *ArgParser) FlagInt(name string) (n int, ok bool, err error) {
	val, ok := p.Lookup(name)
	if !ok {
		return 0, false, nil
	}
	n, err = ParseIntWithValidation(val, "--"+canonicalFlag(name))
	return n, true, err
}

// BoolFlag returns the value of a boolean flag, false if not given.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[canonicalFlag(strings.TrimLeft(name, "-"))]
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns all positional arguments starting from index.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return []string{}
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// HasFlag returns true if the flag was given, as string or bool flag.
func (p *ArgParser) HasFlag(name string) bool {
	name = canonicalFlag(strings.TrimLeft(name, "-"))
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}

// Raw returns the original raw arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}

// =============================================================================
// VALUE HELPERS
// =============================================================================

// ParseIntWithValidation parses a non-negative integer.
func ParseIntWithValidation(s string, fieldName string) (int, error) {
	if s == "" {
		return 0, NewValidationError(fieldName, s, "a number is required")
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewValidationError(fieldName, s, "must be a whole number")
	}
	if val < 0 {
		return 0, NewValidationError(fieldName, s, fmt.Sprintf("must not be negative, got %d", val))
	}

	return val, nil
}

// ParseBoolString parses a boolean from various string representations.
// Accepts: true/false, yes/no, y/n, 1/0, on/off (case-insensitive)
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
