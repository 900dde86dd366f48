// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for ellipsis.
//
// # Key Types
//
//   - Command: the available commands
//   - Args: parsed flags and positionals
//   - Settings: config, environment and flags merged
//   - JSONResponse: the envelope printed by --json
//
// # Usage
//
//	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
//
// # Commands
//
//   - fit: fit text once and print the box
//   - view: interactive viewer that refits on resize and file changes
//   - try: fit lines typed at a prompt
//   - config: show, path, init, get
//   - version, help
//
// Every command supports --json.
package cli
