// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display the effective configuration
//   path                Show the configuration file path
//   init [--force]      Write a default config.toml
//   get <key>           Print one value (e.g. box.wrap)
//
// Flags:
//   --json              Output in JSON format
//   --config FILE       Use FILE instead of the usual locations

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/ellipsis-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args, w io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(args, w)
	case "path":
		return handleConfigPath(args, w)
	case "init":
		return handleConfigInit(args, w)
	case "get":
		return handleConfigGet(args, w)
	default:
		return NewValidationError("config subcommand", args.Subcommand, "must be one of show, path, init, get")
	}
}

// configPath is the file config commands act on.
func configPath(args Args) (path string, exists bool, err error) {
	if args.ConfigPath != "" {
		path = args.ConfigPath
	} else if found := config.FindConfigFile(); found != "" {
		path = found
	} else if path, err = config.ConfigPathTOML(); err != nil {
		return "", false, &ConfigError{Err: err}
	}
	_, statErr := os.Stat(path)
	return path, statErr == nil, nil
}

func handleConfigShow(args Args, w io.Writer) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	path, exists, err := configPath(args)
	if err != nil {
		return err
	}

	if args.JSON {
		values := make(map[string]interface{})
		for _, key := range config.GetAllKeys() {
			v, _ := cfg.Get(key)
			values[key] = v
		}
		return NewJSONResponse("config", ConfigData{Path: path, Exists: exists, Values: values}).Write(w)
	}

	fmt.Fprintln(w, TitleStyle.Render("ellipsis configuration"))
	if exists {
		fmt.Fprintln(w, DimStyle.Render("# "+path))
	} else {
		fmt.Fprintln(w, DimStyle.Render("# defaults (no config file at "+path+")"))
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, cfg.String())
	return nil
}

func handleConfigPath(args Args, w io.Writer) error {
	path, exists, err := configPath(args)
	if err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path, Exists: exists}).Write(w)
	}
	fmt.Fprintln(w, path)
	return nil
}

func handleConfigInit(args Args, w io.Writer) error {
	path := args.ConfigPath
	if path == "" {
		var err error
		if path, err = config.ConfigPathTOML(); err != nil {
			return &ConfigError{Err: err}
		}
	}

	if _, err := os.Stat(path); err == nil && !args.Force {
		return NewValidationError("config", path, "already exists; use --force to overwrite")
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}

	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path, Exists: true}).Write(w)
	}
	fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("Wrote"), path)
	return nil
}

func handleConfigGet(args Args, w io.Writer) error {
	if len(args.Rest) == 0 {
		return NewValidationError("key", "", "config get needs a key, one of: "+fmtValue(config.GetAllKeys()))
	}
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	key := args.Rest[0]
	v, err := cfg.Get(key)
	if err != nil {
		return NewValidationError("key", key, err.Error())
	}

	if args.JSON {
		return NewJSONResponse("config", map[string]interface{}{key: v}).Write(w)
	}
	if str, ok := v.(string); ok {
		fmt.Fprintln(w, str)
	} else {
		fmt.Fprintln(w, fmtValue(v))
	}
	return nil
}
