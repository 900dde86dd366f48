// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts := cfg.Ellipsis.Options()
	assert.Equal(t, " ", opts.Separator)
	assert.Equal(t, "...", opts.Marker)
	assert.Nil(t, opts.Append)
	assert.Equal(t, 500*time.Millisecond, opts.Debounce)
}

func TestLoadFromPath_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "config.toml", `
[ellipsis]
separator = ","
marker = "~"
append = " [more]"
debounce_ms = 0

[box]
height = 3
wrap = "none"
`},
		{"json", "config.json", `{
  "ellipsis": {"separator": ",", "marker": "~", "append": " [more]", "debounce_ms": 0},
  "box": {"height": 3, "wrap": "none"}
}`},
		{"yaml", "config.yaml", `
ellipsis:
  separator: ","
  marker: "~"
  append: " [more]"
  debounce_ms: 0
box:
  height: 3
  wrap: none
`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadFromPath(writeFile(t, tc.file, tc.content))
			require.NoError(t, err)

			assert.Equal(t, ",", cfg.Ellipsis.Separator)
			assert.Equal(t, "~", cfg.Ellipsis.Marker)
			require.NotNil(t, cfg.Ellipsis.Append)
			assert.Equal(t, " [more]", *cfg.Ellipsis.Append)
			assert.Equal(t, 0, cfg.Ellipsis.DebounceMs, "explicit zero debounce is kept")
			assert.Equal(t, 3, cfg.Box.Height)
			assert.Equal(t, "none", cfg.Box.Wrap)
			assert.Equal(t, "info", cfg.Logging.Level, "unset fields keep defaults")
			assert.True(t, cfg.Box.Border)
		})
	}
}

func TestLoadFromPath_MissingKeysKeepDefaults(t *testing.T) {
	cfg, err := LoadFromPath(writeFile(t, "config.toml", "[box]\nwidth = 40\n"))
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Box.Width)
	assert.Equal(t, 500, cfg.Ellipsis.DebounceMs)
	assert.Equal(t, " ", cfg.Ellipsis.Separator)
	assert.Nil(t, cfg.Ellipsis.Append)
}

func TestLoadFromPath_EmptyStringsFallBack(t *testing.T) {
	cfg, err := LoadFromPath(writeFile(t, "config.toml", "[ellipsis]\nseparator = \"\"\nmarker = \"\"\n"))
	require.NoError(t, err)

	assert.Equal(t, " ", cfg.Ellipsis.Separator)
	assert.Equal(t, "...", cfg.Ellipsis.Marker)
}

func TestLoadFromPath_Errors(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadFromPath(writeFile(t, "bad.toml", "[ellipsis\n"))
	assert.Error(t, err)

	_, err = LoadFromPath(writeFile(t, "bad.toml", "[box]\nwrap = \"diagonal\"\n"))
	require.Error(t, err)
	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 1)
	assert.Equal(t, "box.wrap", verrs[0].Field)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Ellipsis.DebounceMs = -1
	cfg.Box.Width = -5
	cfg.Box.Height = 0
	cfg.Box.Wrap = "sideways"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 5)
	assert.Contains(t, err.Error(), "ellipsis.debounce_ms")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ELLIPSIS_SEPARATOR", "|")
	t.Setenv("ELLIPSIS_MARKER", "…")
	t.Setenv("ELLIPSIS_APPEND", "")
	t.Setenv("ELLIPSIS_DEBOUNCE_MS", "250")
	t.Setenv("ELLIPSIS_WRAP", "none")
	t.Setenv("ELLIPSIS_LOG_LEVEL", "debug")
	t.Setenv("ELLIPSIS_LOG_FILE", "/tmp/ellipsis.log")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "|", cfg.Ellipsis.Separator)
	assert.Equal(t, "…", cfg.Ellipsis.Marker)
	require.NotNil(t, cfg.Ellipsis.Append, "an empty ELLIPSIS_APPEND still sets the suffix")
	assert.Equal(t, "", *cfg.Ellipsis.Append)
	assert.Equal(t, 250, cfg.Ellipsis.DebounceMs)
	assert.Equal(t, "none", cfg.Box.Wrap)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/ellipsis.log", cfg.Logging.File)
}

func TestApplyEnvOverrides_BadDebounceIgnored(t *testing.T) {
	t.Setenv("ELLIPSIS_DEBOUNCE_MS", "soon")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 500, cfg.Ellipsis.DebounceMs)
}

func TestLoad_UsesConfigEnvPath(t *testing.T) {
	path := writeFile(t, "custom.yml", "ellipsis:\n  marker: \">>\"\n")
	t.Setenv("ELLIPSIS_CONFIG", path)

	assert.Equal(t, path, FindConfigFile())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ">>", cfg.Ellipsis.Marker)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("ELLIPSIS_CONFIG", filepath.Join(t.TempDir(), "none.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Ellipsis, cfg.Ellipsis)
}

func TestSaveTOML_ThenLoad(t *testing.T) {
	cfg := Default()
	appendix := " (cont.)"
	cfg.Ellipsis.Append = &appendix
	cfg.Box.Width = 72

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("box.wrap")
	require.NoError(t, err)
	assert.Equal(t, "word", v)

	v, err = cfg.Get("ELLIPSIS.DEBOUNCE_MS")
	require.NoError(t, err)
	assert.Equal(t, 500, v)

	_, err = cfg.Get("routing.mode")
	assert.ErrorIs(t, err, ErrUnknownKey)

	keys := GetAllKeys()
	assert.Contains(t, keys, "ellipsis.append")
	assert.Len(t, keys, 10)
}

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// called concurrently. Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	t.Setenv("ELLIPSIS_CONFIG", filepath.Join(t.TempDir(), "none.toml"))
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
