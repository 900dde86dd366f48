// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package source loads the text to fit and follows it for changes.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ReloadInterval is the minimum time between two re-reads of a followed file.
const ReloadInterval = 50 * time.Millisecond

// ErrClosed is returned by Next after Close.
var ErrClosed = errors.New("source closed")

// Read loads path (or stdin for "-") and returns its text.
func Read(path string) (string, error) {
	if path == Stdin {
		return ReadFrom(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Normalize(string(data)), nil
}

// ReadFrom loads all of r.
func ReadFrom(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return Normalize(string(data)), nil
}

// Normalize composes the text to NFC, so a character and its decomposed
// form measure the same, and drops one trailing line break.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// =============================================================================
// FOLLOWER
// =============================================================================

// TextMsg carries the file's text after it changed on disk.
type TextMsg struct {
	Path string
	Text string
	Err  error
}

// Follower watches one file and reports every change as a TextMsg.
type Follower struct {
	path    string
	watcher *fsnotify.Watcher
	limiter *rate.Limiter
	out     chan TextMsg
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Follow starts watching path. The parent directory is watched so the file
// survives editors that replace it by rename.
func Follow(path string) (*Follower, error) {
	if path == Stdin {
		return nil, errors.New("cannot follow stdin")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	f := &Follower{
		path:    abs,
		watcher: w,
		limiter: rate.NewLimiter(rate.Every(ReloadInterval), 1),
		out:     make(chan TextMsg, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	f.wg.Add(1)
	go f.run()
	return f, nil
}

// Path returns the absolute path being followed.
func (f *Follower) Path() string { return f.path }

func (f *Follower) run() {
	defer f.wg.Done()
	defer close(f.out)

	for {
		select {
		case <-f.ctx.Done():
			return

		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := f.limiter.Wait(f.ctx); err != nil {
				return
			}
			text, err := Read(f.path)
			if err != nil && event.Has(fsnotify.Rename) {
				// Moved away; the replacement arrives as a Create.
				continue
			}
			f.send(TextMsg{Path: f.path, Text: text, Err: err})

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.send(TextMsg{Path: f.path, Err: err})
		}
	}
}

// send delivers msg, replacing an unread older one so a slow reader only
// ever sees the newest text.
func (f *Follower) send(msg TextMsg) {
	for {
		select {
		case f.out <- msg:
			return
		case <-f.ctx.Done():
			return
		default:
		}
		select {
		case <-f.out:
		default:
		}
	}
}

// Next returns a command that waits for the next change.
func (f *Follower) Next() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-f.out
		if !ok {
			return TextMsg{Path: f.path, Err: ErrClosed}
		}
		return msg
	}
}

// Close stops watching and waits for the watch goroutine to exit.
func (f *Follower) Close() error {
	f.cancel()
	err := f.watcher.Close()
	f.wg.Wait()
	return err
}
