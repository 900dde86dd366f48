// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ellipsis

import "time"

// Defaults applied when an option is left empty.
const (
	DefaultSeparator = " "
	DefaultMarker    = "..."
	DefaultDebounce  = 500 * time.Millisecond
)

// Options configures a binding. The zero value is usable once Normalized.
type Options struct {
	// Separator splits text into tokens. Empty means DefaultSeparator.
	Separator string
	// Marker is appended when text was shortened. Empty means DefaultMarker.
	Marker string
	// Append is added after the marker and is never checked for overflow.
	Append *string
	// Debounce is the quiet period before a refit. Negative means
	// DefaultDebounce; zero fires on the next loop turn.
	Debounce time.Duration
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Separator: DefaultSeparator,
		Marker:    DefaultMarker,
		Debounce:  DefaultDebounce,
	}
}

// Normalized returns a copy with empty fields replaced by defaults.
func (o Options) Normalized() Options {
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	if o.Debounce < 0 {
		o.Debounce = DefaultDebounce
	}
	return o
}

// Request builds a fitting request for text using the normalized options.
// Optional strings are copied so the request stays a snapshot.
func (o Options) Request(text *string) Request {
	n := o.Normalized()
	return Request{
		Text:      clone(text),
		Separator: n.Separator,
		Marker:    n.Marker,
		Append:    clone(n.Append),
	}
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// String returns a pointer to s, for optional text fields.
func String(s string) *string {
	return &s
}
