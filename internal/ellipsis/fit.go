// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ellipsis

import "strings"

// Surface is a box that displays text and reports how that text rendered.
// Metrics must reflect the most recent SetText.
type Surface interface {
	Metrics() BoxMetrics
	SetText(text string)
}

// Request is one fitting job.
type Request struct {
	// Text is nil when there is nothing to display yet.
	Text      *string
	Separator string
	Marker    string
	Append    *string
}

// Result describes what Fit left on the surface.
type Result struct {
	Text        string `json:"text"`
	Tokens      int    `json:"tokens"`
	TotalTokens int    `json:"total_tokens"`
	Truncated   bool   `json:"truncated"`
	MarkerShown bool   `json:"marker_shown"`
	// Checks counts overflow measurements taken.
	Checks int `json:"checks"`
	// Skipped is set when Text was nil and the surface was left alone.
	Skipped bool `json:"skipped,omitempty"`
}

// Fit displays the longest token prefix of req.Text that fits the surface,
// followed by the marker when anything was cut. If the marker cannot fit even
// after dropping every token, the bare prefix is shown instead. req.Append is
// added last and is not measured.
func Fit(s Surface, req Request) Result {
	if req.Text == nil {
		return Result{Skipped: true}
	}
	text := *req.Text
	if text == "" {
		s.SetText("")
		return Result{}
	}

	f := fitter{surface: s}

	f.show(text)
	if !f.overflows() {
		n := len(strings.Split(text, req.Separator))
		return Result{Text: text, Tokens: n, TotalTokens: n, Checks: f.checks}
	}

	words := strings.Split(text, req.Separator)
	join := func(n int) string { return strings.Join(words[:n], req.Separator) }

	// Halving search for the largest prefix without the marker.
	prefix := ""
	accepted, remaining := 0, len(words)
	for {
		half := (remaining + 1) / 2
		candidate := join(accepted + half)
		f.show(candidate)

		if f.overflows() {
			remaining = half
			if remaining == 1 {
				// The next token never fits.
				f.show(prefix)
				break
			}
			continue
		}

		prefix = candidate
		accepted += half
		remaining -= half
		if remaining == 0 {
			break
		}
	}

	res := Result{TotalTokens: len(words), Tokens: accepted}
	if accepted == len(words) {
		res.Text = prefix
		res.Checks = f.checks
		return res
	}

	res.Truncated = true
	for {
		f.show(prefix + req.Marker)
		if !f.overflows() {
			prefix += req.Marker
			res.MarkerShown = true
			break
		}
		if accepted == 0 {
			// The marker is wider than the box on its own.
			f.show(prefix)
			break
		}
		accepted--
		prefix = join(accepted)
	}
	res.Tokens = accepted

	if req.Append != nil {
		prefix += *req.Append
		f.show(prefix)
	}

	res.Text = prefix
	res.Checks = f.checks
	return res
}

// fitter counts measurements against one surface.
type fitter struct {
	surface Surface
	checks  int
}

func (f *fitter) show(text string) {
	f.surface.SetText(text)
}

func (f *fitter) overflows() bool {
	f.checks++
	return HasOverflow(f.surface.Metrics())
}
