// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ellipsis

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// =============================================================================
// TEST SURFACES
// =============================================================================

// lineSurface is a single-row box that never wraps. Its content width is the
// rune count of the displayed text.
type lineSurface struct {
	width   int
	text    string
	history []string
}

func newLineSurface(width int, initial string) *lineSurface {
	return &lineSurface{width: width, text: initial}
}

func (s *lineSurface) SetText(text string) {
	s.text = text
	s.history = append(s.history, text)
}

func (s *lineSurface) Metrics() BoxMetrics {
	w := utf8.RuneCountInString(s.text)
	if w < s.width {
		w = s.width
	}
	return BoxMetrics{ScrollWidth: w, ClientWidth: s.width, ScrollHeight: 1, ClientHeight: 1}
}

// scriptedSurface answers overflow checks from a fixed script.
type scriptedSurface struct {
	script []bool
	calls  int
	text   string
}

func (s *scriptedSurface) SetText(text string) { s.text = text }

func (s *scriptedSurface) Metrics() BoxMetrics {
	over := false
	if s.calls < len(s.script) {
		over = s.script[s.calls]
	}
	s.calls++
	if over {
		return BoxMetrics{ScrollWidth: 2, ClientWidth: 1, ScrollHeight: 1, ClientHeight: 1}
	}
	return BoxMetrics{ScrollWidth: 1, ClientWidth: 1, ScrollHeight: 1, ClientHeight: 1}
}

const fox = "The quick brown fox jumps over the lazy dog"

func request(text string) Request {
	return DefaultOptions().Request(&text)
}

// =============================================================================
// FIT TESTS
// =============================================================================

func TestHasOverflow(t *testing.T) {
	tests := []struct {
		name string
		box  BoxMetrics
		want bool
	}{
		{"exact fit", BoxMetrics{10, 10, 2, 2}, false},
		{"smaller", BoxMetrics{5, 10, 1, 2}, false},
		{"too wide", BoxMetrics{11, 10, 2, 2}, true},
		{"too tall", BoxMetrics{10, 10, 3, 2}, true},
		{"both", BoxMetrics{11, 10, 3, 2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasOverflow(tc.box); got != tc.want {
				t.Errorf("HasOverflow(%+v) = %v, want %v", tc.box, got, tc.want)
			}
		})
	}
}

func TestFit_TextFits(t *testing.T) {
	s := newLineSurface(len(fox), "")
	res := Fit(s, request(fox))

	if s.text != fox {
		t.Errorf("displayed = %q, want %q", s.text, fox)
	}
	if res.Truncated || res.MarkerShown {
		t.Errorf("fitting text should not be truncated: %+v", res)
	}
	if res.Checks != 1 {
		t.Errorf("Checks = %d, want 1", res.Checks)
	}
	if res.Tokens != 9 || res.TotalTokens != 9 {
		t.Errorf("Tokens = %d/%d, want 9/9", res.Tokens, res.TotalTokens)
	}
}

func TestFit_QuickBrownScenario(t *testing.T) {
	s := newLineSurface(len("The quick brown..."), "")
	res := Fit(s, request(fox))

	if s.text != "The quick brown..." {
		t.Errorf("displayed = %q, want %q", s.text, "The quick brown...")
	}
	if !res.Truncated || !res.MarkerShown {
		t.Errorf("expected truncation with marker: %+v", res)
	}
	if res.Tokens != 3 {
		t.Errorf("Tokens = %d, want 3", res.Tokens)
	}
	if res.Text != s.text {
		t.Errorf("Result.Text = %q, displayed %q", res.Text, s.text)
	}
}

func TestFit_NilTextLeavesSurfaceAlone(t *testing.T) {
	s := newLineSurface(5, "previous")
	res := Fit(s, Request{Separator: " ", Marker: "..."})

	if !res.Skipped {
		t.Error("nil text should be reported as skipped")
	}
	if s.text != "previous" {
		t.Errorf("displayed = %q, want unchanged %q", s.text, "previous")
	}
	if len(s.history) != 0 {
		t.Errorf("surface was written %d times, want 0", len(s.history))
	}
}

func TestFit_EmptyText(t *testing.T) {
	s := newLineSurface(5, "previous")
	res := Fit(s, request(""))

	if s.text != "" {
		t.Errorf("displayed = %q, want empty", s.text)
	}
	if res.Checks != 0 {
		t.Errorf("empty text should not be measured, got %d checks", res.Checks)
	}
}

func TestFit_MarkerDoesNotFitAlone(t *testing.T) {
	s := newLineSurface(2, "")
	res := Fit(s, request("abc def"))

	if s.text != "" {
		t.Errorf("displayed = %q, want empty", s.text)
	}
	if res.MarkerShown {
		t.Error("marker should not be shown when it cannot fit")
	}
	if !res.Truncated {
		t.Error("result should still be marked truncated")
	}
}

func TestFit_SingleOverflowingToken(t *testing.T) {
	s := newLineSurface(5, "")
	res := Fit(s, request("Supercalifragilistic"))

	if s.text != "..." {
		t.Errorf("displayed = %q, want %q", s.text, "...")
	}
	if res.Tokens != 0 {
		t.Errorf("Tokens = %d, want 0", res.Tokens)
	}

	// The lone token is measured once in full and once by the search,
	// then the empty prefix plus marker.
	want := []string{"Supercalifragilistic", "Supercalifragilistic", "", "..."}
	if strings.Join(s.history, "|") != strings.Join(want, "|") {
		t.Errorf("history = %q, want %q", s.history, want)
	}
}

func TestFit_MarkerForcesShrink(t *testing.T) {
	s := newLineSurface(7, "")
	res := Fit(s, request("aa bb cc dd"))

	if s.text != "aa..." {
		t.Errorf("displayed = %q, want %q", s.text, "aa...")
	}
	if res.Tokens != 1 {
		t.Errorf("Tokens = %d, want 1", res.Tokens)
	}
}

func TestFit_AppendIsNotMeasured(t *testing.T) {
	opts := DefaultOptions()
	opts.Append = String(" (more)")
	text := fox

	s := newLineSurface(len("The quick brown..."), "")
	res := Fit(s, opts.Request(&text))

	want := "The quick brown... (more)"
	if s.text != want {
		t.Errorf("displayed = %q, want %q", s.text, want)
	}
	if res.Text != want {
		t.Errorf("Result.Text = %q, want %q", res.Text, want)
	}
}

func TestFit_AppendAfterBarePrefix(t *testing.T) {
	opts := DefaultOptions()
	opts.Append = String("!")
	text := "abc def"

	s := newLineSurface(2, "")
	Fit(s, opts.Request(&text))

	if s.text != "!" {
		t.Errorf("displayed = %q, want %q", s.text, "!")
	}
}

func TestFit_AppendIgnoredWhenTextFits(t *testing.T) {
	opts := DefaultOptions()
	opts.Append = String(" (more)")
	text := "short"

	s := newLineSurface(10, "")
	Fit(s, opts.Request(&text))

	if s.text != "short" {
		t.Errorf("displayed = %q, want %q", s.text, "short")
	}
}

func TestFit_SearchAcceptsEverything(t *testing.T) {
	// Full text overflows at first, then every prefix fits.
	s := &scriptedSurface{script: []bool{true, false, false}}
	res := Fit(s, request("a b"))

	if s.text != "a b" {
		t.Errorf("displayed = %q, want %q", s.text, "a b")
	}
	if res.Truncated || res.MarkerShown {
		t.Errorf("no marker expected: %+v", res)
	}
	if res.Tokens != 2 {
		t.Errorf("Tokens = %d, want 2", res.Tokens)
	}
}

func TestFit_EmptySeparatorSplitsCharacters(t *testing.T) {
	text := "abcdef"
	s := newLineSurface(4, "")
	Fit(s, Request{Text: &text, Separator: "", Marker: "..."})

	if s.text != "a..." {
		t.Errorf("displayed = %q, want %q", s.text, "a...")
	}
}

func TestFit_CustomSeparatorAndMarker(t *testing.T) {
	text := "alpha,beta,gamma,delta"
	s := newLineSurface(12, "")
	Fit(s, Request{Text: &text, Separator: ",", Marker: "…"})

	if s.text != "alpha,beta…" {
		t.Errorf("displayed = %q, want %q", s.text, "alpha,beta…")
	}
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestFit_PrefixIsMaximal(t *testing.T) {
	words := strings.Split(fox, " ")

	for width := 0; width <= len(fox)+2; width++ {
		s := newLineSurface(width, "")
		res := Fit(s, request(fox))

		if width >= len(fox) {
			if s.text != fox {
				t.Errorf("width %d: displayed = %q, want full text", width, s.text)
			}
			continue
		}
		if width < len(DefaultMarker) {
			if s.text != "" {
				t.Errorf("width %d: displayed = %q, want empty", width, s.text)
			}
			continue
		}

		prefix := strings.Join(words[:res.Tokens], " ")
		if s.text != prefix+DefaultMarker {
			t.Errorf("width %d: displayed = %q, want %q", width, s.text, prefix+DefaultMarker)
		}
		if len(s.text) > width {
			t.Errorf("width %d: %q overflows", width, s.text)
		}
		next := strings.Join(words[:res.Tokens+1], " ") + DefaultMarker
		if len(next) <= width {
			t.Errorf("width %d: %q would also fit, prefix not maximal", width, next)
		}
	}
}

func TestFit_Monotonic(t *testing.T) {
	last := -1
	for width := len(fox) + 5; width >= 0; width-- {
		res := Fit(newLineSurface(width, ""), request(fox))
		if last >= 0 && res.Tokens > last {
			t.Fatalf("width %d shows %d tokens, wider box showed %d", width, res.Tokens, last)
		}
		last = res.Tokens
	}
}

func TestFit_Idempotent(t *testing.T) {
	s := newLineSurface(20, "")
	first := Fit(s, request(fox))
	shown := s.text
	second := Fit(s, request(fox))

	if s.text != shown {
		t.Errorf("second fit displayed %q, first %q", s.text, shown)
	}
	if first.Text != second.Text || first.Tokens != second.Tokens {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestFit_LogarithmicChecks(t *testing.T) {
	words := make([]string, 1024)
	for i := range words {
		words[i] = "w"
	}
	text := strings.Join(words, " ")

	s := newLineSurface(301, "")
	res := Fit(s, request(text))

	if !res.MarkerShown {
		t.Fatalf("expected truncation: %+v", res)
	}
	if res.Checks > 20 {
		t.Errorf("Checks = %d, want logarithmic in token count", res.Checks)
	}
}
