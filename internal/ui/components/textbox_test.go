// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/ellipsis-tui/internal/ellipsis"
)

// =============================================================================
// TEXT BOX TESTS
// =============================================================================

func TestTextBox_Metrics(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		wrap   WrapMode
		text   string
		want   ellipsis.BoxMetrics
	}{
		{
			name: "fits", width: 10, height: 1, text: "hello",
			want: ellipsis.BoxMetrics{ScrollWidth: 10, ClientWidth: 10, ScrollHeight: 1, ClientHeight: 1},
		},
		{
			name: "wraps to second line", width: 7, height: 1, text: "aaa bbb ccc",
			want: ellipsis.BoxMetrics{ScrollWidth: 7, ClientWidth: 7, ScrollHeight: 2, ClientHeight: 1},
		},
		{
			name: "long word overflows sideways", width: 5, height: 2, text: "abcdefghij",
			want: ellipsis.BoxMetrics{ScrollWidth: 10, ClientWidth: 5, ScrollHeight: 2, ClientHeight: 2},
		},
		{
			name: "no wrap", width: 3, height: 1, wrap: WrapNone, text: "a b c d",
			want: ellipsis.BoxMetrics{ScrollWidth: 7, ClientWidth: 3, ScrollHeight: 1, ClientHeight: 1},
		},
		{
			name: "no wrap keeps newlines", width: 10, height: 1, wrap: WrapNone, text: "a\nb",
			want: ellipsis.BoxMetrics{ScrollWidth: 10, ClientWidth: 10, ScrollHeight: 2, ClientHeight: 1},
		},
		{
			name: "wide runes", width: 4, height: 1, wrap: WrapNone, text: "日本語",
			want: ellipsis.BoxMetrics{ScrollWidth: 6, ClientWidth: 4, ScrollHeight: 1, ClientHeight: 1},
		},
		{
			name: "empty", width: 4, height: 2, text: "",
			want: ellipsis.BoxMetrics{ScrollWidth: 4, ClientWidth: 4, ScrollHeight: 2, ClientHeight: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewTextBox(tc.width, tc.height)
			b.SetWrap(tc.wrap)
			b.SetText(tc.text)

			if got := b.Metrics(); got != tc.want {
				t.Errorf("Metrics() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestTextBox_RelayoutOnResize(t *testing.T) {
	b := NewTextBox(20, 1)
	b.SetText("aaa bbb ccc")
	if ellipsis.HasOverflow(b.Metrics()) {
		t.Fatal("text should fit a 20-wide box")
	}

	b.SetSize(7, 1)
	if !ellipsis.HasOverflow(b.Metrics()) {
		t.Error("text should overflow after shrinking to 7")
	}
	if len(b.Lines()) != 2 {
		t.Errorf("Lines() = %q, want 2 lines", b.Lines())
	}
}

func TestTextBox_ViewClipsAndPads(t *testing.T) {
	b := NewTextBox(5, 2)
	b.SetWrap(WrapNone)
	b.SetText("abcdefghij")

	want := "abcde\n     "
	if got := b.View(); got != want {
		t.Errorf("View() = %q, want %q", got, want)
	}
}

func TestTextBox_ViewEmptyBox(t *testing.T) {
	b := NewTextBox(0, 3)
	b.SetText("anything")
	if got := b.View(); got != "" {
		t.Errorf("View() = %q, want empty", got)
	}
}

func TestTextBox_FitQuickBrown(t *testing.T) {
	b := NewTextBox(18, 1)
	text := "The quick brown fox jumps over the lazy dog"

	ellipsis.Fit(b, ellipsis.DefaultOptions().Request(&text))

	if b.Text() != "The quick brown..." {
		t.Errorf("Text() = %q, want %q", b.Text(), "The quick brown...")
	}
	if !strings.HasPrefix(b.View(), "The quick brown...") {
		t.Errorf("View() = %q", b.View())
	}
}

func TestTextBox_FitMultiline(t *testing.T) {
	b := NewTextBox(10, 2)
	text := "one two three four five six seven"

	res := ellipsis.Fit(b, ellipsis.DefaultOptions().Request(&text))

	if ellipsis.HasOverflow(b.Metrics()) {
		t.Errorf("fitted text %q still overflows", b.Text())
	}
	if !res.MarkerShown || !strings.HasSuffix(b.Text(), "...") {
		t.Errorf("expected marker, got %q", b.Text())
	}
	if res.Tokens == 0 {
		t.Error("a two-line box should hold at least one token")
	}
}

func TestTextBox_WrapsAfterHyphenatedWord(t *testing.T) {
	b := NewTextBox(9, 2)
	b.SetText("eeeee-ff a")

	lines := b.Lines()
	if len(lines) != 2 || lines[0] != "eeeee-ff" || lines[1] != "a" {
		t.Errorf("Lines() = %q, want [\"eeeee-ff\" \"a\"]", lines)
	}
	if ellipsis.HasOverflow(b.Metrics()) {
		t.Errorf("Metrics() = %+v, want no overflow", b.Metrics())
	}

	text := "eeeee-ff a"
	res := ellipsis.Fit(b, ellipsis.DefaultOptions().Request(&text))
	if res.Truncated || b.Text() != text {
		t.Errorf("Fit() left %q (truncated=%v), want the full text", b.Text(), res.Truncated)
	}
}

// TestTextBox_FitIsMaximalAndMonotonic runs Fit on real boxes across sizes.
// One more token plus the marker must always overflow, and a narrower box
// must never show more tokens than a wider one.
func TestTextBox_FitIsMaximalAndMonotonic(t *testing.T) {
	texts := []string{
		"The quick brown fox jumps over the lazy dog",
		"eeeee-ff a",
		"well-known off-by-one bugs re-appear in long-running jobs",
		"a  b   c    d",
		"  leading spaces then words",
		"x-y-z aa-bb c d-e",
		"日本語 テキスト を 折り返す",
	}
	marker := ellipsis.DefaultMarker

	for _, wrap := range []WrapMode{WrapWords, WrapNone} {
		for _, text := range texts {
			tokens := strings.Split(text, ellipsis.DefaultSeparator)
			for height := 1; height <= 3; height++ {
				prev := -1
				for width := 20; width >= 1; width-- {
					b := NewTextBox(width, height)
					b.SetWrap(wrap)
					text := text
					res := ellipsis.Fit(b, ellipsis.DefaultOptions().Request(&text))

					if res.Tokens < len(tokens) {
						next := strings.Join(tokens[:res.Tokens+1], ellipsis.DefaultSeparator) + marker
						more := NewTextBox(width, height)
						more.SetWrap(wrap)
						more.SetText(next)
						if !ellipsis.HasOverflow(more.Metrics()) {
							t.Errorf("%s %q at %dx%d: showed %d tokens but %q fits",
								wrap, text, width, height, res.Tokens, next)
						}
					}
					if prev >= 0 && res.Tokens > prev {
						t.Errorf("%s %q at %dx%d: %d tokens, wider box showed %d",
							wrap, text, width, height, res.Tokens, prev)
					}
					prev = res.Tokens
				}
			}
		}
	}
}

func TestParseWrapMode(t *testing.T) {
	tests := []struct {
		in      string
		want    WrapMode
		wantErr bool
	}{
		{"", WrapWords, false},
		{"word", WrapWords, false},
		{"NONE", WrapNone, false},
		{"nowrap", WrapNone, false},
		{"sideways", WrapWords, true},
	}

	for _, tc := range tests {
		got, err := ParseWrapMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseWrapMode(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseWrapMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if WrapNone.String() != "none" || WrapWords.String() != "word" {
		t.Error("WrapMode.String() mismatch")
	}
}
