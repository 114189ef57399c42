// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleText = []string{
	"",
	"   ",
	"Deep-Learning: A Survey!",
	"  Hello,,,World  ",
	"Émile Zola",
	"snake_case_name",
	"C++ & Go",
	"İstanbul Üniversitesi",
	"ΣΟΦΙΑ",
	"O'Brien-Smith, J.",
	"tab\tand\nnewline",
	"2023: 10.1145/1234567",
}

// --- Normalize ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"punctuation runs", "Deep-Learning: A Survey!", "deep learning a survey"},
		{"collapse and trim", "  Hello,,,World  ", "hello world"},
		{"unicode letters kept", "Émile Zola", "émile zola"},
		{"underscore replaced", "snake_case", "snake case"},
		{"symbols only between words", "C++ & Go", "c go"},
		{"digits kept", "GPT-4 in 2023", "gpt 4 in 2023"},
		{"newlines collapse", "tab\tand\nnewline", "tab and newline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range sampleText {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestLastName(t *testing.T) {
	got, err := LastName("Jane A. Smith")
	require.NoError(t, err)
	assert.Equal(t, "smith", got)

	got, err = LastName("  ada   LOVELACE ")
	require.NoError(t, err)
	assert.Equal(t, "lovelace", got)

	for _, empty := range []string{"", "   ", "!!!"} {
		_, err := LastName(empty)
		assert.ErrorIs(t, err, ErrEmptyName, "input %q", empty)
	}
}

// --- Ratios ---

func TestRatio(t *testing.T) {
	assert.Equal(t, 100.0, Ratio("abc", "abc"))
	assert.Equal(t, 100.0, Ratio("", ""))
	assert.Equal(t, 0.0, Ratio("abc", ""))
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
	assert.InDelta(t, 75.0, Ratio("abcd", "abce"), 1e-9)
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"substring", "smith", "jane smith", 100},
		{"argument order ignored", "jane smith", "smith", 100},
		{"both empty", "", "", 100},
		{"one empty", "abc", "", 0},
		{"disjoint", "xyz", "abc", 0},
		{"edge overlap", "smithson", "j smith", 100 * 2 * 5.0 / 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PartialRatio(tt.a, tt.b), 0.01)
		})
	}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"reordered", "deep learning", "learning deep", 100},
		{"duplicates ignored", "deep deep learning", "learning deep", 100},
		{"subset", "a b c", "a b", 100},
		{"empty side", "", "anything", 0},
		{"both empty", "", "", 0},
		{"partial overlap", "apple pie", "apple tart", 100 * 10.0 / 14},
		{"contained", "abc", "abc xyz", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenSetRatio(tt.a, tt.b), 0.01)
		})
	}
}

func TestScoresBounded(t *testing.T) {
	for _, a := range sampleText {
		for _, b := range sampleText {
			for _, score := range []float64{
				Ratio(a, b), PartialRatio(a, b), TokenSetRatio(a, b), TitleScore(a, b),
				AuthorNameScore(a, []string{b}),
			} {
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 100.0)
			}
		}
	}
}

// --- Domain scores ---

func TestAuthorNameScore(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		authors  []string
		want     float64
	}{
		{"middle initial dropped by source", "Jane A. Smith", []string{"Jane Smith"}, 100},
		{"surname first", "John Smith", []string{"Smith, John"}, 100},
		{"initial form", "Jane Smith", []string{"Wu L", "J. Smith"}, 100},
		{"no authors", "John Doe", nil, 0},
		{"empty name", "", []string{"John Doe"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AuthorNameScore(tt.fullName, tt.authors), 0.01)
		})
	}
}

func TestAuthorNameScoreTakesBestAuthor(t *testing.T) {
	alone := AuthorNameScore("John Doe", []string{"Someone Else"})
	withMatch := AuthorNameScore("John Doe", []string{"Someone Else", "John Doe"})
	assert.Less(t, alone, 85.0)
	assert.Equal(t, 100.0, withMatch)
}

func TestTitleScore(t *testing.T) {
	assert.Equal(t, 100.0, TitleScore("Deep Learning for X", "deep learning for X."))
	assert.Equal(t, 100.0, TitleScore("Attention Is All You Need", "Attention is all you need"))
	assert.Equal(t, 0.0, TitleScore("", "Attention is all you need"))
	assert.Less(t, TitleScore("Deep Learning for X", "Zymurgy Quips"), 40.0)
}
