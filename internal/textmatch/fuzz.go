// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textmatch

import (
	"sort"
	"strings"
)

// Ratio returns the normalized Indel similarity of a and b in [0, 100]:
// 100 * 2*LCS / (len(a)+len(b)), measured in runes. Two empty strings are
// identical and score 100.
func Ratio(a, b string) float64 {
	return ratioRunes([]rune(a), []rune(b))
}

func ratioRunes(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 100 * float64(2*lcsLength(a, b)) / float64(total)
}

// lcsLength returns the length of the longest common subsequence of a and b.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// PartialRatio returns the best Ratio between the shorter string and any
// window of the longer one. Windows are every substring of the shorter
// string's length, plus the shorter prefixes and suffixes where the short
// string only partially overlaps the long one. A single empty input scores 0.
func PartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	switch {
	case len(ra) == 0 && len(rb) == 0:
		return 100
	case len(ra) == 0 || len(rb) == 0:
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	best := partialWindows(ra, rb)
	// With equal lengths the edge windows differ by direction.
	if len(ra) == len(rb) && best < 100 {
		best = max(best, partialWindows(rb, ra))
	}
	return best
}

func partialWindows(short, long []rune) float64 {
	m, n := len(short), len(long)
	best := 0.0
	score := func(window []rune) bool {
		best = max(best, ratioRunes(short, window))
		return best == 100
	}
	for i := 1; i < m; i++ {
		if score(long[:i]) {
			return best
		}
	}
	for i := 0; i+m <= n; i++ {
		if score(long[i : i+m]) {
			return best
		}
	}
	for i := n - m + 1; i < n; i++ {
		if score(long[i:]) {
			return best
		}
	}
	return best
}

// TokenSetRatio compares the whitespace token sets of a and b, ignoring
// order and duplicates. If either side has no tokens the score is 0. If the
// sets share tokens and one is contained in the other the score is 100.
// Otherwise the score is the best Ratio among the sorted intersection and
// the intersection joined with each side's remaining tokens.
func TokenSetRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for t := range setA {
		if _, ok := setB[t]; ok {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range setB {
		if _, ok := setA[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}

	if len(common) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(common, " ")
	sectA := joinTokens(sect, strings.Join(onlyA, " "))
	sectB := joinTokens(sect, strings.Join(onlyB, " "))

	best := Ratio(sectA, sectB)
	if sect != "" {
		best = max(best, Ratio(sect, sectA), Ratio(sect, sectB))
	}
	return best
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		set[t] = struct{}{}
	}
	return set
}

func joinTokens(head, tail string) string {
	switch {
	case head == "":
		return tail
	case tail == "":
		return head
	default:
		return head + " " + tail
	}
}
