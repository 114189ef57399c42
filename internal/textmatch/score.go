// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textmatch

// AuthorNameScore returns the best PartialRatio between the normalized full
// name and any candidate author, trying three forms of the name: the full
// name, the last name alone, and "<initial> <last name>". This tolerates
// sources that reorder names or abbreviate given names. An empty author list
// or an empty name scores 0.
func AuthorNameScore(fullName string, authors []string) float64 {
	if len(authors) == 0 {
		return 0
	}
	full := Normalize(fullName)
	last, err := LastName(fullName)
	if err != nil {
		return 0
	}
	initial := string([]rune(full)[0])
	variants := [3]string{full, last, initial + " " + last}

	best := 0.0
	for _, author := range authors {
		normalized := Normalize(author)
		for _, v := range variants {
			best = max(best, PartialRatio(v, normalized))
		}
	}
	return best
}

// TitleScore returns the token-set similarity of the two normalized titles.
func TitleScore(a, b string) float64 {
	return TokenSetRatio(Normalize(a), Normalize(b))
}
