package match

import (
	"slices"
	"strings"
	"unicode"
)

// MinScore is the similarity below which a name is not suggested.
const MinScore = 0.5

// Fold lowercases s and drops separators.
func Fold(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Distance is the edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			up := row[i]

			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			row[i] = min(row[i]+1, row[i-1]+1, diag+cost)
			diag = up
		}
	}

	return row[len(ra)]
}

// Score returns the similarity of two names in [0, 1] after folding.
func Score(a, b string) float64 {
	fa, fb := Fold(a), Fold(b)

	longest := max(len([]rune(fa)), len([]rune(fb)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(fa, fb))/float64(longest)
}

// Suggest returns up to limit candidates that resemble name, best first.
// Ties are broken alphabetically. A limit <= 0 means no limit.
func Suggest(name string, candidates []string, limit int) []string {
	type ranked struct {
		name  string
		score float64
	}

	var found []ranked

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Score(name, c); s >= MinScore {
			found = append(found, ranked{name: c, score: s})
		}
	}

	slices.SortFunc(found, func(a, b ranked) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return strings.Compare(a.name, b.name)
		}
	})

	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}

	out := make([]string, len(found))
	for i, r := range found {
		out[i] = r.name
	}

	return out
}
