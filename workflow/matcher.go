package workflow

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minSuggestionScore is the floor below which a best match is considered
// noise and no suggestion is made.
const minSuggestionScore = 10

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName prepares a free-text ingredient name for comparison:
// lowercase, diacritics folded to ASCII, punctuation stripped, whitespace
// collapsed. "Zwiebeln, rot (groß)" and "zwiebeln rot gross" compare equal.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "ß", "ss")
	if folded, _, err := transform.String(foldTransformer, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func matchScore(name, candidate string) int {
	if name == "" || candidate == "" {
		return 0
	}
	score := 0
	if name == candidate {
		score += 100
	}
	if strings.Contains(name, candidate) || strings.Contains(candidate, name) {
		score += 50
	}
	nameTokens := strings.Fields(name)
	candidateTokens := make(map[string]bool)
	for _, t := range strings.Fields(candidate) {
		candidateTokens[t] = true
	}
	for _, t := range nameTokens {
		if candidateTokens[t] {
			score += 5
		}
	}
	return score
}

// Suggest returns the best-guess inventory article for a free-text recipe
// ingredient name, or "" when nothing scores above the noise floor. Ties go
// to the first-seen candidate, so repeated calls are deterministic. The
// result is a heuristic seed for human review, never an authoritative
// resolution.
func Suggest(name string, candidates []string) string {
	normalized := normalizeName(name)
	if normalized == "" {
		return ""
	}
	best := ""
	bestScore := 0
	for _, candidate := range candidates {
		score := matchScore(normalized, normalizeName(candidate))
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore < minSuggestionScore {
		return ""
	}
	return best
}
