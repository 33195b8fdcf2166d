package match

import "sort"

// DefaultMinScore is the similarity below which a name is not suggested.
const DefaultMinScore = 0.5

// maxSuggestions caps the number of names returned by Suggest.
const maxSuggestions = 3

// Candidate is a known name scored against a misspelled one.
type Candidate struct {
	Name       string
	Score      float64 // Normalized Levenshtein similarity (0-1)
	Normalized string
}

// CandidateList is a list of candidates ordered by descending score.
type CandidateList []Candidate

// RankNames scores every known name against got and returns them sorted by
// score (descending), then by name for determinism.
func RankNames(got string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		candidates = append(candidates, Candidate{
			Name:       name,
			Score:      NormalizedLevenshteinScore(got, name),
			Normalized: NormalizeIdent(name),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to three known names at least minScore similar to got.
// Exact matches are never suggested.
func Suggest(got string, known []string, minScore float64) []string {
	var out []string

	for _, c := range RankNames(got, known) {
		if c.Score < minScore || len(out) == maxSuggestions {
			break
		}

		if c.Name == got {
			continue
		}

		out = append(out, c.Name)
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}
