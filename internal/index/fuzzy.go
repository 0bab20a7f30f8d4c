package index

import (
	"sort"
	"strings"
)

// levenshtein computes edit distance with the classic two-row table.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// similarity maps edit distance into [0,1], 1 meaning identical.
func similarity(a, b string) float64 {
	la, lb := len(a), len(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

type fuzzyHit struct {
	name  string
	score float64
}

// rankSimilar scores candidates against name case-insensitively and
// returns the top maxResults at or above cutoff. Ties break
// lexicographically so suggestions are stable across runs.
func rankSimilar(name string, candidates []string, maxResults int, cutoff float64) []string {
	lower := strings.ToLower(name)
	var hits []fuzzyHit
	for _, c := range candidates {
		if c == name {
			continue
		}
		s := similarity(lower, strings.ToLower(c))
		if s >= cutoff {
			hits = append(hits, fuzzyHit{name: c, score: s})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].name < hits[j].name
	})
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
