package dedup

import "strings"

// Ratio computes a case-insensitive similarity measure in [0,1] between two
// strings: 2*LCS(a,b) / (len(a)+len(b)) over runes, where LCS is the longest
// common subsequence. Identical strings score 1, disjoint strings 0, and the
// measure is commutative.
func Ratio(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	return 2 * float64(lcs(ra, rb)) / float64(len(ra)+len(rb))
}

// lcs is the classic two-row DP; O(len(a)*len(b)) time, O(len(b)) space.
func lcs(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
