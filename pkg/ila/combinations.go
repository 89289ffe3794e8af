/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: combinations.go
Description: Attribute-subset enumeration for the induction search. Produces every size-k
subset of attribute indexes in lexicographic order, which fixes the search tie-break.
*/

package ila

// Combinations returns all k-element subsets of {0..n-1} in lexicographic order.
// It returns nil when k < 1 or k > n.
func Combinations(n, k int) [][]int {
	if k < 1 || k > n {
		return nil
	}

	var out [][]int
	comb := make([]int, k)
	for i := range comb {
		comb[i] = i
	}

	for {
		out = append(out, append([]int(nil), comb...))

		// rightmost position that can still move forward
		i := k - 1
		for i >= 0 && comb[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		comb[i]++
		for j := i + 1; j < k; j++ {
			comb[j] = comb[j-1] + 1
		}
	}
}
