/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	crand "crypto/rand"
	"math/rand/v2"
)

func newRand() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}

	return rand.New(rand.NewChaCha8(seed))
}

// derange returns a permutation of 0..n-1 in which no index maps to itself,
// drawn uniformly from all such permutations. Shuffles containing a fixed
// point are redrawn; roughly e draws are needed on average for any n.
func derange(n int, rng *rand.Rand) ([]int, error) {
	if n < 2 {
		return nil, errCannotDerange
	}

	perm := make([]int, n)

	for {
		for i := range perm {
			perm[i] = i
		}

		rng.Shuffle(n, func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})

		if !hasFixedPoint(perm) {
			return perm, nil
		}
	}
}

func hasFixedPoint(perm []int) bool {
	for i, v := range perm {
		if i == v {
			return true
		}
	}

	return false
}
