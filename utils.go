package jamdeck

import (
	"fmt"
	"math/rand"
)

// Returns the integers in [start, end) in a random order.
func ShuffleIntRange(start, end int) []int {
	if end < start {
		panic(fmt.Errorf("start > end (%d > %d)", start, end))
	}

	slice := make([]int, end-start)
	for i := range slice {
		slice[i] = start + i
	}

	for end := len(slice); end > 0; end-- {
		randomIndex := rand.Intn(end)
		slice[randomIndex], slice[end-1] = slice[end-1], slice[randomIndex]
	}

	return slice
}
