// Package coins converts a balance into physical coin denominations.
package coins

// Denominations accepted by the machine, largest first.
// Every cost and deposit in the system is a multiple of 5, so any surplus
// is exactly representable.
var Denominations = []int{100, 50, 20, 10, 5}

// Change breaks a non-negative surplus into coins, greedy largest-first.
// Each denomination is visited once; whatever it does not divide carries to
// the next smaller one. A surplus of 0 yields an empty slice, not an error.
// If the surplus is not a multiple of 5 the unrepresentable remainder is
// silently dropped — callers guarantee that never happens.
func Change(surplus int) []int {
	change := []int{}
	for _, value := range Denominations {
		if surplus <= 0 {
			break
		}
		if value > surplus {
			continue
		}
		for i := 0; i < surplus/value; i++ {
			change = append(change, value)
		}
		surplus %= value
	}
	return change
}
