package coins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChange(t *testing.T) {
	tests := []struct {
		name    string
		surplus int
		want    []int
	}{
		{name: "zero yields empty", surplus: 0, want: []int{}},
		{name: "single smallest coin", surplus: 5, want: []int{5}},
		{name: "single largest coin", surplus: 100, want: []int{100}},
		{name: "remainder carries down", surplus: 85, want: []int{50, 20, 10, 5}},
		{name: "repeated large coins", surplus: 250, want: []int{100, 100, 50}},
		{name: "all denominations", surplus: 185, want: []int{100, 50, 20, 10, 5}},
		{name: "skips too-large denominations", surplus: 15, want: []int{10, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Change(tt.surplus))
		})
	}
}

// Any multiple of 5 must break down into coins that sum back exactly, using
// only denominations no larger than the surplus itself.
func TestChangeSumsExactly(t *testing.T) {
	for surplus := 0; surplus <= 1000; surplus += 5 {
		got := Change(surplus)

		sum := 0
		for _, c := range got {
			sum += c
			assert.LessOrEqual(t, c, surplus, "coin larger than surplus %d", surplus)
		}
		assert.Equal(t, surplus, sum, "change for %d does not sum back", surplus)
	}
}

func TestChangeLargestFirst(t *testing.T) {
	got := Change(375)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1], got[i], "change not ordered largest first: %v", got)
	}
}
