package ds

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// NearestDivisibleByM returns the smallest value that is not less than n
// and is divisible by m. It is what descriptor sizes are quantized with:
//
//	NearestDivisibleByM(13, 4) == 16
//	NearestDivisibleByM(16, 4) == 16
func NearestDivisibleByM[T constraints.Integer](n T, m T) T {
	if m <= 0 {
		err := fmt.Errorf(
			`NearestDivisibleByM invalid divisor with n = %d and m = %d`,
			n, m,
		)
		panic(err)
	}
	remainder := n % m
	if remainder == 0 {
		return n
	}
	return n + (m - remainder)
}
