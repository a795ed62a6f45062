// Package lcm computes the hyperperiod of a task set: the least common
// multiple of all task periods, used as the default simulation horizon
// (spec §4.2, §6.1 -m default).
package lcm

// GCD returns the greatest common divisor of a and b via the Euclidean
// algorithm. Negative inputs are treated as their absolute value.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Pair returns the least common multiple of a and b, or 0 if both are 0.
func Pair(a, b int) int {
	g := GCD(a, b)
	if g == 0 {
		return 0
	}
	return a / g * b
}

// Of returns the least common multiple of every value in periods, or 0
// for an empty slice. Folds pairwise left to right rather than the
// reference implementation's tournament reduction — both converge to
// the same result, and a task set never has enough periods for the
// difference to matter.
func Of(periods []int) int {
	if len(periods) == 0 {
		return 0
	}
	result := periods[0]
	for _, p := range periods[1:] {
		result = Pair(result, p)
	}
	return result
}
