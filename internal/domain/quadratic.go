package domain

// IntegerSqrt returns floor(sqrt(n)) using Newton's method on integers,
// matching the on-chain weight arithmetic exactly. No floating point.
func IntegerSqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// VoteWeight converts a staked token amount into quadratic voting weight.
func VoteWeight(stake uint64) uint64 {
	return IntegerSqrt(stake)
}
