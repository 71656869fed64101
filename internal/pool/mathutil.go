package pool

import (
	"math/big"

	"cosmossdk.io/math"
)

const maxBits = 256

var maxUint256 = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), maxBits), big.NewInt(1)))

// positive treats the zero value of math.Int as not positive.
func positive(x math.Int) bool {
	return !x.IsNil() && x.IsPositive()
}

// fromBig converts b to a math.Int, rejecting values wider than 256 bits.
func fromBig(b *big.Int) (math.Int, error) {
	if b.BitLen() > maxBits {
		return math.ZeroInt(), ErrOverflow.Wrapf("%s exceeds %d bits", b, maxBits)
	}
	return math.NewIntFromBigInt(b), nil
}

// mulDiv returns a*b/c rounded down. The product is computed at full width
// so only the quotient has to fit in 256 bits.
func mulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.ZeroInt(), ErrInvalidPoolState.Wrap("division by zero")
	}
	r := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return fromBig(r.Quo(r, c.BigInt()))
}
