package uniswapv2

import "math/big"

// FeeDenom is the basis-point denominator used by the fee-aware helpers.
const FeeDenom = 10_000

// DefaultFeeBps is the Uniswap V2 pair fee: 0.3% => multiplier 9970/10000.
const DefaultFeeBps = 30

// GetAmountOut applies the Uniswap V2 pair formula with the default 0.3% fee.
func GetAmountOut(dst, t1, t2 *big.Int, amountIn, reserveIn, reserveOut *big.Int) *big.Int {
	return GetAmountOutFee(dst, t1, t2, amountIn, reserveIn, reserveOut, DefaultFeeBps)
}

// GetAmountOutFee computes
//
//	reserveOut * amountIn*(FeeDenom-feeBps) / (reserveIn*FeeDenom + amountIn*(FeeDenom-feeBps))
//
// dst, t1 and t2 are caller-owned temporaries and must not alias the inputs.
// Inputs are not validated; callers check for positive amounts and reserves.
func GetAmountOutFee(dst, t1, t2 *big.Int, amountIn, reserveIn, reserveOut *big.Int, feeBps uint64) *big.Int {
	// t1 = amountIn * (FeeDenom - feeBps)
	dst.SetUint64(FeeDenom - feeBps)
	t1.Mul(amountIn, dst)
	// t2 = reserveIn * FeeDenom + t1  (denominator)
	dst.SetUint64(FeeDenom)
	t2.Mul(reserveIn, dst)
	t2.Add(t2, t1)
	// dst = t1 * reserveOut (numerator)
	dst.Mul(t1, reserveOut)
	return dst.Div(dst, t2)
}

// GetAmountIn returns the smallest input that yields at least amountOut:
//
//	reserveIn*amountOut*FeeDenom / ((reserveOut-amountOut)*(FeeDenom-feeBps)) + 1
//
// Callers must ensure amountOut < reserveOut.
func GetAmountIn(dst, t1, t2 *big.Int, amountOut, reserveIn, reserveOut *big.Int, feeBps uint64) *big.Int {
	// t1 = reserveIn * amountOut * FeeDenom
	dst.SetUint64(FeeDenom)
	t1.Mul(reserveIn, amountOut)
	t1.Mul(t1, dst)
	// t2 = (reserveOut - amountOut) * (FeeDenom - feeBps)
	dst.SetUint64(FeeDenom - feeBps)
	t2.Sub(reserveOut, amountOut)
	t2.Mul(t2, dst)
	dst.Div(t1, t2)
	return dst.Add(dst, one)
}

// Quote returns the amount of the other asset that keeps the reserve ratio
// unchanged: amountA * reserveB / reserveA.
func Quote(dst *big.Int, amountA, reserveA, reserveB *big.Int) *big.Int {
	dst.Mul(amountA, reserveB)
	return dst.Div(dst, reserveA)
}

// Sqrt sets dst to floor(sqrt(x)).
func Sqrt(dst, x *big.Int) *big.Int {
	if x.Sign() <= 0 {
		return dst.SetUint64(0)
	}
	return dst.Sqrt(x)
}

var one = big.NewInt(1)
