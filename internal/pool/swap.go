package pool

import (
	"context"
	"math/big"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Siri-durga/dex-amm/pkg/uniswapv2"
)

// GetAmountOut prices a swap of amountIn against the given reserves:
//
//	amountOut = reserveOut*amountIn*(FeeDenom-feeBps) / (reserveIn*FeeDenom + amountIn*(FeeDenom-feeBps))
//
// The result always satisfies 0 < amountOut < reserveOut; inputs too small to
// produce any output fail with ErrInvalidAmount.
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int, feeBps uint64) (math.Int, error) {
	if !positive(amountIn) {
		return math.ZeroInt(), ErrInvalidAmount.Wrap("amount in must be positive")
	}
	if !positive(reserveIn) || !positive(reserveOut) {
		return math.ZeroInt(), ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}
	if feeBps >= FeeDenom {
		return math.ZeroInt(), ErrInvalidAmount.Wrapf("fee %d bps must be below %d", feeBps, FeeDenom)
	}

	var dst, t1, t2 big.Int
	out := uniswapv2.GetAmountOutFee(&dst, &t1, &t2, amountIn.BigInt(), reserveIn.BigInt(), reserveOut.BigInt(), feeBps)
	if out.Sign() == 0 {
		return math.ZeroInt(), ErrInvalidAmount.Wrapf("amount in %s too small for reserves %s/%s", amountIn, reserveIn, reserveOut)
	}
	return math.NewIntFromBigInt(out), nil
}

// GetAmountIn returns the smallest input that buys at least amountOut.
func GetAmountIn(amountOut, reserveIn, reserveOut math.Int, feeBps uint64) (math.Int, error) {
	if !positive(amountOut) {
		return math.ZeroInt(), ErrInvalidAmount.Wrap("amount out must be positive")
	}
	if !positive(reserveIn) || !positive(reserveOut) {
		return math.ZeroInt(), ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}
	if amountOut.GTE(reserveOut) {
		return math.ZeroInt(), ErrInsufficientLiquidity.Wrapf("amount out %s exceeds reserve %s", amountOut, reserveOut)
	}
	if feeBps >= FeeDenom {
		return math.ZeroInt(), ErrInvalidAmount.Wrapf("fee %d bps must be below %d", feeBps, FeeDenom)
	}

	var dst, t1, t2 big.Int
	return fromBig(uniswapv2.GetAmountIn(&dst, &t1, &t2, amountOut.BigInt(), reserveIn.BigInt(), reserveOut.BigInt(), feeBps))
}

// Quote returns the amount of asset B matching amountA at the given reserve
// ratio.
func Quote(amountA, reserveA, reserveB math.Int) (math.Int, error) {
	if !positive(amountA) {
		return math.ZeroInt(), ErrInvalidAmount.Wrap("amount must be positive")
	}
	if !positive(reserveA) || !positive(reserveB) {
		return math.ZeroInt(), ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserveA, reserveB)
	}
	return mulDiv(amountA, reserveB, reserveA)
}

// GetAmountOut prices a swap with the pool's fee.
func (p *Pool) GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	return GetAmountOut(amountIn, reserveIn, reserveOut, p.feeBps)
}

// GetAmountIn inverts GetAmountOut with the pool's fee.
func (p *Pool) GetAmountIn(amountOut, reserveIn, reserveOut math.Int) (math.Int, error) {
	return GetAmountIn(amountOut, reserveIn, reserveOut, p.feeBps)
}

// SwapAForB sells amountIn of asset A for asset B.
func (p *Pool) SwapAForB(ctx context.Context, trader common.Address, amountIn math.Int) (math.Int, error) {
	return p.Swap(ctx, trader, p.assets[sideA], amountIn, math.ZeroInt())
}

// SwapBForA sells amountIn of asset B for asset A.
func (p *Pool) SwapBForA(ctx context.Context, trader common.Address, amountIn math.Int) (math.Int, error) {
	return p.Swap(ctx, trader, p.assets[sideB], amountIn, math.ZeroInt())
}

// Swap sells amountIn of assetIn for the other asset. The swap fails with
// ErrSlippage if it would pay out less than minAmountOut.
//
// The input is pulled and the new reserves are published before the output
// is pushed to trader.
func (p *Pool) Swap(ctx context.Context, trader, assetIn common.Address, amountIn, minAmountOut math.Int) (math.Int, error) {
	var amountOut math.Int
	err := p.execute(ctx, opSwap, func(tx *txn) error {
		in, err := p.sideOf(assetIn)
		if err != nil {
			return err
		}
		out := in.other()
		if !positive(amountIn) {
			return ErrInvalidAmount.Wrapf("swap amount must be positive, got %s", amountIn)
		}

		s := tx.next
		reserveIn, reserveOut := s.reserve(in), s.reserve(out)
		if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
			return ErrInsufficientLiquidity.Wrap("pool is empty")
		}
		if amountOut, err = GetAmountOut(amountIn, reserveIn, reserveOut, p.feeBps); err != nil {
			return err
		}
		if !minAmountOut.IsNil() && amountOut.LT(minAmountOut) {
			return ErrSlippage.Wrapf("amount out %s below minimum %s", amountOut, minAmountOut)
		}

		if err := tx.pull(in, trader, amountIn); err != nil {
			return err
		}
		newReserveIn, err := reserveIn.SafeAdd(amountIn)
		if err != nil {
			return ErrOverflow.Wrapf("reserve %s: %v", in, err)
		}
		s.setReserve(in, newReserveIn)
		s.setReserve(out, reserveOut.Sub(amountOut))
		if err := tx.apply(); err != nil {
			return err
		}

		if err := tx.push(out, trader, amountOut); err != nil {
			return err
		}
		tx.emit(Swap{Trader: trader, AssetIn: assetIn, AmountIn: amountIn, AmountOut: amountOut})
		return nil
	})
	if err != nil {
		return math.ZeroInt(), err
	}

	p.logger.Debug("swap executed", "trader", trader.Hex(), "assetIn", assetIn.Hex(), "in", amountIn.String(), "out", amountOut.String())
	return amountOut, nil
}
