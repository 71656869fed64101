package pool

import (
	"context"
	"math/big"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Siri-durga/dex-amm/pkg/uniswapv2"
)

const (
	opAddLiquidity    = "add_liquidity"
	opRemoveLiquidity = "remove_liquidity"
	opSwap            = "swap"
)

// AddLiquidity pulls amountA and amountB from provider and mints shares.
//
// The first deposit mints isqrt(amountA*amountB) shares and fixes the initial
// price. Later deposits mint min(amountA*total/reserveA, amountB*total/reserveB);
// the part of an unbalanced deposit beyond the constraining side stays in the
// reserves and accrues to all providers.
func (p *Pool) AddLiquidity(ctx context.Context, provider common.Address, amountA, amountB math.Int) (math.Int, error) {
	var minted math.Int
	err := p.execute(ctx, opAddLiquidity, func(tx *txn) error {
		if !positive(amountA) || !positive(amountB) {
			return ErrInvalidAmount.Wrapf("liquidity amounts must be positive, got %s and %s", amountA, amountB)
		}
		s := tx.next

		var err error
		if minted, err = mintableShares(s, amountA, amountB); err != nil {
			return err
		}
		if err := tx.pull(sideA, provider, amountA); err != nil {
			return err
		}
		if err := tx.pull(sideB, provider, amountB); err != nil {
			return err
		}

		if s.ReserveA, err = s.ReserveA.SafeAdd(amountA); err != nil {
			return ErrOverflow.Wrapf("reserve A: %v", err)
		}
		if s.ReserveB, err = s.ReserveB.SafeAdd(amountB); err != nil {
			return ErrOverflow.Wrapf("reserve B: %v", err)
		}
		if s.TotalShares, err = s.TotalShares.SafeAdd(minted); err != nil {
			return ErrOverflow.Wrapf("total shares: %v", err)
		}
		tx.setShares(provider, s.Shares(provider).Add(minted))

		tx.emit(LiquidityAdded{Provider: provider, AmountA: amountA, AmountB: amountB, SharesMinted: minted})
		return tx.apply()
	})
	if err != nil {
		return math.ZeroInt(), err
	}

	p.logger.Debug("liquidity added", "provider", provider.Hex(), "amountA", amountA.String(), "amountB", amountB.String(), "shares", minted.String())
	return minted, nil
}

func mintableShares(s *State, amountA, amountB math.Int) (math.Int, error) {
	var minted math.Int
	if s.TotalShares.IsZero() {
		if !s.ReserveA.IsZero() || !s.ReserveB.IsZero() {
			return math.ZeroInt(), ErrInvalidPoolState.Wrap("pool has reserves but no shares")
		}
		product := new(big.Int).Mul(amountA.BigInt(), amountB.BigInt())
		root, err := fromBig(uniswapv2.Sqrt(new(big.Int), product))
		if err != nil {
			return math.ZeroInt(), err
		}
		minted = root
	} else {
		if s.ReserveA.IsZero() || s.ReserveB.IsZero() {
			return math.ZeroInt(), ErrInvalidPoolState.Wrap("pool has shares but zero reserves")
		}
		byA, err := mulDiv(amountA, s.TotalShares, s.ReserveA)
		if err != nil {
			return math.ZeroInt(), err
		}
		byB, err := mulDiv(amountB, s.TotalShares, s.ReserveB)
		if err != nil {
			return math.ZeroInt(), err
		}
		minted = math.MinInt(byA, byB)
	}
	if minted.IsZero() {
		return math.ZeroInt(), ErrInvalidAmount.Wrap("deposit too small to mint shares")
	}
	return minted, nil
}

// RemoveLiquidity burns shares held by provider and pays out the matching
// fraction of both reserves, rounded down.
func (p *Pool) RemoveLiquidity(ctx context.Context, provider common.Address, shares math.Int) (math.Int, math.Int, error) {
	var amountA, amountB math.Int
	err := p.execute(ctx, opRemoveLiquidity, func(tx *txn) error {
		if !positive(shares) {
			return ErrInvalidAmount.Wrapf("share amount must be positive, got %s", shares)
		}
		s := tx.next
		held := s.Shares(provider)
		if held.LT(shares) {
			return ErrInsufficientShares.Wrapf("%s holds %s shares, requested %s", provider.Hex(), held, shares)
		}

		var err error
		if amountA, err = mulDiv(s.ReserveA, shares, s.TotalShares); err != nil {
			return err
		}
		if amountB, err = mulDiv(s.ReserveB, shares, s.TotalShares); err != nil {
			return err
		}

		s.ReserveA = s.ReserveA.Sub(amountA)
		s.ReserveB = s.ReserveB.Sub(amountB)
		s.TotalShares = s.TotalShares.Sub(shares)
		tx.setShares(provider, held.Sub(shares))
		if err := tx.apply(); err != nil {
			return err
		}

		if amountA.IsPositive() {
			if err := tx.push(sideA, provider, amountA); err != nil {
				return err
			}
		}
		if amountB.IsPositive() {
			if err := tx.push(sideB, provider, amountB); err != nil {
				return err
			}
		}

		tx.emit(LiquidityRemoved{Provider: provider, AmountA: amountA, AmountB: amountB, SharesBurned: shares})
		return nil
	})
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	p.logger.Debug("liquidity removed", "provider", provider.Hex(), "amountA", amountA.String(), "amountB", amountB.String(), "shares", shares.String())
	return amountA, amountB, nil
}
