package service

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// Estimate computes the expected output amount for swapping amountIn of src to
// dst against the pool's current reserves. Nothing is transferred.
func (s *PoolService) Estimate(_ context.Context, src, dst common.Address, amountIn math.Int) (math.Int, error) {
	s.logger.Debug("estimating swap", "src", src.Hex(), "dst", dst.Hex(), "in", amountIn.String())

	if src == dst {
		return math.Int{}, ErrSameToken
	}

	assetA, assetB := s.pool.Assets()
	reserveA, reserveB := s.pool.Reserves()

	var reserveIn, reserveOut math.Int
	switch {
	case src == assetA && dst == assetB:
		reserveIn, reserveOut = reserveA, reserveB
	case src == assetB && dst == assetA:
		reserveIn, reserveOut = reserveB, reserveA
	default:
		return math.Int{}, ErrPairMismatch
	}

	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.Int{}, ErrEmptyReserves
	}

	out, err := s.pool.GetAmountOut(amountIn, reserveIn, reserveOut)
	if err != nil {
		return math.Int{}, fmt.Errorf("amount out: %w", err)
	}
	s.logger.Debug("amount out computed", "out", out.String())
	return out, nil
}
