package pool

import (
	"maps"
	"math/big"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

type side int

const (
	sideA side = iota
	sideB
)

func (s side) other() side { return 1 - s }

func (s side) String() string {
	if s == sideA {
		return "A"
	}
	return "B"
}

// State is an immutable view of the reserve and share ledgers. A published
// State is never modified; operations build a new one and swap it in.
type State struct {
	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`

	shares map[common.Address]math.Int
}

func emptyState() *State {
	return &State{
		ReserveA:    math.ZeroInt(),
		ReserveB:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
		shares:      map[common.Address]math.Int{},
	}
}

// Empty reports whether the pool holds nothing.
func (s *State) Empty() bool {
	return s.TotalShares.IsZero() && s.ReserveA.IsZero() && s.ReserveB.IsZero()
}

// Shares returns the shares held by provider, zero if none.
func (s *State) Shares(provider common.Address) math.Int {
	if v, ok := s.shares[provider]; ok {
		return v
	}
	return math.ZeroInt()
}

// Providers returns a copy of the share ledger.
func (s *State) Providers() map[common.Address]math.Int {
	return maps.Clone(s.shares)
}

// K returns reserveA * reserveB. The product may exceed 256 bits.
func (s *State) K() *big.Int {
	return new(big.Int).Mul(s.ReserveA.BigInt(), s.ReserveB.BigInt())
}

// Price returns reserveB * PriceScale / reserveA, or zero for an empty pool.
// Ratios too large for 256 bits saturate at the maximum value.
func (s *State) Price() math.Int {
	if s.ReserveA.IsZero() {
		return math.ZeroInt()
	}
	price, err := mulDiv(s.ReserveB, PriceScale, s.ReserveA)
	if err != nil {
		return maxUint256
	}
	return price
}

func (s *State) reserve(sd side) math.Int {
	if sd == sideA {
		return s.ReserveA
	}
	return s.ReserveB
}

func (s *State) setReserve(sd side, v math.Int) {
	if sd == sideA {
		s.ReserveA = v
		return
	}
	s.ReserveB = v
}
