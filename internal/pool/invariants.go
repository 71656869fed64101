package pool

import (
	"cosmossdk.io/math"
)

// Validate checks the ledger invariants: every share balance is positive,
// shares sum to TotalShares, reserves are non-negative, and the reserves and
// the share supply are either all zero or all positive.
func (s *State) Validate() error {
	sum := math.ZeroInt()
	for provider, held := range s.shares {
		if !positive(held) {
			return ErrInvalidPoolState.Wrapf("provider %s holds %s shares", provider.Hex(), held)
		}
		var err error
		if sum, err = sum.SafeAdd(held); err != nil {
			return ErrInvalidPoolState.Wrapf("share sum: %v", err)
		}
	}
	if !sum.Equal(s.TotalShares) {
		return ErrInvalidPoolState.Wrapf("total shares %s != sum of shares %s", s.TotalShares, sum)
	}
	if s.ReserveA.IsNegative() || s.ReserveB.IsNegative() {
		return ErrInvalidPoolState.Wrapf("negative reserves %s/%s", s.ReserveA, s.ReserveB)
	}
	zeroA, zeroB, zeroT := s.ReserveA.IsZero(), s.ReserveB.IsZero(), s.TotalShares.IsZero()
	if zeroA != zeroB || zeroA != zeroT {
		return ErrInvalidPoolState.Wrapf("partially funded pool: reserves %s/%s, shares %s", s.ReserveA, s.ReserveB, s.TotalShares)
	}
	return nil
}

// CheckInvariants validates the currently published state.
func (p *Pool) CheckInvariants() error {
	return p.state.Load().Validate()
}
