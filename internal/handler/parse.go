package handler

import (
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// parseAmount reads a base-10 uint256. Values that do not fit in 256 bits
// are rejected here so the pool never sees them.
func parseAmount(field, s string, allowZero bool) (math.Int, error) {
	if s == "" {
		return math.Int{}, NewAmountRequired(field)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return math.Int{}, NewInvalidAmount(field, err)
	}
	if !allowZero && v.IsZero() {
		return math.Int{}, NewAmountNonPositive(field)
	}
	return math.NewIntFromBigInt(v.ToBig()), nil
}

func parseAddress(field, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, NewAddressRequired(field)
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, NewInvalidAddress(field)
	}
	return common.HexToAddress(s), nil
}
