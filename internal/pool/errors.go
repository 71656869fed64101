package pool

import (
	"cosmossdk.io/errors"
)

// ModuleName is the error codespace of the pool.
const ModuleName = "amm"

// Pool sentinel errors
var (
	ErrInvalidAmount         = errors.Register(ModuleName, 1, "invalid amount")
	ErrInsufficientShares    = errors.Register(ModuleName, 2, "insufficient liquidity shares")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 3, "insufficient liquidity in pool")
	ErrTransferFailed        = errors.Register(ModuleName, 4, "asset transfer failed")
	ErrReentrancy            = errors.Register(ModuleName, 5, "reentrant call")
	ErrOverflow              = errors.Register(ModuleName, 6, "arithmetic overflow")
	ErrInvalidPoolState      = errors.Register(ModuleName, 7, "invalid pool state")
	ErrSlippage              = errors.Register(ModuleName, 8, "output amount less than minimum required")
	ErrInvalidAsset          = errors.Register(ModuleName, 9, "invalid asset")
)
