package pool

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// Asset is the capability the pool needs from the ledger of a traded asset.
// The pool never mints, burns or inspects the supply of the asset.
type Asset interface {
	// TransferFrom moves amount from owner to recipient, spending the
	// allowance owner granted to spender.
	TransferFrom(ctx context.Context, spender, owner, recipient common.Address, amount math.Int) error
	// Transfer moves amount from the from account to the to account.
	Transfer(ctx context.Context, from, to common.Address, amount math.Int) error
}

// Checkpointer is implemented by ledgers that can undo the transfers made
// through the returned context. When a ledger is not a Checkpointer the pool
// falls back to compensating transfers.
type Checkpointer interface {
	Checkpoint(ctx context.Context) (context.Context, func() error)
}
