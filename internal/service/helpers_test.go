package service

import (
	"io"
	"log/slog"
	"testing"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Siri-durga/dex-amm/internal/pool"
	"github.com/Siri-durga/dex-amm/internal/token"
)

var (
	token0   = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	token1   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	poolAddr = common.HexToAddress("0x0000000000000000000000000000000000000abc")
	alice    = common.HexToAddress("0x0000000000000000000000000000000000000001")
)

func newTestService(t *testing.T) (*PoolService, *token.Token, *token.Token) {
	t.Helper()
	tokA, tokB := token.New("TKA", token0), token.New("TKB", token1)
	p, err := pool.New(pool.Config{
		Address: poolAddr,
		AssetA:  token0,
		AssetB:  token1,
		LedgerA: tokA,
		LedgerB: tokB,
		FeeBps:  pool.DefaultFeeBps,
	}, pool.WithInvariantChecks())
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPoolService(logger, p, tokA, tokB), tokA, tokB
}

// fundAndApprove mints amount of both assets to who and approves the pool.
func fundAndApprove(t *testing.T, svc *PoolService, who common.Address, amount math.Int) {
	t.Helper()
	for _, asset := range []common.Address{token0, token1} {
		if err := svc.Mint(asset, who, amount); err != nil {
			t.Fatalf("mint: %v", err)
		}
		if err := svc.Approve(asset, who, amount); err != nil {
			t.Fatalf("approve: %v", err)
		}
	}
}
