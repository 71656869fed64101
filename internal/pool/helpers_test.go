package pool

import (
	"context"
	"math/big"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/Siri-durga/dex-amm/internal/token"
)

var (
	poolAddr   = common.HexToAddress("0x0000000000000000000000000000000000000abc")
	assetAAddr = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	assetBAddr = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	owner      = common.HexToAddress("0x0000000000000000000000000000000000000001")
	addr1      = common.HexToAddress("0x0000000000000000000000000000000000000002")
	addr2      = common.HexToAddress("0x0000000000000000000000000000000000000003")
)

// eth returns n * 10^18.
func eth(n int64) math.Int {
	return math.NewIntWithDecimal(n, 18)
}

// tb is satisfied by *testing.T and *rapid.T.
type tb interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

type fixture struct {
	pool   *Pool
	tokenA *token.Token
	tokenB *token.Token
}

func newFixture(t tb, opts ...Option) *fixture {
	t.Helper()
	return newFixtureWithLedgers(t, nil, nil, opts...)
}

// newFixtureWithLedgers builds a pool over fresh tokens. Non-nil wrap
// functions replace the ledger the pool sees.
func newFixtureWithLedgers(t tb, wrapA, wrapB func(*token.Token) Asset, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		tokenA: token.New("TKA", assetAAddr),
		tokenB: token.New("TKB", assetBAddr),
	}
	var ledgerA, ledgerB Asset = f.tokenA, f.tokenB
	if wrapA != nil {
		ledgerA = wrapA(f.tokenA)
	}
	if wrapB != nil {
		ledgerB = wrapB(f.tokenB)
	}
	opts = append([]Option{WithInvariantChecks()}, opts...)
	p, err := New(Config{
		Address: poolAddr,
		AssetA:  assetAAddr,
		AssetB:  assetBAddr,
		LedgerA: ledgerA,
		LedgerB: ledgerB,
		FeeBps:  DefaultFeeBps,
	}, opts...)
	require.NoError(t, err)
	f.pool = p

	for _, who := range []common.Address{owner, addr1, addr2} {
		f.fund(t, who, eth(1_000_000))
	}
	return f
}

// fund mints amount of both assets to who and approves the pool for it.
func (f *fixture) fund(t tb, who common.Address, amount math.Int) {
	t.Helper()
	require.NoError(t, f.tokenA.Mint(who, amount))
	require.NoError(t, f.tokenB.Mint(who, amount))
	require.NoError(t, f.tokenA.Approve(who, poolAddr, f.tokenA.BalanceOf(who)))
	require.NoError(t, f.tokenB.Approve(who, poolAddr, f.tokenB.BalanceOf(who)))
}

// requireBacked checks that the pool's ledger balances cover its reserves.
func (f *fixture) requireBacked(t tb) {
	t.Helper()
	rA, rB := f.pool.Reserves()
	require.True(t, f.tokenA.BalanceOf(poolAddr).GTE(rA), "asset A balance below reserve")
	require.True(t, f.tokenB.BalanceOf(poolAddr).GTE(rB), "asset B balance below reserve")
	require.NoError(t, f.pool.CheckInvariants())
}

func (f *fixture) seed(t tb, a, b math.Int) math.Int {
	t.Helper()
	shares, err := f.pool.AddLiquidity(context.Background(), owner, a, b)
	require.NoError(t, err)
	return shares
}

func bigInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad big int " + s)
	}
	return v
}

// plainLedger hides the token's Checkpointer implementation so the pool
// falls back to compensating transfers.
type plainLedger struct{ t *token.Token }

func (l plainLedger) TransferFrom(ctx context.Context, spender, owner, recipient common.Address, amount math.Int) error {
	return l.t.TransferFrom(ctx, spender, owner, recipient, amount)
}

func (l plainLedger) Transfer(ctx context.Context, from, to common.Address, amount math.Int) error {
	return l.t.Transfer(ctx, from, to, amount)
}

func plain(t *token.Token) Asset { return plainLedger{t} }
