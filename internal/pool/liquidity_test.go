package pool

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestAddLiquidity_Initial(t *testing.T) {
	f := newFixture(t)

	shares := f.seed(t, eth(100), eth(200))

	require.Equal(t, "141421356237309504880", shares.String())
	rA, rB := f.pool.Reserves()
	require.True(t, rA.Equal(eth(100)))
	require.True(t, rB.Equal(eth(200)))
	require.True(t, f.pool.Liquidity(owner).Equal(shares))
	require.True(t, f.pool.TotalLiquidity().Equal(shares))
	require.True(t, f.tokenA.BalanceOf(poolAddr).Equal(eth(100)))
	require.True(t, f.tokenB.BalanceOf(poolAddr).Equal(eth(200)))
	f.requireBacked(t)
}

func TestAddLiquidity_SubsequentKeepsPrice(t *testing.T) {
	f := newFixture(t)
	f.seed(t, eth(100), eth(200))
	before := f.pool.Price()

	shares, err := f.pool.AddLiquidity(context.Background(), addr1, eth(50), eth(100))
	require.NoError(t, err)
	require.Equal(t, "70710678118654752440", shares.String())
	require.True(t, before.Equal(f.pool.Price()))
	require.Equal(t, "212132034355964257320", f.pool.TotalLiquidity().String())
	f.requireBacked(t)
}

func TestAddLiquidity_UnbalancedCreditsConstrainingSide(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed(t, eth(100), eth(200))

	shares, err := f.pool.AddLiquidity(context.Background(), addr1, eth(50), eth(200))
	require.NoError(t, err)
	require.True(t, shares.Equal(seeded.QuoRaw(2)))

	rA, rB := f.pool.Reserves()
	require.True(t, rA.Equal(eth(150)))
	require.True(t, rB.Equal(eth(400)), "excess B stays in the reserves")
	f.requireBacked(t)
}

func TestAddLiquidity_ZeroAmounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name string
		a, b math.Int
	}{
		{"both zero", math.ZeroInt(), math.ZeroInt()},
		{"zero A", math.ZeroInt(), eth(1)},
		{"zero B", eth(1), math.ZeroInt()},
		{"unset", math.Int{}, eth(1)},
		{"negative", math.NewInt(-1), eth(1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.pool.AddLiquidity(ctx, owner, tc.a, tc.b)
			require.ErrorIs(t, err, ErrInvalidAmount)
			require.True(t, f.pool.Snapshot().Empty())
		})
	}
	require.Empty(t, f.pool.Events())
}

func TestAddLiquidity_VerySmallAndVeryLarge(t *testing.T) {
	f := newFixture(t)
	shares, err := f.pool.AddLiquidity(context.Background(), owner, math.NewInt(1), math.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, "1", shares.String())

	g := newFixture(t)
	shares, err = g.pool.AddLiquidity(context.Background(), owner, eth(100_000), eth(200_000))
	require.NoError(t, err)
	require.True(t, shares.IsPositive())
	g.requireBacked(t)
}

func TestAddLiquidity_TooSmallToMint(t *testing.T) {
	f := newFixture(t)
	f.seed(t, eth(100), eth(200))

	_, err := f.pool.AddLiquidity(context.Background(), addr1, math.NewInt(1), math.NewInt(1))
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.True(t, f.pool.Liquidity(addr1).IsZero())
}

func TestAddLiquidity_TransferFailedRefundsFirstPull(t *testing.T) {
	for name, wrap := range map[string]bool{"checkpointed": false, "compensated": true} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			if wrap {
				f = newFixtureWithLedgers(t, plain, plain)
			}
			poor := common.HexToAddress("0x00000000000000000000000000000000000000ff")
			require.NoError(t, f.tokenA.Mint(poor, eth(10)))
			require.NoError(t, f.tokenB.Mint(poor, eth(10)))
			require.NoError(t, f.tokenA.Approve(poor, poolAddr, eth(10)))
			// no allowance for B

			_, err := f.pool.AddLiquidity(context.Background(), poor, eth(5), eth(5))
			require.ErrorIs(t, err, ErrTransferFailed)

			require.True(t, f.tokenA.BalanceOf(poor).Equal(eth(10)))
			require.True(t, f.tokenA.BalanceOf(poolAddr).IsZero())
			require.True(t, f.pool.Snapshot().Empty())
			require.Empty(t, f.pool.Events())
		})
	}
}

func TestRemoveLiquidity_Partial(t *testing.T) {
	f := newFixture(t)
	shares := f.seed(t, eth(100), eth(200))

	half := shares.QuoRaw(2)
	amountA, amountB, err := f.pool.RemoveLiquidity(context.Background(), owner, half)
	require.NoError(t, err)
	require.True(t, amountA.Equal(eth(50)))
	require.True(t, amountB.Equal(eth(100)))
	require.True(t, f.pool.Liquidity(owner).Equal(shares.Sub(half)))
	f.requireBacked(t)
}

func TestRemoveLiquidity_FullWithdrawalEmptiesPool(t *testing.T) {
	f := newFixture(t)
	balanceA, balanceB := f.tokenA.BalanceOf(owner), f.tokenB.BalanceOf(owner)
	shares := f.seed(t, eth(100), eth(200))

	amountA, amountB, err := f.pool.RemoveLiquidity(context.Background(), owner, shares)
	require.NoError(t, err)
	require.True(t, amountA.Equal(eth(100)))
	require.True(t, amountB.Equal(eth(200)))

	rA, rB := f.pool.Reserves()
	require.True(t, rA.IsZero())
	require.True(t, rB.IsZero())
	require.True(t, f.pool.TotalLiquidity().IsZero())
	require.True(t, f.pool.Snapshot().Empty())
	require.Empty(t, f.pool.Snapshot().Providers())
	require.True(t, f.tokenA.BalanceOf(owner).Equal(balanceA))
	require.True(t, f.tokenB.BalanceOf(owner).Equal(balanceB))

	// the pool can be seeded again at a new ratio
	f.seed(t, eth(10), eth(10))
	require.True(t, f.pool.Price().Equal(PriceScale))
}

func TestRemoveLiquidity_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.pool.RemoveLiquidity(ctx, owner, math.NewInt(1))
	require.ErrorIs(t, err, ErrInsufficientShares, "empty pool")

	shares := f.seed(t, eth(100), eth(200))

	_, _, err = f.pool.RemoveLiquidity(ctx, addr1, math.NewInt(1))
	require.ErrorIs(t, err, ErrInsufficientShares, "caller holds no shares")

	_, _, err = f.pool.RemoveLiquidity(ctx, owner, shares.AddRaw(1))
	require.ErrorIs(t, err, ErrInsufficientShares, "more than owned")

	_, _, err = f.pool.RemoveLiquidity(ctx, owner, math.ZeroInt())
	require.ErrorIs(t, err, ErrInvalidAmount)

	require.True(t, f.pool.Liquidity(owner).Equal(shares))
	require.Len(t, f.pool.Events(), 1)
}

func TestLiquidity_FeesAccrueToProviders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shares := f.seed(t, eth(100), eth(200))
	k0 := f.pool.K()

	_, err := f.pool.SwapAForB(ctx, addr2, eth(10))
	require.NoError(t, err)
	_, err = f.pool.SwapBForA(ctx, addr2, eth(18))
	require.NoError(t, err)
	require.Equal(t, 1, f.pool.K().Cmp(k0))

	amountA, amountB, err := f.pool.RemoveLiquidity(ctx, owner, shares)
	require.NoError(t, err)
	// the round trip leaves the provider with more value at the withdrawal price
	got := bigInt(amountA.String())
	got.Mul(got, bigInt(amountB.String()))
	require.Equal(t, 1, got.Cmp(k0))
}
