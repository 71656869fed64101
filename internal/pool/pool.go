package pool

import (
	"io"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/Siri-durga/dex-amm/internal/metrics"
	"github.com/Siri-durga/dex-amm/pkg/uniswapv2"
)

const (
	// FeeDenom is the denominator of the swap fee.
	FeeDenom = uniswapv2.FeeDenom
	// DefaultFeeBps retains 0.3% of every swap input in the pool.
	DefaultFeeBps = uniswapv2.DefaultFeeBps
)

// PriceScale is the fixed-point factor of Price.
var PriceScale = math.NewIntWithDecimal(1, 18)

// Config describes a pool deployment.
type Config struct {
	// Address is the account holding the pool's assets on both ledgers.
	Address common.Address
	AssetA  common.Address
	AssetB  common.Address
	LedgerA Asset
	LedgerB Asset
	FeeBps  uint64
}

// Option configures optional Pool behaviour.
type Option func(*Pool)

// WithLogger sets the logger used for debug traces of operations.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) { p.logger = logger }
}

// WithMetrics records operations in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pool) { p.metrics = m }
}

// WithInvariantChecks validates the ledger invariants before every state is
// published and aborts the operation with ErrInvalidPoolState on violation.
func WithInvariantChecks() Option {
	return func(p *Pool) { p.checkInvariants = true }
}

// Pool is a two-asset constant-product market maker. Read methods are safe
// for concurrent use; mutating methods must not overlap.
type Pool struct {
	address common.Address
	assets  [2]common.Address
	ledgers [2]Asset
	feeBps  uint64

	busy  atomic.Bool // set while a mutating operation runs
	state atomic.Pointer[State]

	logMu sync.RWMutex
	log   []Event
	feed  event.Feed

	logger          *slog.Logger
	metrics         *metrics.Metrics
	checkInvariants bool
}

// New creates an empty pool.
func New(cfg Config, opts ...Option) (*Pool, error) {
	var zero common.Address
	switch {
	case cfg.AssetA == zero || cfg.AssetB == zero:
		return nil, ErrInvalidAsset.Wrap("asset address must be set")
	case cfg.AssetA == cfg.AssetB:
		return nil, ErrInvalidAsset.Wrapf("assets must differ, both are %s", cfg.AssetA.Hex())
	case cfg.LedgerA == nil || cfg.LedgerB == nil:
		return nil, ErrInvalidAsset.Wrap("ledger must be set for both assets")
	case cfg.Address == zero:
		return nil, ErrInvalidAsset.Wrap("pool address must be set")
	case cfg.FeeBps >= FeeDenom:
		return nil, ErrInvalidAmount.Wrapf("fee %d bps must be below %d", cfg.FeeBps, FeeDenom)
	}

	p := &Pool{
		address: cfg.Address,
		assets:  [2]common.Address{cfg.AssetA, cfg.AssetB},
		ledgers: [2]Asset{cfg.LedgerA, cfg.LedgerB},
		feeBps:  cfg.FeeBps,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.state.Store(emptyState())
	return p, nil
}

// Address returns the pool's account.
func (p *Pool) Address() common.Address { return p.address }

// Assets returns the addresses of asset A and asset B.
func (p *Pool) Assets() (common.Address, common.Address) { return p.assets[sideA], p.assets[sideB] }

// FeeBps returns the swap fee in basis points of FeeDenom.
func (p *Pool) FeeBps() uint64 { return p.feeBps }

// Snapshot returns a copy of the last published state. Changing it has no
// effect on the pool.
func (p *Pool) Snapshot() *State {
	s := *p.state.Load()
	return &s
}

// Reserves returns (reserveA, reserveB).
func (p *Pool) Reserves() (math.Int, math.Int) {
	s := p.state.Load()
	return s.ReserveA, s.ReserveB
}

// Price returns the spot price of asset A in units of asset B scaled by
// PriceScale. It is zero for an empty pool.
func (p *Pool) Price() math.Int { return p.state.Load().Price() }

// Liquidity returns the shares held by provider.
func (p *Pool) Liquidity(provider common.Address) math.Int {
	return p.state.Load().Shares(provider)
}

// TotalLiquidity returns the outstanding share supply.
func (p *Pool) TotalLiquidity() math.Int { return p.state.Load().TotalShares }

// K returns the constant product of the reserves.
func (p *Pool) K() *big.Int { return p.state.Load().K() }

// Events returns a copy of the event log.
func (p *Pool) Events() []Event {
	p.logMu.RLock()
	defer p.logMu.RUnlock()
	out := make([]Event, len(p.log))
	copy(out, p.log)
	return out
}

// Subscribe delivers every future event to ch. Delivery blocks the operation
// that produced the event, so ch should be buffered and drained promptly.
func (p *Pool) Subscribe(ch chan<- Event) event.Subscription {
	return p.feed.Subscribe(ch)
}

func (p *Pool) sideOf(asset common.Address) (side, error) {
	switch asset {
	case p.assets[sideA]:
		return sideA, nil
	case p.assets[sideB]:
		return sideB, nil
	}
	return 0, ErrInvalidAsset.Wrapf("%s is not traded by this pool", asset.Hex())
}
