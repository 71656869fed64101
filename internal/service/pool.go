package service

import (
	"context"
	"log/slog"
	"sync"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Siri-durga/dex-amm/internal/pool"
	"github.com/Siri-durga/dex-amm/internal/token"
)

// PoolService runs liquidity and swap operations against a single pool and
// manages the in-memory ledgers of its two assets. Mutating pool operations
// from concurrent requests are run one at a time.
type PoolService struct {
	BaseService
	mu     sync.Mutex
	pool   *pool.Pool
	tokens map[common.Address]*token.Token
}

// NewPoolService constructs a PoolService. tokens are the ledgers backing the
// pool's assets.
func NewPoolService(logger *slog.Logger, p *pool.Pool, tokens ...*token.Token) *PoolService {
	byAddr := make(map[common.Address]*token.Token, len(tokens))
	for _, t := range tokens {
		byAddr[t.Address()] = t
	}
	return &PoolService{
		BaseService: BaseService{logger: logger},
		pool:        p,
		tokens:      byAddr,
	}
}

// State is a point-in-time view of the pool.
type State struct {
	AssetA      common.Address `json:"asset_a"`
	AssetB      common.Address `json:"asset_b"`
	ReserveA    math.Int       `json:"reserve_a"`
	ReserveB    math.Int       `json:"reserve_b"`
	TotalShares math.Int       `json:"total_shares"`
	Price       math.Int       `json:"price"`
	FeeBps      uint64         `json:"fee_bps"`
}

func (s *PoolService) State() State {
	assetA, assetB := s.pool.Assets()
	snap := s.pool.Snapshot()
	return State{
		AssetA:      assetA,
		AssetB:      assetB,
		ReserveA:    snap.ReserveA,
		ReserveB:    snap.ReserveB,
		TotalShares: snap.TotalShares,
		Price:       snap.Price(),
		FeeBps:      s.pool.FeeBps(),
	}
}

func (s *PoolService) Shares(provider common.Address) math.Int {
	return s.pool.Liquidity(provider)
}

func (s *PoolService) Events() []pool.Event {
	return s.pool.Events()
}

func (s *PoolService) AddLiquidity(ctx context.Context, sender common.Address, amountA, amountB math.Int) (math.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shares, err := s.pool.AddLiquidity(ctx, sender, amountA, amountB)
	if err != nil {
		return math.Int{}, err
	}
	s.logger.Info("liquidity added", "provider", sender.Hex(), "amountA", amountA.String(), "amountB", amountB.String(), "shares", shares.String())
	return shares, nil
}

func (s *PoolService) RemoveLiquidity(ctx context.Context, sender common.Address, shares math.Int) (math.Int, math.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amountA, amountB, err := s.pool.RemoveLiquidity(ctx, sender, shares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	s.logger.Info("liquidity removed", "provider", sender.Hex(), "amountA", amountA.String(), "amountB", amountB.String(), "shares", shares.String())
	return amountA, amountB, nil
}

// Swap sells amountIn of assetIn. A zero minAmountOut disables the slippage
// check.
func (s *PoolService) Swap(ctx context.Context, sender, assetIn common.Address, amountIn, minAmountOut math.Int) (math.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.pool.Swap(ctx, sender, assetIn, amountIn, minAmountOut)
	if err != nil {
		return math.Int{}, err
	}
	s.logger.Info("swap executed", "trader", sender.Hex(), "assetIn", assetIn.Hex(), "in", amountIn.String(), "out", out.String())
	return out, nil
}

// Mint credits amount of asset to to.
func (s *PoolService) Mint(asset, to common.Address, amount math.Int) error {
	t, err := s.token(asset)
	if err != nil {
		return err
	}
	if err := t.Mint(to, amount); err != nil {
		return err
	}
	s.logger.Debug("minted", "asset", t.Symbol(), "to", to.Hex(), "amount", amount.String())
	return nil
}

// Approve lets the pool spend amount of owner's asset.
func (s *PoolService) Approve(asset, owner common.Address, amount math.Int) error {
	t, err := s.token(asset)
	if err != nil {
		return err
	}
	if err := t.Approve(owner, s.pool.Address(), amount); err != nil {
		return err
	}
	s.logger.Debug("approved", "asset", t.Symbol(), "owner", owner.Hex(), "amount", amount.String())
	return nil
}

func (s *PoolService) Balance(asset, owner common.Address) (math.Int, error) {
	t, err := s.token(asset)
	if err != nil {
		return math.Int{}, err
	}
	return t.BalanceOf(owner), nil
}

func (s *PoolService) token(asset common.Address) (*token.Token, error) {
	t, ok := s.tokens[asset]
	if !ok {
		return nil, ErrUnknownAsset
	}
	return t, nil
}
