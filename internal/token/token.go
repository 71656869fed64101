// Package token is an in-memory fungible-asset ledger with ERC-20 semantics:
// balances, allowances, transfer, transferFrom, mint. It backs the pool's
// assets in the API server and in tests.
package token

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrZeroAddress           = errors.New("zero address")
	ErrInvalidAmount         = errors.New("amount must not be negative")
)

// Hook runs after a transfer has been applied and before it returns. A
// non-nil error reverts the transfer. Hooks run without the ledger lock held
// and may call back into the ledger or into the transfer's caller.
type Hook func(ctx context.Context, tr Transfer) error

// Transfer describes an applied balance movement.
type Transfer struct {
	Spender common.Address // zero for direct transfers
	From    common.Address
	To      common.Address
	Amount  math.Int
}

// Token is a single fungible asset.
type Token struct {
	symbol  string
	address common.Address

	mu          sync.Mutex
	totalSupply math.Int
	balances    map[common.Address]math.Int
	allowances  map[common.Address]map[common.Address]math.Int
	hook        Hook
}

// New creates an empty ledger for the asset at address.
func New(symbol string, address common.Address) *Token {
	return &Token{
		symbol:      symbol,
		address:     address,
		totalSupply: math.ZeroInt(),
		balances:    make(map[common.Address]math.Int),
		allowances:  make(map[common.Address]map[common.Address]math.Int),
	}
}

func (t *Token) Symbol() string          { return t.symbol }
func (t *Token) Address() common.Address { return t.address }

// SetHook installs h, replacing any previous hook. A nil h removes it.
func (t *Token) SetHook(h Hook) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hook = h
}

func (t *Token) TotalSupply() math.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalSupply
}

func (t *Token) BalanceOf(owner common.Address) math.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balanceOf(owner)
}

func (t *Token) Allowance(owner, spender common.Address) math.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allowance(owner, spender)
}

// Mint creates amount new units owned by to.
func (t *Token) Mint(to common.Address, amount math.Int) error {
	if to == (common.Address{}) {
		return fmt.Errorf("mint %s: %w", t.symbol, ErrZeroAddress)
	}
	if amount.IsNil() || amount.IsNegative() {
		return fmt.Errorf("mint %s: %w", t.symbol, ErrInvalidAmount)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	supply, err := t.totalSupply.SafeAdd(amount)
	if err != nil {
		return fmt.Errorf("mint %s: %w", t.symbol, err)
	}
	t.totalSupply = supply
	t.balances[to] = t.balanceOf(to).Add(amount)
	return nil
}

// Approve sets the amount spender may move out of owner's balance.
func (t *Token) Approve(owner, spender common.Address, amount math.Int) error {
	if owner == (common.Address{}) || spender == (common.Address{}) {
		return fmt.Errorf("approve %s: %w", t.symbol, ErrZeroAddress)
	}
	if amount.IsNil() || amount.IsNegative() {
		return fmt.Errorf("approve %s: %w", t.symbol, ErrInvalidAmount)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setAllowance(owner, spender, amount)
	return nil
}

// Transfer moves amount from from to to.
func (t *Token) Transfer(ctx context.Context, from, to common.Address, amount math.Int) error {
	return t.execute(ctx, Transfer{From: from, To: to, Amount: amount})
}

// TransferFrom moves amount from from to to, spending spender's allowance.
func (t *Token) TransferFrom(ctx context.Context, spender, from, to common.Address, amount math.Int) error {
	if spender == (common.Address{}) {
		return fmt.Errorf("transferFrom %s: %w", t.symbol, ErrZeroAddress)
	}
	return t.execute(ctx, Transfer{Spender: spender, From: from, To: to, Amount: amount})
}

func (t *Token) execute(ctx context.Context, tr Transfer) error {
	if tr.To == (common.Address{}) || tr.From == (common.Address{}) {
		return fmt.Errorf("transfer %s: %w", t.symbol, ErrZeroAddress)
	}
	if tr.Amount.IsNil() || tr.Amount.IsNegative() {
		return fmt.Errorf("transfer %s: %w", t.symbol, ErrInvalidAmount)
	}

	j := journalFrom(ctx, t)

	t.mu.Lock()
	if err := t.apply(tr); err != nil {
		t.mu.Unlock()
		return err
	}
	entry := j.record(tr)
	hook := t.hook
	t.mu.Unlock()

	if hook == nil {
		return nil
	}
	if err := hook(ctx, tr); err != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		if rerr := t.revert(tr); rerr != nil {
			return errors.Join(fmt.Errorf("transfer %s rejected: %w", t.symbol, err), rerr)
		}
		j.drop(entry)
		return fmt.Errorf("transfer %s rejected: %w", t.symbol, err)
	}
	return nil
}

func (t *Token) apply(tr Transfer) error {
	if tr.Spender != (common.Address{}) {
		allowed := t.allowance(tr.From, tr.Spender)
		if allowed.LT(tr.Amount) {
			return fmt.Errorf("%s: %s allows %s to spend %s, need %s: %w",
				t.symbol, tr.From.Hex(), tr.Spender.Hex(), allowed, tr.Amount, ErrInsufficientAllowance)
		}
	}
	balance := t.balanceOf(tr.From)
	if balance.LT(tr.Amount) {
		return fmt.Errorf("%s: %s holds %s, need %s: %w", t.symbol, tr.From.Hex(), balance, tr.Amount, ErrInsufficientBalance)
	}

	if tr.Spender != (common.Address{}) {
		t.setAllowance(tr.From, tr.Spender, t.allowance(tr.From, tr.Spender).Sub(tr.Amount))
	}
	t.balances[tr.From] = balance.Sub(tr.Amount)
	t.balances[tr.To] = t.balanceOf(tr.To).Add(tr.Amount)
	return nil
}

// revert undoes an applied transfer, restoring any allowance it spent. It
// fails if the recipient no longer holds the amount.
func (t *Token) revert(tr Transfer) error {
	held := t.balanceOf(tr.To)
	if held.LT(tr.Amount) {
		return fmt.Errorf("revert %s: %s holds %s, need %s: %w", t.symbol, tr.To.Hex(), held, tr.Amount, ErrInsufficientBalance)
	}
	t.balances[tr.To] = held.Sub(tr.Amount)
	t.balances[tr.From] = t.balanceOf(tr.From).Add(tr.Amount)
	if tr.Spender != (common.Address{}) {
		t.setAllowance(tr.From, tr.Spender, t.allowance(tr.From, tr.Spender).Add(tr.Amount))
	}
	return nil
}

func (t *Token) balanceOf(owner common.Address) math.Int {
	if v, ok := t.balances[owner]; ok {
		return v
	}
	return math.ZeroInt()
}

func (t *Token) allowance(owner, spender common.Address) math.Int {
	if v, ok := t.allowances[owner][spender]; ok {
		return v
	}
	return math.ZeroInt()
}

func (t *Token) setAllowance(owner, spender common.Address, amount math.Int) {
	m, ok := t.allowances[owner]
	if !ok {
		m = make(map[common.Address]math.Int)
		t.allowances[owner] = m
	}
	m[spender] = amount
}
