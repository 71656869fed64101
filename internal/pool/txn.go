package pool

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// txn carries one operation: the state it started from, the state it builds,
// and the undo log of the transfers it applied.
type txn struct {
	p   *Pool
	ctx context.Context

	prev    *State
	next    *State
	owned   bool // next.shares is private to this txn
	applied bool

	journaled [2]bool
	undo      []func() error
	events    []Payload
}

// execute runs fn as a single atomic operation. Any error, or a panic, restores
// the previous state and undoes the transfers fn performed; events are only
// published when fn succeeds.
//
// Only one operation may be in progress at a time. A call made while another
// is running, whether re-entered from a ledger callback or issued by another
// goroutine, fails with ErrReentrancy without waiting.
func (p *Pool) execute(ctx context.Context, op string, fn func(tx *txn) error) (err error) {
	if !p.busy.CompareAndSwap(false, true) {
		return ErrReentrancy.Wrapf("%s called while another operation is in progress", op)
	}
	defer p.busy.Store(false)

	start := time.Now()
	defer func() { p.metrics.ObserveOperation(op, time.Since(start), err) }()

	tx := p.begin(ctx)
	defer func() {
		if r := recover(); r != nil {
			_ = tx.rollback()
			panic(r)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.rollback(); rbErr != nil {
			p.logger.Error("rollback incomplete", "op", op, "err", rbErr)
			err = errors.Join(err, rbErr)
		}
		p.logger.Debug("operation failed", "op", op, "err", err)
		return err
	}
	if !tx.applied {
		return ErrInvalidPoolState.Wrapf("%s finished without publishing state", op)
	}
	tx.commit()
	return nil
}

func (p *Pool) begin(ctx context.Context) *txn {
	prev := p.state.Load()
	next := *prev
	tx := &txn{p: p, prev: prev, next: &next}
	for i, l := range p.ledgers {
		if cp, ok := l.(Checkpointer); ok {
			var revert func() error
			ctx, revert = cp.Checkpoint(ctx)
			tx.journaled[i] = true
			tx.undo = append(tx.undo, revert)
		}
	}
	tx.ctx = ctx
	return tx
}

// pull moves amount of the asset on side sd from owner into the pool.
func (tx *txn) pull(sd side, owner common.Address, amount math.Int) error {
	p, l := tx.p, tx.p.ledgers[sd]
	if err := l.TransferFrom(tx.ctx, p.address, owner, p.address, amount); err != nil {
		return transferError("pull", p.assets[sd], owner, amount, err)
	}
	if !tx.journaled[sd] {
		tx.undo = append(tx.undo, func() error {
			return l.Transfer(tx.ctx, p.address, owner, amount)
		})
	}
	return nil
}

// push moves amount of the asset on side sd from the pool to recipient.
func (tx *txn) push(sd side, recipient common.Address, amount math.Int) error {
	p, l := tx.p, tx.p.ledgers[sd]
	if err := l.Transfer(tx.ctx, p.address, recipient, amount); err != nil {
		return transferError("push", p.assets[sd], recipient, amount, err)
	}
	if !tx.journaled[sd] {
		tx.undo = append(tx.undo, func() error {
			return l.TransferFrom(tx.ctx, p.address, recipient, p.address, amount)
		})
	}
	return nil
}

func (tx *txn) setShares(provider common.Address, v math.Int) {
	if !tx.owned {
		tx.next.shares = maps.Clone(tx.next.shares)
		tx.owned = true
	}
	if v.IsZero() {
		delete(tx.next.shares, provider)
		return
	}
	tx.next.shares[provider] = v
}

func (tx *txn) emit(ev Payload) {
	tx.events = append(tx.events, ev)
}

// apply publishes the next state. Operations call it after their checks and
// before any outbound transfer.
func (tx *txn) apply() error {
	if tx.p.checkInvariants {
		if err := tx.next.Validate(); err != nil {
			return err
		}
	}
	tx.p.state.Store(tx.next)
	tx.applied = true
	return nil
}

func (tx *txn) rollback() error {
	if tx.applied {
		tx.p.state.Store(tx.prev)
		tx.applied = false
	}
	var errs []error
	for i := len(tx.undo) - 1; i >= 0; i-- {
		if err := tx.undo[i](); err != nil {
			errs = append(errs, err)
		}
	}
	tx.undo = nil
	if len(errs) > 0 {
		return ErrTransferFailed.Wrapf("rollback incomplete: %v", errors.Join(errs...))
	}
	return nil
}

func (tx *txn) commit() {
	p := tx.p
	p.logMu.Lock()
	published := make([]Event, 0, len(tx.events))
	for _, data := range tx.events {
		ev := Event{Seq: uint64(len(p.log)) + 1, Kind: data.Kind(), Topic: data.Topic(), Data: data}
		p.log = append(p.log, ev)
		published = append(published, ev)
	}
	p.logMu.Unlock()

	s := tx.next
	p.metrics.SetState(s.ReserveA.BigInt(), s.ReserveB.BigInt(), s.TotalShares.BigInt(), s.Price().BigInt())
	for _, ev := range published {
		if sw, ok := ev.Data.(Swap); ok {
			p.metrics.AddSwapVolume(sw.AssetIn.Hex(), sw.AmountIn.BigInt())
		}
		p.feed.Send(ev)
	}
}

func transferError(op string, asset, account common.Address, amount math.Int, cause error) error {
	return fmt.Errorf("%w: %s %s of %s for %s: %w", ErrTransferFailed, op, amount, asset.Hex(), account.Hex(), cause)
}
