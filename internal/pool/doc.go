// Package pool implements a two-asset constant-product market maker.
//
// A Pool keeps the reserves of both assets and the liquidity shares owned by
// each provider. Deposits mint shares, withdrawals burn them, and swaps trade
// one asset for the other along x*y=k with a proportional fee that stays in
// the reserves.
//
// Every mutating operation is all-or-nothing. The next state is built on a
// private copy, published before any outbound transfer is issued, and
// restored together with any applied transfers if a later step fails.
//
// A Pool is a single writer: while one mutating operation runs, any other,
// including one re-entered from an asset ledger callback, fails with
// ErrReentrancy instead of blocking. Hosts with concurrent callers serialize
// them before they reach the pool. Readers see the last published state
// without locking, so a ledger calling back into the pool mid-operation can
// never observe a half-updated pool.
package pool
