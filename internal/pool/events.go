package pool

import (
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EventKind names a pool state transition.
type EventKind string

const (
	KindLiquidityAdded   EventKind = "LiquidityAdded"
	KindLiquidityRemoved EventKind = "LiquidityRemoved"
	KindSwap             EventKind = "Swap"
)

const (
	SigLiquidityAdded   = "LiquidityAdded(address,uint256,uint256,uint256)"
	SigLiquidityRemoved = "LiquidityRemoved(address,uint256,uint256,uint256)"
	SigSwap             = "Swap(address,address,uint256,uint256)"
)

// Event topics, keccak256 of the signatures above.
var (
	TopicLiquidityAdded   = crypto.Keccak256Hash([]byte(SigLiquidityAdded))
	TopicLiquidityRemoved = crypto.Keccak256Hash([]byte(SigLiquidityRemoved))
	TopicSwap             = crypto.Keccak256Hash([]byte(SigSwap))
)

// Payload is the body of an Event.
type Payload interface {
	Kind() EventKind
	Topic() common.Hash
}

// Event is one entry of the pool's append-only event log.
type Event struct {
	Seq   uint64      `json:"seq"`
	Kind  EventKind   `json:"kind"`
	Topic common.Hash `json:"topic"`
	Data  Payload     `json:"data"`
}

type LiquidityAdded struct {
	Provider     common.Address `json:"provider"`
	AmountA      math.Int       `json:"amount_a"`
	AmountB      math.Int       `json:"amount_b"`
	SharesMinted math.Int       `json:"shares_minted"`
}

func (LiquidityAdded) Kind() EventKind     { return KindLiquidityAdded }
func (LiquidityAdded) Topic() common.Hash { return TopicLiquidityAdded }

type LiquidityRemoved struct {
	Provider     common.Address `json:"provider"`
	AmountA      math.Int       `json:"amount_a"`
	AmountB      math.Int       `json:"amount_b"`
	SharesBurned math.Int       `json:"shares_burned"`
}

func (LiquidityRemoved) Kind() EventKind     { return KindLiquidityRemoved }
func (LiquidityRemoved) Topic() common.Hash { return TopicLiquidityRemoved }

type Swap struct {
	Trader    common.Address `json:"trader"`
	AssetIn   common.Address `json:"asset_in"`
	AmountIn  math.Int       `json:"amount_in"`
	AmountOut math.Int       `json:"amount_out"`
}

func (Swap) Kind() EventKind     { return KindSwap }
func (Swap) Topic() common.Hash { return TopicSwap }
