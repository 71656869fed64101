package eth

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Storage layout of UniswapV2Pair: token0 and token1 occupy slots 6 and 7;
// reserve0, reserve1 and blockTimestampLast are packed into slot 8.
const (
	slotToken0   = 6
	slotToken1   = 7
	slotReserves = 8
)

var ErrNotAPair = errors.New("address has no pair storage")

// Pair is a Uniswap V2 pair as of Block.
type Pair struct {
	Address  common.Address
	Block    uint64
	Token0   common.Address
	Token1   common.Address
	Reserve0 math.Int
	Reserve1 math.Int
}

// Reserves orders the pair's reserves as (in, out) for a swap of src.
func (p *Pair) Reserves(src common.Address) (math.Int, math.Int, bool) {
	switch src {
	case p.Token0:
		return p.Reserve0, p.Reserve1, true
	case p.Token1:
		return p.Reserve1, p.Reserve0, true
	default:
		return math.Int{}, math.Int{}, false
	}
}

// PairReader loads pair state by reading contract storage directly.
type PairReader struct {
	client *ethclient.Client
}

func NewPairReader(c *ethclient.Client) *PairReader {
	return &PairReader{client: c}
}

// Read loads pair at the latest block. All slots are read at the same block.
func (r *PairReader) Read(ctx context.Context, pair common.Address) (*Pair, error) {
	bn, err := r.client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("block number: %w", err)
	}
	block := new(big.Int).SetUint64(bn)

	words := make([][]byte, 3)
	for i, slot := range []uint64{slotToken0, slotToken1, slotReserves} {
		if words[i], err = r.readSlot(ctx, pair, block, slot); err != nil {
			return nil, err
		}
	}

	p := &Pair{
		Address: pair,
		Block:   bn,
		Token0:  common.BytesToAddress(words[0]),
		Token1:  common.BytesToAddress(words[1]),
	}
	if p.Token0 == (common.Address{}) || p.Token1 == (common.Address{}) {
		return nil, fmt.Errorf("%s at block %d: %w", pair.Hex(), bn, ErrNotAPair)
	}
	r0, r1 := unpackReserves(words[2])
	p.Reserve0, p.Reserve1 = math.NewIntFromBigInt(r0), math.NewIntFromBigInt(r1)
	return p, nil
}

func (r *PairReader) readSlot(ctx context.Context, pair common.Address, block *big.Int, slot uint64) ([]byte, error) {
	key := common.BigToHash(new(big.Int).SetUint64(slot))
	b, err := r.client.StorageAt(ctx, pair, key, block)
	if err != nil {
		return nil, fmt.Errorf("storageAt slot %d (pair %s, block %s): %w", slot, pair.Hex(), block, err)
	}
	return b, nil
}

// unpackReserves splits the reserves word, big-endian:
//
//	[ 32 bits timestamp | 112 bits reserve1 | 112 bits reserve0 ]
func unpackReserves(b []byte) (reserve0, reserve1 *big.Int) {
	v := new(big.Int).SetBytes(b)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 112), big.NewInt(1))

	reserve0 = new(big.Int).And(v, mask)
	reserve1 = new(big.Int).And(new(big.Int).Rsh(v, 112), mask)
	return reserve0, reserve1
}
