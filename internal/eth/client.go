// Package eth reads Uniswap V2 pair state from an Ethereum node so live pairs
// can be quoted with the pool's pricing.
package eth

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Dial connects to the JSON-RPC endpoint at url, giving up after 15 seconds.
func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return ethclient.DialContext(ctx, url)
}
