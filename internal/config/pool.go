package config

import (
	"fmt"
	"os"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"
)

// DefaultFeeBps is the fee applied when neither the pool file nor FEE_BPS
// sets one.
const DefaultFeeBps = 30

// Pool describes the pool deployment and the genesis state of its token
// ledgers.
type Pool struct {
	Address common.Address
	FeeBps  uint64
	TokenA  Token
	TokenB  Token
}

type Token struct {
	Symbol   string
	Address  common.Address
	Balances map[common.Address]math.Int
}

type poolFile struct {
	Address string    `yaml:"address"`
	FeeBps  *uint64   `yaml:"fee_bps"`
	TokenA  tokenFile `yaml:"token_a"`
	TokenB  tokenFile `yaml:"token_b"`
}

type tokenFile struct {
	Symbol   string            `yaml:"symbol"`
	Address  string            `yaml:"address"`
	Balances map[string]string `yaml:"balances"`
}

// DefaultPool returns a pool over two fresh tokens with no genesis balances.
func DefaultPool() *Pool {
	return &Pool{
		Address: common.HexToAddress("0x000000000000000000000000000000000000a770"),
		FeeBps:  DefaultFeeBps,
		TokenA: Token{
			Symbol:   "TKA",
			Address:  common.HexToAddress("0x000000000000000000000000000000000000000a"),
			Balances: map[common.Address]math.Int{},
		},
		TokenB: Token{
			Symbol:   "TKB",
			Address:  common.HexToAddress("0x000000000000000000000000000000000000000b"),
			Balances: map[common.Address]math.Int{},
		},
	}
}

// LoadPool reads a pool file from the given path. Addresses are hex strings
// and balances are base-10 integers:
//
//	address: "0x...a770"
//	fee_bps: 30
//	token_a:
//	  symbol: TKA
//	  address: "0x...0a"
//	  balances:
//	    "0x...01": "1000000000000000000000"
func LoadPool(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f poolFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	p := &Pool{FeeBps: DefaultFeeBps}
	if p.Address, err = parseAddress("address", f.Address); err != nil {
		return nil, err
	}
	if f.FeeBps != nil {
		if *f.FeeBps >= feeDenom {
			return nil, fmt.Errorf("%w: fee_bps %d: %w", ErrInvalidPoolFile, *f.FeeBps, ErrInvalidFeeBps)
		}
		p.FeeBps = *f.FeeBps
	}
	if p.TokenA, err = f.TokenA.parse("token_a"); err != nil {
		return nil, err
	}
	if p.TokenB, err = f.TokenB.parse("token_b"); err != nil {
		return nil, err
	}
	if p.TokenA.Address == p.TokenB.Address {
		return nil, fmt.Errorf("%w: token_a and token_b share address %s", ErrInvalidPoolFile, p.TokenA.Address.Hex())
	}
	return p, nil
}

func (f tokenFile) parse(field string) (Token, error) {
	addr, err := parseAddress(field+".address", f.Address)
	if err != nil {
		return Token{}, err
	}
	t := Token{
		Symbol:   f.Symbol,
		Address:  addr,
		Balances: make(map[common.Address]math.Int, len(f.Balances)),
	}
	if t.Symbol == "" {
		return Token{}, fmt.Errorf("%w: %s.symbol is required", ErrInvalidPoolFile, field)
	}
	for owner, raw := range f.Balances {
		who, err := parseAddress(field+".balances", owner)
		if err != nil {
			return Token{}, err
		}
		v, err := uint256.FromDecimal(raw)
		if err != nil {
			return Token{}, fmt.Errorf("%w: %s.balances[%s] %q: %v", ErrInvalidPoolFile, field, owner, raw, err)
		}
		t.Balances[who] = math.NewIntFromBigInt(v.ToBig())
	}
	return t, nil
}

func parseAddress(field, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %s %q is not a hex address", ErrInvalidPoolFile, field, s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: %s must not be the zero address", ErrInvalidPoolFile, field)
	}
	return addr, nil
}
