package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"ADDR", "LOG_LEVEL", "LOG_FORMAT", "FEE_BPS", "POOL_CONFIG"} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":1337", cfg.Addr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, uint64(DefaultFeeBps), cfg.Pool.FeeBps)
	require.NotEqual(t, cfg.Pool.TokenA.Address, cfg.Pool.TokenB.Address)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("FEE_BPS", "0")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Zero(t, cfg.Pool.FeeBps)
}

func TestFromEnv_Invalid(t *testing.T) {
	for _, tc := range []struct {
		key, value string
		err        error
	}{
		{"FEE_BPS", "10000", ErrInvalidFeeBps},
		{"FEE_BPS", "-1", ErrInvalidFeeBps},
		{"FEE_BPS", "abc", ErrInvalidFeeBps},
		{"LOG_FORMAT", "xml", ErrInvalidLogFormat},
	} {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := FromEnv()
			require.ErrorIs(t, err, tc.err)
		})
	}
}

const poolYAML = `
address: "0x000000000000000000000000000000000000a770"
fee_bps: 25
token_a:
  symbol: WETH
  address: "0x00000000000000000000000000000000000000aa"
  balances:
    "0x0000000000000000000000000000000000000001": "1000000000000000000000"
token_b:
  symbol: USDC
  address: "0x00000000000000000000000000000000000000bb"
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPool(t *testing.T) {
	p, err := LoadPool(writeFile(t, poolYAML))
	require.NoError(t, err)

	require.Equal(t, common.HexToAddress("0xa770"), p.Address)
	require.Equal(t, uint64(25), p.FeeBps)
	require.Equal(t, "WETH", p.TokenA.Symbol)
	require.Equal(t, "USDC", p.TokenB.Symbol)
	bal := p.TokenA.Balances[common.HexToAddress("0x01")]
	require.Equal(t, "1000000000000000000000", bal.String())
	require.Empty(t, p.TokenB.Balances)
}

func TestFromEnv_PoolFileWithFeeOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("POOL_CONFIG", writeFile(t, poolYAML))
	t.Setenv("FEE_BPS", "5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "WETH", cfg.Pool.TokenA.Symbol)
	require.Equal(t, uint64(5), cfg.Pool.FeeBps)
}

func TestLoadPool_Invalid(t *testing.T) {
	const (
		pool   = "address: \"0x000000000000000000000000000000000000a770\"\n"
		tokenA = "token_a: {symbol: A, address: \"0x00000000000000000000000000000000000000aa\"}\n"
		tokenB = "token_b: {symbol: B, address: \"0x00000000000000000000000000000000000000bb\"}\n"
	)
	cases := map[string]string{
		"bad address":     "address: \"nope\"\n" + tokenA + tokenB,
		"zero address":    "address: \"0x0000000000000000000000000000000000000000\"\n" + tokenA + tokenB,
		"same tokens":     pool + tokenA + "token_b: {symbol: B, address: \"0x00000000000000000000000000000000000000aa\"}\n",
		"fee too large":   pool + "fee_bps: 10000\n" + tokenA + tokenB,
		"negative amount": pool + "token_a: {symbol: A, address: \"0x00000000000000000000000000000000000000aa\", balances: {\"0x0000000000000000000000000000000000000001\": \"-5\"}}\n" + tokenB,
		"missing symbol":  pool + "token_a: {address: \"0x00000000000000000000000000000000000000aa\"}\n" + tokenB,
		"not yaml":        pool + "token_a: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadPool(writeFile(t, body))
			require.Error(t, err)
			if name != "not yaml" {
				require.ErrorIs(t, err, ErrInvalidPoolFile)
			}
		})
	}

	_, err := LoadPool(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
