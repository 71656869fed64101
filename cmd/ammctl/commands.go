package main

import (
	"context"
	"fmt"
	"os"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/Siri-durga/dex-amm/internal/eth"
	"github.com/Siri-durga/dex-amm/internal/pool"
)

const (
	flagAmountIn   = "amount-in"
	flagAmountOut  = "amount-out"
	flagReserveIn  = "reserve-in"
	flagReserveOut = "reserve-out"
	flagReserveA   = "reserve-a"
	flagReserveB   = "reserve-b"
	flagFeeBps     = "fee-bps"
	flagRPC        = "rpc"
	flagPair       = "pair"
	flagSrc        = "src"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ammctl",
		Short:         "Constant-product pool calculator",
		Long:          `Price swaps and deposits against given reserves, or against a live Uniswap V2 pair.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newQuoteCmd(), newAmountInCmd(), newPriceCmd(), newPairCmd())
	return root
}

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Output amount for selling --amount-in against the given reserves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, rIn, rOut, err := amountFlags(cmd, flagAmountIn, flagReserveIn, flagReserveOut)
			if err != nil {
				return err
			}
			fee, _ := cmd.Flags().GetUint64(flagFeeBps)
			out, err := pool.GetAmountOut(in, rIn, rOut, fee)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().String(flagAmountIn, "", "input amount (base units)")
	cmd.Flags().String(flagReserveIn, "", "reserve of the input asset")
	cmd.Flags().String(flagReserveOut, "", "reserve of the output asset")
	cmd.Flags().Uint64(flagFeeBps, pool.DefaultFeeBps, "swap fee in basis points")
	return cmd
}

func newAmountInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amount-in",
		Short: "Smallest input that buys at least --amount-out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, rIn, rOut, err := amountFlags(cmd, flagAmountOut, flagReserveIn, flagReserveOut)
			if err != nil {
				return err
			}
			fee, _ := cmd.Flags().GetUint64(flagFeeBps)
			in, err := pool.GetAmountIn(out, rIn, rOut, fee)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), in)
			return err
		},
	}
	cmd.Flags().String(flagAmountOut, "", "desired output amount (base units)")
	cmd.Flags().String(flagReserveIn, "", "reserve of the input asset")
	cmd.Flags().String(flagReserveOut, "", "reserve of the output asset")
	cmd.Flags().Uint64(flagFeeBps, pool.DefaultFeeBps, "swap fee in basis points")
	return cmd
}

func newPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Spot price of asset A in asset B, scaled by 1e18",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rA, rB, err := amountFlags2(cmd, flagReserveA, flagReserveB)
			if err != nil {
				return err
			}
			price, err := pool.Quote(pool.PriceScale, rA, rB)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), price)
			return err
		},
	}
	cmd.Flags().String(flagReserveA, "", "reserve of asset A")
	cmd.Flags().String(flagReserveB, "", "reserve of asset B")
	return cmd
}

func newPairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Read a Uniswap V2 pair from a node and optionally quote a swap against it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rpcURL, _ := cmd.Flags().GetString(flagRPC)
			if rpcURL == "" {
				rpcURL = os.Getenv("ETH_RPC_URL")
			}
			if rpcURL == "" {
				return fmt.Errorf("--%s or ETH_RPC_URL is required", flagRPC)
			}
			pairAddr, err := addressFlag(cmd, flagPair)
			if err != nil {
				return err
			}

			ctx := context.Background()
			client, err := eth.Dial(ctx, rpcURL)
			if err != nil {
				return fmt.Errorf("failed to connect to Ethereum node: %w", err)
			}
			defer client.Close()

			p, err := eth.NewPairReader(client).Read(ctx, pairAddr)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "block    %d\ntoken0   %s\ntoken1   %s\nreserve0 %s\nreserve1 %s\n",
				p.Block, p.Token0.Hex(), p.Token1.Hex(), p.Reserve0, p.Reserve1)

			if !cmd.Flags().Changed(flagAmountIn) {
				return nil
			}
			src, err := addressFlag(cmd, flagSrc)
			if err != nil {
				return err
			}
			rIn, rOut, ok := p.Reserves(src)
			if !ok {
				return fmt.Errorf("%s is not traded by pair %s", src.Hex(), pairAddr.Hex())
			}
			in, err := amountFlag(cmd, flagAmountIn)
			if err != nil {
				return err
			}
			fee, _ := cmd.Flags().GetUint64(flagFeeBps)
			out, err := pool.GetAmountOut(in, rIn, rOut, fee)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "out      %s\n", out)
			return err
		},
	}
	cmd.Flags().String(flagRPC, "", "Ethereum JSON-RPC endpoint (default $ETH_RPC_URL)")
	cmd.Flags().String(flagPair, "", "pair contract address")
	cmd.Flags().String(flagSrc, "", "input token for --amount-in")
	cmd.Flags().String(flagAmountIn, "", "input amount to quote (base units)")
	cmd.Flags().Uint64(flagFeeBps, pool.DefaultFeeBps, "swap fee in basis points")
	return cmd
}

func amountFlag(cmd *cobra.Command, name string) (math.Int, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return math.Int{}, fmt.Errorf("--%s is required", name)
	}
	v, err := uint256.FromDecimal(raw)
	if err != nil {
		return math.Int{}, fmt.Errorf("--%s %q: %w", name, raw, err)
	}
	return math.NewIntFromBigInt(v.ToBig()), nil
}

func amountFlags(cmd *cobra.Command, a, b, c string) (math.Int, math.Int, math.Int, error) {
	x, y, err := amountFlags2(cmd, a, b)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	z, err := amountFlag(cmd, c)
	return x, y, z, err
}

func amountFlags2(cmd *cobra.Command, a, b string) (math.Int, math.Int, error) {
	x, err := amountFlag(cmd, a)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	y, err := amountFlag(cmd, b)
	return x, y, err
}

func addressFlag(cmd *cobra.Command, name string) (common.Address, error) {
	raw, _ := cmd.Flags().GetString(name)
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("--%s %q is not a hex address", name, raw)
	}
	return common.HexToAddress(raw), nil
}
