package handler

import (
	"context"

	"cosmossdk.io/math"
	"github.com/gofiber/fiber/v3"
)

type SwapRequest struct {
	Sender       string `json:"sender"`
	AssetIn      string `json:"asset_in"`
	AmountIn     string `json:"amount_in"`
	MinAmountOut string `json:"min_amount_out"`
}

type SwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
}

type ReservesResponse struct {
	ReserveA math.Int `json:"reserve_a"`
	ReserveB math.Int `json:"reserve_b"`
}

type PriceResponse struct {
	Price math.Int `json:"price"`
}

func (h *PoolHandler) Swap() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req SwapRequest
		if err := c.Bind().JSON(&req); err != nil {
			h.logger.Debug("failed to bind body", "err", err)
			return ErrInvalidBody
		}
		sender, err := parseAddress("sender", req.Sender)
		if err != nil {
			return err
		}
		assetIn, err := parseAddress("asset_in", req.AssetIn)
		if err != nil {
			return err
		}
		amountIn, err := parseAmount("amount_in", req.AmountIn, false)
		if err != nil {
			return err
		}
		minOut := math.ZeroInt()
		if req.MinAmountOut != "" {
			if minOut, err = parseAmount("min_amount_out", req.MinAmountOut, true); err != nil {
				return err
			}
		}

		out, err := h.service.Swap(context.Background(), sender, assetIn, amountIn, minOut)
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.JSON(SwapResponse{AmountOut: out})
	}
}

func (h *PoolHandler) Reserves() fiber.Handler {
	return func(c fiber.Ctx) error {
		st := h.service.State()
		return c.JSON(ReservesResponse{ReserveA: st.ReserveA, ReserveB: st.ReserveB})
	}
}

// Price responds with reserveB/reserveA scaled by 10^18; zero for an empty
// pool.
func (h *PoolHandler) Price() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(PriceResponse{Price: h.service.State().Price})
	}
}

func (h *PoolHandler) State() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(h.service.State())
	}
}

func (h *PoolHandler) Events() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(h.service.Events())
	}
}
