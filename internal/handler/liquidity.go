package handler

import (
	"context"

	"cosmossdk.io/math"
	"github.com/gofiber/fiber/v3"
)

type AddLiquidityRequest struct {
	Sender  string `json:"sender"`
	AmountA string `json:"amount_a"`
	AmountB string `json:"amount_b"`
}

type AddLiquidityResponse struct {
	Shares math.Int `json:"shares"`
}

type RemoveLiquidityRequest struct {
	Sender string `json:"sender"`
	Shares string `json:"shares"`
}

type RemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

type SharesResponse struct {
	Shares math.Int `json:"shares"`
}

type TotalSharesResponse struct {
	TotalShares math.Int `json:"total_shares"`
}

func (h *PoolHandler) AddLiquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req AddLiquidityRequest
		if err := c.Bind().JSON(&req); err != nil {
			h.logger.Debug("failed to bind body", "err", err)
			return ErrInvalidBody
		}
		sender, err := parseAddress("sender", req.Sender)
		if err != nil {
			return err
		}
		amountA, err := parseAmount("amount_a", req.AmountA, false)
		if err != nil {
			return err
		}
		amountB, err := parseAmount("amount_b", req.AmountB, false)
		if err != nil {
			return err
		}

		shares, err := h.service.AddLiquidity(context.Background(), sender, amountA, amountB)
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.JSON(AddLiquidityResponse{Shares: shares})
	}
}

func (h *PoolHandler) RemoveLiquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req RemoveLiquidityRequest
		if err := c.Bind().JSON(&req); err != nil {
			h.logger.Debug("failed to bind body", "err", err)
			return ErrInvalidBody
		}
		sender, err := parseAddress("sender", req.Sender)
		if err != nil {
			return err
		}
		shares, err := parseAmount("shares", req.Shares, false)
		if err != nil {
			return err
		}

		amountA, amountB, err := h.service.RemoveLiquidity(context.Background(), sender, shares)
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.JSON(RemoveLiquidityResponse{AmountA: amountA, AmountB: amountB})
	}
}

func (h *PoolHandler) Liquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		provider, err := parseAddress("provider", c.Params("provider"))
		if err != nil {
			return err
		}
		return c.JSON(SharesResponse{Shares: h.service.Shares(provider)})
	}
}

func (h *PoolHandler) TotalLiquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(TotalSharesResponse{TotalShares: h.service.State().TotalShares})
	}
}
