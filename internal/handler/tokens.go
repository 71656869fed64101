package handler

import (
	"cosmossdk.io/math"
	"github.com/gofiber/fiber/v3"
)

type MintRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type ApproveRequest struct {
	Owner  string `json:"owner"`
	Amount string `json:"amount"`
}

type BalanceResponse struct {
	Balance math.Int `json:"balance"`
}

func (h *PoolHandler) Mint() fiber.Handler {
	return func(c fiber.Ctx) error {
		asset, err := parseAddress("asset", c.Params("asset"))
		if err != nil {
			return err
		}
		var req MintRequest
		if err := c.Bind().JSON(&req); err != nil {
			h.logger.Debug("failed to bind body", "err", err)
			return ErrInvalidBody
		}
		to, err := parseAddress("to", req.To)
		if err != nil {
			return err
		}
		amount, err := parseAmount("amount", req.Amount, false)
		if err != nil {
			return err
		}
		if err := h.service.Mint(asset, to, amount); err != nil {
			return h.handleServiceError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Approve sets the pool's allowance over owner's balance.
func (h *PoolHandler) Approve() fiber.Handler {
	return func(c fiber.Ctx) error {
		asset, err := parseAddress("asset", c.Params("asset"))
		if err != nil {
			return err
		}
		var req ApproveRequest
		if err := c.Bind().JSON(&req); err != nil {
			h.logger.Debug("failed to bind body", "err", err)
			return ErrInvalidBody
		}
		owner, err := parseAddress("owner", req.Owner)
		if err != nil {
			return err
		}
		amount, err := parseAmount("amount", req.Amount, true)
		if err != nil {
			return err
		}
		if err := h.service.Approve(asset, owner, amount); err != nil {
			return h.handleServiceError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func (h *PoolHandler) Balance() fiber.Handler {
	return func(c fiber.Ctx) error {
		asset, err := parseAddress("asset", c.Params("asset"))
		if err != nil {
			return err
		}
		owner, err := parseAddress("owner", c.Params("owner"))
		if err != nil {
			return err
		}
		balance, err := h.service.Balance(asset, owner)
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.JSON(BalanceResponse{Balance: balance})
	}
}
