package handler

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"
)

type EstimateRequest struct {
	Src      string `query:"src" json:"src"`
	Dst      string `query:"dst" json:"dst"`
	AmountIn string `query:"src_amount" json:"amount_in"`
}

// Estimate prices a swap without executing it and responds with the output
// amount as plain text.
func (h *PoolHandler) Estimate() fiber.Handler {
	return func(c fiber.Ctx) error {
		req, err := h.parseAndValidateRequest(c)
		if err != nil {
			return err
		}

		src := common.HexToAddress(req.Src)
		dst := common.HexToAddress(req.Dst)

		amountIn, err := parseAmount("src_amount", req.AmountIn, false)
		if err != nil {
			return err
		}

		amountOut, err := h.service.Estimate(context.Background(), src, dst, amountIn)
		if err != nil {
			return h.handleServiceError(err)
		}

		h.logger.Debug("estimate computed", "src", req.Src, "dst", req.Dst, "in", amountIn.String(), "out", amountOut.String())
		return c.SendString(amountOut.String())
	}
}

func (h *PoolHandler) parseAndValidateRequest(c fiber.Ctx) (*EstimateRequest, error) {
	var req EstimateRequest

	if err := c.Bind().Query(&req); err != nil {
		h.logger.Debug("failed to bind query parameters", "err", err)
		return nil, ErrInvalidQueryParameters
	}

	if err := h.validateAddresses(&req); err != nil {
		return nil, err
	}

	return &req, nil
}

func (h *PoolHandler) validateAddresses(req *EstimateRequest) error {
	for _, f := range []struct{ field, addr string }{{"src", req.Src}, {"dst", req.Dst}} {
		if _, err := parseAddress(f.field, f.addr); err != nil {
			return err
		}
	}

	if common.HexToAddress(req.Src) == common.HexToAddress(req.Dst) {
		return ErrSameAddresses
	}

	return nil
}
