package handler

import "github.com/gofiber/fiber/v3"

// Register mounts the pool API on r.
func (h *PoolHandler) Register(r fiber.Router) {
	r.Get("/estimate", h.Estimate())
	r.Get("/state", h.State())
	r.Get("/reserves", h.Reserves())
	r.Get("/price", h.Price())
	r.Get("/events", h.Events())

	r.Get("/liquidity", h.TotalLiquidity())
	r.Get("/liquidity/:provider", h.Liquidity())
	r.Post("/liquidity/add", h.AddLiquidity())
	r.Post("/liquidity/remove", h.RemoveLiquidity())
	r.Post("/swap", h.Swap())

	r.Post("/tokens/:asset/mint", h.Mint())
	r.Post("/tokens/:asset/approve", h.Approve())
	r.Get("/tokens/:asset/balance/:owner", h.Balance())
}
