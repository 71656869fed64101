package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Siri-durga/dex-amm/internal/pool"
	"github.com/Siri-durga/dex-amm/internal/service"
	"github.com/Siri-durga/dex-amm/internal/token"
)

// ErrInvalidQueryParameters indicates that the request query string could not
// be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrInvalidBody indicates that the request body is not the expected JSON
// document.
var ErrInvalidBody = fiber.NewError(fiber.StatusBadRequest, "invalid request body")

// ErrSameAddresses is returned when src and dst addresses are identical.
var ErrSameAddresses = fiber.NewError(fiber.StatusBadRequest, "src and dst addresses cannot be the same")

// ErrSameTokenBadRequest maps a same-token validation failure to a 400 error.
var ErrSameTokenBadRequest = fiber.NewError(fiber.StatusBadRequest, "src and dst tokens cannot be the same")

// ErrPairMismatchBadRequest is returned when src/dst are not the pool's assets.
var ErrPairMismatchBadRequest = fiber.NewError(fiber.StatusBadRequest, "src and dst must be the pool's assets")

// ErrEmptyReservesBadRequest maps empty-reserve pool state to a 400 error.
var ErrEmptyReservesBadRequest = fiber.NewError(fiber.StatusBadRequest, "pool has insufficient reserves")

// ErrUnknownAssetNotFound is returned for token routes naming an asset the
// pool does not trade.
var ErrUnknownAssetNotFound = fiber.NewError(fiber.StatusNotFound, "unknown asset")

// ErrReentrancyConflict maps a rejected nested call to a 409 error.
var ErrReentrancyConflict = fiber.NewError(fiber.StatusConflict, "operation already in progress")

// ErrOperationFailedInternal signals a generic server-side failure.
var ErrOperationFailedInternal = fiber.NewError(fiber.StatusInternalServerError, "operation failed")

// NewAmountRequired returns a 400 Bad Request for a missing amount field.
func NewAmountRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" is required")
}

// NewInvalidAmount wraps an amount parsing error into a 400 Bad Request with
// a descriptive message.
func NewInvalidAmount(field string, err error) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+": "+err.Error())
}

// NewAmountNonPositive is returned when an amount must be greater than zero.
func NewAmountNonPositive(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" must be greater than zero")
}

// NewAddressRequired returns a 400 Bad Request for a missing address field.
func NewAddressRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" address is required")
}

// NewInvalidAddress returns a 400 Bad Request for an invalid address format.
func NewInvalidAddress(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+" address")
}

// callerErrors are rejected requests; their message is returned to the client.
var callerErrors = []error{
	pool.ErrInvalidAmount,
	pool.ErrInsufficientShares,
	pool.ErrInsufficientLiquidity,
	pool.ErrTransferFailed,
	pool.ErrSlippage,
	pool.ErrInvalidAsset,
	token.ErrInsufficientBalance,
	token.ErrInsufficientAllowance,
	token.ErrZeroAddress,
	token.ErrInvalidAmount,
}

func (h *BaseHandler) handleServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrSameToken):
		return ErrSameTokenBadRequest
	case errors.Is(err, service.ErrPairMismatch):
		return ErrPairMismatchBadRequest
	case errors.Is(err, service.ErrEmptyReserves):
		return ErrEmptyReservesBadRequest
	case errors.Is(err, service.ErrUnknownAsset):
		return ErrUnknownAssetNotFound
	case errors.Is(err, pool.ErrReentrancy):
		return ErrReentrancyConflict
	}
	for _, target := range callerErrors {
		if errors.Is(err, target) {
			h.logger.Debug("request rejected", "err", err)
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	h.logger.Error("pool operation failed", "err", err)
	return ErrOperationFailedInternal
}
