package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"marketplace-auction/internal/auctionerrors"
	"marketplace-auction/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// Validation failures are 400, lifecycle conflicts 409, so a client can tell
// "raise your price" apart from "this auction is over".
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrRoomNotFound):
		return http.StatusNotFound, "room not found"
	case errors.Is(err, auctionerrors.ErrProductNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, auctionerrors.ErrWishNotFound):
		return http.StatusNotFound, "wish not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidListing):
		return http.StatusBadRequest, "invalid listing details"
	case errors.Is(err, auctionerrors.ErrInvalidWish):
		return http.StatusBadRequest, "invalid wish details"
	case errors.Is(err, auctionerrors.ErrInvalidRange):
		return http.StatusBadRequest, "wish price range is invalid"
	case errors.Is(err, auctionerrors.ErrSelfBid):
		return http.StatusForbidden, "sellers cannot bid on their own listing"
	case errors.Is(err, auctionerrors.ErrNotOwner):
		return http.StatusForbidden, "only the seller can delete a listing"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid price too low"
	case errors.Is(err, auctionerrors.ErrAlreadySold):
		return http.StatusConflict, "product already sold"
	case errors.Is(err, auctionerrors.ErrRoomClosed):
		return http.StatusConflict, "bidding is closed for this room"
	case errors.Is(err, auctionerrors.ErrAlreadySettled):
		return http.StatusConflict, "room already settled"
	case errors.Is(err, auctionerrors.ErrNotYetDue):
		return http.StatusConflict, "room deadline has not passed yet"
	case errors.Is(err, auctionerrors.ErrHasBids):
		return http.StatusConflict, "listing already has bids"
	case errors.Is(err, auctionerrors.ErrDuplicateWish):
		return http.StatusConflict, "wish already exists for this model"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusOK, "no bids recorded for room"
	case errors.Is(err, auctionerrors.ErrNoWishes):
		return http.StatusOK, "no wishes found for user"
	case errors.Is(err, auctionerrors.ErrConflict):
		return http.StatusServiceUnavailable, "temporary contention, please retry"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
