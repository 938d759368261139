package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrProductNotFound = errors.New("product not found")
	ErrWishNotFound    = errors.New("wish not found")
	ErrNoBids          = errors.New("no bids recorded for room")
	ErrNoWishes        = errors.New("user has no wishes")
	ErrConflict        = errors.New("concurrent update conflict")
)

// Business logic errors
var (
	ErrInvalidBid     = errors.New("invalid bid")
	ErrBidTooLow      = errors.New("bid price too low")
	ErrSelfBid        = errors.New("seller cannot bid on own listing")
	ErrAlreadySold    = errors.New("product already sold")
	ErrRoomClosed     = errors.New("bidding deadline has passed")
	ErrNotYetDue      = errors.New("bidding deadline has not passed yet")
	ErrAlreadySettled = errors.New("room already settled")
	ErrHasBids        = errors.New("room has recorded bids")
	ErrNotOwner       = errors.New("acting user does not own the listing")
	ErrInvalidListing = errors.New("invalid listing")
	ErrInvalidWish    = errors.New("invalid wish")
	ErrInvalidRange   = errors.New("wish price range is invalid")
	ErrDuplicateWish  = errors.New("wish already exists for this user and model")
)
