package helpers

import "time"

// Request/Response DTOs
type CreateListingRequest struct {
	SellerID string    `json:"seller_id" binding:"required"`
	ModelID  string    `json:"model_id" binding:"required"`
	Price    float64   `json:"price" binding:"required,gt=0"`
	ClosedAt time.Time `json:"closed_at" binding:"required"`
}

type ListingResponse struct {
	ProductID      string  `json:"product_id"`
	RoomID         string  `json:"room_id"`
	ModelID        string  `json:"model_id"`
	SellerID       string  `json:"seller_id"`
	Price          float64 `json:"price"`
	ClosedAt       string  `json:"closed_at"`
	WishesPromoted int     `json:"wishes_promoted"`
}

type PlaceBidRequest struct {
	RoomID string  `json:"room_id" binding:"required"`
	UserID string  `json:"user_id" binding:"required"`
	Price  float64 `json:"price" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	RoomID    string  `json:"room_id"`
	UserID    string  `json:"user_id"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"created_at"`
}

type SettlementResponse struct {
	RoomID       string `json:"room_id"`
	Outcome      string `json:"outcome"`
	BuyerID      string `json:"buyer_id,omitempty"`
	WinningBidID string `json:"winning_bid_id,omitempty"`
	SettledAt    string `json:"settled_at"`
}

type CreateWishRequest struct {
	UserID     string  `json:"user_id" binding:"required"`
	ModelID    string  `json:"model_id" binding:"required"`
	LowerBound float64 `json:"lower_bound" binding:"gte=0"`
	UpperBound float64 `json:"upper_bound" binding:"required,gt=0"`
}

type WishResponse struct {
	WishID     string  `json:"wish_id"`
	UserID     string  `json:"user_id"`
	ModelID    string  `json:"model_id"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}
