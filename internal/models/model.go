package models

import "time"

// Product represents a marketplace listing put up for auction
type Product struct {
	ProductID string    `json:"product_id"`
	ModelID   string    `json:"model_id"`
	SellerID  string    `json:"seller_id"`
	BuyerID   string    `json:"buyer_id,omitempty"` // empty until the room settles with a winner
	Price     float64   `json:"price"`              // seller's ask, also the bidding floor
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Room represents the auction session bound 1:1 to a product listing
type Room struct {
	RoomID       string     `json:"room_id"`
	ProductID    string     `json:"product_id"`
	ClosedAt     time.Time  `json:"closed_at"` // bidding deadline, immutable once set
	HighestBidID string     `json:"highest_bid_id,omitempty"`
	SettledAt    *time.Time `json:"settled_at,omitempty"`
}

// Open reports whether the room still accepts bids at the given instant
func (r Room) Open(now time.Time) bool {
	return r.SettledAt == nil && now.Before(r.ClosedAt)
}

// Bid represents one admitted bid in a room's append-only ledger.
// A superseded bid stays in the ledger but loses the room's highest-bid pointer.
type Bid struct {
	BidID     string    `json:"bid_id"`
	RoomID    string    `json:"room_id"`
	UserID    string    `json:"user_id"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// WishStatus is the lifecycle state of a standing wish
type WishStatus string

const (
	WishPending   WishStatus = "pending"   // no matching unsold listing yet
	WishAvailable WishStatus = "available" // a listing in range exists for the model
)

// Wish represents a standing buyer request for a model within a price range
type Wish struct {
	WishID     string     `json:"wish_id"`
	UserID     string     `json:"user_id"`
	ModelID    string     `json:"model_id"`
	LowerBound float64    `json:"lower_bound"`
	UpperBound float64    `json:"upper_bound"`
	Status     WishStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SettlementOutcome discriminates how a room was finalized
type SettlementOutcome string

const (
	SettledWithBuyer SettlementOutcome = "settled_with_buyer"
	SettledUnsold    SettlementOutcome = "settled_unsold"
)

// Settlement is the result of finalizing a room past its deadline
type Settlement struct {
	RoomID       string            `json:"room_id"`
	Outcome      SettlementOutcome `json:"outcome"`
	BuyerID      string            `json:"buyer_id,omitempty"`
	WinningBidID string            `json:"winning_bid_id,omitempty"`
	SettledAt    time.Time         `json:"settled_at"`
}
