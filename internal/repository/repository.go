package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketplace-auction/internal/auctionerrors"
	model "marketplace-auction/internal/models"
	"marketplace-auction/internal/pricing"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionStore defines the transactional storage contract for the auction
// engine. Compound operations (bid admission, settlement, listing creation
// with wish promotion, guarded deletion) are atomic: no caller may observe
// their intermediate state, and two concurrent calls against the same room
// are serialized by the implementation.
type AuctionStore interface {
	// CreateListing inserts the product and its room together and promotes
	// every pending wish matching the product's model and price range.
	// Returns the number of wishes promoted to available.
	CreateListing(ctx context.Context, product model.Product, room model.Room) (int, error)

	// DeleteListing removes the product and its room, refusing when the
	// acting user is not the seller, the product is sold, or bids exist.
	DeleteListing(ctx context.Context, productID, actingUserID string) error

	// AdmitBid runs the full admission check-and-swap for one bid: the read
	// of the current highest bid and the install of the new one happen as a
	// single serialized unit.
	AdmitBid(ctx context.Context, bid model.Bid) (model.Bid, error)

	// SettleRoom finalizes a room whose deadline has passed, assigning the
	// highest bidder (if any) as the product's buyer. Idempotent: a settled
	// room reports ErrAlreadySettled and is never mutated again.
	SettleRoom(ctx context.Context, roomID string, now time.Time) (model.Settlement, error)

	// CreateWish inserts a wish, deciding its initial status by scanning
	// unsold listings of the model inside the same atomic step.
	CreateWish(ctx context.Context, wish model.Wish) (model.Wish, error)

	DeleteWish(ctx context.Context, wishID, actingUserID string) error

	GetProduct(ctx context.Context, productID string) (model.Product, error)
	GetRoom(ctx context.Context, roomID string) (model.Room, error)
	RoomBids(ctx context.Context, roomID string) ([]model.Bid, error)
	HighestBid(ctx context.Context, roomID string) (model.Bid, error)
	WishesByUser(ctx context.Context, userID string) ([]model.Wish, error)

	// DueRooms returns ids of rooms whose deadline has passed and that have
	// not been settled yet. Used by the periodic settlement sweep.
	DueRooms(ctx context.Context, now time.Time) ([]string, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore.
// Every compound operation runs entirely under the write lock, which plays
// the role the row lock plays in the Postgres implementation.
type MemoryStore struct {
	mu          sync.RWMutex
	products    map[string]model.Product // key: productID
	rooms       map[string]model.Room    // key: roomID
	roomByProd  map[string]string        // key: productID -> roomID
	bids        map[string][]model.Bid   // key: roomID -> ledger, admission order
	bidByID     map[string]model.Bid     // key: bidID
	wishes      map[string]model.Wish    // key: wishID
	wishByOwner map[string]string        // key: userID+"/"+modelID -> wishID
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:    make(map[string]model.Product),
		rooms:       make(map[string]model.Room),
		roomByProd:  make(map[string]string),
		bids:        make(map[string][]model.Bid),
		bidByID:     make(map[string]model.Bid),
		wishes:      make(map[string]model.Wish),
		wishByOwner: make(map[string]string),
	}
}

func ownerKey(userID, modelID string) string {
	return userID + "/" + modelID
}

// CreateListing inserts the product+room pair and promotes matching pending
// wishes in the same critical section, so no reader ever sees the listing
// without the corresponding wish transitions.
func (s *MemoryStore) CreateListing(_ context.Context, product model.Product, room model.Room) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ProductID]; ok {
		return 0, fmt.Errorf("create listing %s: product already exists", product.ProductID)
	}

	s.products[product.ProductID] = product
	s.rooms[room.RoomID] = room
	s.roomByProd[product.ProductID] = room.RoomID

	promoted := 0
	for id, w := range s.wishes {
		if w.ModelID != product.ModelID || w.Status != model.WishPending {
			continue
		}
		if pricing.WithinRange(product.Price, w.LowerBound, w.UpperBound) {
			w.Status = model.WishAvailable
			s.wishes[id] = w
			promoted++
		}
	}

	return promoted, nil
}

// DeleteListing removes an unsold, unbid listing on behalf of its seller
func (s *MemoryStore) DeleteListing(_ context.Context, productID, actingUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return fmt.Errorf("delete listing %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	if product.SellerID != actingUserID {
		return fmt.Errorf("delete listing %s: %w", productID, auctionerrors.ErrNotOwner)
	}
	if product.BuyerID != "" {
		return fmt.Errorf("delete listing %s: %w", productID, auctionerrors.ErrAlreadySold)
	}

	roomID := s.roomByProd[productID]
	if len(s.bids[roomID]) > 0 {
		return fmt.Errorf("delete listing %s: %w", productID, auctionerrors.ErrHasBids)
	}

	delete(s.products, productID)
	delete(s.rooms, roomID)
	delete(s.roomByProd, productID)

	return nil
}

// AdmitBid validates the bid against the room's current state and installs
// it as the new highest bid, all under the write lock. The bid's CreatedAt
// is the admission instant used for the deadline check.
func (s *MemoryStore) AdmitBid(_ context.Context, bid model.Bid) (model.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[bid.RoomID]
	if !ok {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrRoomNotFound)
	}
	product, ok := s.products[room.ProductID]
	if !ok {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrRoomNotFound)
	}

	if product.BuyerID != "" {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrAlreadySold)
	}
	if !room.Open(bid.CreatedAt) {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrRoomClosed)
	}
	if bid.UserID == product.SellerID {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrSelfBid)
	}
	if !pricing.Beats(bid.Price, product.Price) {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w - floor is %.2f", bid.RoomID, auctionerrors.ErrBidTooLow, product.Price)
	}
	if room.HighestBidID != "" {
		current := s.bidByID[room.HighestBidID]
		if !pricing.Beats(bid.Price, current.Price) {
			return model.Bid{}, fmt.Errorf("admit bid for room %s: %w - current highest is %.2f", bid.RoomID, auctionerrors.ErrBidTooLow, current.Price)
		}
	}

	s.bids[bid.RoomID] = append(s.bids[bid.RoomID], bid)
	s.bidByID[bid.BidID] = bid
	room.HighestBidID = bid.BidID
	s.rooms[bid.RoomID] = room

	return bid, nil
}

// SettleRoom finalizes a due room: assigns the highest bidder as buyer, or
// marks the room settled-unsold when no bid was ever admitted.
func (s *MemoryStore) SettleRoom(_ context.Context, roomID string, now time.Time) (model.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return model.Settlement{}, fmt.Errorf("settle room %s: %w", roomID, auctionerrors.ErrRoomNotFound)
	}
	product, ok := s.products[room.ProductID]
	if !ok {
		return model.Settlement{}, fmt.Errorf("settle room %s: %w", roomID, auctionerrors.ErrRoomNotFound)
	}

	if product.BuyerID != "" || room.SettledAt != nil {
		return model.Settlement{}, fmt.Errorf("settle room %s: %w", roomID, auctionerrors.ErrAlreadySettled)
	}
	if now.Before(room.ClosedAt) {
		return model.Settlement{}, fmt.Errorf("settle room %s: %w", roomID, auctionerrors.ErrNotYetDue)
	}

	settledAt := now
	room.SettledAt = &settledAt

	settlement := model.Settlement{
		RoomID:    roomID,
		Outcome:   model.SettledUnsold,
		SettledAt: settledAt,
	}

	if room.HighestBidID != "" {
		winning := s.bidByID[room.HighestBidID]
		product.BuyerID = winning.UserID
		product.Active = false
		s.products[product.ProductID] = product

		settlement.Outcome = model.SettledWithBuyer
		settlement.BuyerID = winning.UserID
		settlement.WinningBidID = winning.BidID
	}

	s.rooms[roomID] = room

	return settlement, nil
}

// CreateWish inserts a wish, scanning unsold listings of the model for an
// immediate match to decide the initial status.
func (s *MemoryStore) CreateWish(_ context.Context, wish model.Wish) (model.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ownerKey(wish.UserID, wish.ModelID)
	if _, ok := s.wishByOwner[key]; ok {
		return model.Wish{}, fmt.Errorf("create wish for user %s: %w", wish.UserID, auctionerrors.ErrDuplicateWish)
	}

	wish.Status = model.WishPending
	for _, p := range s.products {
		if p.ModelID != wish.ModelID || p.BuyerID != "" || !p.Active {
			continue
		}
		if pricing.WithinRange(p.Price, wish.LowerBound, wish.UpperBound) {
			wish.Status = model.WishAvailable
			break
		}
	}

	s.wishes[wish.WishID] = wish
	s.wishByOwner[key] = wish.WishID

	return wish, nil
}

// DeleteWish removes a wish owned by the acting user. A foreign wish id
// reports not-found rather than revealing another user's wish.
func (s *MemoryStore) DeleteWish(_ context.Context, wishID, actingUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wish, ok := s.wishes[wishID]
	if !ok || wish.UserID != actingUserID {
		return fmt.Errorf("delete wish %s: %w", wishID, auctionerrors.ErrWishNotFound)
	}

	delete(s.wishes, wishID)
	delete(s.wishByOwner, ownerKey(wish.UserID, wish.ModelID))

	return nil
}

// GetProduct returns one product by id
func (s *MemoryStore) GetProduct(_ context.Context, productID string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	return product, nil
}

// GetRoom returns one room by id
func (s *MemoryStore) GetRoom(_ context.Context, roomID string) (model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return model.Room{}, fmt.Errorf("get room %s: %w", roomID, auctionerrors.ErrRoomNotFound)
	}
	return room, nil
}

// RoomBids returns the full bid ledger for a room in admission order
func (s *MemoryStore) RoomBids(_ context.Context, roomID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids, ok := s.bids[roomID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for room %s: %w", roomID, auctionerrors.ErrNoBids)
	}
	return append([]model.Bid(nil), bids...), nil
}

// HighestBid returns the bid currently referenced by the room's highest-bid pointer
func (s *MemoryStore) HighestBid(_ context.Context, roomID string) (model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get highest bid for room %s: %w", roomID, auctionerrors.ErrRoomNotFound)
	}
	if room.HighestBidID == "" {
		return model.Bid{}, fmt.Errorf("get highest bid for room %s: %w", roomID, auctionerrors.ErrNoBids)
	}
	return s.bidByID[room.HighestBidID], nil
}

// WishesByUser returns all wishes owned by a user
func (s *MemoryStore) WishesByUser(_ context.Context, userID string) ([]model.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var wishes []model.Wish
	for _, w := range s.wishes {
		if w.UserID == userID {
			wishes = append(wishes, w)
		}
	}
	if len(wishes) == 0 {
		return nil, fmt.Errorf("get wishes for user %s: %w", userID, auctionerrors.ErrNoWishes)
	}
	return wishes, nil
}

// DueRooms returns rooms past their deadline that are still unsettled
func (s *MemoryStore) DueRooms(_ context.Context, now time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []string
	for id, room := range s.rooms {
		if room.SettledAt != nil || now.Before(room.ClosedAt) {
			continue
		}
		if p, ok := s.products[room.ProductID]; ok && p.BuyerID == "" {
			due = append(due, id)
		}
	}
	return due, nil
}

// AddProduct seeds a product and its room directly. This method is intended for tests only.
func (s *MemoryStore) AddProduct(product model.Product, room model.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ProductID] = product
	s.rooms[room.RoomID] = room
	s.roomByProd[product.ProductID] = room.RoomID
}
