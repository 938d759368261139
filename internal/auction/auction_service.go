package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-auction/internal/auctionerrors"
	"marketplace-auction/internal/models"
	"marketplace-auction/internal/repository"
	"marketplace-auction/utils"
)

// admissionRetries bounds the automatic retry of a bid admission that lost
// a store-level conflict. Each retry re-validates against current state.
const admissionRetries = 3

// AuctionService owns the listing, bidding and settlement business logic
type AuctionService struct {
	store repository.AuctionStore
	now   func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.AuctionStore) *AuctionService {
	return &AuctionService{
		store: store,
		now:   time.Now,
	}
}

// CreateListing creates a product together with its bidding room and
// synchronously promotes pending wishes matching the listing. Returns the
// created pair and the number of wishes promoted.
func (s *AuctionService) CreateListing(ctx context.Context, sellerID, modelID string, price float64, closedAt time.Time) (models.Product, models.Room, int, error) {
	if sellerID == "" || modelID == "" {
		return models.Product{}, models.Room{}, 0, fmt.Errorf("service: %w - missing sellerID or modelID", auctionerrors.ErrInvalidListing)
	}
	if price <= 0 {
		return models.Product{}, models.Room{}, 0, fmt.Errorf("service: %w - non-positive price", auctionerrors.ErrInvalidListing)
	}
	if !closedAt.After(s.now()) {
		return models.Product{}, models.Room{}, 0, fmt.Errorf("service: %w - deadline is not in the future", auctionerrors.ErrInvalidListing)
	}

	product := models.Product{
		ProductID: utils.GenerateID(),
		ModelID:   modelID,
		SellerID:  sellerID,
		Price:     price,
		Active:    true,
		CreatedAt: s.now().UTC(),
	}
	room := models.Room{
		RoomID:    utils.GenerateID(),
		ProductID: product.ProductID,
		ClosedAt:  closedAt.UTC(),
	}

	promoted, err := s.store.CreateListing(ctx, product, room)
	if err != nil {
		return models.Product{}, models.Room{}, 0, fmt.Errorf("service: failed to create listing for seller %s: %w", sellerID, err)
	}

	utils.Info("listing created", map[string]any{
		"product_id":      product.ProductID,
		"room_id":         room.RoomID,
		"model_id":        modelID,
		"wishes_promoted": promoted,
	})

	return product, room, promoted, nil
}

// DeleteListing removes a listing on behalf of its seller. Refused once the
// product is sold or any bid has been admitted into its room.
func (s *AuctionService) DeleteListing(ctx context.Context, productID, actingUserID string) error {
	if productID == "" || actingUserID == "" {
		return fmt.Errorf("service: %w - missing productID or actingUserID", auctionerrors.ErrInvalidListing)
	}

	if err := s.store.DeleteListing(ctx, productID, actingUserID); err != nil {
		return fmt.Errorf("service: failed to delete listing %s: %w", productID, err)
	}
	return nil
}

// PlaceBid validates and admits a bid into a room. The store runs the
// check-and-swap atomically; on a transient conflict the whole admission is
// retried from scratch, so a retried bid re-validates against the highest
// bid that beat it.
func (s *AuctionService) PlaceBid(ctx context.Context, roomID, bidderID string, price float64) (models.Bid, error) {
	if roomID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing roomID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if price <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid price", auctionerrors.ErrInvalidBid)
	}

	var lastErr error
	for attempt := 1; attempt <= admissionRetries; attempt++ {
		bid := models.Bid{
			BidID:     utils.GenerateID(),
			RoomID:    roomID,
			UserID:    bidderID,
			Price:     price,
			CreatedAt: s.now().UTC(),
		}

		admitted, err := s.store.AdmitBid(ctx, bid)
		if err == nil {
			return admitted, nil
		}
		if !errors.Is(err, auctionerrors.ErrConflict) {
			return models.Bid{}, fmt.Errorf("service: failed to admit bid for room %s by user %s: %w", roomID, bidderID, err)
		}

		lastErr = err
		utils.Warn("bid admission conflict, retrying", map[string]any{
			"room_id": roomID,
			"user_id": bidderID,
			"attempt": attempt,
		})
	}

	return models.Bid{}, fmt.Errorf("service: admission retries exhausted for room %s: %w", roomID, lastErr)
}

// Settle finalizes a room past its deadline. Idempotent: repeated calls on
// a settled room report ErrAlreadySettled and never change the buyer.
func (s *AuctionService) Settle(ctx context.Context, roomID string) (models.Settlement, error) {
	if roomID == "" {
		return models.Settlement{}, fmt.Errorf("service: %w - empty room ID", auctionerrors.ErrRoomNotFound)
	}

	settlement, err := s.store.SettleRoom(ctx, roomID, s.now().UTC())
	if err != nil {
		return models.Settlement{}, fmt.Errorf("service: failed to settle room %s: %w", roomID, err)
	}

	utils.Info("room settled", map[string]any{
		"room_id":  roomID,
		"outcome":  string(settlement.Outcome),
		"buyer_id": settlement.BuyerID,
	})

	return settlement, nil
}

// SettleDue settles every room whose deadline has passed. Invoked by the
// periodic sweep; rooms settled concurrently by a direct call are skipped.
func (s *AuctionService) SettleDue(ctx context.Context) (int, error) {
	due, err := s.store.DueRooms(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("service: failed to list due rooms: %w", err)
	}

	settled := 0
	for _, roomID := range due {
		if _, err := s.Settle(ctx, roomID); err != nil {
			if errors.Is(err, auctionerrors.ErrAlreadySettled) || errors.Is(err, auctionerrors.ErrNotYetDue) {
				continue
			}
			return settled, err
		}
		settled++
	}
	return settled, nil
}

// BidsForRoom returns the full bid ledger of a room
func (s *AuctionService) BidsForRoom(ctx context.Context, roomID string) ([]models.Bid, error) {
	if roomID == "" {
		return nil, fmt.Errorf("service: %w - empty room ID", auctionerrors.ErrRoomNotFound)
	}

	bids, err := s.store.RoomBids(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for room %s: %w", roomID, err)
	}
	return bids, nil
}

// WinningBid returns the current highest bid of a room
func (s *AuctionService) WinningBid(ctx context.Context, roomID string) (models.Bid, error) {
	if roomID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty room ID", auctionerrors.ErrRoomNotFound)
	}

	bid, err := s.store.HighestBid(ctx, roomID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for room %s: %w", roomID, err)
	}
	return bid, nil
}
