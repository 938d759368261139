package auction

import (
	"context"
	"fmt"
	"time"

	"marketplace-auction/internal/auctionerrors"
	"marketplace-auction/internal/models"
	"marketplace-auction/internal/pricing"
	"marketplace-auction/internal/repository"
	"marketplace-auction/utils"
)

// WishService owns the standing-wish business logic
type WishService struct {
	store repository.AuctionStore
	now   func() time.Time
}

// NewWishService creates a new WishService instance
func NewWishService(store repository.AuctionStore) *WishService {
	return &WishService{
		store: store,
		now:   time.Now,
	}
}

// CreateWish registers a standing wish for a model within a price range.
// The store scans existing unsold listings in the same atomic step, so the
// wish starts available when a match already exists.
func (s *WishService) CreateWish(ctx context.Context, userID, modelID string, lowerBound, upperBound float64) (models.Wish, error) {
	if userID == "" || modelID == "" {
		return models.Wish{}, fmt.Errorf("service: %w - missing userID or modelID", auctionerrors.ErrInvalidWish)
	}
	if !pricing.ValidRange(lowerBound, upperBound) {
		return models.Wish{}, fmt.Errorf("service: %w - lower %.2f, upper %.2f", auctionerrors.ErrInvalidRange, lowerBound, upperBound)
	}

	wish := models.Wish{
		WishID:     utils.GenerateID(),
		UserID:     userID,
		ModelID:    modelID,
		LowerBound: lowerBound,
		UpperBound: upperBound,
		CreatedAt:  s.now().UTC(),
	}

	created, err := s.store.CreateWish(ctx, wish)
	if err != nil {
		return models.Wish{}, fmt.Errorf("service: failed to create wish for user %s: %w", userID, err)
	}

	utils.Info("wish created", map[string]any{
		"wish_id":  created.WishID,
		"user_id":  userID,
		"model_id": modelID,
		"status":   string(created.Status),
	})

	return created, nil
}

// WishesForUser returns all wishes owned by a user
func (s *WishService) WishesForUser(ctx context.Context, userID string) ([]models.Wish, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidWish)
	}

	wishes, err := s.store.WishesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get wishes for user %s: %w", userID, err)
	}
	return wishes, nil
}

// DeleteWish removes a wish on behalf of its owner
func (s *WishService) DeleteWish(ctx context.Context, wishID, actingUserID string) error {
	if wishID == "" || actingUserID == "" {
		return fmt.Errorf("service: %w - missing wishID or actingUserID", auctionerrors.ErrInvalidWish)
	}

	if err := s.store.DeleteWish(ctx, wishID, actingUserID); err != nil {
		return fmt.Errorf("service: failed to delete wish %s: %w", wishID, err)
	}
	return nil
}
