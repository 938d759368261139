package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-auction/internal/auctionerrors"
	model "marketplace-auction/internal/models"
	"marketplace-auction/internal/pricing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the pgx-backed implementation of AuctionStore. Compound
// operations run in a single transaction; admission locks the room row with
// SELECT ... FOR UPDATE so two concurrent bidders serialize on the
// check-and-swap.
type PostgresStore struct {
	DB *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore instance
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{DB: db}
}

// pgError maps Postgres error codes to the domain error taxonomy.
// 40001/40P01 are serialization failure and deadlock, both retryable.
func pgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return fmt.Errorf("%w: %v", auctionerrors.ErrConflict, err)
		case "23505":
			if pgErr.ConstraintName == "wishes_user_model_key" {
				return fmt.Errorf("%w: %v", auctionerrors.ErrDuplicateWish, err)
			}
		}
	}
	return err
}

// CreateListing inserts the product and room and promotes matching pending
// wishes, all in one transaction.
func (s *PostgresStore) CreateListing(ctx context.Context, product model.Product, room model.Room) (int, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("create listing %s: %w", product.ProductID, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO products (id, model_id, seller_id, buyer_id, price, active, created_at)
		 VALUES ($1, $2, $3, NULL, $4, $5, $6)`,
		product.ProductID, product.ModelID, product.SellerID, product.Price, product.Active, product.CreatedAt)
	if err != nil {
		return 0, pgError(err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO rooms (id, product_id, closed_at, highest_bid_id, settled_at)
		 VALUES ($1, $2, $3, NULL, NULL)`,
		room.RoomID, room.ProductID, room.ClosedAt)
	if err != nil {
		return 0, pgError(err)
	}

	// No-op on rows already available, so a retried creation cannot
	// double-transition a wish.
	tag, err := tx.Exec(ctx,
		`UPDATE wishes
		 SET status = $1
		 WHERE model_id = $2 AND status = $3 AND lower_bound <= $4 AND upper_bound >= $4`,
		model.WishAvailable, product.ModelID, model.WishPending, product.Price)
	if err != nil {
		return 0, pgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, pgError(err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteListing removes an unsold, unbid listing on behalf of its seller
func (s *PostgresStore) DeleteListing(ctx context.Context, productID, actingUserID string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", productID, err)
	}
	defer tx.Rollback(ctx)

	var sellerID string
	var buyerID *string
	err = tx.QueryRow(ctx,
		`SELECT seller_id, buyer_id FROM products WHERE id = $1 FOR UPDATE`,
		productID).Scan(&sellerID, &buyerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("delete listing %s: %w", productID, auctionerrors.ErrProductNotFound)
	} else if err != nil {
		return pgError(err)
	}

	if sellerID != actingUserID {
		return fmt.Errorf("delete listing %s: %w", productID, auctionerrors.ErrNotOwner)
	}
	if buyerID != nil {
		return fmt.Errorf("delete listing %s: %w", productID, auctionerrors.ErrAlreadySold)
	}

	var bidCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bids b JOIN rooms r ON b.room_id = r.id WHERE r.product_id = $1`,
		productID).Scan(&bidCount)
	if err != nil {
		return pgError(err)
	}
	if bidCount > 0 {
		return fmt.Errorf("delete listing %s: %w", productID, auctionerrors.ErrHasBids)
	}

	// rooms row goes with the product via ON DELETE CASCADE
	if _, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID); err != nil {
		return pgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return pgError(err)
	}
	return nil
}

// AdmitBid performs the atomic check-and-swap: the room row is locked for
// the duration of the transaction, so the highest bid read here cannot be
// superseded before the new pointer is installed.
func (s *PostgresStore) AdmitBid(ctx context.Context, bid model.Bid) (model.Bid, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, err)
	}
	defer tx.Rollback(ctx)

	var productID string
	var closedAt time.Time
	var highestBidID *string
	var settledAt *time.Time
	err = tx.QueryRow(ctx,
		`SELECT product_id, closed_at, highest_bid_id, settled_at FROM rooms WHERE id = $1 FOR UPDATE`,
		bid.RoomID).Scan(&productID, &closedAt, &highestBidID, &settledAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrRoomNotFound)
	} else if err != nil {
		return model.Bid{}, pgError(err)
	}

	var sellerID string
	var buyerID *string
	var floor float64
	err = tx.QueryRow(ctx,
		`SELECT seller_id, buyer_id, price FROM products WHERE id = $1`,
		productID).Scan(&sellerID, &buyerID, &floor)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrRoomNotFound)
	} else if err != nil {
		return model.Bid{}, pgError(err)
	}

	if buyerID != nil {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrAlreadySold)
	}
	if settledAt != nil || !bid.CreatedAt.Before(closedAt) {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrRoomClosed)
	}
	if bid.UserID == sellerID {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w", bid.RoomID, auctionerrors.ErrSelfBid)
	}
	if !pricing.Beats(bid.Price, floor) {
		return model.Bid{}, fmt.Errorf("admit bid for room %s: %w - floor is %.2f", bid.RoomID, auctionerrors.ErrBidTooLow, floor)
	}

	if highestBidID != nil {
		var currentPrice float64
		if err := tx.QueryRow(ctx, `SELECT price FROM bids WHERE id = $1`, *highestBidID).Scan(&currentPrice); err != nil {
			return model.Bid{}, pgError(err)
		}
		if !pricing.Beats(bid.Price, currentPrice) {
			return model.Bid{}, fmt.Errorf("admit bid for room %s: %w - current highest is %.2f", bid.RoomID, auctionerrors.ErrBidTooLow, currentPrice)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO bids (id, room_id, user_id, price, created_at) VALUES ($1, $2, $3, $4, $5)`,
		bid.BidID, bid.RoomID, bid.UserID, bid.Price, bid.CreatedAt)
	if err != nil {
		return model.Bid{}, pgError(err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE rooms SET highest_bid_id = $1 WHERE id = $2`,
		bid.BidID, bid.RoomID)
	if err != nil {
		return model.Bid{}, pgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Bid{}, pgError(err)
	}
	return bid, nil
}

// SettleRoom finalizes a due room in one transaction, locking the room row
// so a racing settle or bid observes the final state.
func (s *PostgresStore) SettleRoom(ctx context.Context, roomID string, now time.Time) (model.Settlement, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return model.Settlement{}, fmt.Errorf("settle room %s: %w", roomID, err)
	}
	defer tx.Rollback(ctx)

	var productID string
	var closedAt time.Time
	var highestBidID *string
	var settledAt *time.Time
	err = tx.QueryRow(ctx,
		`SELECT product_id, closed_at, highest_bid_id, settled_at FROM rooms WHERE id = $1 FOR UPDATE`,
		roomID).Scan(&productID, &closedAt, &highestBidID, &settledAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Settlement{}, fmt.Errorf("settle room %s: %w", roomID, auctionerrors.ErrRoomNotFound)
	} else if err != nil {
		return model.Settlement{}, pgError(err)
	}

	var buyerID *string
	err = tx.QueryRow(ctx, `SELECT buyer_id FROM products WHERE id = $1`, productID).Scan(&buyerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Settlement{}, fmt.Errorf("settle room %s: %w", roomID, auctionerrors.ErrRoomNotFound)
	} else if err != nil {
		return model.Settlement{}, pgError(err)
	}

	if buyerID != nil || settledAt != nil {
		return model.Settlement{}, fmt.Errorf("settle room %s: %w", roomID, auctionerrors.ErrAlreadySettled)
	}
	if now.Before(closedAt) {
		return model.Settlement{}, fmt.Errorf("settle room %s: %w", roomID, auctionerrors.ErrNotYetDue)
	}

	settlement := model.Settlement{
		RoomID:    roomID,
		Outcome:   model.SettledUnsold,
		SettledAt: now,
	}

	if highestBidID != nil {
		var winnerID string
		if err := tx.QueryRow(ctx, `SELECT user_id FROM bids WHERE id = $1`, *highestBidID).Scan(&winnerID); err != nil {
			return model.Settlement{}, pgError(err)
		}
		_, err = tx.Exec(ctx,
			`UPDATE products SET buyer_id = $1, active = FALSE WHERE id = $2`,
			winnerID, productID)
		if err != nil {
			return model.Settlement{}, pgError(err)
		}
		settlement.Outcome = model.SettledWithBuyer
		settlement.BuyerID = winnerID
		settlement.WinningBidID = *highestBidID
	}

	_, err = tx.Exec(ctx, `UPDATE rooms SET settled_at = $1 WHERE id = $2`, now, roomID)
	if err != nil {
		return model.Settlement{}, pgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Settlement{}, pgError(err)
	}
	return settlement, nil
}

// CreateWish inserts a wish, deciding the initial status from existing
// unsold listings of the model in the same transaction. The unique index on
// (user_id, model_id) enforces one wish per pair.
func (s *PostgresStore) CreateWish(ctx context.Context, wish model.Wish) (model.Wish, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return model.Wish{}, fmt.Errorf("create wish for user %s: %w", wish.UserID, err)
	}
	defer tx.Rollback(ctx)

	var matches int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM products
		 WHERE model_id = $1 AND buyer_id IS NULL AND active
		   AND price >= $2 AND price <= $3`,
		wish.ModelID, wish.LowerBound, wish.UpperBound).Scan(&matches)
	if err != nil {
		return model.Wish{}, pgError(err)
	}

	wish.Status = model.WishPending
	if matches > 0 {
		wish.Status = model.WishAvailable
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO wishes (id, user_id, model_id, lower_bound, upper_bound, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		wish.WishID, wish.UserID, wish.ModelID, wish.LowerBound, wish.UpperBound, wish.Status, wish.CreatedAt)
	if err != nil {
		return model.Wish{}, pgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Wish{}, pgError(err)
	}
	return wish, nil
}

// DeleteWish removes a wish owned by the acting user
func (s *PostgresStore) DeleteWish(ctx context.Context, wishID, actingUserID string) error {
	tag, err := s.DB.Exec(ctx,
		`DELETE FROM wishes WHERE id = $1 AND user_id = $2`, wishID, actingUserID)
	if err != nil {
		return pgError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete wish %s: %w", wishID, auctionerrors.ErrWishNotFound)
	}
	return nil
}

// GetProduct returns one product by id
func (s *PostgresStore) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	var p model.Product
	var buyerID *string
	err := s.DB.QueryRow(ctx,
		`SELECT id, model_id, seller_id, buyer_id, price, active, created_at FROM products WHERE id = $1`,
		productID).Scan(&p.ProductID, &p.ModelID, &p.SellerID, &buyerID, &p.Price, &p.Active, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, auctionerrors.ErrProductNotFound)
	} else if err != nil {
		return model.Product{}, pgError(err)
	}
	if buyerID != nil {
		p.BuyerID = *buyerID
	}
	return p, nil
}

// GetRoom returns one room by id
func (s *PostgresStore) GetRoom(ctx context.Context, roomID string) (model.Room, error) {
	var r model.Room
	var highestBidID *string
	err := s.DB.QueryRow(ctx,
		`SELECT id, product_id, closed_at, highest_bid_id, settled_at FROM rooms WHERE id = $1`,
		roomID).Scan(&r.RoomID, &r.ProductID, &r.ClosedAt, &highestBidID, &r.SettledAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Room{}, fmt.Errorf("get room %s: %w", roomID, auctionerrors.ErrRoomNotFound)
	} else if err != nil {
		return model.Room{}, pgError(err)
	}
	if highestBidID != nil {
		r.HighestBidID = *highestBidID
	}
	return r, nil
}

// RoomBids returns the full bid ledger for a room in admission order
func (s *PostgresStore) RoomBids(ctx context.Context, roomID string) ([]model.Bid, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT id, room_id, user_id, price, created_at FROM bids WHERE room_id = $1 ORDER BY created_at`,
		roomID)
	if err != nil {
		return nil, pgError(err)
	}
	defer rows.Close()

	var bids []model.Bid
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.BidID, &b.RoomID, &b.UserID, &b.Price, &b.CreatedAt); err != nil {
			return nil, pgError(err)
		}
		bids = append(bids, b)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for room %s: %w", roomID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

// HighestBid returns the bid currently referenced by the room's highest-bid pointer
func (s *PostgresStore) HighestBid(ctx context.Context, roomID string) (model.Bid, error) {
	var b model.Bid
	err := s.DB.QueryRow(ctx,
		`SELECT b.id, b.room_id, b.user_id, b.price, b.created_at
		 FROM rooms r JOIN bids b ON b.id = r.highest_bid_id
		 WHERE r.id = $1`,
		roomID).Scan(&b.BidID, &b.RoomID, &b.UserID, &b.Price, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing room from a room with no bids
		if _, roomErr := s.GetRoom(ctx, roomID); roomErr != nil {
			return model.Bid{}, roomErr
		}
		return model.Bid{}, fmt.Errorf("get highest bid for room %s: %w", roomID, auctionerrors.ErrNoBids)
	} else if err != nil {
		return model.Bid{}, pgError(err)
	}
	return b, nil
}

// WishesByUser returns all wishes owned by a user
func (s *PostgresStore) WishesByUser(ctx context.Context, userID string) ([]model.Wish, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT id, user_id, model_id, lower_bound, upper_bound, status, created_at
		 FROM wishes WHERE user_id = $1 ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, pgError(err)
	}
	defer rows.Close()

	var wishes []model.Wish
	for rows.Next() {
		var w model.Wish
		if err := rows.Scan(&w.WishID, &w.UserID, &w.ModelID, &w.LowerBound, &w.UpperBound, &w.Status, &w.CreatedAt); err != nil {
			return nil, pgError(err)
		}
		wishes = append(wishes, w)
	}
	if len(wishes) == 0 {
		return nil, fmt.Errorf("get wishes for user %s: %w", userID, auctionerrors.ErrNoWishes)
	}
	return wishes, nil
}

// DueRooms returns rooms past their deadline that are still unsettled
func (s *PostgresStore) DueRooms(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT r.id FROM rooms r
		 JOIN products p ON p.id = r.product_id
		 WHERE r.settled_at IS NULL AND r.closed_at <= $1 AND p.buyer_id IS NULL`,
		now)
	if err != nil {
		return nil, pgError(err)
	}
	defer rows.Close()

	var due []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, pgError(err)
		}
		due = append(due, id)
	}
	return due, nil
}
