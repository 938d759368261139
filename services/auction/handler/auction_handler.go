package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"marketplace-auction/internal/auctionerrors"
	model "marketplace-auction/internal/models"
	"marketplace-auction/services/auction/helpers"
	"marketplace-auction/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateListing(ctx context.Context, sellerID, modelID string, price float64, closedAt time.Time) (model.Product, model.Room, int, error)
	DeleteListing(ctx context.Context, productID, actingUserID string) error
	PlaceBid(ctx context.Context, roomID, bidderID string, price float64) (model.Bid, error)
	Settle(ctx context.Context, roomID string) (model.Settlement, error)
	BidsForRoom(ctx context.Context, roomID string) ([]model.Bid, error)
	WinningBid(ctx context.Context, roomID string) (model.Bid, error)
}

type WishServiceInterface interface {
	CreateWish(ctx context.Context, userID, modelID string, lowerBound, upperBound float64) (model.Wish, error)
	WishesForUser(ctx context.Context, userID string) ([]model.Wish, error)
	DeleteWish(ctx context.Context, wishID, actingUserID string) error
}

type AuctionHandler struct {
	auctions AuctionServiceInterface
	wishes   WishServiceInterface
}

func NewAuctionHandler(auctions AuctionServiceInterface, wishes WishServiceInterface) *AuctionHandler {
	return &AuctionHandler{auctions: auctions, wishes: wishes}
}

// CreateListingHandler handles POST /listings
func (h *AuctionHandler) CreateListingHandler(c *gin.Context) {
	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	product, room, promoted, err := h.auctions.CreateListing(c.Request.Context(), req.SellerID, req.ModelID, req.Price, req.ClosedAt)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateListingHandler: failed to create listing", map[string]any{
			"seller_id": req.SellerID,
			"model_id":  req.ModelID,
			"error":     err.Error(),
		})
		return
	}

	resp := helpers.ListingResponse{
		ProductID:      product.ProductID,
		RoomID:         room.RoomID,
		ModelID:        product.ModelID,
		SellerID:       product.SellerID,
		Price:          product.Price,
		ClosedAt:       room.ClosedAt.UTC().Format(time.RFC3339),
		WishesPromoted: promoted,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"product_id":      product.ProductID,
		"room_id":         room.RoomID,
		"wishes_promoted": promoted,
	})
}

// DeleteListingHandler handles DELETE /listings/:product_id
func (h *AuctionHandler) DeleteListingHandler(c *gin.Context) {
	productID := c.Param("product_id")
	actingUserID := c.Query("acting_user_id")

	if err := h.auctions.DeleteListing(c.Request.Context(), productID, actingUserID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteListingHandler: failed to delete listing", map[string]any{
			"product_id":     productID,
			"acting_user_id": actingUserID,
			"error":          err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "listing deleted successfully")
	helpers.LogSuccess("DeleteListingHandler", "listing deleted successfully", map[string]any{
		"product_id": productID,
	})
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.auctions.PlaceBid(c.Request.Context(), req.RoomID, req.UserID, req.Price)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"room_id": req.RoomID,
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bid.BidID,
		RoomID:    bid.RoomID,
		UserID:    bid.UserID,
		Price:     bid.Price,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":  bid.BidID,
		"room_id": bid.RoomID,
		"user_id": bid.UserID,
		"price":   bid.Price,
	})
}

// SettleRoomHandler handles POST /rooms/:room_id/settle
func (h *AuctionHandler) SettleRoomHandler(c *gin.Context) {
	roomID := c.Param("room_id")

	settlement, err := h.auctions.Settle(c.Request.Context(), roomID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("SettleRoomHandler: failed to settle room", map[string]any{
			"room_id": roomID,
			"error":   err.Error(),
		})
		return
	}

	resp := helpers.SettlementResponse{
		RoomID:       settlement.RoomID,
		Outcome:      string(settlement.Outcome),
		BuyerID:      settlement.BuyerID,
		WinningBidID: settlement.WinningBidID,
		SettledAt:    settlement.SettledAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "room settled successfully")
	helpers.LogSuccess("SettleRoomHandler", "room settled successfully", map[string]any{
		"room_id":  settlement.RoomID,
		"outcome":  resp.Outcome,
		"buyer_id": settlement.BuyerID,
	})
}

// GetRoomBidsHandler handles GET /rooms/:room_id/bids
func (h *AuctionHandler) GetRoomBidsHandler(c *gin.Context) {
	roomID := c.Param("room_id")
	bids, err := h.auctions.BidsForRoom(c.Request.Context(), roomID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetRoomBidsHandler: error retrieving bids", map[string]any{"room_id": roomID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetRoomBidsHandler", "bids retrieved successfully", map[string]any{
		"room_id": roomID,
		"count":   len(bids),
	})
}

// GetWinningBidHandler handles GET /rooms/:room_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	roomID := c.Param("room_id")
	bid, err := h.auctions.WinningBid(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"room_id": roomID})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"room_id": roomID, "error": err.Error()})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bid.BidID,
		RoomID:    bid.RoomID,
		UserID:    bid.UserID,
		Price:     bid.Price,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":  bid.BidID,
		"room_id": bid.RoomID,
		"price":   bid.Price,
	})
}

// CreateWishHandler handles POST /wishes
func (h *AuctionHandler) CreateWishHandler(c *gin.Context) {
	var req helpers.CreateWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateWishHandler", err)
		return
	}

	wish, err := h.wishes.CreateWish(c.Request.Context(), req.UserID, req.ModelID, req.LowerBound, req.UpperBound)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateWishHandler: failed to create wish", map[string]any{
			"user_id":  req.UserID,
			"model_id": req.ModelID,
			"error":    err.Error(),
		})
		return
	}

	resp := helpers.WishResponse{
		WishID:     wish.WishID,
		UserID:     wish.UserID,
		ModelID:    wish.ModelID,
		LowerBound: wish.LowerBound,
		UpperBound: wish.UpperBound,
		Status:     string(wish.Status),
		CreatedAt:  wish.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "wish created successfully")
	helpers.LogSuccess("CreateWishHandler", "wish created successfully", map[string]any{
		"wish_id":  wish.WishID,
		"user_id":  wish.UserID,
		"model_id": wish.ModelID,
		"status":   string(wish.Status),
	})
}

// GetUserWishesHandler handles GET /users/:user_id/wishes
func (h *AuctionHandler) GetUserWishesHandler(c *gin.Context) {
	userID := c.Param("user_id")
	wishes, err := h.wishes.WishesForUser(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoWishes) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetUserWishesHandler: error retrieving wishes", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if wishes == nil {
		wishes = []model.Wish{}
	}

	utils.JSONResponse(c, http.StatusOK, wishes, "wishes retrieved successfully")
	helpers.LogSuccess("GetUserWishesHandler", "wishes retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(wishes),
	})
}

// DeleteWishHandler handles DELETE /wishes/:wish_id
func (h *AuctionHandler) DeleteWishHandler(c *gin.Context) {
	wishID := c.Param("wish_id")
	actingUserID := c.Query("acting_user_id")

	if err := h.wishes.DeleteWish(c.Request.Context(), wishID, actingUserID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteWishHandler: failed to delete wish", map[string]any{
			"wish_id": wishID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "wish deleted successfully")
	helpers.LogSuccess("DeleteWishHandler", "wish deleted successfully", map[string]any{
		"wish_id": wishID,
	})
}
