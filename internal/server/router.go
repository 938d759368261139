package server

import (
	"marketplace-auction/internal/auction"
	handler "marketplace-auction/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService *auction.AuctionService, wishService *auction.WishService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService, wishService)

	listings := router.Group("/listings")
	{
		listings.POST("", auctionHandler.CreateListingHandler)
		listings.DELETE("/:product_id", auctionHandler.DeleteListingHandler)
	}

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	rooms := router.Group("/rooms")
	{
		rooms.GET("/:room_id/bids", auctionHandler.GetRoomBidsHandler)
		rooms.GET("/:room_id/winning", auctionHandler.GetWinningBidHandler)
		rooms.POST("/:room_id/settle", auctionHandler.SettleRoomHandler)
	}

	wishes := router.Group("/wishes")
	{
		wishes.POST("", auctionHandler.CreateWishHandler)
		wishes.DELETE("/:wish_id", auctionHandler.DeleteWishHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/wishes", auctionHandler.GetUserWishesHandler)
	}

	return router
}
