package integrationtests

import (
	"net/http"
	"testing"
	"time"

	model "marketplace-auction/internal/models"
	"marketplace-auction/services/auction/helpers"

	"github.com/stretchr/testify/require"
)

func openListing(productID, roomID, sellerID, modelID string, floor float64, closesIn time.Duration) seedListing {
	return seedListing{
		Product: model.Product{
			ProductID: productID,
			ModelID:   modelID,
			SellerID:  sellerID,
			Price:     floor,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		},
		Room: model.Room{
			RoomID:    roomID,
			ProductID: productID,
			ClosedAt:  time.Now().Add(closesIn).UTC(),
		},
	}
}

// CreateListingHandler Tests
func TestCreateListingHandler(t *testing.T) {
	tests := []struct {
		name       string
		request    any
		wantStatus int
	}{
		{
			name: "Valid_Listing",
			request: helpers.CreateListingRequest{
				SellerID: "seller1",
				ModelID:  "phone-x",
				Price:    500,
				ClosedAt: time.Now().Add(time.Hour),
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "Deadline_In_Past",
			request: helpers.CreateListingRequest{
				SellerID: "seller1",
				ModelID:  "phone-x",
				Price:    500,
				ClosedAt: time.Now().Add(-time.Hour),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Missing_Price",
			request: map[string]any{
				"seller_id": "seller1",
				"model_id":  "phone-x",
				"closed_at": time.Now().Add(time.Hour).Format(time.RFC3339),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Invalid_JSON",
			request:    []byte("{seller_id: 'missing quotes'}"),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupTestRouter()
			resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/listings", tt.request)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				require.NotEmpty(t, resp["product_id"])
				require.NotEmpty(t, resp["room_id"])
				require.Equal(t, "seller1", resp["seller_id"])
				require.Equal(t, "phone-x", resp["model_id"])
				require.Equal(t, 500.0, resp["price"])
				require.Equal(t, 0.0, resp["wishes_promoted"])

				_, err := time.Parse(time.RFC3339, resp["closed_at"].(string))
				require.NoError(t, err)
			}
		})
	}
}

// PlaceBidHandler Tests
func TestPlaceBidHandler(t *testing.T) {
	tests := []struct {
		name       string
		request    any
		wantStatus int
	}{
		{
			name:       "Valid_Bid",
			request:    helpers.PlaceBidRequest{RoomID: "room1", UserID: "buyer1", Price: 120},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Below_Floor",
			request:    helpers.PlaceBidRequest{RoomID: "room1", UserID: "buyer1", Price: 80},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "At_Floor",
			request:    helpers.PlaceBidRequest{RoomID: "room1", UserID: "buyer1", Price: 100},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Seller_Bids_Own_Listing",
			request:    helpers.PlaceBidRequest{RoomID: "room1", UserID: "seller1", Price: 150},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Room_Not_Found",
			request:    helpers.PlaceBidRequest{RoomID: "nonexistent", UserID: "buyer1", Price: 120},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Invalid_JSON",
			request:    []byte("{room_id: 'missing quotes', price: 100}"),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupTestRouterWithListings(
				openListing("prod1", "room1", "seller1", "phone-x", 100, time.Hour),
			)
			resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", tt.request)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				require.Equal(t, "room1", resp["room_id"])
				require.Equal(t, "buyer1", resp["user_id"])
				require.Equal(t, 120.0, resp["price"])
				require.NotEmpty(t, resp["bid_id"])

				_, err := time.Parse(time.RFC3339, resp["created_at"].(string))
				require.NoError(t, err)
			}
		})
	}
}

// GetRoomBidsHandler Tests
func TestGetRoomBidsHandler(t *testing.T) {
	tests := []struct {
		name       string
		seedBids   []helpers.PlaceBidRequest
		roomID     string
		wantCount  int
		wantStatus int
	}{
		{
			name: "With_Bids",
			seedBids: []helpers.PlaceBidRequest{
				{RoomID: "room1", UserID: "buyer1", Price: 120},
				{RoomID: "room1", UserID: "buyer2", Price: 140},
			},
			roomID:     "room1",
			wantCount:  2,
			wantStatus: http.StatusOK,
		},
		{
			name:       "No_Bids",
			roomID:     "room1",
			wantCount:  0,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Room_Not_Found",
			roomID:     "nonexistent",
			wantCount:  0,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupTestRouterWithListings(
				openListing("prod1", "room1", "seller1", "phone-x", 100, time.Hour),
			)
			for _, bid := range tt.seedBids {
				_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", bid)
				require.Equal(t, http.StatusCreated, w.Code)
			}

			resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/rooms/"+tt.roomID+"/bids", nil)
			require.Equal(t, tt.wantStatus, w.Code)

			bids := resp["data"].([]any)
			require.Len(t, bids, tt.wantCount)
		})
	}
}

// GetWinningBidHandler Tests
func TestGetWinningBidHandler(t *testing.T) {
	tests := []struct {
		name       string
		seedBids   []helpers.PlaceBidRequest
		roomID     string
		wantUser   string
		wantPrice  float64
		wantStatus int
	}{
		{
			name: "With_Bids",
			seedBids: []helpers.PlaceBidRequest{
				{RoomID: "room1", UserID: "buyer1", Price: 120},
				{RoomID: "room1", UserID: "buyer3", Price: 135},
				{RoomID: "room1", UserID: "buyer2", Price: 150},
			},
			roomID:     "room1",
			wantUser:   "buyer2",
			wantPrice:  150,
			wantStatus: http.StatusOK,
		},
		{
			name:       "No_Bids",
			roomID:     "room1",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Room_Not_Found",
			roomID:     "nonexistent",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupTestRouterWithListings(
				openListing("prod1", "room1", "seller1", "phone-x", 100, time.Hour),
			)
			for _, bid := range tt.seedBids {
				_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", bid)
				require.Equal(t, http.StatusCreated, w.Code)
			}

			resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/rooms/"+tt.roomID+"/winning", nil)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				data := resp["data"].(map[string]any)
				require.Equal(t, tt.roomID, data["room_id"])
				require.Equal(t, tt.wantUser, data["user_id"])
				require.Equal(t, tt.wantPrice, data["price"])
			}
		})
	}
}

// Full listing lifecycle: create, outbid, settle, verify terminal state.
func TestAuctionLifecycle(t *testing.T) {
	router := SetupTestRouter()

	created, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/listings", helpers.CreateListingRequest{
		SellerID: "sellerA",
		ModelID:  "camera-z",
		Price:    1000,
		ClosedAt: time.Now().Add(500 * time.Millisecond),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	roomID := created["room_id"].(string)

	// First bid above the floor is admitted
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		RoomID: roomID, UserID: "buyerB", Price: 1100,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// A bid not beating the current highest is rejected
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		RoomID: roomID, UserID: "buyerC", Price: 1050,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// A higher bid supersedes
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		RoomID: roomID, UserID: "buyerB", Price: 1200,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Settling before the deadline is refused
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/rooms/"+roomID+"/settle", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	time.Sleep(600 * time.Millisecond)

	// Settlement assigns the highest bidder as buyer
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/rooms/"+roomID+"/settle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	require.Equal(t, "settled_with_buyer", data["outcome"])
	require.Equal(t, "buyerB", data["buyer_id"])
	require.NotEmpty(t, data["winning_bid_id"])

	// Settlement is idempotent
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/rooms/"+roomID+"/settle", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	// A settled room admits no further bids
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		RoomID: roomID, UserID: "buyerC", Price: 2000,
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

// A room with no bids settles unsold and stays terminal.
func TestSettleUnsoldRoom(t *testing.T) {
	router := SetupTestRouterWithListings(
		openListing("prod1", "room1", "seller1", "phone-x", 100, 200*time.Millisecond),
	)

	time.Sleep(300 * time.Millisecond)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/rooms/room1/settle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	require.Equal(t, "settled_unsold", data["outcome"])
	require.Empty(t, data["buyer_id"])

	// No second chance after an unsold settlement
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		RoomID: "room1", UserID: "buyer1", Price: 500,
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

// DeleteListingHandler Tests
func TestDeleteListingHandler(t *testing.T) {
	tests := []struct {
		name       string
		seedBids   []helpers.PlaceBidRequest
		productID  string
		actingUser string
		wantStatus int
	}{
		{
			name:       "Owner_Deletes_Clean_Listing",
			productID:  "prod1",
			actingUser: "seller1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Not_Owner",
			productID:  "prod1",
			actingUser: "intruder",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Has_Bids",
			seedBids:   []helpers.PlaceBidRequest{{RoomID: "room1", UserID: "buyer1", Price: 120}},
			productID:  "prod1",
			actingUser: "seller1",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Not_Found",
			productID:  "nonexistent",
			actingUser: "seller1",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupTestRouterWithListings(
				openListing("prod1", "room1", "seller1", "phone-x", 100, time.Hour),
			)
			for _, bid := range tt.seedBids {
				_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", bid)
				require.Equal(t, http.StatusCreated, w.Code)
			}

			_, w := ExecuteRequestAndParse(t, router, http.MethodDelete,
				"/listings/"+tt.productID+"?acting_user_id="+tt.actingUser, nil)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				// Bids against the deleted listing's room now miss
				_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
					RoomID: "room1", UserID: "buyer1", Price: 120,
				})
				require.Equal(t, http.StatusNotFound, w.Code)
			}
		})
	}
}

// Wish lifecycle: pending on creation, available once a listing matches.
func TestWishFlow(t *testing.T) {
	router := SetupTestRouter()

	// No listing for the model yet, the wish starts pending
	wish, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/wishes", helpers.CreateWishRequest{
		UserID:     "userW",
		ModelID:    "tablet-q",
		LowerBound: 200,
		UpperBound: 400,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "pending", wish["status"])
	wishID := wish["wish_id"].(string)

	// A second wish for the same model by the same user is refused
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/wishes", helpers.CreateWishRequest{
		UserID:     "userW",
		ModelID:    "tablet-q",
		LowerBound: 100,
		UpperBound: 300,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// A listing priced outside the range leaves the wish pending
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/listings", helpers.CreateListingRequest{
		SellerID: "sellerA",
		ModelID:  "tablet-q",
		Price:    600,
		ClosedAt: time.Now().Add(time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/users/userW/wishes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	wishes := resp["data"].([]any)
	require.Len(t, wishes, 1)
	require.Equal(t, "pending", wishes[0].(map[string]any)["status"])

	// A listing inside the range promotes the wish
	listing, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/listings", helpers.CreateListingRequest{
		SellerID: "sellerA",
		ModelID:  "tablet-q",
		Price:    350,
		ClosedAt: time.Now().Add(time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1.0, listing["wishes_promoted"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/users/userW/wishes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	wishes = resp["data"].([]any)
	require.Len(t, wishes, 1)
	require.Equal(t, "available", wishes[0].(map[string]any)["status"])

	// A wish is invisible to anyone but its owner, deletion included
	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/wishes/"+wishID+"?acting_user_id=intruder", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/wishes/"+wishID+"?acting_user_id=userW", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/users/userW/wishes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"].([]any))
}

// A wish whose model already has a matching unsold listing starts available.
func TestWishMatchesExistingListing(t *testing.T) {
	router := SetupTestRouterWithListings(
		openListing("prod1", "room1", "seller1", "tablet-q", 350, time.Hour),
	)

	wish, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/wishes", helpers.CreateWishRequest{
		UserID:     "userW",
		ModelID:    "tablet-q",
		LowerBound: 200,
		UpperBound: 400,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "available", wish["status"])
}

// CreateWishHandler validation Tests
func TestCreateWishHandlerValidation(t *testing.T) {
	tests := []struct {
		name       string
		request    any
		wantStatus int
	}{
		{
			name: "Inverted_Range",
			request: helpers.CreateWishRequest{
				UserID:     "userW",
				ModelID:    "tablet-q",
				LowerBound: 400,
				UpperBound: 200,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Missing_UserID",
			request: map[string]any{
				"model_id":    "tablet-q",
				"lower_bound": 100,
				"upper_bound": 200,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Invalid_JSON",
			request:    []byte("{user_id: 'missing quotes'}"),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupTestRouter()
			_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/wishes", tt.request)
			require.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
