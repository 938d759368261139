package server

import (
	"context"
	"time"

	"marketplace-auction/internal/auction"
	"marketplace-auction/utils"
)

// RunSettlementSweep periodically settles rooms whose deadline has passed,
// so auctions finalize even when nobody reads them. Blocks until ctx is
// cancelled. The engine itself has no background work; this is the
// scheduling collaborator driving it.
func RunSettlementSweep(ctx context.Context, svc *auction.AuctionService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.Info("settlement sweep stopped", nil)
			return
		case <-ticker.C:
			settled, err := svc.SettleDue(ctx)
			if err != nil {
				utils.Error("settlement sweep failed", map[string]any{"error": err.Error()})
				continue
			}
			if settled > 0 {
				utils.Info("settlement sweep completed", map[string]any{"rooms_settled": settled})
			}
		}
	}
}
