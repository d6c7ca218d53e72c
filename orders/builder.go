// Package orders implements the order aggregate: submission of a new order
// from requested lines, the status transition rules, and the read
// projection with computed subtotals.
package orders

import (
	"errors"
	"time"

	"restaurant-api/apperrors"
	"restaurant-api/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LinePolicy controls what happens when a requested line is unusable: a
// missing menu item, a non-positive quantity, or a repeated item.
type LinePolicy string

const (
	// PolicyAbort rejects the whole submission on the first bad line.
	PolicyAbort LinePolicy = "abort"
	// PolicyBestEffort skips bad lines and keeps the rest.
	PolicyBestEffort LinePolicy = "best_effort"
)

// PolicyFromString resolves a configured policy name; anything unrecognized
// falls back to abort, the strict default.
func PolicyFromString(s string) LinePolicy {
	if LinePolicy(s) == PolicyBestEffort {
		return PolicyBestEffort
	}
	return PolicyAbort
}

// LineRequest is one requested (menu item, quantity) pair. Constraints are
// checked by Submit rather than at bind time so the best-effort policy can
// skip bad lines instead of failing the bind.
type LineRequest struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// Submit materializes a new pending order for userID from the requested
// lines. The header and all accepted lines commit in one transaction; a
// partial order is never observable. The total is the decimal-exact sum of
// unit price times quantity over accepted lines, snapshotted onto the
// header.
func Submit(db *gorm.DB, userID uint, reqs []LineRequest, policy LinePolicy) (*models.Order, error) {
	if len(reqs) == 0 {
		return nil, apperrors.Validation("order must contain at least one line")
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		seen := make(map[uint]bool)
		var lines []models.OrderLine

		for _, r := range reqs {
			if r.Quantity <= 0 {
				if policy == PolicyAbort {
					return apperrors.Validation("quantity must be positive for menu item %d", r.MenuItemID)
				}
				continue
			}
			if seen[r.MenuItemID] {
				if policy == PolicyAbort {
					return apperrors.Conflict("menu item %d appears more than once in the order", r.MenuItemID)
				}
				continue
			}

			var item models.MenuItem
			if err := tx.First(&item, r.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					if policy == PolicyAbort {
						return apperrors.NotFound("menu item %d not found", r.MenuItemID)
					}
					continue
				}
				return err
			}

			seen[r.MenuItemID] = true
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(r.Quantity))))
			lines = append(lines, models.OrderLine{MenuItemID: item.ID, Quantity: r.Quantity})
		}

		if len(lines) == 0 {
			return apperrors.Validation("order contains no valid lines")
		}

		order = models.Order{
			Number:     generateOrderNumber(),
			UserID:     userID,
			Status:     models.StatusPending,
			TotalPrice: total,
			Lines:      lines,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// generateOrderNumber produces a unique human-facing order reference,
// e.g. 20250908130500-9f1c2ab4.
func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}
