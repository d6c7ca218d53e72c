package orders

import (
	"restaurant-api/apperrors"
	"restaurant-api/models"
)

// transition defines a valid status change and the capability it requires.
type transition struct {
	From models.OrderStatus
	To   models.OrderStatus
	Cap  models.Capability
}

var validTransitions = []transition{
	{From: models.StatusPending, To: models.StatusDelivered, Cap: models.CapUpdateOrderStatus},
}

// CanTransition checks whether a caller with the given capability set may
// move an order between statuses. Holders of the force capability may set
// any valid status regardless of the current one.
func CanTransition(from, to models.OrderStatus, caps models.CapabilitySet) error {
	if !models.ValidStatus(to) {
		return apperrors.Validation("unknown order status %q", to)
	}
	for _, t := range validTransitions {
		if t.From == from && t.To == to && caps.Has(t.Cap) {
			return nil
		}
	}
	if caps.Has(models.CapForceOrderStatus) {
		return nil
	}
	return apperrors.Authorization("transition %s → %s is not permitted", from, to)
}
