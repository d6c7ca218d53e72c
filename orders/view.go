package orders

import (
	"time"

	"restaurant-api/models"

	"github.com/shopspring/decimal"
)

// LineView is the per-line read projection. Unit price and subtotal come
// from the current catalog price; only the order header total is a stored
// snapshot.
type LineView struct {
	MenuItemID   uint            `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type View struct {
	ID         uint               `json:"id"`
	Number     string             `json:"number"`
	UserID     uint               `json:"user_id"`
	UserName   string             `json:"user_name,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Status     models.OrderStatus `json:"status"`
	Items      []LineView         `json:"items"`
}

// NewView builds the read projection for an order. The order must have its
// Lines.MenuItem association loaded; User is optional.
func NewView(o *models.Order) View {
	v := View{
		ID:         o.ID,
		Number:     o.Number,
		UserID:     o.UserID,
		CreatedAt:  o.CreatedAt,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		Items:      make([]LineView, 0, len(o.Lines)),
	}
	if o.User != nil {
		v.UserName = o.User.Name
	}
	for _, line := range o.Lines {
		lv := LineView{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
		}
		if line.MenuItem != nil {
			lv.MenuItemName = line.MenuItem.Name
			lv.UnitPrice = line.MenuItem.Price
			lv.Subtotal = line.MenuItem.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		}
		v.Items = append(v.Items, lv)
	}
	return v
}

// NewViews maps a slice of orders to their projections.
func NewViews(os []models.Order) []View {
	views := make([]View, 0, len(os))
	for i := range os {
		views = append(views, NewView(&os[i]))
	}
	return views
}
