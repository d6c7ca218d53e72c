package models

// Capability names a single permitted operation. A caller's role is resolved
// once per request into a CapabilitySet consumed by the route guards and the
// order status rules.
type Capability string

const (
	CapPlaceOrder          Capability = "place_order"
	CapPlaceOrderForOthers Capability = "place_order_for_others"
	CapViewAllOrders       Capability = "view_all_orders"
	CapUpdateOrderStatus   Capability = "update_order_status"
	CapForceOrderStatus    Capability = "force_order_status"
	CapDeleteOrder         Capability = "delete_order"
	CapManageMenu          Capability = "manage_menu"
	CapViewUsers           Capability = "view_users"
	CapManageUsers         Capability = "manage_users"
	CapManageOrderLines    Capability = "manage_order_lines"
	CapMaintenance         Capability = "maintenance"
)

type CapabilitySet map[Capability]bool

func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

var roleCapabilities = map[UserRole][]Capability{
	RoleCustomer: {
		CapPlaceOrder,
	},
	RoleEmployee: {
		CapPlaceOrder,
		CapPlaceOrderForOthers,
		CapViewAllOrders,
		CapUpdateOrderStatus,
		CapManageMenu,
		CapViewUsers,
	},
	RoleAdmin: {
		CapPlaceOrder,
		CapPlaceOrderForOthers,
		CapViewAllOrders,
		CapUpdateOrderStatus,
		CapForceOrderStatus,
		CapDeleteOrder,
		CapManageMenu,
		CapViewUsers,
		CapManageUsers,
		CapManageOrderLines,
		CapMaintenance,
	},
}

// Capabilities returns the capability set for a role. Unknown roles resolve
// to an empty set, which denies everything.
func (r UserRole) Capabilities() CapabilitySet {
	set := make(CapabilitySet)
	for _, c := range roleCapabilities[r] {
		set[c] = true
	}
	return set
}
