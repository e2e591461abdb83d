package domain

import "time"

type CartAction string

const (
	CartActionAdd    CartAction = "add"
	CartActionUpdate CartAction = "update"
	CartActionRemove CartAction = "remove"
	CartActionClear  CartAction = "clear"
)

// A CartMutation is emitted after every completed cart mutation so the
// caches holding cart state (route data, header badge summary) can
// refresh instead of serving stale counts and totals.
type CartMutation struct {
	Action     CartAction
	CartID     string
	ProductID  string
	Quantity   int
	Summary    CartSummary
	OccurredAt time.Time
}
