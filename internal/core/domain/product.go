package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Badge string

const (
	BadgeNone     Badge = "None"
	BadgeNew      Badge = "New"
	BadgeSale     Badge = "Sale"
	BadgeFeatured Badge = "Featured"
	BadgeLimited  Badge = "Limited"
)

func (b Badge) Valid() bool {
	switch b {
	case BadgeNone, BadgeNew, BadgeSale, BadgeFeatured, BadgeLimited:
		return true
	}
	return false
}

type Inventory string

const (
	InventoryInStock     Inventory = "in-stock"
	InventoryBackordered Inventory = "backordered"
	InventoryPreorder    Inventory = "preorder"
)

func (i Inventory) Valid() bool {
	switch i {
	case InventoryInStock, InventoryBackordered, InventoryPreorder:
		return true
	}
	return false
}

type Product struct {
	ProductID   string
	Name        string
	Description string
	Price       decimal.Decimal
	Badge       Badge
	Rating      decimal.Decimal
	Reviews     int
	Image       string
	Inventory   Inventory
	CreatedAt   time.Time
}

// A CatalogListing distinguishes an empty catalog from a degraded read:
// Degraded is set when the underlying store failed and the listing is
// served empty instead of propagating the error.
type CatalogListing struct {
	Products []Product
	Degraded bool
}
