package models

// Company is one tenant's public storefront profile as served by the backend.
type Company struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Active    bool     `json:"active"`
	About     string   `json:"about,omitempty"`
	BranchLat *float64 `json:"branchLat,omitempty"`
	BranchLng *float64 `json:"branchLng,omitempty"`
	WebAppURL string   `json:"webAppUrl,omitempty"`
}

// Menu is the full storefront menu for one company.
type Menu struct {
	Categories []MenuCategory `json:"categories"`
}

type MenuCategory struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// Product prices are integer units of the tenant currency.
// Stock is nil when the product has unlimited stock.
type Product struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Stock  *int   `json:"stock"`
	Active bool   `json:"active"`
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentOnline PaymentMethod = "ONLINE"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentOnline
}

// Payment statuses reported by the backend on a created order.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
)
