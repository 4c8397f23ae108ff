package domain

import "time"

// OrderStatus values mirror the upstream order lifecycle.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Cancellable reports whether a cancellation request makes sense for the
// current status. The server remains the authority; this only gates the call.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderProcessing
}

// Address is a shipping address, validated before order submission.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// OrderItem is a snapshot of one cart line taken at order time. It stays
// fixed even if the catalog entry changes later.
type OrderItem struct {
	SoupID   int     `json:"soupId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is created by checkout and owned by the upstream system afterwards.
// Status transitions only ever reflect server-confirmed state.
type Order struct {
	ID              int         `json:"id"`
	UserID          int         `json:"userId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
