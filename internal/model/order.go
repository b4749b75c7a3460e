package model

import (
	"github.com/shopspring/decimal"
)

// OrderStatusPlaced is the only status an order carries in the current
// scope; no transition path exists yet.
const OrderStatusPlaced = "PLACED"

// Order is the aggregate root for a placed order. Its line items are saved
// and deleted together with it.
type Order struct {
	ID           int64  `json:"-" db:"id"`
	OrderID      string `json:"orderId" db:"order_id"`
	CustomerName string `json:"customerName" db:"customer_name"`
	Email        string `json:"email" db:"email"`
	Status       string `json:"status" db:"status"`
	OrderDate    Date   `json:"orderDate" db:"order_date"`
	Items        []OrderItem
}

// OrderItem is one product-and-quantity line within an order. TotalPrice is
// a snapshot taken at placement time and never recomputed.
type OrderItem struct {
	ID         int64           `json:"-" db:"id"`
	OrderID    int64           `json:"-" db:"order_id"`
	ProductID  int             `json:"productId" db:"product_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice" db:"total_price"`
}

// OrderRequest is the payload for placing an order.
type OrderRequest struct {
	UserID     int64              `json:"userId"`
	AddressID  int64              `json:"addressId"`
	CouponCode string             `json:"couponCode,omitempty"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderItemRequest is a single requested line.
type OrderItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// OrderResponse is the public order summary.
type OrderResponse struct {
	OrderID      string              `json:"orderId"`
	CustomerName string              `json:"customerName"`
	Email        string              `json:"email"`
	Status       string              `json:"status"`
	OrderDate    Date                `json:"orderDate"`
	Items        []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one summary line with the product title resolved at
// read time.
type OrderItemResponse struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}
