// internal/models/order.go
package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type Order struct {
	ID              string          `json:"_id"`
	OrderID         string          `json:"orderId,omitempty"`
	User            *OrderCustomer  `json:"user"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	OrderStatus     OrderStatus     `json:"orderStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CustomerName falls back to "Guest" for orders without a linked account.
func (o Order) CustomerName() string {
	if o.User == nil || o.User.Name == "" {
		return "Guest"
	}
	return o.User.Name
}

type OrderCustomer struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UnmarshalJSON accepts an unpopulated reference (a bare id string) as well
// as the populated customer object.
func (c *OrderCustomer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.ID)
	}
	type plain OrderCustomer
	return json.Unmarshal(data, (*plain)(c))
}

type OrderItem struct {
	Product string  `json:"product"`
	Name    string  `json:"name"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
	Qty     int     `json:"qty"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}
