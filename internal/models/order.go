package models

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus maps a request string to one of the fixed order statuses.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch OrderStatus(status) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(status), nil
	default:
		return "", errors.New("invalid order status")
	}
}

type Order struct {
	ID            uint        `gorm:"column:order_id;primaryKey" json:"order_id"`
	CustomerID    uint        `gorm:"column:customer_id;index;not null" json:"customer_id"`
	Customer      *Customer   `gorm:"foreignKey:CustomerID" json:"-"`
	OrderDate     time.Time   `gorm:"column:order_date;autoCreateTime" json:"order_date"`
	Status        OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	TotalAmount   float64     `gorm:"not null" json:"total_amount"`
	PaymentMethod string      `gorm:"type:varchar(50)" json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        uint    `gorm:"column:order_item_id;primaryKey" json:"order_item_id"`
	OrderID   uint    `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID uint    `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	// Price is the unit price snapshot taken at purchase time.
	Price float64 `gorm:"not null" json:"price"`
}

func (OrderItem) TableName() string { return "order_items" }
