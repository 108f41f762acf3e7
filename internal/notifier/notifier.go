package notifier

import (
	"context"
	"time"
)

// LineItem is the order-item snapshot carried in a confirmation email.
type LineItem struct {
	ProductID uint
	Quantity  int
	Price     float64
}

type OrderConfirmation struct {
	CustomerName  string
	CustomerEmail string
	OrderID       uint
	OrderDate     time.Time
	Items         []LineItem
	TotalAmount   float64
}

type ShippingDetails struct {
	ShippingDate   string `json:"shipping_date"`
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url"`
}

type ShippingNotification struct {
	CustomerName  string
	CustomerEmail string
	OrderID       uint
	Status        string
	Details       ShippingDetails
}

// Notifier dispatches order-lifecycle emails. Delivery failures are the
// caller's to log; an already-committed order is never reversed over one.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error
	SendShippingNotification(ctx context.Context, msg ShippingNotification) error
}

var active Notifier = &SESNotifier{}

// Use swaps the active notifier and returns the previous one so tests can
// restore it.
func Use(n Notifier) Notifier {
	prev := active
	active = n
	return prev
}

func SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error {
	return active.SendOrderConfirmation(ctx, msg)
}

func SendShippingNotification(ctx context.Context, msg ShippingNotification) error {
	return active.SendShippingNotification(ctx, msg)
}
