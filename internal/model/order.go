package model

import "time"

// Payment statuses
const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentFailed   = "Failed"
	PaymentRefunded = "Refunded"
)

// Fulfillment statuses
const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

type Order struct {
	ID               string `gorm:"primaryKey;size:64;not null"`
	CustomerName     string `gorm:"size:128;not null"`
	CustomerPhone    string `gorm:"size:16;not null"`
	CustomerEmail    string `gorm:"size:128;index"`
	DeliveryAddress  string `gorm:"size:256"`
	DeliveryDistrict string `gorm:"size:64"`
	Notes            string `gorm:"size:512"`
	Total            int64  `gorm:"not null"` // whole MNT, no subunits in this domain
	Status           string `gorm:"size:32;index;not null"`
	PaymentStatus    string `gorm:"size:32;index;not null"`
	// code the payer types into the bank transfer narrative;
	// unique among concurrently pending orders only
	PaymentRef string `gorm:"size:16;index;not null"`
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.id
	OrderID     string `gorm:"size:64;index;not null"`
	ProductID   string `gorm:"size:64;index;not null"`
	ProductName string `gorm:"size:128;not null"`
	Size        string `gorm:"size:16"`
	Quantity    int32  `gorm:"not null"`
	UnitPrice   int64  `gorm:"not null"`

	CreatedAt time.Time
}
