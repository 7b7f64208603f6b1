package dto

import "time"

// BankSMSWebhook is the payload forwarded by the SMS relay. The relay has
// shipped two field naming schemes over time (from/sender, text/message),
// so both are accepted. POSTKEY arrives as a string or a bare number
// depending on the relay version.
type BankSMSWebhook struct {
	From    string      `json:"from"`
	Sender  string      `json:"sender"`
	Text    string      `json:"text"`
	Message string      `json:"message"`
	PostKey interface{} `json:"POSTKEY"`
}

// SenderName returns whichever sender field was populated.
func (w *BankSMSWebhook) SenderName() string {
	if w.From != "" {
		return w.From
	}
	return w.Sender
}

// SMSText returns whichever body field was populated.
func (w *BankSMSWebhook) SMSText() string {
	if w.Text != "" {
		return w.Text
	}
	return w.Message
}

type PaymentConfirmedResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	OrderID    string `json:"orderId"`
	PaymentRef string `json:"paymentRef"`
}

type PaymentStatusResponse struct {
	PaymentStatus string     `json:"paymentStatus"`
	PaymentRef    string     `json:"paymentRef"`
	PaidAt        *time.Time `json:"paidAt"`
}

type CheckoutItem struct {
	ProductID   string `json:"productId" validate:"required"`
	ProductName string `json:"productName" validate:"required"`
	Size        string `json:"size"`
	Price       int64  `json:"price" validate:"gte=0"`
	Quantity    int32  `json:"quantity" validate:"gt=0"`
}

type CheckoutRequest struct {
	Items            []*CheckoutItem `json:"items" validate:"required,min=1,dive"`
	CustomerName     string          `json:"customerName" validate:"required"`
	CustomerPhone    string          `json:"customerPhone" validate:"required,mn_phone"`
	CustomerEmail    string          `json:"customerEmail" validate:"omitempty,email"`
	DeliveryAddress  string          `json:"deliveryAddress" validate:"required"`
	DeliveryDistrict string          `json:"deliveryDistrict"`
	Notes            string          `json:"notes"`
}

type CheckoutResponse struct {
	OrderID    string `json:"orderId"`
	PaymentRef string `json:"paymentRef"`
	Total      int64  `json:"total"`
}

type BankAccount struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}
