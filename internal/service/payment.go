package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"storefront-payments/internal/dto"
	"storefront-payments/internal/model"
	"storefront-payments/internal/repository"
	"storefront-payments/internal/sms"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const paymentRefLength = 6

type PaymentService interface {
	// ConfirmBankSMS runs the reconciliation pipeline for one forwarded
	// bank SMS: authenticate, parse, match, reconcile. It is idempotent
	// under at-least-once re-delivery: matching only considers Pending
	// orders, so a replay after the first confirmation finds nothing and
	// fails with OrderNotFoundError instead of double-crediting.
	ConfirmBankSMS(ctx context.Context, payload *dto.BankSMSWebhook) (*dto.PaymentConfirmedResponse, error)
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	PaymentStatus(ctx context.Context, orderID string) (*dto.PaymentStatusResponse, error)
	BankAccounts() []dto.BankAccount
}

type paymentServiceImpl struct {
	orderRepo          repository.OrderRepository
	webhookKey         string
	validSenders       []string
	minimumOrderAmount int64
	bankAccounts       []dto.BankAccount
	nowFunc            func() time.Time
}

func NewPaymentService(
	orderRepo repository.OrderRepository,
	webhookKey string,
	validSenders []string,
	minimumOrderAmount int64,
	bankAccounts []dto.BankAccount,
) PaymentService {
	return &paymentServiceImpl{
		orderRepo:          orderRepo,
		webhookKey:         webhookKey,
		validSenders:       validSenders,
		minimumOrderAmount: minimumOrderAmount,
		bankAccounts:       bankAccounts,
		nowFunc:            time.Now,
	}
}

func (s *paymentServiceImpl) ConfirmBankSMS(ctx context.Context, payload *dto.BankSMSWebhook) (*dto.PaymentConfirmedResponse, error) {
	// auth gate runs before any store access
	if coercePostKey(payload.PostKey) != s.webhookKey {
		log.Printf("webhook rejected: invalid POSTKEY")
		return nil, ErrUnauthorized
	}

	senderName := payload.SenderName()
	if !s.isValidSender(senderName) {
		log.Printf("webhook rejected: invalid sender %q", senderName)
		return nil, ErrInvalidSender
	}

	smsText := payload.SMSText()
	parsed := sms.Parse(smsText)

	orders, err := s.orderRepo.FindPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("find pending orders: %w", err)
	}

	// first pending order whose reference appears in the narrative wins;
	// containment, not equality, because payers append extra characters
	var matched *model.Order
	for _, order := range orders {
		if order.PaymentRef != "" && strings.Contains(parsed.ReferenceText, order.PaymentRef) {
			matched = order
			break
		}
	}

	if matched == nil {
		log.Printf("webhook: no pending order matches ref text %q (sender %q)", parsed.ReferenceText, senderName)
		return nil, &OrderNotFoundError{SearchedText: parsed.ReferenceText}
	}

	if parsed.Amount == nil {
		log.Printf("webhook: could not parse amount from SMS %q (order %s)", smsText, matched.ID)
		return nil, ErrAmountNotParsed
	}

	if *parsed.Amount != float64(matched.Total) {
		log.Printf("webhook: amount mismatch for order %s: received %v, expected %d", matched.ID, *parsed.Amount, matched.Total)
		return nil, &AmountMismatchError{Received: *parsed.Amount, Expected: matched.Total}
	}

	if err := s.orderRepo.MarkPaid(ctx, matched.ID, s.nowFunc()); err != nil {
		if errors.Is(err, repository.ErrOrderNotPending) {
			log.Printf("webhook: lost conditional update race for order %s", matched.ID)
			return nil, ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("mark order %s paid: %w", matched.ID, err)
	}

	log.Printf("webhook: payment confirmed for order %s (ref %s, amount %d)", matched.ID, matched.PaymentRef, matched.Total)

	return &dto.PaymentConfirmedResponse{
		Success:    true,
		Message:    "Payment confirmed",
		OrderID:    matched.ID,
		PaymentRef: matched.PaymentRef,
	}, nil
}

func (s *paymentServiceImpl) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	total := int64(0)
	for _, item := range req.Items {
		total += item.Price * int64(item.Quantity)
	}
	if total < s.minimumOrderAmount {
		return nil, ErrBelowMinimumAmount
	}

	paymentRef, err := s.newPaymentRef(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate payment ref: %w", err)
	}

	now := s.nowFunc()
	order := &model.Order{
		ID:               uuid.NewString(),
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerEmail:    req.CustomerEmail,
		DeliveryAddress:  req.DeliveryAddress,
		DeliveryDistrict: req.DeliveryDistrict,
		Notes:            req.Notes,
		Total:            total,
		Status:           model.OrderPending,
		PaymentStatus:    model.PaymentPending,
		PaymentRef:       paymentRef,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	items := make([]*model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = &model.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			CreatedAt:   now,
		}
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	return &dto.CheckoutResponse{
		OrderID:    order.ID,
		PaymentRef: order.PaymentRef,
		Total:      order.Total,
	}, nil
}

func (s *paymentServiceImpl) PaymentStatus(ctx context.Context, orderID string) (*dto.PaymentStatusResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &OrderNotFoundError{}
		}
		return nil, fmt.Errorf("find order %s: %w", orderID, err)
	}

	status := order.PaymentStatus
	if status == "" {
		status = model.PaymentPending
	}

	return &dto.PaymentStatusResponse{
		PaymentStatus: status,
		PaymentRef:    order.PaymentRef,
		PaidAt:        order.PaidAt,
	}, nil
}

func (s *paymentServiceImpl) BankAccounts() []dto.BankAccount {
	return s.bankAccounts
}

func (s *paymentServiceImpl) isValidSender(senderName string) bool {
	lowered := strings.ToLower(senderName)
	for _, valid := range s.validSenders {
		if strings.Contains(lowered, strings.ToLower(valid)) {
			return true
		}
	}
	return false
}

// newPaymentRef draws 6 uppercase hex characters from UUID entropy and
// retries on collision with a currently pending order. References only
// have to be unique among concurrently unpaid orders, so colliding with a
// historical paid order is fine.
func (s *paymentServiceImpl) newPaymentRef(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		ref := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:paymentRefLength]
		exists, err := s.orderRepo.PendingRefExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
	return "", fmt.Errorf("no unique payment ref after 5 attempts")
}

// coercePostKey stringifies the POSTKEY field, which some relay versions
// send as a bare number.
func coercePostKey(v interface{}) string {
	switch key := v.(type) {
	case string:
		return key
	case json.Number:
		return key.String()
	case float64:
		return strconv.FormatFloat(key, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", key)
	}
}
