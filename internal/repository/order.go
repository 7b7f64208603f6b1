package repository

import (
	"context"
	"errors"
	"time"

	"storefront-payments/internal/model"

	"gorm.io/gorm"
)

// ErrOrderNotPending is returned by MarkPaid when the conditional update
// matched no row, i.e. the order was already transitioned out of Pending
// by a concurrent request (or never existed).
var ErrOrderNotPending = errors.New("order is not pending")

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindPending(ctx context.Context) ([]*model.Order, error)
	PendingRefExists(ctx context.Context, paymentRef string) (bool, error)
	MarkPaid(ctx context.Context, orderID string, paidAt time.Time) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) CreateWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// pendingStatuses tolerates the two casings older checkout code wrote.
var pendingStatuses = []string{"pending", model.PaymentPending}

func (r *orderRepoImpl) FindPending(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("payment_status IN ?", pendingStatuses).
		Order("created_at asc").
		Find(&orders).
		Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) PendingRefExists(ctx context.Context, paymentRef string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_ref = ?", paymentRef).
		Where("payment_status IN ?", pendingStatuses).
		Count(&count).Error

	return count > 0, err
}

// MarkPaid applies the payment confirmation transition. The update is
// conditioned on the order still being Pending at write time, so a second
// writer racing on the same order loses with ErrOrderNotPending instead of
// silently double-applying.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, orderID string, paidAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Where("payment_status IN ?", pendingStatuses).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentPaid,
			"paid_at":        paidAt,
			"status":         model.OrderProcessing,
			"updated_at":     paidAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotPending
	}

	return nil
}
