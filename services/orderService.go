package services

import (
	"context"
	"time"

	"github.com/Kariqs/aroena-api/metrics"
	"github.com/Kariqs/aroena-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgOrderNotFound = "order not found"

type OrderService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, now: time.Now}
}

func (s *OrderService) withRelations(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Service").Preload("User")
}

// Create places a booking. The status is always PENDING and the total is
// fixed at the service's current price times the quantity.
func (s *OrderService) Create(ctx context.Context, data models.CreateOrderData) (*models.Order, error) {
	if data.Quantity < 1 {
		return nil, NewBadRequestError("quantity must be at least 1")
	}

	var service models.Service
	if err := s.db.WithContext(ctx).First(&service, data.ServiceID).Error; err != nil {
		return nil, fromDB(err, "service not found", "failed to load service")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, data.UserID).Error; err != nil {
		return nil, fromDB(err, "user not found", "failed to load user")
	}

	order := models.Order{
		Quantity:  data.Quantity,
		Total:     service.Price.Mul(decimal.NewFromInt(int64(data.Quantity))),
		Date:      s.now(),
		Status:    models.OrderPending,
		ServiceID: service.ID,
		UserID:    user.ID,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fromDB(err, msgOrderNotFound, "failed to create order")
	}
	metrics.OrdersCreated.Inc()

	return s.Get(ctx, order.ID)
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.withRelations(ctx).Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, NewInternalError("failed to fetch orders", err)
	}
	return orders, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.withRelations(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&orders).Error; err != nil {
		return nil, NewInternalError("failed to fetch orders", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.withRelations(ctx).First(&order, id).Error; err != nil {
		return nil, fromDB(err, msgOrderNotFound, "failed to fetch order")
	}
	return &order, nil
}

// UpdateQuantity changes the quantity of a PENDING order. The total is scaled
// by the quantity ratio so the unit price captured at creation is kept even if
// the service price has changed since.
func (s *OrderService) UpdateQuantity(ctx context.Context, id uint, quantity int) (*models.Order, error) {
	if quantity < 1 {
		return nil, NewBadRequestError("quantity must be at least 1")
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, fromDB(err, msgOrderNotFound, "failed to fetch order")
	}
	if order.Status != models.OrderPending {
		return nil, ErrOrderNotEditable
	}

	total := order.Total.
		Mul(decimal.NewFromInt(int64(quantity))).
		Div(decimal.NewFromInt(int64(order.Quantity))).
		Round(2)

	if err := s.db.WithContext(ctx).Model(&order).Updates(map[string]any{
		"quantity": quantity,
		"total":    total,
	}).Error; err != nil {
		return nil, NewInternalError("failed to update order", err)
	}

	return s.Get(ctx, id)
}

// UpdateStatus overwrites the status. No transition table is enforced: any
// status may follow any other, and concurrent writers race last-write-wins.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, NewBadRequestError("invalid order status")
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, fromDB(err, msgOrderNotFound, "failed to fetch order")
	}
	if err := s.db.WithContext(ctx).Model(&order).Update("status", status).Error; err != nil {
		return nil, NewInternalError("failed to update order status", err)
	}
	metrics.OrderStatusChanges.WithLabelValues(string(status)).Inc()

	return s.Get(ctx, id)
}

// Delete hard-deletes an order. Without asAdmin the call is a user
// cancellation, which is only allowed while the order is PENDING or REJECTED.
func (s *OrderService) Delete(ctx context.Context, id uint, asAdmin bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return fromDB(err, msgOrderNotFound, "failed to fetch order")
		}
		if !asAdmin && !order.Status.Cancelable() {
			return ErrOrderNotCancelable
		}
		if err := tx.Delete(&order).Error; err != nil {
			return NewInternalError("failed to delete order", err)
		}
		return nil
	})
}
