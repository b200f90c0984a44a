package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending  OrderStatus = "PENDING"
	OrderApproved OrderStatus = "APPROVED"
	OrderRejected OrderStatus = "REJECTED"
	OrderPaid     OrderStatus = "PAID"
)

// OrderStatuses lists every lifecycle state in display order.
var OrderStatuses = []OrderStatus{OrderPending, OrderApproved, OrderRejected, OrderPaid}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Cancelable reports whether the owning user may still delete the order.
func (s OrderStatus) Cancelable() bool {
	return s == OrderPending || s == OrderRejected
}

type Order struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	Date      time.Time       `json:"date" gorm:"index"`
	Status    OrderStatus     `json:"status" gorm:"type:varchar(16);not null;default:PENDING;index"`
	ServiceID uint            `json:"serviceId" gorm:"not null;index"`
	UserID    uint            `json:"userId" gorm:"not null;index"`
	Service   *Service        `json:"service,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	User      *User           `json:"user,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type CreateOrderData struct {
	ServiceID uint `json:"serviceId" binding:"required"`
	UserID    uint `json:"userId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateOrderData struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type UpdateOrderStatusData struct {
	Status OrderStatus `json:"status" binding:"required,orderstatus"`
}
