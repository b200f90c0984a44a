package models

import "time"

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusPending  = "pending"

	UserRoleGuest = "guest"
)

// User is a guest of the hotel. Users have no password: the phone number is the login key.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(32);uniqueIndex;not null"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty" gorm:"type:varchar(16);default:guest"`
	Status    string    `json:"status,omitempty" gorm:"type:varchar(16);default:active"`
	JoinDate  time.Time `json:"joinDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoginOrSignupData struct {
	Name  string `json:"name" binding:"required,max=120"`
	Phone string `json:"phone" binding:"required,max=32"`
}

type UpdateUserData struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=120"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Role   *string `json:"role" binding:"omitempty,oneof=admin guest"`
	Status *string `json:"status" binding:"omitempty,oneof=active inactive pending"`
}
