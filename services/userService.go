package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Kariqs/aroena-api/models"
	"gorm.io/gorm"
)

const msgUserNotFound = "user not found"

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// LoginOrSignup returns the user owning phone, creating it on first login.
func (s *UserService) LoginOrSignup(ctx context.Context, data models.LoginOrSignupData) (*models.User, error) {
	phone := strings.TrimSpace(data.Phone)
	if phone == "" {
		return nil, NewBadRequestError("phone is required")
	}

	user, err := s.findByPhone(ctx, phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewInternalError("failed to look up user", err)
	}

	user = &models.User{
		Name:     strings.TrimSpace(data.Name),
		Phone:    phone,
		Role:     models.UserRoleGuest,
		Status:   models.UserStatusActive,
		JoinDate: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// Another request signed the same phone up first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, findErr := s.findByPhone(ctx, phone); findErr == nil {
				return existing, nil
			}
		}
		return nil, fromDB(err, msgUserNotFound, "failed to create user")
	}
	return user, nil
}

func (s *UserService) findByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, NewInternalError("failed to fetch users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fromDB(err, msgUserNotFound, "failed to fetch user")
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, data models.UpdateUserData) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if data.Name != nil {
		user.Name = strings.TrimSpace(*data.Name)
	}
	if data.Email != nil {
		user.Email = *data.Email
	}
	if data.Role != nil {
		user.Role = *data.Role
	}
	if data.Status != nil {
		user.Status = *data.Status
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fromDB(err, msgUserNotFound, "failed to update user")
	}
	return user, nil
}

// Delete removes a user without orders. Users that still own orders are
// rejected with ErrUserHasOrders, mirroring the service deletion policy.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return fromDB(err, msgUserNotFound, "failed to fetch user")
		}

		var orderCount int64
		if err := tx.Model(&models.Order{}).Where("user_id = ?", id).Count(&orderCount).Error; err != nil {
			return NewInternalError("failed to count user orders", err)
		}
		if orderCount > 0 {
			return ErrUserHasOrders
		}

		if err := tx.Delete(&user).Error; err != nil {
			return fromDB(err, msgUserNotFound, "failed to delete user")
		}
		return nil
	})
}
