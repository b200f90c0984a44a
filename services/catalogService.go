package services

import (
	"context"
	"strings"

	"github.com/Kariqs/aroena-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const msgServiceNotFound = "service not found"

// CatalogService manages the bookable rooms and food items.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := s.db.WithContext(ctx).Order("id asc").Find(&services).Error; err != nil {
		return nil, NewInternalError("failed to fetch services", err)
	}
	return services, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, fromDB(err, msgServiceNotFound, "failed to fetch service")
	}
	return &service, nil
}

func (s *CatalogService) Create(ctx context.Context, data models.ServiceData) (*models.Service, error) {
	if err := ValidateServiceData(data, true); err != nil {
		return nil, err
	}

	service := models.Service{Features: datatypes.JSONSlice[string]{}}
	applyServiceData(&service, data)
	if err := s.db.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, fromDB(err, msgServiceNotFound, "failed to create service")
	}
	return &service, nil
}

// Update applies a partial update; fields left nil keep their stored value.
func (s *CatalogService) Update(ctx context.Context, id uint, data models.ServiceData) (*models.Service, error) {
	if err := ValidateServiceData(data, false); err != nil {
		return nil, err
	}

	service, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyServiceData(service, data)
	if err := s.db.WithContext(ctx).Save(service).Error; err != nil {
		return nil, fromDB(err, msgServiceNotFound, "failed to update service")
	}
	return service, nil
}

// Delete removes a service that no order references. Services with orders are
// never cascaded: the call fails with ErrServiceHasOrders.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, id).Error; err != nil {
			return fromDB(err, msgServiceNotFound, "failed to fetch service")
		}

		var orderCount int64
		if err := tx.Model(&models.Order{}).Where("service_id = ?", id).Count(&orderCount).Error; err != nil {
			return NewInternalError("failed to count service orders", err)
		}
		if orderCount > 0 {
			return ErrServiceHasOrders
		}

		if err := tx.Delete(&service).Error; err != nil {
			return fromDB(err, msgServiceNotFound, "failed to delete service")
		}
		return nil
	})
}

// ValidateServiceData checks the field rules that do not need the database.
// Creating additionally requires title, category and price.
func ValidateServiceData(data models.ServiceData, creating bool) error {
	if creating {
		if data.Title == nil {
			return NewBadRequestError("title is required")
		}
		if data.Category == nil || *data.Category == "" {
			return NewBadRequestError("category is required")
		}
		if data.Price == nil {
			return NewBadRequestError("price is required")
		}
	}
	if data.Title != nil && strings.TrimSpace(*data.Title) == "" {
		return NewBadRequestError("title is required")
	}
	if data.Price != nil && data.Price.IsNegative() {
		return NewBadRequestError("price must not be negative")
	}
	if data.Rating != nil && (*data.Rating < 0 || *data.Rating > 5) {
		return NewBadRequestError("rating must be between 0 and 5")
	}
	return nil
}

func applyServiceData(service *models.Service, data models.ServiceData) {
	if data.Title != nil {
		service.Title = strings.TrimSpace(*data.Title)
	}
	if data.Description != nil {
		service.Description = *data.Description
	}
	if data.Category != nil {
		service.Category = *data.Category
	}
	if data.Price != nil {
		service.Price = *data.Price
	}
	if data.Rating != nil {
		service.Rating = *data.Rating
	}
	if data.Image != nil {
		service.Image = *data.Image
	}
	if data.Available != nil {
		service.Available = *data.Available
	}
	if data.Features != nil {
		service.Features = datatypes.JSONSlice[string](*data.Features)
	}
}
