package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	CategoryRoom = "Room"
	CategoryFood = "Food"
)

func init() {
	// Clients read money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Service is a bookable offering: a room or a food item.
type Service struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"not null"`
	Description string                      `json:"description"`
	Category    string                      `json:"category" gorm:"type:varchar(32);index"`
	Price       decimal.Decimal             `json:"price" gorm:"type:decimal(12,2);not null"`
	Rating      float64                     `json:"rating"`
	Image       string                      `json:"image"`
	Available   bool                        `json:"available"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// ServiceData carries a create or partial update. Nil fields are left untouched.
type ServiceData struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Category    *string          `json:"category" binding:"omitempty,oneof=Room Food"`
	Price       *decimal.Decimal `json:"price"`
	Rating      *float64         `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Image       *string          `json:"image" binding:"omitempty,max=1024"`
	Available   *bool            `json:"available"`
	Features    *[]string        `json:"features"`
}

// ServiceForm is the multipart shape sent by the admin dashboard. Every value
// arrives as text; the image itself travels as the "image" file part.
type ServiceForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Price       string `form:"price"`
	Rating      string `form:"rating"`
	ImageURL    string `form:"imageUrl"`
	Available   string `form:"available"`
	Features    string `form:"features"`
}

// ToServiceData converts the non-empty form values. Features must be a JSON array of strings.
func (f ServiceForm) ToServiceData() (ServiceData, error) {
	var data ServiceData

	if f.Title != "" {
		data.Title = &f.Title
	}
	if f.Description != "" {
		data.Description = &f.Description
	}
	if f.Category != "" {
		data.Category = &f.Category
	}
	if f.ImageURL != "" {
		data.Image = &f.ImageURL
	}
	if f.Price != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
		if err != nil {
			return data, fmt.Errorf("invalid price %q", f.Price)
		}
		data.Price = &price
	}
	if f.Rating != "" {
		rating, err := strconv.ParseFloat(strings.TrimSpace(f.Rating), 64)
		if err != nil {
			return data, fmt.Errorf("invalid rating %q", f.Rating)
		}
		data.Rating = &rating
	}
	if f.Available != "" {
		available, err := strconv.ParseBool(strings.TrimSpace(f.Available))
		if err != nil {
			return data, fmt.Errorf("invalid available flag %q", f.Available)
		}
		data.Available = &available
	}
	if f.Features != "" {
		var features []string
		if err := json.Unmarshal([]byte(f.Features), &features); err != nil {
			return data, fmt.Errorf("features must be a JSON array of strings")
		}
		data.Features = &features
	}
	return data, nil
}
