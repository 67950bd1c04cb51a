package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProductCategory string

const (
	CategoryVehicles   ProductCategory = "vehicles"
	CategoryMoney      ProductCategory = "money"
	CategoryPlanes     ProductCategory = "planes"
	CategoryProperties ProductCategory = "properties"
	CategoryXP         ProductCategory = "xp"
	CategoryVIP        ProductCategory = "vip"
	CategoryPremium    ProductCategory = "premium"
	CategoryOther      ProductCategory = "other"
)

func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryVehicles, CategoryMoney, CategoryPlanes, CategoryProperties,
		CategoryXP, CategoryVIP, CategoryPremium, CategoryOther:
		return true
	default:
		return false
	}
}

type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	NameEn      *string         `json:"name_en,omitempty" db:"name_en"`
	Price       float64         `json:"price" db:"price"`
	Category    ProductCategory `json:"category" db:"category"`
	Stock       int             `json:"stock" db:"stock"`
	StockText   string          `json:"stock_text" db:"stock_text"`
	Image       *string         `json:"image,omitempty" db:"image"`
	Icon        string          `json:"icon" db:"icon"`
	Description string          `json:"description" db:"description"`
	Featured    bool            `json:"featured" db:"featured"`
	Active      bool            `json:"active" db:"active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateProductInput struct {
	Name        string          `json:"name"`
	NameEn      *string         `json:"name_en,omitempty"`
	Price       float64         `json:"price"`
	Category    ProductCategory `json:"category"`
	Stock       int             `json:"stock"`
	StockText   *string         `json:"stock_text,omitempty"`
	Icon        *string         `json:"icon,omitempty"`
	Description string          `json:"description"`
	Featured    bool            `json:"featured"`
}

type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty"`
	NameEn      *string          `json:"name_en,omitempty"`
	Price       *float64         `json:"price,omitempty"`
	Category    *ProductCategory `json:"category,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	StockText   *string          `json:"stock_text,omitempty"`
	Icon        *string          `json:"icon,omitempty"`
	Description *string          `json:"description,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

type ProductFilter struct {
	Category *ProductCategory
	Featured *bool
}

type CategoryCount struct {
	Category ProductCategory `json:"category" db:"category"`
	Count    int64           `json:"count" db:"count"`
}

type ProductStats struct {
	Total      int64           `json:"total"`
	Active     int64           `json:"active"`
	Categories []CategoryCount `json:"categories"`
}
