package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type DiscountCode struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Code               string    `json:"code" db:"code"`
	DiscountPercentage int       `json:"discount_percentage" db:"discount_percentage"`
	ValidFrom          time.Time `json:"valid_from" db:"valid_from"`
	ValidUntil         time.Time `json:"valid_until" db:"valid_until"`
	IsActive           bool      `json:"is_active" db:"is_active"`
	UsageLimit         *int      `json:"usage_limit,omitempty" db:"usage_limit"`
	UsedCount          int       `json:"used_count" db:"used_count"`
	CreatedBy          string    `json:"created_by" db:"created_by"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// IsValidAt reports whether the code can be redeemed at the given instant:
// active, inside [ValidFrom, ValidUntil], and under its usage limit.
func (d *DiscountCode) IsValidAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if now.Before(d.ValidFrom) || now.After(d.ValidUntil) {
		return false
	}
	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return false
	}
	return true
}

func (d *DiscountCode) DaysRemaining(now time.Time) int {
	return int(math.Ceil(d.ValidUntil.Sub(now).Hours() / 24))
}

// DiscountCodeView decorates a code with its computed redemption state for
// the admin panel list.
type DiscountCodeView struct {
	DiscountCode
	IsValidNow    bool `json:"is_valid_now"`
	DaysRemaining int  `json:"days_remaining"`
}

type CreateDiscountCodeInput struct {
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
	ValidDays          int    `json:"valid_days"`
	UsageLimit         *int   `json:"usage_limit,omitempty"`
	AutoGenerate       bool   `json:"auto_generate"`
}

type UpdateDiscountCodeInput struct {
	IsActive           *bool `json:"is_active,omitempty"`
	DiscountPercentage *int  `json:"discount_percentage,omitempty"`
	ValidDays          *int  `json:"valid_days,omitempty"`
}

type ApplyDiscountInput struct {
	Code string `json:"code"`
}
