package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountCodeIsValidAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	limit5 := 5
	limit10 := 10

	base := DiscountCode{
		Code:               "SUMMER25",
		DiscountPercentage: 25,
		ValidFrom:          now.AddDate(0, 0, -1),
		ValidUntil:         now.AddDate(0, 0, 29),
		IsActive:           true,
	}

	tests := []struct {
		name   string
		mutate func(*DiscountCode)
		want   bool
	}{
		{"active inside window without limit", func(d *DiscountCode) {}, true},
		{"inactive", func(d *DiscountCode) { d.IsActive = false }, false},
		{"before the window", func(d *DiscountCode) { d.ValidFrom = now.AddDate(0, 0, 1) }, false},
		{"after the window", func(d *DiscountCode) { d.ValidUntil = now.AddDate(0, 0, -1) }, false},
		{"under the usage limit", func(d *DiscountCode) { d.UsageLimit = &limit10; d.UsedCount = 9 }, true},
		{"at the usage limit", func(d *DiscountCode) { d.UsageLimit = &limit5; d.UsedCount = 5 }, false},
		{"over the usage limit", func(d *DiscountCode) { d.UsageLimit = &limit5; d.UsedCount = 6 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := base
			tt.mutate(&dc)
			assert.Equal(t, tt.want, dc.IsValidAt(now))
		})
	}
}

func TestDiscountCodeDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	dc := DiscountCode{ValidUntil: now.AddDate(0, 0, 7)}
	assert.Equal(t, 7, dc.DaysRemaining(now))

	dc.ValidUntil = now.Add(36 * time.Hour)
	assert.Equal(t, 2, dc.DaysRemaining(now))
}
