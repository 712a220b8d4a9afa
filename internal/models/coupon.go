package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed_amount"
)

type Coupon struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Code          string          `gorm:"not null;unique" json:"code"`
	DiscountType  string          `gorm:"not null" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount_value"`
	ValidFrom     time.Time       `gorm:"not null" json:"valid_from"`
	ValidUntil    time.Time       `gorm:"not null" json:"valid_until"`
	UsageLimit    *int            `json:"usage_limit"`
	UsedCount     int             `gorm:"not null;default:0" json:"used_count"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// NormalizeCouponCode is the canonical form used for storage and lookup.
func NormalizeCouponCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func (coupon *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	coupon.Code = NormalizeCouponCode(coupon.Code)
	return
}

// InWindow reports whether now falls inside the coupon's validity window.
// Bounds are compared date-only and are inclusive on both ends, so a coupon
// with valid_until = today is still usable at 23:59:59.
func (coupon *Coupon) InWindow(now time.Time) bool {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := time.Date(coupon.ValidFrom.Year(), coupon.ValidFrom.Month(), coupon.ValidFrom.Day(), 0, 0, 0, 0, now.Location())
	until := time.Date(coupon.ValidUntil.Year(), coupon.ValidUntil.Month(), coupon.ValidUntil.Day(), 0, 0, 0, 0, now.Location())
	return !day.Before(from) && !day.After(until)
}

// UsageExhausted reports whether the usage cap has been reached. A nil
// usage_limit means unlimited.
func (coupon *Coupon) UsageExhausted() bool {
	return coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit
}
