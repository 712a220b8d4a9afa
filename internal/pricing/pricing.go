package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arifmahmud/coursebay/internal/coupon"
	"github.com/arifmahmud/coursebay/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// Quote is a computed price for one course.
type Quote struct {
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalPrice     decimal.Decimal `json:"final_price"`
}

// ComputeFinalPrice prices a course against an optionally-applied coupon.
// A nil coupon, or a coupon applied to a different course, leaves the base
// price untouched. A fixed_amount discount is not clamped to the base price,
// so the final price can go negative. Results are rounded half-up to 2
// decimal places.
func ComputeFinalPrice(basePrice decimal.Decimal, courseID uuid.UUID, applied *coupon.Applied) Quote {
	if applied == nil || applied.CourseID != courseID {
		return Quote{
			DiscountAmount: decimal.Zero.Round(2),
			FinalPrice:     basePrice.Round(2),
		}
	}

	var discount decimal.Decimal
	switch applied.DiscountType {
	case models.DiscountPercentage:
		discount = basePrice.Mul(applied.DiscountValue).Div(oneHundred)
	case models.DiscountFixed:
		discount = applied.DiscountValue
	default:
		discount = decimal.Zero
	}

	discount = discount.Round(2)
	return Quote{
		DiscountAmount: discount,
		FinalPrice:     basePrice.Sub(discount).Round(2),
	}
}
