package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arifmahmud/coursebay/internal/coupon"
	"github.com/arifmahmud/coursebay/internal/models"
)

func TestComputeFinalPrice(t *testing.T) {
	courseID := uuid.New()

	tests := []struct {
		name         string
		basePrice    string
		applied      *coupon.Applied
		wantDiscount string
		wantFinal    string
	}{
		{
			name:         "no coupon",
			basePrice:    "100",
			applied:      nil,
			wantDiscount: "0",
			wantFinal:    "100",
		},
		{
			name:      "20 percent off 100",
			basePrice: "100",
			applied: &coupon.Applied{
				DiscountType:  models.DiscountPercentage,
				DiscountValue: decimal.NewFromInt(20),
				CourseID:      courseID,
			},
			wantDiscount: "20",
			wantFinal:    "80",
		},
		{
			name:      "fixed 30 off 100",
			basePrice: "100",
			applied: &coupon.Applied{
				DiscountType:  models.DiscountFixed,
				DiscountValue: decimal.NewFromInt(30),
				CourseID:      courseID,
			},
			wantDiscount: "30",
			wantFinal:    "70",
		},
		{
			name:      "percentage rounds half up",
			basePrice: "9.99",
			applied: &coupon.Applied{
				DiscountType:  models.DiscountPercentage,
				DiscountValue: decimal.NewFromInt(15),
				CourseID:      courseID,
			},
			wantDiscount: "1.50",
			wantFinal:    "8.49",
		},
		{
			name:      "fixed discount may exceed price",
			basePrice: "25",
			applied: &coupon.Applied{
				DiscountType:  models.DiscountFixed,
				DiscountValue: decimal.NewFromInt(40),
				CourseID:      courseID,
			},
			wantDiscount: "40",
			wantFinal:    "-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := decimal.RequireFromString(tt.basePrice)
			quote := ComputeFinalPrice(base, courseID, tt.applied)

			if !quote.DiscountAmount.Equal(decimal.RequireFromString(tt.wantDiscount)) {
				t.Errorf("discount = %s, want %s", quote.DiscountAmount, tt.wantDiscount)
			}
			if !quote.FinalPrice.Equal(decimal.RequireFromString(tt.wantFinal)) {
				t.Errorf("final price = %s, want %s", quote.FinalPrice, tt.wantFinal)
			}
		})
	}
}

// A coupon applied to one course never discounts another: each course is
// priced independently.
func TestComputeFinalPriceIgnoresOtherCourse(t *testing.T) {
	applied := &coupon.Applied{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(50),
		CourseID:      uuid.New(),
	}

	quote := ComputeFinalPrice(decimal.NewFromInt(100), uuid.New(), applied)
	if !quote.DiscountAmount.IsZero() {
		t.Errorf("discount = %s, want 0 for a different course", quote.DiscountAmount)
	}
	if !quote.FinalPrice.Equal(decimal.NewFromInt(100)) {
		t.Errorf("final price = %s, want 100", quote.FinalPrice)
	}
}
