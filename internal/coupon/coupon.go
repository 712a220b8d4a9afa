package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arifmahmud/coursebay/internal/models"
)

var (
	// ErrNotFound is returned when no coupon matches the normalized code.
	ErrNotFound = errors.New("coupon not found")
	// ErrInactive is returned for a deactivated coupon. Callers surface it
	// as "invalid or expired".
	ErrInactive = errors.New("coupon is inactive")
	// ErrOutOfWindow is returned when now falls outside [valid_from, valid_until].
	ErrOutOfWindow = errors.New("coupon is outside its validity window")
	// ErrNotApplicableToCourse is returned when the coupon is not the
	// course's designated code.
	ErrNotApplicableToCourse = errors.New("coupon is not valid for this course")
	// ErrUsageLimitReached is returned when used_count has reached usage_limit.
	ErrUsageLimitReached = errors.New("coupon usage limit reached")
)

// Applied is the ephemeral record of a coupon successfully validated against
// one course. It lives in the session store until checkout consumes it,
// a later application replaces it, or the user removes it.
type Applied struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	CourseID      uuid.UUID       `json:"course_id"`
	UserID        uuid.UUID       `json:"user_id"`
	AppliedAt     time.Time       `json:"applied_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
}

// Repository provides coupon lookup and usage counting.
type Repository interface {
	// FindByNormalizedCode returns the coupon whose stored code equals the
	// normalized form of code, or (nil, nil) when there is none.
	FindByNormalizedCode(ctx context.Context, code string) (*models.Coupon, error)
	// IncrementUsedCount adds 1 to used_count atomically: concurrent
	// increments must never lose updates.
	IncrementUsedCount(ctx context.Context, couponID uuid.UUID) error
}

type Validator struct {
	repo Repository
}

func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo}
}

// Validate runs the full application sequence against one course and, on
// success, consumes one use of the coupon. The increment happens at
// application time, before any checkout: a user who applies a coupon and
// abandons the cart still counts against usage_limit. The limit check runs
// before the increment, so two concurrent applications of a coupon with one
// remaining use can both succeed and push used_count past the limit.
func (v *Validator) Validate(ctx context.Context, code string, course *models.Course, userID uuid.UUID, now time.Time) (*Applied, error) {
	found, err := v.repo.FindByNormalizedCode(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "look up coupon")
	}
	if found == nil {
		return nil, ErrNotFound
	}

	if !found.IsActive {
		return nil, ErrInactive
	}

	if !found.InWindow(now) {
		return nil, ErrOutOfWindow
	}

	if course.CouponCode == nil || models.NormalizeCouponCode(*course.CouponCode) != found.Code {
		return nil, ErrNotApplicableToCourse
	}

	if found.UsageExhausted() {
		return nil, ErrUsageLimitReached
	}

	if err := v.repo.IncrementUsedCount(ctx, found.ID); err != nil {
		return nil, errors.Wrap(err, "increment coupon usage")
	}

	return &Applied{
		Code:          found.Code,
		DiscountType:  found.DiscountType,
		DiscountValue: found.DiscountValue,
		CourseID:      course.ID,
		UserID:        userID,
		AppliedAt:     now,
		ExpiresAt:     found.ValidUntil,
	}, nil
}
