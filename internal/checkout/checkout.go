package checkout

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arifmahmud/coursebay/internal/models"
)

// ErrEmptyCart is returned when checkout is attempted with no order lines.
var ErrEmptyCart = errors.New("cart is empty")

// PaymentDetails carries the buyer's claimed payment, copied verbatim onto
// the purchase. No gateway is ever called; this system only records the
// reference the buyer submitted. Gateway and reference-format validation
// happens at the request boundary before the assembler runs.
type PaymentDetails struct {
	Gateway       string
	Mobile        string
	Email         string
	Address       string
	AmountPaid    decimal.Decimal
	TransactionID *string
	BkashTrxID    *string
	BankReceiptNo *string
}

// OrderLine is one cart line at checkout: a denormalized course snapshot
// plus quantity and any per-line discount carried forward from the applied
// coupon.
type OrderLine struct {
	CourseData     models.CourseSnapshot
	Quantity       int
	CouponCode     *string
	DiscountAmount decimal.Decimal
}

// Repository persists a purchase and its items as one transaction.
type Repository interface {
	// CreatePurchaseWithItems writes the purchase header and every item
	// atomically: on any failure nothing is persisted.
	CreatePurchaseWithItems(ctx context.Context, purchase *models.Purchase, items []models.OrderItem) error
}

type Assembler struct {
	repo Repository
}

func NewAssembler(repo Repository) *Assembler {
	return &Assembler{repo: repo}
}

// CreatePurchase turns a cart snapshot plus payment details into a pending
// purchase with one order item per line. Line totals come from the snapshot
// price, never the live catalog, so the receipt is immune to later price
// changes.
func (a *Assembler) CreatePurchase(ctx context.Context, userID uuid.UUID, details PaymentDetails, lines []OrderLine) (*models.Purchase, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	purchase := &models.Purchase{
		ID:             uuid.New(),
		UserID:         userID,
		PaymentGateway: details.Gateway,
		Mobile:         details.Mobile,
		Email:          details.Email,
		Address:        details.Address,
		AmountPaid:     details.AmountPaid,
		TransactionID:  details.TransactionID,
		BkashTrxID:     details.BkashTrxID,
		BankReceiptNo:  details.BankReceiptNo,
		Status:         models.StatusPending,
		PurchasedAt:    time.Now(),
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		quantity := decimal.NewFromInt(int64(line.Quantity))
		items = append(items, models.OrderItem{
			PurchaseID:     purchase.ID,
			CourseData:     line.CourseData,
			Quantity:       line.Quantity,
			TotalPrice:     line.CourseData.Price.Mul(quantity).Round(2),
			CouponCode:     line.CouponCode,
			DiscountAmount: line.DiscountAmount.Round(2),
		})
	}

	if err := a.repo.CreatePurchaseWithItems(ctx, purchase, items); err != nil {
		return nil, errors.Wrap(err, "persist purchase")
	}

	purchase.Items = items
	return purchase, nil
}

// EnrollmentRepository records the course access a completed purchase grants.
type EnrollmentRepository interface {
	// EnsureEnrollment creates the (user, course) enrollment if it does not
	// already exist.
	EnsureEnrollment(ctx context.Context, userID, courseID uuid.UUID, at time.Time) error
}

// EnrollPurchase enrolls the buyer in every course on the purchase, one
// enrollment per (user, course). Safe to run again when a purchase is
// re-marked completed: existing enrollments are kept, not duplicated.
func EnrollPurchase(ctx context.Context, repo EnrollmentRepository, purchase *models.Purchase) error {
	at := time.Now()
	for _, item := range purchase.Items {
		if err := repo.EnsureEnrollment(ctx, purchase.UserID, item.CourseData.ID, at); err != nil {
			return errors.Wrap(err, "create enrollment")
		}
	}
	return nil
}
