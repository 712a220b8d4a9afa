package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arifmahmud/coursebay/internal/models"
)

type fakeRepo struct {
	purchase *models.Purchase
	items    []models.OrderItem
	err      error
}

func (r *fakeRepo) CreatePurchaseWithItems(ctx context.Context, purchase *models.Purchase, items []models.OrderItem) error {
	if r.err != nil {
		return r.err
	}
	r.purchase = purchase
	r.items = items
	return nil
}

func snapshot(price string) models.CourseSnapshot {
	return models.CourseSnapshot{
		ID:       uuid.New(),
		Title:    "Intro to Go",
		Price:    decimal.RequireFromString(price),
		Duration: "6h",
	}
}

func strptr(s string) *string { return &s }

func TestCreatePurchaseBkash(t *testing.T) {
	repo := &fakeRepo{}
	assembler := NewAssembler(repo)
	userID := uuid.New()

	purchase, err := assembler.CreatePurchase(context.Background(), userID, PaymentDetails{
		Gateway:    models.GatewayBkash,
		Mobile:     "01700000000",
		AmountPaid: decimal.RequireFromString("100.00"),
		BkashTrxID: strptr("AB12345678"),
	}, []OrderLine{
		{CourseData: snapshot("50"), Quantity: 2},
	})
	if err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}

	if purchase.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", purchase.Status, models.StatusPending)
	}
	if purchase.UserID != userID {
		t.Errorf("user id = %v, want %v", purchase.UserID, userID)
	}
	if !purchase.AmountPaid.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("amount paid = %s, want 100.00", purchase.AmountPaid)
	}
	if purchase.BkashTrxID == nil || *purchase.BkashTrxID != "AB12345678" {
		t.Errorf("bkash trx id not copied verbatim: %v", purchase.BkashTrxID)
	}
	if purchase.PurchasedAt.IsZero() {
		t.Error("purchased_at not set")
	}

	if len(repo.items) != 1 {
		t.Fatalf("items = %d, want 1", len(repo.items))
	}
	item := repo.items[0]
	if !item.TotalPrice.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("item total = %s, want 100.00", item.TotalPrice)
	}
	if item.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", item.Quantity)
	}
	if item.PurchaseID != purchase.ID {
		t.Errorf("item purchase id = %v, want %v", item.PurchaseID, purchase.ID)
	}
	if !item.DiscountAmount.IsZero() {
		t.Errorf("discount = %s, want 0 by default", item.DiscountAmount)
	}
}

func TestCreatePurchaseCarriesLineDiscount(t *testing.T) {
	repo := &fakeRepo{}
	assembler := NewAssembler(repo)

	_, err := assembler.CreatePurchase(context.Background(), uuid.New(), PaymentDetails{
		Gateway:       models.GatewayStripe,
		AmountPaid:    decimal.RequireFromString("80.00"),
		TransactionID: strptr("ch_123456"),
	}, []OrderLine{
		{
			CourseData:     snapshot("100"),
			Quantity:       1,
			CouponCode:     strptr("summer24"),
			DiscountAmount: decimal.RequireFromString("20.00"),
		},
		{CourseData: snapshot("40"), Quantity: 1},
	})
	if err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}

	if len(repo.items) != 2 {
		t.Fatalf("items = %d, want 2", len(repo.items))
	}

	discounted := repo.items[0]
	if discounted.CouponCode == nil || *discounted.CouponCode != "summer24" {
		t.Errorf("coupon code not carried forward: %v", discounted.CouponCode)
	}
	if !discounted.DiscountAmount.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("discount = %s, want 20.00", discounted.DiscountAmount)
	}
	// The line total stays snapshot price times quantity; the discount is
	// recorded alongside, not subtracted from it.
	if !discounted.TotalPrice.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("total = %s, want 100.00", discounted.TotalPrice)
	}

	plain := repo.items[1]
	if plain.CouponCode != nil {
		t.Errorf("undiscounted line has coupon code %v", *plain.CouponCode)
	}
	if !plain.DiscountAmount.IsZero() {
		t.Errorf("undiscounted line discount = %s, want 0", plain.DiscountAmount)
	}
}

func TestCreatePurchaseStorageFailureLeavesNothing(t *testing.T) {
	repo := &fakeRepo{err: errors.New("deadlock detected")}
	assembler := NewAssembler(repo)

	purchase, err := assembler.CreatePurchase(context.Background(), uuid.New(), PaymentDetails{
		Gateway:       models.GatewayBank,
		AmountPaid:    decimal.RequireFromString("50.00"),
		BankReceiptNo: strptr("RCPT-0001"),
	}, []OrderLine{
		{CourseData: snapshot("50"), Quantity: 1},
	})
	if err == nil {
		t.Fatal("expected error from failing repository")
	}
	if purchase != nil {
		t.Errorf("purchase = %v, want nil on failure", purchase)
	}
	if repo.purchase != nil || repo.items != nil {
		t.Error("repository recorded state despite failure")
	}
}

func TestCreatePurchaseEmptyCart(t *testing.T) {
	assembler := NewAssembler(&fakeRepo{})

	_, err := assembler.CreatePurchase(context.Background(), uuid.New(), PaymentDetails{
		Gateway:       models.GatewayStripe,
		AmountPaid:    decimal.Zero,
		TransactionID: strptr("ch_123456"),
	}, nil)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("error = %v, want ErrEmptyCart", err)
	}
}

// The snapshot price is authoritative for the receipt. Changing the catalog
// after checkout must not change what was charged.
func TestCreatePurchaseUsesSnapshotPrice(t *testing.T) {
	repo := &fakeRepo{}
	assembler := NewAssembler(repo)

	line := OrderLine{CourseData: snapshot("75.50"), Quantity: 1}
	_, err := assembler.CreatePurchase(context.Background(), uuid.New(), PaymentDetails{
		Gateway:       models.GatewayHandCash,
		AmountPaid:    decimal.RequireFromString("75.50"),
		TransactionID: strptr("HC-000123"),
	}, []OrderLine{line})
	if err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}

	if !repo.items[0].TotalPrice.Equal(decimal.RequireFromString("75.50")) {
		t.Errorf("total = %s, want snapshot price 75.50", repo.items[0].TotalPrice)
	}
	if !repo.items[0].CourseData.Price.Equal(decimal.RequireFromString("75.50")) {
		t.Errorf("snapshot price = %s, want 75.50", repo.items[0].CourseData.Price)
	}
}

// fakeEnrollmentRepo mimics the first-or-create semantics of the real
// repository: a repeated (user, course) pair never yields a second row.
type fakeEnrollmentRepo struct {
	created map[string]int
	failOn  uuid.UUID
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{created: make(map[string]int)}
}

func (r *fakeEnrollmentRepo) EnsureEnrollment(ctx context.Context, userID, courseID uuid.UUID, at time.Time) error {
	if courseID == r.failOn {
		return errors.New("insert failed")
	}
	key := userID.String() + "/" + courseID.String()
	if r.created[key] == 0 {
		r.created[key] = 1
	}
	return nil
}

func completedPurchase(userID uuid.UUID, courses ...models.CourseSnapshot) *models.Purchase {
	purchase := &models.Purchase{UserID: userID, Status: models.StatusCompleted}
	for _, course := range courses {
		purchase.Items = append(purchase.Items, models.OrderItem{CourseData: course})
	}
	return purchase
}

func TestEnrollPurchase(t *testing.T) {
	userID := uuid.New()
	courseA := snapshot("50.00")
	courseB := snapshot("25.00")

	t.Run("one enrollment per course", func(t *testing.T) {
		repo := newFakeEnrollmentRepo()
		purchase := completedPurchase(userID, courseA, courseB)

		if err := EnrollPurchase(context.Background(), repo, purchase); err != nil {
			t.Fatalf("EnrollPurchase returned error: %v", err)
		}
		if len(repo.created) != 2 {
			t.Fatalf("enrollments = %d, want 2", len(repo.created))
		}
	})

	t.Run("re-completing does not duplicate", func(t *testing.T) {
		repo := newFakeEnrollmentRepo()
		purchase := completedPurchase(userID, courseA)

		if err := EnrollPurchase(context.Background(), repo, purchase); err != nil {
			t.Fatalf("first EnrollPurchase returned error: %v", err)
		}
		if err := EnrollPurchase(context.Background(), repo, purchase); err != nil {
			t.Fatalf("second EnrollPurchase returned error: %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("enrollments = %d, want 1", len(repo.created))
		}
		key := userID.String() + "/" + courseA.ID.String()
		if repo.created[key] != 1 {
			t.Fatalf("enrollment rows = %d, want 1", repo.created[key])
		}
	})

	t.Run("propagates repository error", func(t *testing.T) {
		repo := newFakeEnrollmentRepo()
		repo.failOn = courseB.ID
		purchase := completedPurchase(userID, courseA, courseB)

		if err := EnrollPurchase(context.Background(), repo, purchase); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
