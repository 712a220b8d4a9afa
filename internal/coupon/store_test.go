package coupon

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestStorePutGetClear(t *testing.T) {
	store := NewStore()
	key := uuid.New().String()

	if _, ok := store.Get(key); ok {
		t.Fatal("empty store returned an applied coupon")
	}

	applied := Applied{
		Code:          "summer24",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(20),
		CourseID:      uuid.New(),
		AppliedAt:     time.Now(),
	}
	store.Put(key, applied)

	got, ok := store.Get(key)
	if !ok {
		t.Fatal("Get returned no coupon after Put")
	}
	if got.Code != applied.Code {
		t.Errorf("got code %q, want %q", got.Code, applied.Code)
	}

	store.Clear(key)
	if _, ok := store.Get(key); ok {
		t.Error("Get returned a coupon after Clear")
	}
}

// Applying a second coupon replaces the first. The first coupon's used_count
// is not touched here; the store only holds the latest application.
func TestStoreLastWriteWins(t *testing.T) {
	store := NewStore()
	key := "session-1"

	store.Put(key, Applied{Code: "first", CourseID: uuid.New()})
	store.Put(key, Applied{Code: "second", CourseID: uuid.New()})

	got, ok := store.Get(key)
	if !ok {
		t.Fatal("Get returned no coupon")
	}
	if got.Code != "second" {
		t.Errorf("got code %q, want %q", got.Code, "second")
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	store := NewStore()

	store.Put("a", Applied{Code: "for-a"})
	store.Put("b", Applied{Code: "for-b"})
	store.Clear("a")

	if _, ok := store.Get("a"); ok {
		t.Error("cleared key still present")
	}
	got, ok := store.Get("b")
	if !ok || got.Code != "for-b" {
		t.Errorf("unrelated key affected by Clear: got %v, %v", got, ok)
	}
}
