package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeCouponCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Summer24 ", "summer24"},
		{"SUMMER24", "summer24"},
		{"summer24", "summer24"},
	}
	for _, tt := range tests {
		if got := NormalizeCouponCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCouponCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCouponInWindowDateOnly(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	c := Coupon{
		// Window set with arbitrary times of day; only the dates matter.
		ValidFrom:  time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}
	if !c.InWindow(now) {
		t.Error("coupon should be usable on its last day regardless of time of day")
	}

	c.ValidUntil = time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	if c.InWindow(now) {
		t.Error("coupon should not be usable the day after valid_until")
	}

	c.ValidFrom = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	c.ValidUntil = time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	if c.InWindow(now) {
		t.Error("coupon should not be usable before valid_from")
	}
}

func TestCouponUsageExhausted(t *testing.T) {
	c := Coupon{UsedCount: 100}
	if c.UsageExhausted() {
		t.Error("nil usage_limit means unlimited")
	}

	limit := 5
	c.UsageLimit = &limit
	c.UsedCount = 4
	if c.UsageExhausted() {
		t.Error("4 of 5 uses should not be exhausted")
	}
	c.UsedCount = 5
	if !c.UsageExhausted() {
		t.Error("5 of 5 uses should be exhausted")
	}
}

func TestCouponJSONKeepsUsageFields(t *testing.T) {
	limit := 10
	c := Coupon{
		ID:         uuid.New(),
		Code:       "summer24",
		UsageLimit: &limit,
		UsedCount:  3,
		IsActive:   true,
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["used_count"].(float64) != 3 {
		t.Errorf("used_count = %v, want 3", decoded["used_count"])
	}
	if decoded["usage_limit"].(float64) != 10 {
		t.Errorf("usage_limit = %v, want 10", decoded["usage_limit"])
	}
}
