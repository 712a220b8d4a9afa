package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusCompleted, StatusFailed, StatusRefunded, StatusPartiallyRefunded} {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{"", "paid", "cancelled", "PENDING"} {
		if ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = true, want false", status)
		}
	}
}

func TestValidGateway(t *testing.T) {
	for _, gateway := range []string{GatewayStripe, GatewayBkash, GatewayBank, GatewayHandCash} {
		if !ValidGateway(gateway) {
			t.Errorf("ValidGateway(%q) = false, want true", gateway)
		}
	}
	if ValidGateway("PayPal") {
		t.Error("ValidGateway(\"PayPal\") = true, want false")
	}
}

func TestCourseSnapshotRoundTrip(t *testing.T) {
	original := CourseSnapshot{
		ID:       uuid.New(),
		Title:    "Intro to Go",
		Price:    decimal.RequireFromString("49.99"),
		Image:    "/img/go.png",
		Duration: "6h",
	}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}

	var restored CourseSnapshot
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if restored.ID != original.ID || restored.Title != original.Title {
		t.Errorf("restored = %+v, want %+v", restored, original)
	}
	if !restored.Price.Equal(original.Price) {
		t.Errorf("restored price = %s, want %s", restored.Price, original.Price)
	}
}

