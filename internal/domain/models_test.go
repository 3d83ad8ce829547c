package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDiscountedPrice(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount float64
		want     string
	}{
		{"no discount", "100", 0, "100.00"},
		{"twenty percent", "100", 20, "80.00"},
		{"full discount", "49.99", 100, "0.00"},
		{"rounds to cents", "33.33", 33, "22.33"},
		{"free course", "0", 50, "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			course := Course{Price: decimal.RequireFromString(tc.price), Discount: tc.discount}
			got := course.DiscountedPrice().StringFixed(2)
			if got != tc.want {
				t.Errorf("DiscountedPrice(%s, %v%%) = %s, want %s", tc.price, tc.discount, got, tc.want)
			}
		})
	}
}

func TestDiscountedPrice_NeverNegative(t *testing.T) {
	course := Course{Price: decimal.RequireFromString("10"), Discount: 150}
	if course.DiscountedPrice().IsNegative() {
		t.Error("discounted price must never be negative")
	}
}

func TestPurchaseTerminal(t *testing.T) {
	if (&Purchase{Status: PurchasePending}).Terminal() {
		t.Error("pending is not terminal")
	}
	if !(&Purchase{Status: PurchaseCompleted}).Terminal() {
		t.Error("completed is terminal")
	}
	if !(&Purchase{Status: PurchaseFailed}).Terminal() {
		t.Error("failed is terminal")
	}
}
