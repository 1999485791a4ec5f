package app

import (
	"testing"
	"time"

	"shopadmin/pkg/domain"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{9.9, "$9.90"},
		{59.99, "$59.99"},
		{1234.56, "$1,234.56"},
		{1000000, "$1,000,000.00"},
		{-42.5, "-$42.50"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.want {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatOrdinalDate(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{1, "March 1st, 2024"},
		{2, "March 2nd, 2024"},
		{3, "March 3rd, 2024"},
		{4, "March 4th, 2024"},
		{11, "March 11th, 2024"},
		{12, "March 12th, 2024"},
		{13, "March 13th, 2024"},
		{21, "March 21st, 2024"},
		{22, "March 22nd, 2024"},
		{23, "March 23rd, 2024"},
		{31, "March 31st, 2024"},
	}
	for _, tc := range cases {
		d := time.Date(2024, time.March, tc.day, 12, 0, 0, 0, time.UTC)
		if got := FormatOrdinalDate(d); got != tc.want {
			t.Fatalf("FormatOrdinalDate(day %d) = %q, want %q", tc.day, got, tc.want)
		}
	}
}

func TestBuildOrderSummary(t *testing.T) {
	shirt := &domain.Product{
		Name:  "Shirt",
		Price: 25,
		Sizes: []domain.Size{{Name: "Small"}, {Name: "Medium"}},
		Colors: []domain.Color{
			{Name: "Red"}, {Name: "Blue"},
		},
	}
	plainMug := &domain.Product{Name: "Mug", Price: 10}
	order := domain.Order{
		ID:           "order-1",
		CustomerName: "Jane Doe",
		Phone:        "0700000000",
		IsPaid:       true,
		TrackingID:   "TRK-1",
		Items: []domain.OrderItem{
			{Quantity: 2, Product: shirt},
			{Quantity: 1, Product: plainMug},
			{Quantity: 1, Product: nil}, // dangling item is skipped
		},
		CreatedAt: time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC),
	}

	row := BuildOrderSummary(order)
	if row.Products != "Shirt (2) [Small/Medium] [Red/Blue], Mug (1) [No size] [No color]" {
		t.Fatalf("products = %q", row.Products)
	}
	if row.Sizes != "Small, Medium" {
		t.Fatalf("sizes = %q", row.Sizes)
	}
	if row.Colors != "Red, Blue" {
		t.Fatalf("colors = %q", row.Colors)
	}
	if row.TotalPrice != "$60.00" {
		t.Fatalf("total = %q, want $60.00", row.TotalPrice)
	}
	if row.CreatedAt != "March 3rd, 2024" {
		t.Fatalf("createdAt = %q", row.CreatedAt)
	}
}

func TestBuildOrderSummaryDeduplicatesNames(t *testing.T) {
	black := domain.Color{Name: "Black"}
	large := domain.Size{Name: "Large"}
	p1 := &domain.Product{Name: "Runner", Price: 50, Sizes: []domain.Size{large}, Colors: []domain.Color{black}}
	p2 := &domain.Product{Name: "Walker", Price: 40, Sizes: []domain.Size{large}, Colors: []domain.Color{black}}
	order := domain.Order{
		Items: []domain.OrderItem{
			{Quantity: 1, Product: p1},
			{Quantity: 1, Product: p2},
		},
	}

	row := BuildOrderSummary(order)
	if row.Sizes != "Large" {
		t.Fatalf("sizes = %q, want deduplicated %q", row.Sizes, "Large")
	}
	if row.Colors != "Black" {
		t.Fatalf("colors = %q, want deduplicated %q", row.Colors, "Black")
	}
}

func TestOrderTotal(t *testing.T) {
	order := domain.Order{
		Items: []domain.OrderItem{
			{Quantity: 3, Product: &domain.Product{Price: 19.99}},
			{Quantity: 1, Product: nil},
		},
	}
	if got, want := OrderTotal(order), 3*19.99; got != want {
		t.Fatalf("OrderTotal = %v, want %v", got, want)
	}
}
