package app

import (
	"errors"
	"testing"
	"time"

	"shopadmin/internal/store"
	"shopadmin/internal/util"
	"shopadmin/pkg/domain"
)

func seedOrder(t *testing.T, s *store.MemoryStore, storeID string, isPaid bool, items ...domain.OrderItem) domain.Order {
	t.Helper()
	now := time.Now().UTC()
	o := domain.Order{
		ID:           util.NewID(),
		StoreID:      storeID,
		CustomerName: "Jane Doe",
		Phone:        "0700000000",
		Address:      "1 Main St",
		County:       "Nairobi",
		IDNumber:     "12345678",
		IsPaid:       isPaid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i := range items {
		items[i].ID = util.NewID()
		items[i].OrderID = o.ID
	}
	o.Items = items
	if err := s.CreateOrder(o); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}

func TestListOrdersBuildsSummaries(t *testing.T) {
	a, memStore, _ := newTestApp(t)
	f := seedProductRefs(t, a)
	product, err := a.CreateProduct("user-1", f.storeID, f.input())
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	seedOrder(t, memStore, f.storeID, true, domain.OrderItem{ProductID: product.ID, Quantity: 2})

	rows, err := a.ListOrders("user-1", f.storeID)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.Products != "Runner (2) [Large] [Black]" {
		t.Fatalf("products = %q", row.Products)
	}
	if row.TotalPrice != "$119.98" {
		t.Fatalf("total = %q, want $119.98", row.TotalPrice)
	}
	if !row.IsPaid {
		t.Fatalf("row should be paid")
	}
}

func TestUpdateOrderPatch(t *testing.T) {
	a, memStore, _ := newTestApp(t)
	storeID := seedStore(t, a, "user-1")
	order := seedOrder(t, memStore, storeID, false)

	if _, err := a.UpdateOrder("user-1", storeID, order.ID, OrderPatch{}); !IsValidation(err) {
		t.Fatalf("empty patch err = %v, want validation error", err)
	}

	paid := true
	updated, err := a.UpdateOrder("user-1", storeID, order.ID, OrderPatch{IsPaid: &paid})
	if err != nil {
		t.Fatalf("patch isPaid: %v", err)
	}
	if !updated.IsPaid {
		t.Fatalf("order should be paid")
	}

	tracking := "TRK-42"
	updated, err = a.UpdateOrder("user-1", storeID, order.ID, OrderPatch{TrackingID: &tracking})
	if err != nil {
		t.Fatalf("patch trackingId: %v", err)
	}
	if updated.TrackingID != "TRK-42" {
		t.Fatalf("trackingId = %q", updated.TrackingID)
	}
	// A one-field patch leaves the other field alone.
	if !updated.IsPaid {
		t.Fatalf("tracking patch must not reset isPaid")
	}

	if _, err := a.UpdateOrder("user-1", storeID, "no-such-order", OrderPatch{IsPaid: &paid}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing order err = %v, want ErrNotFound", err)
	}
}

func TestAppendTrackingNewestFirst(t *testing.T) {
	a, memStore, _ := newTestApp(t)
	storeID := seedStore(t, a, "user-1")
	order := seedOrder(t, memStore, storeID, true)

	if _, err := a.AppendTracking("user-1", storeID, order.ID, TrackingInput{Status: "  "}); !IsValidation(err) {
		t.Fatalf("blank status err = %v, want validation error", err)
	}

	if _, err := a.AppendTracking("user-1", storeID, order.ID, TrackingInput{Status: "packed"}); err != nil {
		t.Fatalf("append packed: %v", err)
	}
	time.Sleep(time.Millisecond)
	second, err := a.AppendTracking("user-1", storeID, order.ID, TrackingInput{
		Status:  "shipped",
		Details: map[string]string{"carrier": "DHL"},
	})
	if err != nil {
		t.Fatalf("append shipped: %v", err)
	}
	if second.Details["carrier"] != "DHL" {
		t.Fatalf("details = %v", second.Details)
	}

	detail, err := a.GetOrder("user-1", storeID, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(detail.TrackingUpdates) != 2 {
		t.Fatalf("tracking updates = %d, want 2", len(detail.TrackingUpdates))
	}
	if detail.TrackingUpdates[0].Timestamp.Before(detail.TrackingUpdates[1].Timestamp) {
		t.Fatalf("tracking updates must be newest first")
	}
	var statuses []string
	for _, u := range detail.TrackingUpdates {
		statuses = append(statuses, u.Status)
	}
	if statuses[len(statuses)-1] != "packed" {
		t.Fatalf("oldest update should be packed, got %v", statuses)
	}
}

func TestGetOverview(t *testing.T) {
	a, memStore, _ := newTestApp(t)
	f := seedProductRefs(t, a)
	product, err := a.CreateProduct("user-1", f.storeID, f.input())
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	second := f.input()
	second.Name = "Walker"
	if _, err := a.CreateProduct("user-1", f.storeID, second); err != nil {
		t.Fatalf("create second product: %v", err)
	}

	// One paid order of two units, one unpaid order that must not count.
	seedOrder(t, memStore, f.storeID, true, domain.OrderItem{ProductID: product.ID, Quantity: 2})
	seedOrder(t, memStore, f.storeID, false, domain.OrderItem{ProductID: product.ID, Quantity: 5})

	overview, err := a.GetOverview("user-1", f.storeID)
	if err != nil {
		t.Fatalf("get overview: %v", err)
	}
	if overview.SalesCount != 1 {
		t.Fatalf("salesCount = %d, want 1", overview.SalesCount)
	}
	if want := 59.99 * 2; overview.TotalRevenue != want {
		t.Fatalf("totalRevenue = %v, want %v", overview.TotalRevenue, want)
	}
	if overview.ProductsInStock != 2 {
		t.Fatalf("productsInStock = %d, want 2", overview.ProductsInStock)
	}

	if _, err := a.GetOverview("intruder", f.storeID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("foreign overview err = %v, want ErrUnauthorized", err)
	}
}
