package app

import (
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"shopadmin/internal/store"
	"shopadmin/internal/util"
	"shopadmin/pkg/domain"
)

// OrderPatch updates the mutable order fields. Nil leaves a field unchanged.
type OrderPatch struct {
	IsPaid     *bool   `json:"isPaid"`
	TrackingID *string `json:"trackingId"`
}

// TrackingInput appends one status event to an order's tracking history.
type TrackingInput struct {
	Status  string            `json:"status"`
	Details map[string]string `json:"details"`
}

// ListOrders returns the admin table rows for a store's orders, newest
// first, with products joined into display strings and totals computed.
func (a *App) ListOrders(userID, storeID string) ([]OrderSummary, error) {
	if _, err := a.requireStore(userID, storeID); err != nil {
		return nil, err
	}
	orders, err := a.store.ListOrders(storeID)
	if err != nil {
		return nil, err
	}
	res := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		res = append(res, BuildOrderSummary(o))
	}
	return res, nil
}

// GetOrder returns the full order detail including items with product
// associations and the tracking history newest first.
func (a *App) GetOrder(userID, storeID, orderID string) (domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return domain.Order{}, validationErr("Order id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Order{}, err
	}
	o, ok, err := a.store.GetOrder(orderID, storeID)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

func (a *App) UpdateOrder(userID, storeID, orderID string, patch OrderPatch) (domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return domain.Order{}, validationErr("Order id is required")
	}
	if patch.IsPaid == nil && patch.TrackingID == nil {
		return domain.Order{}, validationErr("Is paid or tracking id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Order{}, err
	}
	if _, ok, err := a.store.GetOrder(orderID, storeID); err != nil {
		return domain.Order{}, err
	} else if !ok {
		return domain.Order{}, ErrNotFound
	}
	upd := store.OrderUpdate{IsPaid: patch.IsPaid, TrackingID: patch.TrackingID}
	if err := a.store.UpdateOrder(orderID, upd); err != nil {
		return domain.Order{}, err
	}
	o, ok, err := a.store.GetOrder(orderID, storeID)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

// AppendTracking adds one event to the order's append-only tracking log.
func (a *App) AppendTracking(userID, storeID, orderID string, in TrackingInput) (domain.TrackingUpdate, error) {
	if strings.TrimSpace(orderID) == "" {
		return domain.TrackingUpdate{}, validationErr("Order id is required")
	}
	if strings.TrimSpace(in.Status) == "" {
		return domain.TrackingUpdate{}, validationErr("Status is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.TrackingUpdate{}, err
	}
	if _, ok, err := a.store.GetOrder(orderID, storeID); err != nil {
		return domain.TrackingUpdate{}, err
	} else if !ok {
		return domain.TrackingUpdate{}, ErrNotFound
	}
	u := domain.TrackingUpdate{
		ID:        util.NewID(),
		OrderID:   orderID,
		Status:    in.Status,
		Details:   in.Details,
		Timestamp: time.Now().UTC(),
	}
	if err := a.store.AppendTrackingUpdate(u); err != nil {
		return domain.TrackingUpdate{}, err
	}
	return u, nil
}

// Overview is the dashboard landing-page stats block.
type Overview struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	SalesCount      int     `json:"salesCount"`
	ProductsInStock int     `json:"productsInStock"`
}

// GetOverview computes store stats. The two store reads are independent and
// fetched concurrently.
func (a *App) GetOverview(userID, storeID string) (Overview, error) {
	if _, err := a.requireStore(userID, storeID); err != nil {
		return Overview{}, err
	}
	var (
		overview Overview
		orders   []domain.Order
	)
	var g errgroup.Group
	g.Go(func() error {
		count, err := a.store.CountProducts(storeID)
		if err != nil {
			return err
		}
		overview.ProductsInStock = count
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = a.store.ListOrders(storeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	for _, o := range orders {
		if !o.IsPaid {
			continue
		}
		overview.SalesCount++
		overview.TotalRevenue += OrderTotal(o)
	}
	return overview, nil
}
