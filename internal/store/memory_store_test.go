package store

import (
	"testing"
	"time"

	"shopadmin/pkg/domain"
)

type memFixture struct {
	store     *MemoryStore
	storeID   string
	billboard domain.Billboard
	category  domain.Category
	size      domain.Size
	color     domain.Color
}

func newMemFixture(t *testing.T) memFixture {
	t.Helper()
	m := NewMemoryStore()
	now := time.Now().UTC()
	f := memFixture{store: m, storeID: "store-1"}
	if err := m.SaveStore(domain.Store{ID: f.storeID, Name: "Sneakers", UserID: "user-1", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("save store: %v", err)
	}
	f.billboard = domain.Billboard{ID: "bb-1", StoreID: f.storeID, Label: "Summer", ImageURL: "http://x/s.png"}
	if err := m.SaveBillboard(f.billboard); err != nil {
		t.Fatalf("save billboard: %v", err)
	}
	f.category = domain.Category{ID: "cat-1", StoreID: f.storeID, BillboardID: f.billboard.ID, Name: "Shoes"}
	if err := m.SaveCategory(f.category); err != nil {
		t.Fatalf("save category: %v", err)
	}
	f.size = domain.Size{ID: "size-1", StoreID: f.storeID, Name: "Large", Value: "L"}
	if err := m.SaveSize(f.size); err != nil {
		t.Fatalf("save size: %v", err)
	}
	f.color = domain.Color{ID: "color-1", StoreID: f.storeID, Name: "Black", Value: "#000"}
	if err := m.SaveColor(f.color); err != nil {
		t.Fatalf("save color: %v", err)
	}
	return f
}

func (f memFixture) product(id string) domain.Product {
	return domain.Product{
		ID:         id,
		StoreID:    f.storeID,
		CategoryID: f.category.ID,
		Name:       "Runner",
		Price:      59.99,
		Sizes:      []domain.Size{f.size},
		Colors:     []domain.Color{f.color},
		Images:     []domain.Image{{ID: id + "-img", URL: "http://x/" + id + ".png"}},
	}
}

func TestDeleteSizeInUseIsBlocked(t *testing.T) {
	f := newMemFixture(t)
	if err := f.store.CreateProduct(f.product("p1")); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := f.store.DeleteSize(f.size.ID); err == nil {
		t.Fatalf("delete size bound to product should fail")
	}
	if _, ok, _ := f.store.GetSize(f.size.ID); !ok {
		t.Fatalf("size must survive blocked delete")
	}

	if err := f.store.DeleteProduct("p1"); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := f.store.DeleteSize(f.size.ID); err != nil {
		t.Fatalf("delete freed size: %v", err)
	}
}

func TestDeleteColorUsedAsImageTagIsBlocked(t *testing.T) {
	f := newMemFixture(t)
	p := f.product("p1")
	p.Images = []domain.Image{{ID: "img-1", URL: "http://x/a.png", ColorID: &f.color.ID}}
	if err := f.store.CreateProduct(p); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := f.store.DeleteColor(f.color.ID); err == nil {
		t.Fatalf("delete color referenced by an image tag should fail")
	}

	// Replacing images without the tag frees the color only after the
	// join row is also gone.
	upd := ProductUpdate{
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		SizeIDs:    []string{f.size.ID},
		ColorIDs:   []string{},
		Images:     []domain.Image{{ID: "img-2", URL: "http://x/b.png"}},
	}
	if err := f.store.UpdateProduct("p1", upd); err != nil {
		t.Fatalf("update product: %v", err)
	}
	if err := f.store.DeleteColor(f.color.ID); err != nil {
		t.Fatalf("delete freed color: %v", err)
	}
}

func TestCreateProductRejectsDanglingRefs(t *testing.T) {
	f := newMemFixture(t)

	p := f.product("p1")
	p.CategoryID = "no-such-category"
	if err := f.store.CreateProduct(p); err == nil {
		t.Fatalf("dangling category should fail")
	}

	p = f.product("p2")
	p.Sizes = []domain.Size{{ID: "no-such-size"}}
	if err := f.store.CreateProduct(p); err == nil {
		t.Fatalf("dangling size should fail")
	}

	missing := "no-such-color"
	p = f.product("p3")
	p.Images = []domain.Image{{ID: "img", URL: "http://x/a.png", ColorID: &missing}}
	if err := f.store.CreateProduct(p); err == nil {
		t.Fatalf("dangling image color should fail")
	}

	if _, ok, _ := f.store.GetProduct("p3"); ok {
		t.Fatalf("failed create must not persist")
	}
}

func TestDeleteStoreBlockedByOrders(t *testing.T) {
	f := newMemFixture(t)
	if err := f.store.CreateProduct(f.product("p1")); err != nil {
		t.Fatalf("create product: %v", err)
	}
	order := domain.Order{
		ID:      "order-1",
		StoreID: f.storeID,
		Items:   []domain.OrderItem{{ID: "item-1", ProductID: "p1", Quantity: 1}},
	}
	if err := f.store.CreateOrder(order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := f.store.DeleteStore(f.storeID); err == nil {
		t.Fatalf("delete store with orders should fail")
	}
	if err := f.store.DeleteProduct("p1"); err == nil {
		t.Fatalf("delete product referenced by order items should fail")
	}
}

func TestGetOrderScopedToStore(t *testing.T) {
	f := newMemFixture(t)
	if err := f.store.SaveStore(domain.Store{ID: "store-2", Name: "Other", UserID: "user-2"}); err != nil {
		t.Fatalf("save second store: %v", err)
	}
	if err := f.store.CreateOrder(domain.Order{ID: "order-1", StoreID: f.storeID}); err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, ok, _ := f.store.GetOrder("order-1", "store-2"); ok {
		t.Fatalf("order must not be visible through another store")
	}
	if _, ok, _ := f.store.GetOrder("order-1", f.storeID); !ok {
		t.Fatalf("order should be visible through its own store")
	}
}

func TestListBillboardsNewestFirst(t *testing.T) {
	f := newMemFixture(t)
	if err := f.store.SaveBillboard(domain.Billboard{ID: "bb-2", StoreID: f.storeID, Label: "Winter"}); err != nil {
		t.Fatalf("save billboard: %v", err)
	}

	billboards, err := f.store.ListBillboards(f.storeID)
	if err != nil {
		t.Fatalf("list billboards: %v", err)
	}
	if len(billboards) != 2 || billboards[0].ID != "bb-2" || billboards[1].ID != "bb-1" {
		t.Fatalf("billboards = %+v", billboards)
	}
}

func TestCountProductsExcludesArchived(t *testing.T) {
	f := newMemFixture(t)
	if err := f.store.CreateProduct(f.product("p1")); err != nil {
		t.Fatalf("create product: %v", err)
	}
	archived := f.product("p2")
	archived.IsArchived = true
	if err := f.store.CreateProduct(archived); err != nil {
		t.Fatalf("create archived product: %v", err)
	}

	count, err := f.store.CountProducts(f.storeID)
	if err != nil {
		t.Fatalf("count products: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}
