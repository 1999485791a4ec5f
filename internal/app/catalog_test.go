package app

import (
	"errors"
	"testing"
)

func seedStore(t *testing.T, a *App, userID string) string {
	t.Helper()
	created, err := a.CreateStore(userID, "Sneakers")
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return created.ID
}

func TestBillboardLifecycle(t *testing.T) {
	a, _, objects := newTestApp(t)
	storeID := seedStore(t, a, "user-1")

	if _, err := a.CreateBillboard("user-1", storeID, BillboardInput{ImageURL: "http://x/y.png"}); !IsValidation(err) {
		t.Fatalf("missing label err = %v, want validation error", err)
	}
	if _, err := a.CreateBillboard("user-1", storeID, BillboardInput{Label: "Summer"}); !IsValidation(err) {
		t.Fatalf("missing image err = %v, want validation error", err)
	}

	created, err := a.CreateBillboard("user-1", storeID, BillboardInput{
		Label:    "Summer",
		ImageURL: "http://objects.local/media/summer.png",
	})
	if err != nil {
		t.Fatalf("create billboard: %v", err)
	}

	updated, err := a.UpdateBillboard("user-1", storeID, created.ID, BillboardInput{
		Label:    "Winter",
		ImageURL: "http://objects.local/media/winter.png",
	})
	if err != nil {
		t.Fatalf("update billboard: %v", err)
	}
	if updated.Label != "Winter" {
		t.Fatalf("updated = %+v", updated)
	}

	deleted, err := a.DeleteBillboard("user-1", storeID, created.ID)
	if err != nil {
		t.Fatalf("delete billboard: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("deleted = %+v", deleted)
	}
	// Hosted image is cleaned up alongside the record.
	if len(objects.deleted) != 1 || objects.deleted[0] != "winter.png" {
		t.Fatalf("objects deleted = %v, want [winter.png]", objects.deleted)
	}
}

func TestBillboardFromOtherStoreIsInvisible(t *testing.T) {
	a, _, _ := newTestApp(t)
	storeA := seedStore(t, a, "user-1")
	storeB, err := a.CreateStore("user-1", "Other")
	if err != nil {
		t.Fatalf("create second store: %v", err)
	}

	created, err := a.CreateBillboard("user-1", storeA, BillboardInput{
		Label:    "Summer",
		ImageURL: "http://objects.local/media/summer.png",
	})
	if err != nil {
		t.Fatalf("create billboard: %v", err)
	}

	// Addressing the billboard through the wrong store behaves as if it
	// does not exist.
	if _, err := a.UpdateBillboard("user-1", storeB.ID, created.ID, BillboardInput{
		Label:    "Hijack",
		ImageURL: "http://objects.local/media/h.png",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-store update err = %v, want ErrNotFound", err)
	}
	if _, err := a.DeleteBillboard("user-1", storeB.ID, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-store delete err = %v, want ErrNotFound", err)
	}
}

func TestCategoryRequiresBillboard(t *testing.T) {
	a, _, _ := newTestApp(t)
	storeID := seedStore(t, a, "user-1")

	if _, err := a.CreateCategory("user-1", storeID, CategoryInput{Name: "Shoes"}); !IsValidation(err) {
		t.Fatalf("missing billboard err = %v, want validation error", err)
	}

	billboard, err := a.CreateBillboard("user-1", storeID, BillboardInput{
		Label:    "Summer",
		ImageURL: "http://objects.local/media/summer.png",
	})
	if err != nil {
		t.Fatalf("create billboard: %v", err)
	}
	category, err := a.CreateCategory("user-1", storeID, CategoryInput{Name: "Shoes", BillboardID: billboard.ID})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	// Billboard with categories attached cannot be deleted.
	if _, err := a.DeleteBillboard("user-1", storeID, billboard.ID); err == nil {
		t.Fatalf("delete referenced billboard should fail")
	}

	fetched, err := a.GetCategory(category.ID)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if fetched.Billboard == nil || fetched.Billboard.Label != "Summer" {
		t.Fatalf("category billboard = %+v", fetched.Billboard)
	}
}

func TestSizeAndColorValidation(t *testing.T) {
	a, _, _ := newTestApp(t)
	storeID := seedStore(t, a, "user-1")

	if _, err := a.CreateSize("user-1", storeID, ValueInput{Value: "L"}); !IsValidation(err) {
		t.Fatalf("missing size name err = %v, want validation error", err)
	}
	if _, err := a.CreateColor("user-1", storeID, ValueInput{Name: "Black"}); !IsValidation(err) {
		t.Fatalf("missing color value err = %v, want validation error", err)
	}

	size, err := a.CreateSize("user-1", storeID, ValueInput{Name: "Large", Value: "L"})
	if err != nil {
		t.Fatalf("create size: %v", err)
	}
	color, err := a.CreateColor("user-1", storeID, ValueInput{Name: "Black", Value: "#000"})
	if err != nil {
		t.Fatalf("create color: %v", err)
	}

	updatedSize, err := a.UpdateSize("user-1", storeID, size.ID, ValueInput{Name: "Extra large", Value: "XL"})
	if err != nil {
		t.Fatalf("update size: %v", err)
	}
	if updatedSize.Value != "XL" {
		t.Fatalf("updated size = %+v", updatedSize)
	}

	if _, err := a.DeleteColor("user-1", storeID, color.ID); err != nil {
		t.Fatalf("delete unused color: %v", err)
	}
	if _, err := a.GetColor(color.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted color fetch err = %v, want ErrNotFound", err)
	}
}
