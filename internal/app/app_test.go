package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shopadmin/internal/store"
)

type stubObjects struct {
	deleted []string
}

func (s *stubObjects) PresignPut(_ context.Context, key string, _ time.Duration) (string, error) {
	return "http://objects.local/upload/" + key, nil
}

func (s *stubObjects) PublicURL(key string) string {
	return "http://objects.local/media/" + key
}

func (s *stubObjects) KeyFromURL(publicURL string) (string, bool) {
	const base = "http://objects.local/media/"
	if !strings.HasPrefix(publicURL, base) || publicURL == base {
		return "", false
	}
	return strings.TrimPrefix(publicURL, base), true
}

func (s *stubObjects) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func newTestApp(t *testing.T) (*App, *store.MemoryStore, *stubObjects) {
	t.Helper()
	memStore := store.NewMemoryStore()
	objects := &stubObjects{}
	return New(Config{Store: memStore, Objects: objects}), memStore, objects
}

func TestCreateStoreRequiresNameAndCaller(t *testing.T) {
	a, _, _ := newTestApp(t)

	if _, err := a.CreateStore("", "Sneakers"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous create err = %v, want ErrUnauthenticated", err)
	}
	if _, err := a.CreateStore("user-1", "  "); !IsValidation(err) {
		t.Fatalf("blank name err = %v, want validation error", err)
	}

	created, err := a.CreateStore("user-1", "Sneakers")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if created.UserID != "user-1" || created.Name != "Sneakers" || created.ID == "" {
		t.Fatalf("created = %+v", created)
	}
}

func TestListStoresScopedToCaller(t *testing.T) {
	a, _, _ := newTestApp(t)
	if _, err := a.CreateStore("user-1", "Mine"); err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := a.CreateStore("user-2", "Theirs"); err != nil {
		t.Fatalf("create store: %v", err)
	}

	mine, err := a.ListStores("user-1")
	if err != nil {
		t.Fatalf("list stores: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "Mine" {
		t.Fatalf("list = %+v", mine)
	}

	if _, err := a.ListStores(""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous list err = %v, want ErrUnauthenticated", err)
	}
}

func TestForeignStoreLooksLikeMissingStore(t *testing.T) {
	a, _, _ := newTestApp(t)
	owned, err := a.CreateStore("owner", "Sneakers")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	// A store owned by someone else and a store that does not exist must
	// produce the same error.
	_, foreignErr := a.GetStore("intruder", owned.ID)
	_, missingErr := a.GetStore("intruder", "no-such-store")
	if !errors.Is(foreignErr, ErrUnauthorized) {
		t.Fatalf("foreign err = %v, want ErrUnauthorized", foreignErr)
	}
	if !errors.Is(missingErr, ErrUnauthorized) {
		t.Fatalf("missing err = %v, want ErrUnauthorized", missingErr)
	}

	if _, err := a.UpdateStore("intruder", owned.ID, "Hijacked"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("foreign rename err = %v, want ErrUnauthorized", err)
	}
	store, err := a.GetStore("owner", owned.ID)
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	if store.Name != "Sneakers" {
		t.Fatalf("rejected rename must not persist, name = %q", store.Name)
	}
}

func TestUpdateStoreRename(t *testing.T) {
	a, _, _ := newTestApp(t)
	created, err := a.CreateStore("user-1", "Sneakers")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	renamed, err := a.UpdateStore("user-1", created.ID, "Kicks")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Kicks" {
		t.Fatalf("renamed = %+v", renamed)
	}
	if renamed.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updatedAt must not go backwards")
	}
}

func TestDeleteStoreBlockedByDependents(t *testing.T) {
	a, memStore, _ := newTestApp(t)
	created, err := a.CreateStore("user-1", "Sneakers")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := a.CreateBillboard("user-1", created.ID, BillboardInput{
		Label:    "Summer",
		ImageURL: "http://objects.local/media/summer.png",
	}); err != nil {
		t.Fatalf("create billboard: %v", err)
	}

	if _, err := a.DeleteStore("user-1", created.ID); err == nil {
		t.Fatalf("delete with dependents should fail")
	}
	if _, err := a.GetStore("user-1", created.ID); err != nil {
		t.Fatalf("store must survive failed delete: %v", err)
	}

	billboards, err := memStore.ListBillboards(created.ID)
	if err != nil {
		t.Fatalf("list billboards: %v", err)
	}
	for _, b := range billboards {
		if _, err := a.DeleteBillboard("user-1", created.ID, b.ID); err != nil {
			t.Fatalf("delete billboard: %v", err)
		}
	}
	deleted, err := a.DeleteStore("user-1", created.ID)
	if err != nil {
		t.Fatalf("delete empty store: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("deleted = %+v", deleted)
	}
}
