package app

import (
	"strings"
	"time"

	"shopadmin/internal/media"
	"shopadmin/internal/store"
	"shopadmin/internal/util"
	"shopadmin/pkg/domain"
)

// Config wires the application's external collaborators.
type Config struct {
	Store   store.Store
	Objects media.ObjectStore
	// UploadExpiry bounds how long a presigned image upload URL stays valid.
	UploadExpiry time.Duration
}

// App is the core application service. Every operation takes the caller's
// user ID explicitly; nothing is read from ambient context.
type App struct {
	store        store.Store
	objects      media.ObjectStore
	uploadExpiry time.Duration
}

// New constructs the application core.
func New(cfg Config) *App {
	expiry := cfg.UploadExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &App{
		store:        cfg.Store,
		objects:      cfg.Objects,
		uploadExpiry: expiry,
	}
}

// requireStore enforces the single authorization rule: the referenced store
// must exist under the calling user. It is re-checked on every mutation.
func (a *App) requireStore(userID, storeID string) (domain.Store, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Store{}, ErrUnauthenticated
	}
	if strings.TrimSpace(storeID) == "" {
		return domain.Store{}, validationErr("Store id is required")
	}
	st, ok, err := a.store.GetStoreForUser(storeID, userID)
	if err != nil {
		return domain.Store{}, err
	}
	if !ok {
		return domain.Store{}, ErrUnauthorized
	}
	return st, nil
}

// CreateStore registers a new tenant owned by the caller.
func (a *App) CreateStore(userID, name string) (domain.Store, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Store{}, ErrUnauthenticated
	}
	if strings.TrimSpace(name) == "" {
		return domain.Store{}, validationErr("Name is required")
	}
	now := time.Now().UTC()
	st := domain.Store{
		ID:        util.NewID(),
		Name:      name,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.SaveStore(st); err != nil {
		return domain.Store{}, err
	}
	return st, nil
}

// ListStores returns the caller's stores.
func (a *App) ListStores(userID string) ([]domain.Store, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthenticated
	}
	return a.store.ListStoresByUser(userID)
}

// GetStore returns a store the caller owns, for the settings form.
func (a *App) GetStore(userID, storeID string) (domain.Store, error) {
	return a.requireStore(userID, storeID)
}

// UpdateStore renames a store the caller owns.
func (a *App) UpdateStore(userID, storeID, name string) (domain.Store, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Store{}, validationErr("Name is required")
	}
	st, err := a.requireStore(userID, storeID)
	if err != nil {
		return domain.Store{}, err
	}
	st.Name = name
	st.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveStore(st); err != nil {
		return domain.Store{}, err
	}
	return st, nil
}

// DeleteStore removes a store the caller owns. Stores with remaining catalog
// or order data fail at the database foreign-key level.
func (a *App) DeleteStore(userID, storeID string) (domain.Store, error) {
	st, err := a.requireStore(userID, storeID)
	if err != nil {
		return domain.Store{}, err
	}
	if err := a.store.DeleteStore(storeID); err != nil {
		return domain.Store{}, err
	}
	return st, nil
}
