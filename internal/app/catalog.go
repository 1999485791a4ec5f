package app

import (
	"context"
	"strings"
	"time"

	"shopadmin/internal/util"
	"shopadmin/pkg/domain"
)

// BillboardInput is the create/update payload for a billboard.
type BillboardInput struct {
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
}

func (in BillboardInput) validate() error {
	if strings.TrimSpace(in.Label) == "" {
		return validationErr("Label is required")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return validationErr("Image URL is required")
	}
	return nil
}

func (a *App) CreateBillboard(userID, storeID string, in BillboardInput) (domain.Billboard, error) {
	if err := in.validate(); err != nil {
		return domain.Billboard{}, err
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Billboard{}, err
	}
	now := time.Now().UTC()
	b := domain.Billboard{
		ID:        util.NewID(),
		StoreID:   storeID,
		Label:     in.Label,
		ImageURL:  in.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.SaveBillboard(b); err != nil {
		return domain.Billboard{}, err
	}
	return b, nil
}

func (a *App) ListBillboards(storeID string) ([]domain.Billboard, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, validationErr("Store id is required")
	}
	return a.store.ListBillboards(storeID)
}

func (a *App) GetBillboard(billboardID string) (domain.Billboard, error) {
	if strings.TrimSpace(billboardID) == "" {
		return domain.Billboard{}, validationErr("Billboard id is required")
	}
	b, ok, err := a.store.GetBillboard(billboardID)
	if err != nil {
		return domain.Billboard{}, err
	}
	if !ok {
		return domain.Billboard{}, ErrNotFound
	}
	return b, nil
}

func (a *App) UpdateBillboard(userID, storeID, billboardID string, in BillboardInput) (domain.Billboard, error) {
	if err := in.validate(); err != nil {
		return domain.Billboard{}, err
	}
	if strings.TrimSpace(billboardID) == "" {
		return domain.Billboard{}, validationErr("Billboard id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Billboard{}, err
	}
	b, ok, err := a.store.GetBillboard(billboardID)
	if err != nil {
		return domain.Billboard{}, err
	}
	if !ok || b.StoreID != storeID {
		return domain.Billboard{}, ErrNotFound
	}
	b.Label = in.Label
	b.ImageURL = in.ImageURL
	b.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveBillboard(b); err != nil {
		return domain.Billboard{}, err
	}
	return b, nil
}

func (a *App) DeleteBillboard(userID, storeID, billboardID string) (domain.Billboard, error) {
	if strings.TrimSpace(billboardID) == "" {
		return domain.Billboard{}, validationErr("Billboard id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Billboard{}, err
	}
	b, ok, err := a.store.GetBillboard(billboardID)
	if err != nil {
		return domain.Billboard{}, err
	}
	if !ok || b.StoreID != storeID {
		return domain.Billboard{}, ErrNotFound
	}
	if err := a.store.DeleteBillboard(billboardID); err != nil {
		return domain.Billboard{}, err
	}
	// Best-effort cleanup of the hosted image; foreign URLs are left alone.
	if key, ok := a.objects.KeyFromURL(b.ImageURL); ok {
		_ = a.objects.Delete(context.Background(), key)
	}
	return b, nil
}

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name        string `json:"name"`
	BillboardID string `json:"billboardId"`
}

func (in CategoryInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationErr("Name is required")
	}
	if strings.TrimSpace(in.BillboardID) == "" {
		return validationErr("Billboard id is required")
	}
	return nil
}

func (a *App) CreateCategory(userID, storeID string, in CategoryInput) (domain.Category, error) {
	if err := in.validate(); err != nil {
		return domain.Category{}, err
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Category{}, err
	}
	now := time.Now().UTC()
	c := domain.Category{
		ID:          util.NewID(),
		StoreID:     storeID,
		BillboardID: in.BillboardID,
		Name:        in.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.SaveCategory(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (a *App) ListCategories(storeID string) ([]domain.Category, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, validationErr("Store id is required")
	}
	return a.store.ListCategories(storeID)
}

func (a *App) GetCategory(categoryID string) (domain.Category, error) {
	if strings.TrimSpace(categoryID) == "" {
		return domain.Category{}, validationErr("Category id is required")
	}
	c, ok, err := a.store.GetCategory(categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	return c, nil
}

func (a *App) UpdateCategory(userID, storeID, categoryID string, in CategoryInput) (domain.Category, error) {
	if err := in.validate(); err != nil {
		return domain.Category{}, err
	}
	if strings.TrimSpace(categoryID) == "" {
		return domain.Category{}, validationErr("Category id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Category{}, err
	}
	c, ok, err := a.store.GetCategory(categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	if !ok || c.StoreID != storeID {
		return domain.Category{}, ErrNotFound
	}
	c.Name = in.Name
	c.BillboardID = in.BillboardID
	c.Billboard = nil
	c.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveCategory(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (a *App) DeleteCategory(userID, storeID, categoryID string) (domain.Category, error) {
	if strings.TrimSpace(categoryID) == "" {
		return domain.Category{}, validationErr("Category id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Category{}, err
	}
	c, ok, err := a.store.GetCategory(categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	if !ok || c.StoreID != storeID {
		return domain.Category{}, ErrNotFound
	}
	if err := a.store.DeleteCategory(categoryID); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

// ValueInput is the shared create/update payload for sizes and colors:
// a display name plus a value string.
type ValueInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (in ValueInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationErr("Name is required")
	}
	if strings.TrimSpace(in.Value) == "" {
		return validationErr("Value is required")
	}
	return nil
}

func (a *App) CreateSize(userID, storeID string, in ValueInput) (domain.Size, error) {
	if err := in.validate(); err != nil {
		return domain.Size{}, err
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Size{}, err
	}
	now := time.Now().UTC()
	sz := domain.Size{
		ID:        util.NewID(),
		StoreID:   storeID,
		Name:      in.Name,
		Value:     in.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.SaveSize(sz); err != nil {
		return domain.Size{}, err
	}
	return sz, nil
}

func (a *App) ListSizes(storeID string) ([]domain.Size, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, validationErr("Store id is required")
	}
	return a.store.ListSizes(storeID)
}

func (a *App) GetSize(sizeID string) (domain.Size, error) {
	if strings.TrimSpace(sizeID) == "" {
		return domain.Size{}, validationErr("Size id is required")
	}
	sz, ok, err := a.store.GetSize(sizeID)
	if err != nil {
		return domain.Size{}, err
	}
	if !ok {
		return domain.Size{}, ErrNotFound
	}
	return sz, nil
}

func (a *App) UpdateSize(userID, storeID, sizeID string, in ValueInput) (domain.Size, error) {
	if err := in.validate(); err != nil {
		return domain.Size{}, err
	}
	if strings.TrimSpace(sizeID) == "" {
		return domain.Size{}, validationErr("Size id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Size{}, err
	}
	sz, ok, err := a.store.GetSize(sizeID)
	if err != nil {
		return domain.Size{}, err
	}
	if !ok || sz.StoreID != storeID {
		return domain.Size{}, ErrNotFound
	}
	sz.Name = in.Name
	sz.Value = in.Value
	sz.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveSize(sz); err != nil {
		return domain.Size{}, err
	}
	return sz, nil
}

// DeleteSize surfaces the database foreign-key error unchanged when the size
// is still referenced by products; the handler collapses it to the generic
// internal failure.
func (a *App) DeleteSize(userID, storeID, sizeID string) (domain.Size, error) {
	if strings.TrimSpace(sizeID) == "" {
		return domain.Size{}, validationErr("Size id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Size{}, err
	}
	sz, ok, err := a.store.GetSize(sizeID)
	if err != nil {
		return domain.Size{}, err
	}
	if !ok || sz.StoreID != storeID {
		return domain.Size{}, ErrNotFound
	}
	if err := a.store.DeleteSize(sizeID); err != nil {
		return domain.Size{}, err
	}
	return sz, nil
}

func (a *App) CreateColor(userID, storeID string, in ValueInput) (domain.Color, error) {
	if err := in.validate(); err != nil {
		return domain.Color{}, err
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Color{}, err
	}
	now := time.Now().UTC()
	c := domain.Color{
		ID:        util.NewID(),
		StoreID:   storeID,
		Name:      in.Name,
		Value:     in.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.SaveColor(c); err != nil {
		return domain.Color{}, err
	}
	return c, nil
}

func (a *App) ListColors(storeID string) ([]domain.Color, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, validationErr("Store id is required")
	}
	return a.store.ListColors(storeID)
}

func (a *App) GetColor(colorID string) (domain.Color, error) {
	if strings.TrimSpace(colorID) == "" {
		return domain.Color{}, validationErr("Color id is required")
	}
	c, ok, err := a.store.GetColor(colorID)
	if err != nil {
		return domain.Color{}, err
	}
	if !ok {
		return domain.Color{}, ErrNotFound
	}
	return c, nil
}

func (a *App) UpdateColor(userID, storeID, colorID string, in ValueInput) (domain.Color, error) {
	if err := in.validate(); err != nil {
		return domain.Color{}, err
	}
	if strings.TrimSpace(colorID) == "" {
		return domain.Color{}, validationErr("Color id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Color{}, err
	}
	c, ok, err := a.store.GetColor(colorID)
	if err != nil {
		return domain.Color{}, err
	}
	if !ok || c.StoreID != storeID {
		return domain.Color{}, ErrNotFound
	}
	c.Name = in.Name
	c.Value = in.Value
	c.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveColor(c); err != nil {
		return domain.Color{}, err
	}
	return c, nil
}

// DeleteColor surfaces the database foreign-key error unchanged when the
// color is still referenced by products or image variants.
func (a *App) DeleteColor(userID, storeID, colorID string) (domain.Color, error) {
	if strings.TrimSpace(colorID) == "" {
		return domain.Color{}, validationErr("Color id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Color{}, err
	}
	c, ok, err := a.store.GetColor(colorID)
	if err != nil {
		return domain.Color{}, err
	}
	if !ok || c.StoreID != storeID {
		return domain.Color{}, ErrNotFound
	}
	if err := a.store.DeleteColor(colorID); err != nil {
		return domain.Color{}, err
	}
	return c, nil
}
