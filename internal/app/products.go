package app

import (
	"strings"
	"time"

	"shopadmin/internal/store"
	"shopadmin/internal/util"
	"shopadmin/pkg/domain"
)

// ImageInput is one product photo in a create/update payload. ColorID tags
// the image as the variant shot for one of the product's selected colors.
type ImageInput struct {
	URL     string  `json:"url"`
	ColorID *string `json:"colorId"`
}

// ProductInput is the create/update payload for a product. Updates replace
// scalar fields wholesale and reset-and-reconnect the collection relations.
type ProductInput struct {
	Name       string       `json:"name"`
	Price      float64      `json:"price"`
	CategoryID string       `json:"categoryId"`
	SizeIDs    []string     `json:"sizes"`
	ColorIDs   []string     `json:"colors"`
	Images     []ImageInput `json:"images"`
	IsFeatured bool         `json:"isFeatured"`
	IsArchived bool         `json:"isArchived"`
}

// validate checks required fields in the same order the admin form reports
// them, naming the first missing field.
func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationErr("Name is required")
	}
	if len(in.Images) == 0 {
		return validationErr("Images are required")
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img.URL) == "" {
			return validationErr("Images are required")
		}
	}
	if in.Price <= 0 {
		return validationErr("Price is required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return validationErr("Category id is required")
	}
	if len(in.ColorIDs) == 0 {
		return validationErr("Colors are required")
	}
	if len(in.SizeIDs) == 0 {
		return validationErr("Sizes are required")
	}
	return nil
}

// ProductFilter narrows product listings; see store.ProductFilter.
type ProductFilter = store.ProductFilter

func (a *App) CreateProduct(userID, storeID string, in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Product{}, err
	}
	now := time.Now().UTC()
	p := domain.Product{
		ID:         util.NewID(),
		StoreID:    storeID,
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Price:      in.Price,
		IsFeatured: in.IsFeatured,
		IsArchived: in.IsArchived,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, id := range in.SizeIDs {
		p.Sizes = append(p.Sizes, domain.Size{ID: id})
	}
	for _, id := range in.ColorIDs {
		p.Colors = append(p.Colors, domain.Color{ID: id})
	}
	for _, img := range in.Images {
		p.Images = append(p.Images, domain.Image{
			ID:        util.NewID(),
			ProductID: p.ID,
			URL:       img.URL,
			ColorID:   img.ColorID,
			CreatedAt: now,
		})
	}
	if err := a.store.CreateProduct(p); err != nil {
		return domain.Product{}, err
	}
	created, ok, err := a.store.GetProduct(p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return created, nil
}

// ListProducts is the public-style listing: archived products are excluded
// unless the filter explicitly asks for the admin view.
func (a *App) ListProducts(storeID string, f ProductFilter) ([]domain.Product, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, validationErr("Store id is required")
	}
	return a.store.ListProducts(storeID, f)
}

func (a *App) GetProduct(productID string) (domain.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Product{}, validationErr("Product id is required")
	}
	p, ok, err := a.store.GetProduct(productID)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

// UpdateProduct replaces the product's scalars and relations. The image set
// swap is a delete-then-recreate committed in a single store transaction.
func (a *App) UpdateProduct(userID, storeID, productID string, in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}
	if strings.TrimSpace(productID) == "" {
		return domain.Product{}, validationErr("Product id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Product{}, err
	}
	existing, ok, err := a.store.GetProduct(productID)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok || existing.StoreID != storeID {
		return domain.Product{}, ErrNotFound
	}
	now := time.Now().UTC()
	upd := store.ProductUpdate{
		Name:       in.Name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		IsFeatured: in.IsFeatured,
		IsArchived: in.IsArchived,
		SizeIDs:    in.SizeIDs,
		ColorIDs:   in.ColorIDs,
	}
	for _, img := range in.Images {
		upd.Images = append(upd.Images, domain.Image{
			ID:        util.NewID(),
			ProductID: productID,
			URL:       img.URL,
			ColorID:   img.ColorID,
			CreatedAt: now,
		})
	}
	if err := a.store.UpdateProduct(productID, upd); err != nil {
		return domain.Product{}, err
	}
	updated, ok, err := a.store.GetProduct(productID)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return updated, nil
}

func (a *App) DeleteProduct(userID, storeID, productID string) (domain.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Product{}, validationErr("Product id is required")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return domain.Product{}, err
	}
	p, ok, err := a.store.GetProduct(productID)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok || p.StoreID != storeID {
		return domain.Product{}, ErrNotFound
	}
	if err := a.store.DeleteProduct(productID); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
