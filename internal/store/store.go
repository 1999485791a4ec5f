package store

import "shopadmin/pkg/domain"

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID string
	SizeID     string
	ColorID    string
	// FeaturedOnly keeps only products flagged for homepage promotion.
	FeaturedOnly bool
	// IncludeArchived keeps archived products in the result. Public-style
	// listings always leave it false; admin table views set it.
	IncludeArchived bool
}

// ProductUpdate is a full replace of a product's scalar fields plus a
// reset-and-reconnect of its size/color sets and image list.
type ProductUpdate struct {
	Name       string
	Price      float64
	CategoryID string
	IsFeatured bool
	IsArchived bool
	SizeIDs    []string
	ColorIDs   []string
	Images     []domain.Image
}

// OrderUpdate patches the mutable order fields. Nil means "leave unchanged".
type OrderUpdate struct {
	IsPaid     *bool
	TrackingID *string
}

// Store defines persistence operations for all catalog and order entities.
// Save* methods upsert by ID. Deletes of rows still referenced elsewhere
// fail with the database's foreign-key error.
type Store interface {
	// stores
	SaveStore(domain.Store) error
	GetStore(id string) (domain.Store, bool, error)
	GetStoreForUser(id, userID string) (domain.Store, bool, error)
	ListStoresByUser(userID string) ([]domain.Store, error)
	DeleteStore(id string) error

	// billboards
	SaveBillboard(domain.Billboard) error
	GetBillboard(id string) (domain.Billboard, bool, error)
	ListBillboards(storeID string) ([]domain.Billboard, error)
	DeleteBillboard(id string) error

	// categories
	SaveCategory(domain.Category) error
	GetCategory(id string) (domain.Category, bool, error)
	ListCategories(storeID string) ([]domain.Category, error)
	DeleteCategory(id string) error

	// sizes
	SaveSize(domain.Size) error
	GetSize(id string) (domain.Size, bool, error)
	ListSizes(storeID string) ([]domain.Size, error)
	DeleteSize(id string) error

	// colors
	SaveColor(domain.Color) error
	GetColor(id string) (domain.Color, bool, error)
	ListColors(storeID string) ([]domain.Color, error)
	DeleteColor(id string) error

	// products
	CreateProduct(domain.Product) error
	GetProduct(id string) (domain.Product, bool, error)
	ListProducts(storeID string, f ProductFilter) ([]domain.Product, error)
	UpdateProduct(id string, upd ProductUpdate) error
	DeleteProduct(id string) error
	CountProducts(storeID string) (int, error)

	// orders
	CreateOrder(domain.Order) error
	GetOrder(id, storeID string) (domain.Order, bool, error)
	ListOrders(storeID string) ([]domain.Order, error)
	UpdateOrder(id string, upd OrderUpdate) error
	AppendTrackingUpdate(domain.TrackingUpdate) error
}
