package domain

import "time"

// Store is the tenant boundary. Every catalog and order record belongs to
// exactly one store, and a store belongs to exactly one identity-provider user.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Billboard is a promotional banner shown on category pages.
type Billboard struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Label     string    `json:"label"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Category struct {
	ID          string     `json:"id"`
	StoreID     string     `json:"storeId"`
	BillboardID string     `json:"billboardId"`
	Name        string     `json:"name"`
	Billboard   *Billboard `json:"billboard,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Size and Color share the same shape: a display name plus a value string
// (a measurement label for sizes, a hex code for colors).
type Size struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Color struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Image is a product photo. ColorID, when set, marks the image as the
// variant shot for one of the product's selected colors.
type Image struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	URL       string    `json:"url"`
	ColorID   *string   `json:"colorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"storeId"`
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	IsFeatured bool      `json:"isFeatured"`
	IsArchived bool      `json:"isArchived"`
	Images     []Image   `json:"images"`
	Sizes      []Size    `json:"sizes"`
	Colors     []Color   `json:"colors"`
	Category   *Category `json:"category,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Order struct {
	ID              string           `json:"id"`
	StoreID         string           `json:"storeId"`
	CustomerName    string           `json:"customerName"`
	Phone           string           `json:"phone"`
	Address         string           `json:"address"`
	County          string           `json:"county"`
	IDNumber        string           `json:"idNumber"`
	CustomerEmail   string           `json:"customerEmail,omitempty"`
	IsPaid          bool             `json:"isPaid"`
	TrackingID      string           `json:"trackingId,omitempty"`
	Items           []OrderItem      `json:"orderItems"`
	TrackingUpdates []TrackingUpdate `json:"trackingUpdates,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type OrderItem struct {
	ID        string   `json:"id"`
	OrderID   string   `json:"orderId"`
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// TrackingUpdate is an append-only status event on an order. Updates are
// never edited or removed and are displayed newest first.
type TrackingUpdate struct {
	ID        string            `json:"id"`
	OrderID   string            `json:"orderId"`
	Status    string            `json:"status"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
