package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence. Foreign keys without an explicit
// OnDelete clause restrict deletion of the referenced row.
type StoreModel struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	UserID    string    `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StoreModel) TableName() string { return "stores" }

type BillboardModel struct {
	ID        string      `gorm:"primaryKey"`
	StoreID   string      `gorm:"not null;index"`
	Store     *StoreModel `gorm:"foreignKey:StoreID"`
	Label     string      `gorm:"not null"`
	ImageURL  string      `gorm:"not null"`
	CreatedAt time.Time   `gorm:"not null"`
	UpdatedAt time.Time   `gorm:"not null"`
}

func (BillboardModel) TableName() string { return "billboards" }

type CategoryModel struct {
	ID          string          `gorm:"primaryKey"`
	StoreID     string          `gorm:"not null;index"`
	Store       *StoreModel     `gorm:"foreignKey:StoreID"`
	BillboardID string          `gorm:"not null;index"`
	Billboard   *BillboardModel `gorm:"foreignKey:BillboardID"`
	Name        string          `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (CategoryModel) TableName() string { return "categories" }

type SizeModel struct {
	ID        string      `gorm:"primaryKey"`
	StoreID   string      `gorm:"not null;index"`
	Store     *StoreModel `gorm:"foreignKey:StoreID"`
	Name      string      `gorm:"not null"`
	Value     string      `gorm:"not null"`
	CreatedAt time.Time   `gorm:"not null"`
	UpdatedAt time.Time   `gorm:"not null"`
}

func (SizeModel) TableName() string { return "sizes" }

type ColorModel struct {
	ID        string      `gorm:"primaryKey"`
	StoreID   string      `gorm:"not null;index"`
	Store     *StoreModel `gorm:"foreignKey:StoreID"`
	Name      string      `gorm:"not null"`
	Value     string      `gorm:"not null"`
	CreatedAt time.Time   `gorm:"not null"`
	UpdatedAt time.Time   `gorm:"not null"`
}

func (ColorModel) TableName() string { return "colors" }

type ProductModel struct {
	ID         string         `gorm:"primaryKey"`
	StoreID    string         `gorm:"not null;index"`
	Store      *StoreModel    `gorm:"foreignKey:StoreID"`
	CategoryID string         `gorm:"not null;index"`
	Category   *CategoryModel `gorm:"foreignKey:CategoryID"`
	Name       string         `gorm:"not null"`
	Price      float64        `gorm:"not null"`
	IsFeatured bool           `gorm:"not null;default:false"`
	IsArchived bool           `gorm:"not null;default:false;index"`
	Images     []ImageModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Sizes      []SizeModel    `gorm:"many2many:product_sizes;joinForeignKey:ProductID;joinReferences:SizeID"`
	Colors     []ColorModel   `gorm:"many2many:product_colors;joinForeignKey:ProductID;joinReferences:ColorID"`
	CreatedAt  time.Time      `gorm:"not null;index"`
	UpdatedAt  time.Time      `gorm:"not null"`
}

func (ProductModel) TableName() string { return "products" }

type ImageModel struct {
	ID        string      `gorm:"primaryKey"`
	ProductID string      `gorm:"not null;index"`
	URL       string      `gorm:"not null"`
	ColorID   *string     `gorm:"index"`
	Color     *ColorModel `gorm:"foreignKey:ColorID"`
	CreatedAt time.Time   `gorm:"not null"`
}

func (ImageModel) TableName() string { return "images" }

type OrderModel struct {
	ID              string                `gorm:"primaryKey"`
	StoreID         string                `gorm:"not null;index"`
	Store           *StoreModel           `gorm:"foreignKey:StoreID"`
	CustomerName    string                `gorm:"not null"`
	Phone           string                `gorm:"not null"`
	Address         string                `gorm:"not null"`
	County          string                `gorm:"not null"`
	IDNumber        string                `gorm:"not null"`
	CustomerEmail   string                ``
	IsPaid          bool                  `gorm:"not null;default:false"`
	TrackingID      string                ``
	Items           []OrderItemModel      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TrackingUpdates []TrackingUpdateModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"not null;index"`
	UpdatedAt       time.Time             `gorm:"not null"`
}

func (OrderModel) TableName() string { return "orders" }

type OrderItemModel struct {
	ID        string        `gorm:"primaryKey"`
	OrderID   string        `gorm:"not null;index"`
	ProductID string        `gorm:"not null;index"`
	Product   *ProductModel `gorm:"foreignKey:ProductID"`
	Quantity  int           `gorm:"not null;default:1"`
}

func (OrderItemModel) TableName() string { return "order_items" }

type TrackingUpdateModel struct {
	ID        string         `gorm:"primaryKey"`
	OrderID   string         `gorm:"not null;index"`
	Status    string         `gorm:"not null"`
	Details   datatypes.JSON ``
	Timestamp time.Time      `gorm:"not null;index"`
}

func (TrackingUpdateModel) TableName() string { return "tracking_updates" }
