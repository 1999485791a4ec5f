package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopadmin/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&StoreModel{},
		&BillboardModel{},
		&CategoryModel{},
		&SizeModel{},
		&ColorModel{},
		&ProductModel{},
		&ImageModel{},
		&OrderModel{},
		&OrderItemModel{},
		&TrackingUpdateModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// stores

func (s *GormStore) SaveStore(st domain.Store) error {
	model := storeToModel(st)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&model).Error
}

func (s *GormStore) GetStore(id string) (domain.Store, bool, error) {
	var model StoreModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Store{}, false, nil
		}
		return domain.Store{}, false, err
	}
	return storeFromModel(model), true, nil
}

// GetStoreForUser re-checks tenant ownership: the row must match both the
// store ID and the caller's user ID.
func (s *GormStore) GetStoreForUser(id, userID string) (domain.Store, bool, error) {
	var model StoreModel
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Store{}, false, nil
		}
		return domain.Store{}, false, err
	}
	return storeFromModel(model), true, nil
}

func (s *GormStore) ListStoresByUser(userID string) ([]domain.Store, error) {
	var models []StoreModel
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Store, 0, len(models))
	for _, m := range models {
		res = append(res, storeFromModel(m))
	}
	return res, nil
}

// DeleteStore removes the store row. Remaining billboards, categories,
// products or orders block the delete at the foreign-key level.
func (s *GormStore) DeleteStore(id string) error {
	return s.db.Delete(&StoreModel{}, "id = ?", id).Error
}

// billboards

func (s *GormStore) SaveBillboard(b domain.Billboard) error {
	model := billboardToModel(b)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"label", "image_url", "updated_at"}),
	}).Create(&model).Error
}

func (s *GormStore) GetBillboard(id string) (domain.Billboard, bool, error) {
	var model BillboardModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Billboard{}, false, nil
		}
		return domain.Billboard{}, false, err
	}
	return billboardFromModel(model), true, nil
}

func (s *GormStore) ListBillboards(storeID string) ([]domain.Billboard, error) {
	var models []BillboardModel
	err := s.db.Where("store_id = ?", storeID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Billboard, 0, len(models))
	for _, m := range models {
		res = append(res, billboardFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeleteBillboard(id string) error {
	return s.db.Delete(&BillboardModel{}, "id = ?", id).Error
}

// categories

func (s *GormStore) SaveCategory(c domain.Category) error {
	model := categoryToModel(c)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "billboard_id", "updated_at"}),
	}).Create(&model).Error
}

func (s *GormStore) GetCategory(id string) (domain.Category, bool, error) {
	var model CategoryModel
	if err := s.db.Preload("Billboard").First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Category{}, false, nil
		}
		return domain.Category{}, false, err
	}
	return categoryFromModel(model), true, nil
}

func (s *GormStore) ListCategories(storeID string) ([]domain.Category, error) {
	var models []CategoryModel
	err := s.db.Preload("Billboard").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Category, 0, len(models))
	for _, m := range models {
		res = append(res, categoryFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeleteCategory(id string) error {
	return s.db.Delete(&CategoryModel{}, "id = ?", id).Error
}

// sizes

func (s *GormStore) SaveSize(sz domain.Size) error {
	model := sizeToModel(sz)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "value", "updated_at"}),
	}).Create(&model).Error
}

func (s *GormStore) GetSize(id string) (domain.Size, bool, error) {
	var model SizeModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Size{}, false, nil
		}
		return domain.Size{}, false, err
	}
	return sizeFromModel(model), true, nil
}

func (s *GormStore) ListSizes(storeID string) ([]domain.Size, error) {
	var models []SizeModel
	err := s.db.Where("store_id = ?", storeID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Size, 0, len(models))
	for _, m := range models {
		res = append(res, sizeFromModel(m))
	}
	return res, nil
}

// DeleteSize fails with a foreign-key error while any product still
// references the size.
func (s *GormStore) DeleteSize(id string) error {
	return s.db.Delete(&SizeModel{}, "id = ?", id).Error
}

// colors

func (s *GormStore) SaveColor(c domain.Color) error {
	model := colorToModel(c)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "value", "updated_at"}),
	}).Create(&model).Error
}

func (s *GormStore) GetColor(id string) (domain.Color, bool, error) {
	var model ColorModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Color{}, false, nil
		}
		return domain.Color{}, false, err
	}
	return colorFromModel(model), true, nil
}

func (s *GormStore) ListColors(storeID string) ([]domain.Color, error) {
	var models []ColorModel
	err := s.db.Where("store_id = ?", storeID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Color, 0, len(models))
	for _, m := range models {
		res = append(res, colorFromModel(m))
	}
	return res, nil
}

// DeleteColor fails with a foreign-key error while any product or image
// variant still references the color.
func (s *GormStore) DeleteColor(id string) error {
	return s.db.Delete(&ColorModel{}, "id = ?", id).Error
}

// products

// CreateProduct inserts the product, its images and its size/color join rows
// in one transaction. Join rows are inserted directly so a dangling size or
// color ID fails at the foreign key instead of spawning an empty row.
func (s *GormStore) CreateProduct(p domain.Product) error {
	model := productToModel(p)
	images := imagesToModels(p.ID, p.Images)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&model).Error; err != nil {
			return err
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		if err := insertJoinRows(tx, "product_sizes", "size_id", p.ID, sizeIDs(p.Sizes)); err != nil {
			return err
		}
		return insertJoinRows(tx, "product_colors", "color_id", p.ID, colorIDs(p.Colors))
	})
}

func (s *GormStore) GetProduct(id string) (domain.Product, bool, error) {
	var model ProductModel
	err := s.db.
		Preload("Images").
		Preload("Sizes").
		Preload("Colors").
		Preload("Category").
		First(&model, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Product{}, false, nil
		}
		return domain.Product{}, false, err
	}
	return productFromModel(model), true, nil
}

func (s *GormStore) ListProducts(storeID string, f ProductFilter) ([]domain.Product, error) {
	tx := s.db.
		Preload("Images").
		Preload("Sizes").
		Preload("Colors").
		Preload("Category").
		Where("store_id = ?", storeID)
	if f.CategoryID != "" {
		tx = tx.Where("category_id = ?", f.CategoryID)
	}
	if f.SizeID != "" {
		tx = tx.Where("id IN (SELECT product_id FROM product_sizes WHERE size_id = ?)", f.SizeID)
	}
	if f.ColorID != "" {
		tx = tx.Where("id IN (SELECT product_id FROM product_colors WHERE color_id = ?)", f.ColorID)
	}
	if f.FeaturedOnly {
		tx = tx.Where("is_featured = ?", true)
	}
	if !f.IncludeArchived {
		tx = tx.Where("is_archived = ?", false)
	}
	var models []ProductModel
	if err := tx.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Product, 0, len(models))
	for _, m := range models {
		res = append(res, productFromModel(m))
	}
	return res, nil
}

// UpdateProduct replaces scalars, resets size/color joins and swaps the
// complete image set atomically. The delete-then-recreate of images commits
// with the rest of the update, so a failure never leaves the product
// imageless.
func (s *GormStore) UpdateProduct(id string, upd ProductUpdate) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&ProductModel{}).Where("id = ?", id).Updates(map[string]any{
			"name":        upd.Name,
			"price":       upd.Price,
			"category_id": upd.CategoryID,
			"is_featured": upd.IsFeatured,
			"is_archived": upd.IsArchived,
			"updated_at":  nowUTC(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("product_id = ?", id).Delete(&ImageModel{}).Error; err != nil {
			return err
		}
		images := imagesToModels(id, upd.Images)
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM product_sizes WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := insertJoinRows(tx, "product_sizes", "size_id", id, upd.SizeIDs); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_colors WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		return insertJoinRows(tx, "product_colors", "color_id", id, upd.ColorIDs)
	})
}

func (s *GormStore) DeleteProduct(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_sizes WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_colors WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&ImageModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ProductModel{}, "id = ?", id).Error
	})
}

func (s *GormStore) CountProducts(storeID string) (int, error) {
	var count int64
	err := s.db.Model(&ProductModel{}).
		Where("store_id = ? AND is_archived = ?", storeID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// orders

func (s *GormStore) CreateOrder(o domain.Order) error {
	model := orderToModel(o)
	items := make([]OrderItemModel, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemModel{
			ID:        it.ID,
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&model).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (s *GormStore) GetOrder(id, storeID string) (domain.Order, bool, error) {
	var model OrderModel
	err := s.db.
		Preload("Items.Product.Images").
		Preload("Items.Product.Sizes").
		Preload("Items.Product.Colors").
		Preload("TrackingUpdates", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC")
		}).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Order{}, false, nil
		}
		return domain.Order{}, false, err
	}
	return orderFromModel(model), true, nil
}

func (s *GormStore) ListOrders(storeID string) ([]domain.Order, error) {
	var models []OrderModel
	err := s.db.
		Preload("Items.Product.Sizes").
		Preload("Items.Product.Colors").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Order, 0, len(models))
	for _, m := range models {
		res = append(res, orderFromModel(m))
	}
	return res, nil
}

func (s *GormStore) UpdateOrder(id string, upd OrderUpdate) error {
	fields := map[string]any{"updated_at": nowUTC()}
	if upd.IsPaid != nil {
		fields["is_paid"] = *upd.IsPaid
	}
	if upd.TrackingID != nil {
		fields["tracking_id"] = *upd.TrackingID
	}
	res := s.db.Model(&OrderModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) AppendTrackingUpdate(u domain.TrackingUpdate) error {
	model, err := trackingToModel(u)
	if err != nil {
		return err
	}
	return s.db.Create(&model).Error
}

// helpers

func nowUTC() time.Time { return time.Now().UTC() }

func insertJoinRows(tx *gorm.DB, table, refColumn, productID string, ids []string) error {
	for _, refID := range ids {
		err := tx.Exec(
			fmt.Sprintf("INSERT INTO %s (product_id, %s) VALUES (?, ?)", table, refColumn),
			productID, refID,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func sizeIDs(sizes []domain.Size) []string {
	out := make([]string, 0, len(sizes))
	for _, sz := range sizes {
		out = append(out, sz.ID)
	}
	return out
}

func colorIDs(colors []domain.Color) []string {
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		out = append(out, c.ID)
	}
	return out
}

// conversions

func storeToModel(st domain.Store) StoreModel {
	return StoreModel{
		ID:        st.ID,
		Name:      st.Name,
		UserID:    st.UserID,
		CreatedAt: st.CreatedAt,
		UpdatedAt: st.UpdatedAt,
	}
}

func storeFromModel(m StoreModel) domain.Store {
	return domain.Store{
		ID:        m.ID,
		Name:      m.Name,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func billboardToModel(b domain.Billboard) BillboardModel {
	return BillboardModel{
		ID:        b.ID,
		StoreID:   b.StoreID,
		Label:     b.Label,
		ImageURL:  b.ImageURL,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func billboardFromModel(m BillboardModel) domain.Billboard {
	return domain.Billboard{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Label:     m.Label,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func categoryToModel(c domain.Category) CategoryModel {
	return CategoryModel{
		ID:          c.ID,
		StoreID:     c.StoreID,
		BillboardID: c.BillboardID,
		Name:        c.Name,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func categoryFromModel(m CategoryModel) domain.Category {
	c := domain.Category{
		ID:          m.ID,
		StoreID:     m.StoreID,
		BillboardID: m.BillboardID,
		Name:        m.Name,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Billboard != nil {
		b := billboardFromModel(*m.Billboard)
		c.Billboard = &b
	}
	return c
}

func sizeToModel(sz domain.Size) SizeModel {
	return SizeModel{
		ID:        sz.ID,
		StoreID:   sz.StoreID,
		Name:      sz.Name,
		Value:     sz.Value,
		CreatedAt: sz.CreatedAt,
		UpdatedAt: sz.UpdatedAt,
	}
}

func sizeFromModel(m SizeModel) domain.Size {
	return domain.Size{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Name:      m.Name,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func colorToModel(c domain.Color) ColorModel {
	return ColorModel{
		ID:        c.ID,
		StoreID:   c.StoreID,
		Name:      c.Name,
		Value:     c.Value,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func colorFromModel(m ColorModel) domain.Color {
	return domain.Color{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Name:      m.Name,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func productToModel(p domain.Product) ProductModel {
	return ProductModel{
		ID:         p.ID,
		StoreID:    p.StoreID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Price:      p.Price,
		IsFeatured: p.IsFeatured,
		IsArchived: p.IsArchived,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func productFromModel(m ProductModel) domain.Product {
	p := domain.Product{
		ID:         m.ID,
		StoreID:    m.StoreID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Price:      m.Price,
		IsFeatured: m.IsFeatured,
		IsArchived: m.IsArchived,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	p.Images = make([]domain.Image, 0, len(m.Images))
	for _, img := range m.Images {
		p.Images = append(p.Images, imageFromModel(img))
	}
	p.Sizes = make([]domain.Size, 0, len(m.Sizes))
	for _, sz := range m.Sizes {
		p.Sizes = append(p.Sizes, sizeFromModel(sz))
	}
	p.Colors = make([]domain.Color, 0, len(m.Colors))
	for _, c := range m.Colors {
		p.Colors = append(p.Colors, colorFromModel(c))
	}
	if m.Category != nil {
		c := categoryFromModel(*m.Category)
		p.Category = &c
	}
	return p
}

func imagesToModels(productID string, images []domain.Image) []ImageModel {
	out := make([]ImageModel, 0, len(images))
	for _, img := range images {
		m := ImageModel{
			ID:        img.ID,
			ProductID: productID,
			URL:       img.URL,
			ColorID:   img.ColorID,
			CreatedAt: img.CreatedAt,
		}
		out = append(out, m)
	}
	return out
}

func imageFromModel(m ImageModel) domain.Image {
	return domain.Image{
		ID:        m.ID,
		ProductID: m.ProductID,
		URL:       m.URL,
		ColorID:   m.ColorID,
		CreatedAt: m.CreatedAt,
	}
}

func orderToModel(o domain.Order) OrderModel {
	return OrderModel{
		ID:            o.ID,
		StoreID:       o.StoreID,
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		Address:       o.Address,
		County:        o.County,
		IDNumber:      o.IDNumber,
		CustomerEmail: o.CustomerEmail,
		IsPaid:        o.IsPaid,
		TrackingID:    o.TrackingID,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func orderFromModel(m OrderModel) domain.Order {
	o := domain.Order{
		ID:            m.ID,
		StoreID:       m.StoreID,
		CustomerName:  m.CustomerName,
		Phone:         m.Phone,
		Address:       m.Address,
		County:        m.County,
		IDNumber:      m.IDNumber,
		CustomerEmail: m.CustomerEmail,
		IsPaid:        m.IsPaid,
		TrackingID:    m.TrackingID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	o.Items = make([]domain.OrderItem, 0, len(m.Items))
	for _, it := range m.Items {
		item := domain.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
		if it.Product != nil {
			p := productFromModel(*it.Product)
			item.Product = &p
		}
		o.Items = append(o.Items, item)
	}
	o.TrackingUpdates = make([]domain.TrackingUpdate, 0, len(m.TrackingUpdates))
	for _, t := range m.TrackingUpdates {
		o.TrackingUpdates = append(o.TrackingUpdates, trackingFromModel(t))
	}
	return o
}

func trackingToModel(u domain.TrackingUpdate) (TrackingUpdateModel, error) {
	model := TrackingUpdateModel{
		ID:        u.ID,
		OrderID:   u.OrderID,
		Status:    u.Status,
		Timestamp: u.Timestamp,
	}
	if len(u.Details) > 0 {
		raw, err := json.Marshal(u.Details)
		if err != nil {
			return model, fmt.Errorf("marshal tracking details: %w", err)
		}
		model.Details = raw
	}
	return model, nil
}

func trackingFromModel(m TrackingUpdateModel) domain.TrackingUpdate {
	u := domain.TrackingUpdate{
		ID:        m.ID,
		OrderID:   m.OrderID,
		Status:    m.Status,
		Timestamp: m.Timestamp,
	}
	if len(m.Details) > 0 {
		details := map[string]string{}
		if err := json.Unmarshal(m.Details, &details); err == nil {
			u.Details = details
		}
	}
	return u
}
