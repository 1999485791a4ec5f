package store

import (
	"fmt"
	"sort"
	"sync"

	"shopadmin/pkg/domain"
)

// MemoryStore is an in-process Store used by tests. It mirrors the
// relational schema's referential rules: deletes of referenced rows and
// writes pointing at missing rows fail the way the database would.
type MemoryStore struct {
	mu         sync.RWMutex
	stores     map[string]domain.Store
	billboards map[string]domain.Billboard
	categories map[string]domain.Category
	sizes      map[string]domain.Size
	colors     map[string]domain.Color
	products   map[string]memProduct
	orders     map[string]domain.Order
	tracking   map[string][]domain.TrackingUpdate

	// insertion order per entity, newest appended last
	productOrder []string
	orderOrder   []string
	entityOrder  map[string][]string // "billboards", "categories", "sizes", "colors", "stores"
}

type memProduct struct {
	core     domain.Product
	sizeIDs  []string
	colorIDs []string
	images   []domain.Image
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stores:      make(map[string]domain.Store),
		billboards:  make(map[string]domain.Billboard),
		categories:  make(map[string]domain.Category),
		sizes:       make(map[string]domain.Size),
		colors:      make(map[string]domain.Color),
		products:    make(map[string]memProduct),
		orders:      make(map[string]domain.Order),
		tracking:    make(map[string][]domain.TrackingUpdate),
		entityOrder: make(map[string][]string),
	}
}

func fkErr(detail string) error {
	return fmt.Errorf("violates foreign key constraint (%s)", detail)
}

func (m *MemoryStore) track(kind, id string, existed bool) {
	if !existed {
		m.entityOrder[kind] = append(m.entityOrder[kind], id)
	}
}

func (m *MemoryStore) untrack(kind, id string) {
	order := m.entityOrder[kind]
	for i, v := range order {
		if v == id {
			m.entityOrder[kind] = append(order[:i], order[i+1:]...)
			return
		}
	}
}

// stores

func (m *MemoryStore) SaveStore(st domain.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, existed := m.stores[st.ID]
	m.stores[st.ID] = st
	m.track("stores", st.ID, existed)
	return nil
}

func (m *MemoryStore) GetStore(id string) (domain.Store, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.stores[id]
	return st, ok, nil
}

func (m *MemoryStore) GetStoreForUser(id, userID string) (domain.Store, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.stores[id]
	if !ok || st.UserID != userID {
		return domain.Store{}, false, nil
	}
	return st, true, nil
}

func (m *MemoryStore) ListStoresByUser(userID string) ([]domain.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []domain.Store{}
	for _, id := range m.entityOrder["stores"] {
		if st, ok := m.stores[id]; ok && st.UserID == userID {
			res = append(res, st)
		}
	}
	return res, nil
}

func (m *MemoryStore) DeleteStore(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.billboards {
		if b.StoreID == id {
			return fkErr("billboards.store_id")
		}
	}
	for _, p := range m.products {
		if p.core.StoreID == id {
			return fkErr("products.store_id")
		}
	}
	for _, o := range m.orders {
		if o.StoreID == id {
			return fkErr("orders.store_id")
		}
	}
	delete(m.stores, id)
	m.untrack("stores", id)
	return nil
}

// billboards

func (m *MemoryStore) SaveBillboard(b domain.Billboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stores[b.StoreID]; !ok {
		return fkErr("billboards.store_id")
	}
	_, existed := m.billboards[b.ID]
	m.billboards[b.ID] = b
	m.track("billboards", b.ID, existed)
	return nil
}

func (m *MemoryStore) GetBillboard(id string) (domain.Billboard, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.billboards[id]
	return b, ok, nil
}

func (m *MemoryStore) ListBillboards(storeID string) ([]domain.Billboard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []domain.Billboard{}
	order := m.entityOrder["billboards"]
	for i := len(order) - 1; i >= 0; i-- {
		if b, ok := m.billboards[order[i]]; ok && b.StoreID == storeID {
			res = append(res, b)
		}
	}
	return res, nil
}

func (m *MemoryStore) DeleteBillboard(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.BillboardID == id {
			return fkErr("categories.billboard_id")
		}
	}
	delete(m.billboards, id)
	m.untrack("billboards", id)
	return nil
}

// categories

func (m *MemoryStore) SaveCategory(c domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.billboards[c.BillboardID]; !ok {
		return fkErr("categories.billboard_id")
	}
	c.Billboard = nil
	_, existed := m.categories[c.ID]
	m.categories[c.ID] = c
	m.track("categories", c.ID, existed)
	return nil
}

func (m *MemoryStore) GetCategory(id string) (domain.Category, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	if !ok {
		return domain.Category{}, false, nil
	}
	return m.resolveCategory(c), true, nil
}

func (m *MemoryStore) resolveCategory(c domain.Category) domain.Category {
	if b, ok := m.billboards[c.BillboardID]; ok {
		c.Billboard = &b
	}
	return c
}

func (m *MemoryStore) ListCategories(storeID string) ([]domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []domain.Category{}
	order := m.entityOrder["categories"]
	for i := len(order) - 1; i >= 0; i-- {
		if c, ok := m.categories[order[i]]; ok && c.StoreID == storeID {
			res = append(res, m.resolveCategory(c))
		}
	}
	return res, nil
}

func (m *MemoryStore) DeleteCategory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.core.CategoryID == id {
			return fkErr("products.category_id")
		}
	}
	delete(m.categories, id)
	m.untrack("categories", id)
	return nil
}

// sizes

func (m *MemoryStore) SaveSize(sz domain.Size) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, existed := m.sizes[sz.ID]
	m.sizes[sz.ID] = sz
	m.track("sizes", sz.ID, existed)
	return nil
}

func (m *MemoryStore) GetSize(id string) (domain.Size, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sz, ok := m.sizes[id]
	return sz, ok, nil
}

func (m *MemoryStore) ListSizes(storeID string) ([]domain.Size, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []domain.Size{}
	order := m.entityOrder["sizes"]
	for i := len(order) - 1; i >= 0; i-- {
		if sz, ok := m.sizes[order[i]]; ok && sz.StoreID == storeID {
			res = append(res, sz)
		}
	}
	return res, nil
}

func (m *MemoryStore) DeleteSize(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		for _, sid := range p.sizeIDs {
			if sid == id {
				return fkErr("product_sizes.size_id")
			}
		}
	}
	delete(m.sizes, id)
	m.untrack("sizes", id)
	return nil
}

// colors

func (m *MemoryStore) SaveColor(c domain.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, existed := m.colors[c.ID]
	m.colors[c.ID] = c
	m.track("colors", c.ID, existed)
	return nil
}

func (m *MemoryStore) GetColor(id string) (domain.Color, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.colors[id]
	return c, ok, nil
}

func (m *MemoryStore) ListColors(storeID string) ([]domain.Color, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []domain.Color{}
	order := m.entityOrder["colors"]
	for i := len(order) - 1; i >= 0; i-- {
		if c, ok := m.colors[order[i]]; ok && c.StoreID == storeID {
			res = append(res, c)
		}
	}
	return res, nil
}

func (m *MemoryStore) DeleteColor(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		for _, cid := range p.colorIDs {
			if cid == id {
				return fkErr("product_colors.color_id")
			}
		}
		for _, img := range p.images {
			if img.ColorID != nil && *img.ColorID == id {
				return fkErr("images.color_id")
			}
		}
	}
	delete(m.colors, id)
	m.untrack("colors", id)
	return nil
}

// products

func (m *MemoryStore) CreateProduct(p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[p.CategoryID]; !ok {
		return fkErr("products.category_id")
	}
	mp := memProduct{core: p}
	mp.core.Sizes = nil
	mp.core.Colors = nil
	mp.core.Images = nil
	mp.core.Category = nil
	for _, sz := range p.Sizes {
		if _, ok := m.sizes[sz.ID]; !ok {
			return fkErr("product_sizes.size_id")
		}
		mp.sizeIDs = append(mp.sizeIDs, sz.ID)
	}
	for _, c := range p.Colors {
		if _, ok := m.colors[c.ID]; !ok {
			return fkErr("product_colors.color_id")
		}
		mp.colorIDs = append(mp.colorIDs, c.ID)
	}
	for _, img := range p.Images {
		if img.ColorID != nil {
			if _, ok := m.colors[*img.ColorID]; !ok {
				return fkErr("images.color_id")
			}
		}
		img.ProductID = p.ID
		mp.images = append(mp.images, img)
	}
	m.products[p.ID] = mp
	m.productOrder = append(m.productOrder, p.ID)
	return nil
}

func (m *MemoryStore) GetProduct(id string) (domain.Product, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mp, ok := m.products[id]
	if !ok {
		return domain.Product{}, false, nil
	}
	return m.resolveProduct(mp), true, nil
}

func (m *MemoryStore) resolveProduct(mp memProduct) domain.Product {
	p := mp.core
	p.Images = append([]domain.Image{}, mp.images...)
	p.Sizes = []domain.Size{}
	for _, id := range mp.sizeIDs {
		if sz, ok := m.sizes[id]; ok {
			p.Sizes = append(p.Sizes, sz)
		}
	}
	p.Colors = []domain.Color{}
	for _, id := range mp.colorIDs {
		if c, ok := m.colors[id]; ok {
			p.Colors = append(p.Colors, c)
		}
	}
	if c, ok := m.categories[p.CategoryID]; ok {
		c.Billboard = nil
		p.Category = &c
	}
	return p
}

func (m *MemoryStore) ListProducts(storeID string, f ProductFilter) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []domain.Product{}
	for i := len(m.productOrder) - 1; i >= 0; i-- {
		mp, ok := m.products[m.productOrder[i]]
		if !ok || mp.core.StoreID != storeID {
			continue
		}
		if f.CategoryID != "" && mp.core.CategoryID != f.CategoryID {
			continue
		}
		if f.SizeID != "" && !contains(mp.sizeIDs, f.SizeID) {
			continue
		}
		if f.ColorID != "" && !contains(mp.colorIDs, f.ColorID) {
			continue
		}
		if f.FeaturedOnly && !mp.core.IsFeatured {
			continue
		}
		if !f.IncludeArchived && mp.core.IsArchived {
			continue
		}
		res = append(res, m.resolveProduct(mp))
	}
	return res, nil
}

func (m *MemoryStore) UpdateProduct(id string, upd ProductUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mp, ok := m.products[id]
	if !ok {
		return fmt.Errorf("record not found")
	}
	if _, ok := m.categories[upd.CategoryID]; !ok {
		return fkErr("products.category_id")
	}
	for _, sid := range upd.SizeIDs {
		if _, ok := m.sizes[sid]; !ok {
			return fkErr("product_sizes.size_id")
		}
	}
	for _, cid := range upd.ColorIDs {
		if _, ok := m.colors[cid]; !ok {
			return fkErr("product_colors.color_id")
		}
	}
	images := make([]domain.Image, 0, len(upd.Images))
	for _, img := range upd.Images {
		if img.ColorID != nil {
			if _, ok := m.colors[*img.ColorID]; !ok {
				return fkErr("images.color_id")
			}
		}
		img.ProductID = id
		images = append(images, img)
	}
	mp.core.Name = upd.Name
	mp.core.Price = upd.Price
	mp.core.CategoryID = upd.CategoryID
	mp.core.IsFeatured = upd.IsFeatured
	mp.core.IsArchived = upd.IsArchived
	mp.core.UpdatedAt = nowUTC()
	mp.sizeIDs = append([]string{}, upd.SizeIDs...)
	mp.colorIDs = append([]string{}, upd.ColorIDs...)
	mp.images = images
	m.products[id] = mp
	return nil
}

func (m *MemoryStore) DeleteProduct(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		for _, it := range o.Items {
			if it.ProductID == id {
				return fkErr("order_items.product_id")
			}
		}
	}
	delete(m.products, id)
	for i, v := range m.productOrder {
		if v == id {
			m.productOrder = append(m.productOrder[:i], m.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) CountProducts(storeID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, mp := range m.products {
		if mp.core.StoreID == storeID && !mp.core.IsArchived {
			count++
		}
	}
	return count, nil
}

// orders

func (m *MemoryStore) CreateOrder(o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stores[o.StoreID]; !ok {
		return fkErr("orders.store_id")
	}
	for i, it := range o.Items {
		if _, ok := m.products[it.ProductID]; !ok {
			return fkErr("order_items.product_id")
		}
		it.OrderID = o.ID
		it.Product = nil
		o.Items[i] = it
	}
	o.TrackingUpdates = nil
	m.orders[o.ID] = o
	m.orderOrder = append(m.orderOrder, o.ID)
	return nil
}

func (m *MemoryStore) GetOrder(id, storeID string) (domain.Order, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok || o.StoreID != storeID {
		return domain.Order{}, false, nil
	}
	return m.resolveOrder(o), true, nil
}

func (m *MemoryStore) resolveOrder(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	for i, it := range items {
		if mp, ok := m.products[it.ProductID]; ok {
			p := m.resolveProduct(mp)
			it.Product = &p
			items[i] = it
		}
	}
	o.Items = items
	updates := append([]domain.TrackingUpdate{}, m.tracking[o.ID]...)
	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].Timestamp.After(updates[j].Timestamp)
	})
	o.TrackingUpdates = updates
	return o
}

func (m *MemoryStore) ListOrders(storeID string) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []domain.Order{}
	for i := len(m.orderOrder) - 1; i >= 0; i-- {
		if o, ok := m.orders[m.orderOrder[i]]; ok && o.StoreID == storeID {
			res = append(res, m.resolveOrder(o))
		}
	}
	return res, nil
}

func (m *MemoryStore) UpdateOrder(id string, upd OrderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("record not found")
	}
	if upd.IsPaid != nil {
		o.IsPaid = *upd.IsPaid
	}
	if upd.TrackingID != nil {
		o.TrackingID = *upd.TrackingID
	}
	o.UpdatedAt = nowUTC()
	m.orders[id] = o
	return nil
}

func (m *MemoryStore) AppendTrackingUpdate(u domain.TrackingUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[u.OrderID]; !ok {
		return fkErr("tracking_updates.order_id")
	}
	m.tracking[u.OrderID] = append(m.tracking[u.OrderID], u)
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
