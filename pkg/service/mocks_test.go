package service_test

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/joyashop/pkg/models"
)

// In-memory stores backing the service tests. They hand out clones so
// snapshots taken by the services stay independent of later mutations,
// matching document-store semantics.

type mockProductStore struct {
	store map[primitive.ObjectID]*models.Product
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{store: make(map[primitive.ObjectID]*models.Product)}
}

func (m *mockProductStore) Insert(_ context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductStore) FindAll(_ context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range m.store {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductStore) Update(_ context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.CategoryName != nil {
		p.CategoryName = *patch.CategoryName
	}
	if patch.Photos != nil {
		p.Photos = *patch.Photos
	}
	if patch.Characteristics != nil {
		p.Characteristics = *patch.Characteristics
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(m.store, id)
	return p, nil
}

func (m *mockProductStore) IncViews(_ context.Context, id primitive.ObjectID) error {
	if p, ok := m.store[id]; ok {
		p.Views++
	}
	return nil
}

func (m *mockProductStore) IncBoughtCount(_ context.Context, id primitive.ObjectID, delta int) error {
	if p, ok := m.store[id]; ok {
		p.BoughtCount += int64(delta)
	}
	return nil
}

type mockCategoryStore struct {
	store map[primitive.ObjectID]*models.Category
}

func newMockCategoryStore() *mockCategoryStore {
	return &mockCategoryStore{store: make(map[primitive.ObjectID]*models.Category)}
}

func (m *mockCategoryStore) Insert(_ context.Context, c *models.Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *mockCategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	c, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *mockCategoryStore) FindAll(_ context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range m.store {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryStore) Update(_ context.Context, id primitive.ObjectID, patch models.CategoryPatch) (*models.Category, error) {
	c, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	clone := *c
	return &clone, nil
}

func (m *mockCategoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.store[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockCategoryStore) IncProductCount(_ context.Context, id primitive.ObjectID, delta int) error {
	c, ok := m.store[id]
	if !ok {
		return models.ErrNotFound
	}
	// Mirrors the guarded mongo update: a decrement without headroom
	// matches nothing.
	if delta < 0 && c.ProductCount < int64(-delta) {
		return nil
	}
	c.ProductCount += int64(delta)
	return nil
}

type mockCartStore struct {
	store map[primitive.ObjectID]*models.Cart
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{store: make(map[primitive.ObjectID]*models.Cart)}
}

func cloneCart(c *models.Cart) *models.Cart {
	clone := *c
	clone.Items = append([]models.LineItem{}, c.Items...)
	return &clone
}

func (m *mockCartStore) Insert(_ context.Context, c *models.Cart) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.store[c.ID] = cloneCart(c)
	return nil
}

func (m *mockCartStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Cart, error) {
	c, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneCart(c), nil
}

func (m *mockCartStore) FindAll(_ context.Context) ([]models.Cart, error) {
	out := []models.Cart{}
	for _, c := range m.store {
		out = append(out, *cloneCart(c))
	}
	return out, nil
}

func (m *mockCartStore) Replace(_ context.Context, c *models.Cart) error {
	if _, ok := m.store[c.ID]; !ok {
		return models.ErrNotFound
	}
	m.store[c.ID] = cloneCart(c)
	return nil
}

func (m *mockCartStore) Update(_ context.Context, id primitive.ObjectID, patch models.CartPatch) (*models.Cart, error) {
	c, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if patch.UserID != nil {
		c.UserID = patch.UserID
	}
	if patch.Items != nil {
		c.Items = append([]models.LineItem{}, (*patch.Items)...)
	}
	if patch.Total != nil {
		c.Total = *patch.Total
	}
	return cloneCart(c), nil
}

func (m *mockCartStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.store[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type mockOrderStore struct {
	store map[primitive.ObjectID]*models.Order
	seq   int64
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{store: make(map[primitive.ObjectID]*models.Order)}
}

func cloneOrder(o *models.Order) *models.Order {
	clone := *o
	clone.Items = append([]models.LineItem{}, o.Items...)
	return &clone
}

func (m *mockOrderStore) Insert(_ context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	m.store[o.ID] = cloneOrder(o)
	return nil
}

func (m *mockOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (m *mockOrderStore) FindAll(_ context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range m.store {
		out = append(out, *cloneOrder(o))
	}
	return out, nil
}

func (m *mockOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range m.store {
		if o.UserID == userID {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

func (m *mockOrderStore) Update(_ context.Context, id primitive.ObjectID, patch models.OrderPatch) (*models.Order, error) {
	o, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.PaymentStatus != nil {
		o.PaymentStatus = *patch.PaymentStatus
	}
	return cloneOrder(o), nil
}

func (m *mockOrderStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(m.store, id)
	return o, nil
}

func (m *mockOrderStore) NextOrderNumber(_ context.Context) (int64, error) {
	m.seq++
	return 999 + m.seq, nil
}

type mockUserStore struct {
	store map[primitive.ObjectID]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{store: make(map[primitive.ObjectID]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.PastOrders = append([]primitive.ObjectID{}, u.PastOrders...)
	return &clone
}

func (m *mockUserStore) Insert(_ context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	for _, existing := range m.store {
		if existing.Email == u.Email {
			return models.ErrInvalidInput
		}
	}
	if u.PastOrders == nil {
		u.PastOrders = []primitive.ObjectID{}
	}
	m.store[u.ID] = cloneUser(u)
	return nil
}

func (m *mockUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *mockUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.store {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *mockUserStore) FindAll(_ context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range m.store {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (m *mockUserStore) Update(_ context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error) {
	u, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	return cloneUser(u), nil
}

func (m *mockUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.store[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockUserStore) PushOrder(_ context.Context, userID, orderID primitive.ObjectID) error {
	u, ok := m.store[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.PastOrders = append(u.PastOrders, orderID)
	return nil
}

func (m *mockUserStore) PullOrder(_ context.Context, userID, orderID primitive.ObjectID) error {
	u, ok := m.store[userID]
	if !ok {
		return models.ErrNotFound
	}
	kept := u.PastOrders[:0]
	for _, id := range u.PastOrders {
		if id != orderID {
			kept = append(kept, id)
		}
	}
	u.PastOrders = kept
	return nil
}

type mockProductCache struct {
	entries     map[string]*models.Product
	invalidated []string
}

func newMockProductCache() *mockProductCache {
	return &mockProductCache{entries: make(map[string]*models.Product)}
}

func (m *mockProductCache) CacheProduct(_ context.Context, p *models.Product) error {
	clone := *p
	m.entries[p.ID.Hex()] = &clone
	return nil
}

func (m *mockProductCache) GetProduct(_ context.Context, id string) (*models.Product, error) {
	p, ok := m.entries[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductCache) InvalidateProduct(_ context.Context, id string) error {
	delete(m.entries, id)
	m.invalidated = append(m.invalidated, id)
	return nil
}

// fixedGateway always returns the configured payment outcome.
type fixedGateway struct {
	status models.PaymentStatus
}

func (g fixedGateway) Authorize(_ context.Context, _ float64) models.PaymentStatus {
	return g.status
}
