package service

import (
	"context"
	"sync"
	"time"

	"storefront-service/internal/model"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo repositories, mirroring their observable
// semantics.

type memProducts struct {
	m        sync.RWMutex
	products map[string]*model.Product
}

func newMemProducts(products ...*model.Product) *memProducts {
	mp := &memProducts{products: map[string]*model.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		mp.products[p.ID.Hex()] = p
	}
	return mp
}

func (m *memProducts) Get(_ context.Context, id string) (*model.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

func (m *memProducts) remove(id string) {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.products, id)
}

type memCartRepo struct {
	m     sync.Mutex
	carts map[string]*model.Cart
	puts  int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*model.Cart{}}
}

func (m *memCartRepo) FindByUserID(_ context.Context, userID string) (*model.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if c, ok := m.carts[userID]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memCartRepo) Put(_ context.Context, cart *model.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.carts[cart.UserID] = cart
	m.puts++
	return nil
}

func (m *memCartRepo) Clear(_ context.Context, userID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if c, ok := m.carts[userID]; ok {
		c.Items = map[string]map[string]int{}
	}
	return nil
}

type memCouponRepo struct {
	m       sync.Mutex
	coupons map[string]*model.Coupon
}

func newMemCouponRepo(coupons ...*model.Coupon) *memCouponRepo {
	mc := &memCouponRepo{coupons: map[string]*model.Coupon{}}
	for _, c := range coupons {
		mc.coupons[c.Code] = c
	}
	return mc
}

func (m *memCouponRepo) FindByCode(_ context.Context, code string) (*model.Coupon, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if c, ok := m.coupons[code]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memCouponRepo) FindAll(_ context.Context) ([]*model.Coupon, error) {
	m.m.Lock()
	defer m.m.Unlock()
	out := make([]*model.Coupon, 0, len(m.coupons))
	for _, c := range m.coupons {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCouponRepo) Insert(_ context.Context, c *model.Coupon) error {
	m.m.Lock()
	defer m.m.Unlock()
	if _, ok := m.coupons[c.Code]; ok {
		return repository.ErrDuplicate
	}
	m.coupons[c.Code] = c
	return nil
}

func (m *memCouponRepo) SetActive(_ context.Context, code string, active bool) error {
	m.m.Lock()
	defer m.m.Unlock()
	c, ok := m.coupons[code]
	if !ok {
		return repository.ErrNotFound
	}
	c.Active = active
	return nil
}

func (m *memCouponRepo) RedeemOnce(_ context.Context, code string) error {
	m.m.Lock()
	defer m.m.Unlock()
	c, ok := m.coupons[code]
	if !ok {
		return repository.ErrNotFound
	}
	if !c.Active || (c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit) {
		return repository.ErrUsageExhausted
	}
	c.UsageCount++
	return nil
}

type memOrderRepo struct {
	m      sync.Mutex
	orders map[string]*model.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]*model.Order{}}
}

func (m *memOrderRepo) Insert(_ context.Context, o *model.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	m.orders[o.ID.Hex()] = o
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memOrderRepo) FindByUserID(_ context.Context, userID string) ([]*model.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []*model.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) FindAll(_ context.Context) ([]*model.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	out := make([]*model.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memOrderRepo) FindByStatusCode(_ context.Context, code string) ([]*model.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []*model.Order
	for _, o := range m.orders {
		if o.StatusCode == code {
			out = append(out, o)
		}
	}
	return out, nil
}

// AppendStatus mirrors the single-update $push/$set the Mongo repo issues.
func (m *memOrderRepo) AppendStatus(_ context.Context, orderID string, record model.StatusRecord, setStatus bool, logistics map[string]interface{}) error {
	m.m.Lock()
	defer m.m.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}

	o.History = append(o.History, record)
	if setStatus {
		o.Status = record.Status
		o.StatusCode = record.StatusCode
	}
	for field, value := range logistics {
		switch field {
		case "courier":
			o.Logistics.Courier = value.(string)
		case "tracking_number":
			o.Logistics.TrackingNumber = value.(string)
		case "expected_delivery":
			t := value.(time.Time)
			o.Logistics.ExpectedDelivery = &t
		case "warehouse":
			o.Logistics.Warehouse = value.(string)
		}
	}
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memOrderRepo) MarkPaid(_ context.Context, orderID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}
	o.Payment = true
	return nil
}

type memUserRepo struct {
	m        sync.Mutex
	users    map[string]*model.User // by id hex
	sessions map[string]*model.Session
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:    map[string]*model.User{},
		sessions: map[string]*model.Session{},
	}
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) FindByResetToken(_ context.Context, token string) (*model.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for _, u := range m.users {
		if u.ResetToken == token && token != "" {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) Insert(_ context.Context, u *model.User) error {
	m.m.Lock()
	defer m.m.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	m.users[u.ID.Hex()] = u
	return nil
}

// Update applies the handful of $set fields the auth service uses.
func (m *memUserRepo) Update(_ context.Context, id string, set bson.M) error {
	m.m.Lock()
	defer m.m.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for field, value := range set {
		switch field {
		case "name":
			u.Name = value.(string)
		case "phone":
			u.Phone = value.(string)
		case "address":
			u.Address = value.(*model.Address)
		case "secondary_address":
			u.SecondaryAddress = value.(*model.Address)
		case "password_hash":
			u.PasswordHash = value.(string)
		case "reset_token":
			u.ResetToken = value.(string)
		case "reset_token_expiry":
			if value == nil {
				u.ResetTokenExpiry = nil
			} else {
				t := value.(time.Time)
				u.ResetTokenExpiry = &t
			}
		case "wishlist":
			u.Wishlist = value.([]string)
		case "compare":
			u.Compare = value.([]string)
		}
	}
	return nil
}

func (m *memUserRepo) CreateSession(_ context.Context, s *model.Session) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *memUserRepo) FindSession(_ context.Context, token string) (*model.Session, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if s, ok := m.sessions[token]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) DeleteSession(_ context.Context, token string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.sessions, token)
	return nil
}

type memReviewRepo struct {
	m       sync.Mutex
	reviews []*model.Review
}

func (m *memReviewRepo) Upsert(_ context.Context, review *model.Review) error {
	m.m.Lock()
	defer m.m.Unlock()
	for i, existing := range m.reviews {
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID {
			m.reviews[i] = review
			return nil
		}
	}
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *memReviewRepo) FindByProductID(_ context.Context, productID string) ([]*model.Review, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []*model.Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	m      sync.Mutex
	placed []*model.Order
}

func (p *recordingPublisher) PublishOrderPlaced(o *model.Order) {
	p.m.Lock()
	defer p.m.Unlock()
	p.placed = append(p.placed, o)
}
