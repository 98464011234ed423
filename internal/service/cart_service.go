package service

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront-service/internal/dto"
	"storefront-service/internal/model"
	"storefront-service/internal/repository"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.Cart, error)
	Put(ctx context.Context, cart *model.Cart) error
	Clear(ctx context.Context, userID string) error
}

// ProductGetter is the slice of the product service the cart needs.
type ProductGetter interface {
	Get(ctx context.Context, id string) (*model.Product, error)
}

var (
	ErrSizeRequired = errors.New("size is required")
	ErrOutOfStock   = errors.New("product is out of stock")
	ErrBadQuantity  = errors.New("quantity must be zero or positive")
)

type CartService struct {
	repo     CartRepository
	products ProductGetter
}

func NewCartService(repo CartRepository, products ProductGetter) *CartService {
	return &CartService{repo: repo, products: products}
}

func (s *CartService) load(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &model.Cart{
			UserID:    userID,
			Items:     map[string]map[string]int{},
			CreatedAt: time.Now().UTC(),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = map[string]map[string]int{}
	}
	return cart, nil
}

func (s *CartService) Add(ctx context.Context, userID, productID, size string) (*model.Cart, error) {
	if size == "" {
		return nil, ErrSizeRequired
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.InStock {
		return nil, ErrOutOfStock
	}
	if p.SizeStock != nil {
		if qty, tracked := p.SizeStock[size]; tracked && qty <= 0 {
			return nil, ErrOutOfStock
		}
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	sizes := cart.Items[productID]
	if sizes == nil {
		sizes = map[string]int{}
		cart.Items[productID] = sizes
	}
	sizes[size]++

	if err := s.repo.Put(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity sets the quantity for a (product, size) line. Zero removes the
// size; removing the last size removes the product entry.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID, size string, qty int) (*model.Cart, error) {
	if size == "" {
		return nil, ErrSizeRequired
	}
	if qty < 0 {
		return nil, ErrBadQuantity
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	setLine(cart, productID, size, qty)

	if err := s.repo.Put(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, userID, productID, size string) (*model.Cart, error) {
	return s.SetQuantity(ctx, userID, productID, size, 0)
}

func (s *CartService) Get(ctx context.Context, userID string) (*model.Cart, error) {
	return s.load(ctx, userID)
}

// View prices the cart. Entries whose product no longer resolves are pruned
// and the pruned cart is written back, so the visible item count always
// matches purchasable value.
func (s *CartService) View(ctx context.Context, userID string) (*dto.CartView, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &dto.CartView{Items: []dto.CartLine{}}
	pruned := false

	for productID, sizes := range cart.Items {
		p, err := s.products.Get(ctx, productID)
		if errors.Is(err, ErrProductNotFound) {
			delete(cart.Items, productID)
			pruned = true
			continue
		}
		if err != nil {
			return nil, err
		}

		for size, qty := range sizes {
			unit, ok := EffectiveUnitPrice(p, size)
			if !ok {
				continue
			}
			line := dto.CartLine{
				ProductID:       productID,
				Name:            p.Name,
				Size:            size,
				Quantity:        qty,
				UnitPrice:       Round2(unit),
				DiscountPercent: p.Discount,
				LineTotal:       Round2(unit * float64(qty)),
			}
			view.Items = append(view.Items, line)
			view.Subtotal += unit * float64(qty)
		}
	}
	view.Subtotal = Round2(view.Subtotal)

	if pruned {
		if err := s.repo.Put(ctx, cart); err != nil {
			log.Printf("failed to persist pruned cart for %s: %v", userID, err)
		}
	}
	return view, nil
}

// Subtotal prices the cart without building the line view.
func (s *CartService) Subtotal(ctx context.Context, userID string) (float64, error) {
	view, err := s.View(ctx, userID)
	if err != nil {
		return 0, err
	}
	return view.Subtotal, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

func setLine(cart *model.Cart, productID, size string, qty int) {
	sizes := cart.Items[productID]
	if qty == 0 {
		if sizes != nil {
			delete(sizes, size)
			if len(sizes) == 0 {
				delete(cart.Items, productID)
			}
		}
		return
	}
	if sizes == nil {
		sizes = map[string]int{}
		cart.Items[productID] = sizes
	}
	sizes[size] = qty
}
