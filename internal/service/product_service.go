package service

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront-service/internal/cache"
	"storefront-service/internal/model"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

// ProductRepository is what the product service needs from persistence.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context) ([]*model.Product, error)
	Insert(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
	UpdateStock(ctx context.Context, id string, set bson.M) error
	SetPricingRef(ctx context.Context, productID string, pricingID primitive.ObjectID) error
}

type PricingRepository interface {
	Upsert(ctx context.Context, productID primitive.ObjectID, basePrice float64, sizes []model.SizePrice) (*model.Pricing, error)
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSize   = errors.New("duplicate size in price table")
)

type ProductService struct {
	repo    ProductRepository
	pricing PricingRepository
	cache   cache.CatalogCache
	sfg     singleflight.Group // collapses concurrent cache misses
}

func NewProductService(repo ProductRepository, pricing PricingRepository, c cache.CatalogCache) *ProductService {
	return &ProductService{repo: repo, pricing: pricing, cache: c}
}

func (s *ProductService) List(ctx context.Context) ([]*model.Product, error) {
	v, err, _ := s.sfg.Do("catalog:list", func() (interface{}, error) {
		if s.cache != nil {
			products, err := s.cache.GetList(ctx)
			if err == nil {
				return products, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Printf("catalog cache get error: %v", err)
			}
		}

		products, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			go func() {
				if err := s.cache.SetList(context.Background(), products); err != nil {
					log.Printf("catalog cache set error: %v", err)
				}
			}()
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*model.Product), nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	v, err, _ := s.sfg.Do("catalog:product:"+id, func() (interface{}, error) {
		if s.cache != nil {
			p, err := s.cache.GetProduct(ctx, id)
			if err == nil {
				return p, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Printf("catalog cache get error: %v", err)
			}
		}

		p, err := s.repo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			go func() {
				if err := s.cache.SetProduct(context.Background(), p); err != nil {
					log.Printf("catalog cache set error: %v", err)
				}
			}()
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Product), nil
}

func (s *ProductService) Add(ctx context.Context, p *model.Product) error {
	if p.StockQuantity > 0 {
		p.InStock = true
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return err
	}
	s.invalidate(p.ID.Hex())
	return nil
}

func (s *ProductService) Remove(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// UpdateStock updates only the fields the caller supplied.
func (s *ProductService) UpdateStock(ctx context.Context, id string, inStock *bool, quantity *int, sizeStock map[string]int) error {
	set := bson.M{}
	if inStock != nil {
		set["in_stock"] = *inStock
	}
	if quantity != nil {
		set["stock_quantity"] = *quantity
		if inStock == nil {
			set["in_stock"] = *quantity > 0
		}
	}
	if sizeStock != nil {
		set["size_stock"] = sizeStock
	}
	if len(set) == 0 {
		return nil
	}

	err := s.repo.UpdateStock(ctx, id, set)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// SetPricing writes the product's price table and links it from the product,
// making the table the authoritative source the repository folds in on read.
func (s *ProductService) SetPricing(ctx context.Context, productID string, basePrice float64, sizes []model.SizePrice) error {
	seen := make(map[string]bool, len(sizes))
	for _, sp := range sizes {
		if seen[sp.Size] {
			return ErrDuplicateSize
		}
		seen[sp.Size] = true
	}

	p, err := s.repo.FindByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	table, err := s.pricing.Upsert(ctx, p.ID, basePrice, sizes)
	if err != nil {
		return err
	}
	if err := s.repo.SetPricingRef(ctx, productID, table.ID); err != nil {
		return err
	}
	s.invalidate(productID)
	return nil
}

func (s *ProductService) invalidate(ids ...string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		log.Printf("catalog cache invalidate error: %v", err)
	}
}
