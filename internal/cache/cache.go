package cache

import (
	"context"
	"errors"

	"storefront-service/internal/model"
)

type CatalogCache interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	SetProduct(ctx context.Context, p *model.Product) error
	GetList(ctx context.Context) ([]*model.Product, error)
	SetList(ctx context.Context, products []*model.Product) error
	Invalidate(ctx context.Context, ids ...string) error
}

var ErrCacheMiss = errors.New("cache miss")
