package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront-service/internal/dto"
	"storefront-service/internal/model"
	"storefront-service/internal/repository"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindAll(ctx context.Context) ([]*model.Coupon, error)
	Insert(ctx context.Context, c *model.Coupon) error
	SetActive(ctx context.Context, code string, active bool) error
	RedeemOnce(ctx context.Context, code string) error
}

var ErrCouponExists = errors.New("coupon code already exists")

type CouponService struct {
	repo CouponRepository
}

func NewCouponService(repo CouponRepository) *CouponService {
	return &CouponService{repo: repo}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate runs the eligibility checks in a fixed order so the first failure
// determines the message. It never touches usage_count; redemption happens at
// order placement only.
func (s *CouponService) Validate(ctx context.Context, code string, subtotal float64) (*dto.CouponResult, error) {
	coupon, err := s.repo.FindByCode(ctx, NormalizeCode(code))
	if errors.Is(err, repository.ErrNotFound) {
		return &dto.CouponResult{Message: "Invalid coupon code"}, nil
	}
	if err != nil {
		return nil, err
	}

	if !coupon.Active {
		return &dto.CouponResult{Message: "Coupon is not active"}, nil
	}
	if coupon.ExpiresAt != nil && !coupon.ExpiresAt.After(time.Now()) {
		return &dto.CouponResult{Message: "Coupon has expired"}, nil
	}
	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return &dto.CouponResult{Message: "Coupon usage limit reached"}, nil
	}
	if subtotal < coupon.MinPurchase {
		return &dto.CouponResult{Message: "Cart total does not meet the minimum purchase for this coupon"}, nil
	}

	return &dto.CouponResult{
		Success:         true,
		DiscountPercent: coupon.DiscountPercent,
		DiscountAmount:  Round2(subtotal * coupon.DiscountPercent / 100),
	}, nil
}

func (s *CouponService) Create(ctx context.Context, c *model.Coupon) error {
	c.Code = NormalizeCode(c.Code)
	err := s.repo.Insert(ctx, c)
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrCouponExists
	}
	return err
}

// Redeem burns one use of the coupon; the repository refuses once the limit
// is reached.
func (s *CouponService) Redeem(ctx context.Context, code string) error {
	return s.repo.RedeemOnce(ctx, NormalizeCode(code))
}

func (s *CouponService) List(ctx context.Context) ([]*model.Coupon, error) {
	return s.repo.FindAll(ctx)
}

func (s *CouponService) SetActive(ctx context.Context, code string, active bool) error {
	return s.repo.SetActive(ctx, NormalizeCode(code), active)
}
