package service

import (
	"context"
	"errors"

	"storefront-service/internal/model"
)

type ReviewRepository interface {
	Upsert(ctx context.Context, review *model.Review) error
	FindByProductID(ctx context.Context, productID string) ([]*model.Review, error)
}

var ErrBadRating = errors.New("rating must be between 1 and 5")

type ReviewService struct {
	repo     ReviewRepository
	products ProductGetter
}

func NewReviewService(repo ReviewRepository, products ProductGetter) *ReviewService {
	return &ReviewService{repo: repo, products: products}
}

func (s *ReviewService) Add(ctx context.Context, userID, userName, productID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrBadRating
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return err
	}

	return s.repo.Upsert(ctx, &model.Review{
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
	})
}

// ListForProduct returns the reviews plus the average rating, rounded for
// display.
func (s *ReviewService) ListForProduct(ctx context.Context, productID string) ([]*model.Review, float64, error) {
	reviews, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	if len(reviews) == 0 {
		return reviews, 0, nil
	}

	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return reviews, Round2(float64(sum) / float64(len(reviews))), nil
}
