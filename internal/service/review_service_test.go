package service

import (
	"context"
	"testing"

	"storefront-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRatingBounds(t *testing.T) {
	p := inStockProduct("tee", 10)
	svc := NewReviewService(&memReviewRepo{}, newMemProducts(p))
	ctx := context.Background()

	assert.ErrorIs(t, svc.Add(ctx, "u1", "Ada", p.ID.Hex(), 0, ""), ErrBadRating)
	assert.ErrorIs(t, svc.Add(ctx, "u1", "Ada", p.ID.Hex(), 6, ""), ErrBadRating)
	assert.NoError(t, svc.Add(ctx, "u1", "Ada", p.ID.Hex(), 5, "great"))
}

func TestReviewRequiresExistingProduct(t *testing.T) {
	svc := NewReviewService(&memReviewRepo{}, newMemProducts())
	err := svc.Add(context.Background(), "u1", "Ada", "missing", 4, "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReviewReplaceAndAverage(t *testing.T) {
	p := inStockProduct("tee", 10)
	svc := NewReviewService(&memReviewRepo{}, newMemProducts(p))
	ctx := context.Background()
	pid := p.ID.Hex()

	require.NoError(t, svc.Add(ctx, "u1", "Ada", pid, 2, "meh"))
	require.NoError(t, svc.Add(ctx, "u2", "Bob", pid, 5, "great"))
	// resubmitting replaces the earlier review instead of stacking
	require.NoError(t, svc.Add(ctx, "u1", "Ada", pid, 4, "better after a wash"))

	reviews, average, err := svc.ListForProduct(ctx, pid)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, 4.5, average)

	var ada *model.Review
	for _, r := range reviews {
		if r.UserID == "u1" {
			ada = r
		}
	}
	require.NotNil(t, ada)
	assert.Equal(t, 4, ada.Rating)
}
