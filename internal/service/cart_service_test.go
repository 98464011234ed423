package service

import (
	"context"
	"testing"

	"storefront-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T, products ...*model.Product) (*CartService, *memCartRepo, *memProducts) {
	t.Helper()
	repo := newMemCartRepo()
	prods := newMemProducts(products...)
	return NewCartService(repo, prods), repo, prods
}

func inStockProduct(name string, price float64) *model.Product {
	return &model.Product{Name: name, Price: price, Sizes: []string{"S", "M", "L"}, InStock: true}
}

func TestAddRequiresSize(t *testing.T) {
	svc, _, _ := newCartFixture(t, inStockProduct("tee", 10))
	_, err := svc.Add(context.Background(), "u1", "whatever", "")
	assert.ErrorIs(t, err, ErrSizeRequired)
}

func TestAddRejectsOutOfStock(t *testing.T) {
	p := inStockProduct("tee", 10)
	p.InStock = false
	svc, _, _ := newCartFixture(t, p)

	_, err := svc.Add(context.Background(), "u1", p.ID.Hex(), "M")
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestAddRejectsEmptySizeStock(t *testing.T) {
	p := inStockProduct("tee", 10)
	p.SizeStock = map[string]int{"M": 0, "L": 3}
	svc, _, _ := newCartFixture(t, p)

	_, err := svc.Add(context.Background(), "u1", p.ID.Hex(), "M")
	assert.ErrorIs(t, err, ErrOutOfStock)

	// untracked and positively stocked sizes are fine
	_, err = svc.Add(context.Background(), "u1", p.ID.Hex(), "L")
	assert.NoError(t, err)
	_, err = svc.Add(context.Background(), "u1", p.ID.Hex(), "S")
	assert.NoError(t, err)
}

func TestAddAccumulatesQuantity(t *testing.T) {
	p := inStockProduct("tee", 10)
	svc, repo, _ := newCartFixture(t, p)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Add(ctx, "u1", p.ID.Hex(), "M")
		require.NoError(t, err)
	}

	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[p.ID.Hex()]["M"])
	assert.Equal(t, 3, repo.puts, "every mutation persists the cart")
}

func TestSetQuantityZeroRemovesEntries(t *testing.T) {
	p := inStockProduct("tee", 10)
	svc, _, _ := newCartFixture(t, p)
	ctx := context.Background()
	pid := p.ID.Hex()

	_, err := svc.SetQuantity(ctx, "u1", pid, "M", 2)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "u1", pid, "L", 1)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, "u1", pid, "M", 0)
	require.NoError(t, err)
	_, ok := cart.Items[pid]["M"]
	assert.False(t, ok, "zero quantity removes the size key")

	// removing the last size removes the product key entirely
	cart, err = svc.Remove(ctx, "u1", pid, "L")
	require.NoError(t, err)
	_, ok = cart.Items[pid]
	assert.False(t, ok, "empty size map removes the product key")
}

func TestSetQuantityRejectsNegative(t *testing.T) {
	svc, _, _ := newCartFixture(t)
	_, err := svc.SetQuantity(context.Background(), "u1", "p", "M", -1)
	assert.ErrorIs(t, err, ErrBadQuantity)
}

func TestSubtotalSumsDiscountedLines(t *testing.T) {
	a := inStockProduct("tee", 10)
	b := inStockProduct("hoodie", 40)
	b.Discount = 50
	b.SizePricing = map[string]float64{"L": 60}
	svc, _, _ := newCartFixture(t, a, b)
	ctx := context.Background()

	_, err := svc.SetQuantity(ctx, "u1", a.ID.Hex(), "M", 2)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "u1", b.ID.Hex(), "L", 1)
	require.NoError(t, err)

	// 2*10 + 1*60*0.5
	subtotal, err := svc.Subtotal(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, subtotal)
}

func TestSubtotalIsLinear(t *testing.T) {
	a := inStockProduct("tee", 12.5)
	b := inStockProduct("mug", 7.25)
	svc, _, _ := newCartFixture(t, a, b)
	ctx := context.Background()

	_, err := svc.SetQuantity(ctx, "u1", a.ID.Hex(), "M", 2)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "u1", b.ID.Hex(), "S", 3)
	require.NoError(t, err)

	before, err := svc.Subtotal(ctx, "u1")
	require.NoError(t, err)

	_, err = svc.SetQuantity(ctx, "u1", a.ID.Hex(), "M", 4)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "u1", b.ID.Hex(), "S", 6)
	require.NoError(t, err)

	after, err := svc.Subtotal(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, before*2, after, "doubling every quantity doubles the subtotal")

	_, err = svc.SetQuantity(ctx, "u1", a.ID.Hex(), "M", 0)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "u1", b.ID.Hex(), "S", 0)
	require.NoError(t, err)

	empty, err := svc.Subtotal(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty)
}

func TestViewPrunesDeletedProducts(t *testing.T) {
	a := inStockProduct("tee", 10)
	b := inStockProduct("mug", 5)
	svc, _, prods := newCartFixture(t, a, b)
	ctx := context.Background()

	_, err := svc.SetQuantity(ctx, "u1", a.ID.Hex(), "M", 1)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "u1", b.ID.Hex(), "S", 2)
	require.NoError(t, err)

	prods.remove(b.ID.Hex())

	view, err := svc.View(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 10.0, view.Subtotal)

	// the pruned cart was written back, not just filtered in the view
	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	_, ok := cart.Items[b.ID.Hex()]
	assert.False(t, ok)
}
