package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pedr0sc/techstore/internal/catalog"
)

func testCatalog() catalog.Catalog {
	return catalog.NewMemory(catalog.DefaultProducts())
}

func TestAddItem_MergesDuplicates(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	c := New()

	for i := 0; i < 5; i++ {
		added, err := c.AddItem(ctx, cat, 1)
		require.NoError(t, err)
		assert.True(t, added)
	}

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItem_UnknownProductIsNoOp(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	c := New()

	added, err := c.AddItem(ctx, cat, 999)
	require.NoError(t, err)
	assert.False(t, added)
	assert.True(t, c.IsEmpty())
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	c := New()

	for _, id := range []int64{3, 1, 2, 1, 3} {
		_, err := c.AddItem(ctx, cat, id)
		require.NoError(t, err)
	}

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].ProductID)
	assert.Equal(t, int64(1), items[1].ProductID)
	assert.Equal(t, int64(2), items[2].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, 1, items[2].Quantity)
}

func TestRemoveThenAdd_ResetsQuantity(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	c := New()

	for i := 0; i < 3; i++ {
		_, err := c.AddItem(ctx, cat, 2)
		require.NoError(t, err)
	}
	c.RemoveItem(2)

	_, err := c.AddItem(ctx, cat, 2)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestApplyQuantityDelta_ZeroBoundaryRemoves(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	c := New()

	for i := 0; i < 3; i++ {
		_, err := c.AddItem(ctx, cat, 1)
		require.NoError(t, err)
	}

	c.ApplyQuantityDelta(1, -3)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
}

func TestApplyQuantityDelta_Decrement(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	c := New()

	for i := 0; i < 3; i++ {
		_, err := c.AddItem(ctx, cat, 1)
		require.NoError(t, err)
	}

	c.ApplyQuantityDelta(1, -1)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestApplyQuantityDelta_MissingItemIsNoOp(t *testing.T) {
	c := New()
	c.ApplyQuantityDelta(42, 1)
	assert.True(t, c.IsEmpty())
}

func TestTotal(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	c := New()

	// 2 x iPhone 15 Pro @ 7999.99, 1 x AirPods Pro @ 1899.99
	for i := 0; i < 2; i++ {
		_, err := c.AddItem(ctx, cat, 1)
		require.NoError(t, err)
	}
	_, err := c.AddItem(ctx, cat, 3)
	require.NoError(t, err)

	total, err := c.Total(ctx, cat)
	require.NoError(t, err)
	assert.Equal(t, "17899.97", total.StringFixed(2))
	assert.Equal(t, 3, c.ItemCount())
}

func TestTotal_SkipsVanishedProducts(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	c := New()

	_, err := c.AddItem(ctx, cat, 3)
	require.NoError(t, err)

	// Same cart read against a catalog that no longer has the product
	total, err := c.Total(ctx, catalog.NewMemory(nil))
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	c := New()

	_, err := c.AddItem(ctx, cat, 1)
	require.NoError(t, err)
	_, err = c.AddItem(ctx, cat, 2)
	require.NoError(t, err)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
	total, err := c.Total(ctx, cat)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
