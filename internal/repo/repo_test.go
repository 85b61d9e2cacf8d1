package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shope/internal/models"
	pkgdb "github.com/Skotchmaster/shope/pkg/db"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	gdb, err := pkgdb.Open(context.Background(), pkgdb.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	t.Cleanup(func() { _ = pkgdb.Close(gdb) })

	r := &GormRepo{DB: gdb}
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func TestGormRepo_SaveAndLoadCart(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	items := []models.CartItem{
		{ID: "b", Name: "B", Price: 2.5, ImageURI: "ib", Quantity: 3},
		{ID: "a", Name: "A", Price: 10, ImageURI: "ia", Quantity: 1},
	}
	require.NoError(t, r.SaveCart(ctx, "s1", items))

	got, err := r.LoadCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, items, got)

	require.NoError(t, r.SaveCart(ctx, "s1", items[1:]))
	got, err = r.LoadCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	other, err := r.LoadCart(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, r.SaveCart(ctx, "s1", nil))
	got, err = r.LoadCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGormRepo_AppendAndListOrders(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	first := models.OrderItem{ID: "shoe-1", ProductID: "shoe", Name: "Shoe", Price: 5, ImageURI: "i", Quantity: 1, CreatedAt: at}
	second := models.OrderItem{ID: "shoe-2", ProductID: "shoe", Name: "Shoe", Price: 5, ImageURI: "i", Quantity: 1, CreatedAt: at}
	third := models.OrderItem{ID: "mug-3", ProductID: "mug", Name: "Mug", Price: 3, ImageURI: "i", Quantity: 2, CreatedAt: at.Add(time.Second)}

	require.NoError(t, r.AppendOrders(ctx, "s1", []models.OrderItem{first}))
	require.NoError(t, r.AppendOrders(ctx, "s1", []models.OrderItem{second, third}))
	require.NoError(t, r.AppendOrders(ctx, "s1", nil))

	got, err := r.ListOrders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"mug-3", "shoe-2", "shoe-1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, 2, got[0].Quantity)
	assert.True(t, at.Equal(got[2].CreatedAt))

	none, err := r.ListOrders(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormRepo_DuplicateOrderIDRejected(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	it := models.OrderItem{ID: "x-1", ProductID: "x", Quantity: 1, CreatedAt: time.Now()}

	require.NoError(t, r.AppendOrders(ctx, "s1", []models.OrderItem{it}))
	require.Error(t, r.AppendOrders(ctx, "s1", []models.OrderItem{it}))
}

func TestGormRepo_SameOrderIDInTwoSessions(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	it := models.OrderItem{ID: "a-1735689600000", ProductID: "a", Quantity: 1, CreatedAt: time.UnixMilli(1735689600000)}

	require.NoError(t, r.AppendOrders(ctx, "s1", []models.OrderItem{it}))
	require.NoError(t, r.AppendOrders(ctx, "s2", []models.OrderItem{it}))

	for _, sid := range []string{"s1", "s2"} {
		got, err := r.ListOrders(ctx, sid)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, it.ID, got[0].ID)
	}
}

func TestGormRepo_CheckoutOrders(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SaveCart(ctx, "s1", []models.CartItem{{ID: "a", Name: "A", Price: 1, ImageURI: "i", Quantity: 2}}))
	require.NoError(t, r.SaveCart(ctx, "s2", []models.CartItem{{ID: "b", Name: "B", Price: 1, ImageURI: "i", Quantity: 1}}))

	placed := models.OrderItem{ID: "a-5", ProductID: "a", Name: "A", Price: 1, ImageURI: "i", Quantity: 2, CreatedAt: time.UnixMilli(5)}
	require.NoError(t, r.CheckoutOrders(ctx, "s1", []models.OrderItem{placed}))

	cart, err := r.LoadCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart)
	orders, err := r.ListOrders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Quantity)

	other, err := r.LoadCart(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	// a duplicate id rolls the whole checkout back
	require.NoError(t, r.SaveCart(ctx, "s1", []models.CartItem{{ID: "a", Name: "A", Price: 1, ImageURI: "i", Quantity: 1}}))
	require.Error(t, r.CheckoutOrders(ctx, "s1", []models.OrderItem{placed}))
	cart, err = r.LoadCart(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cart, 1)
}
