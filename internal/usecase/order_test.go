//go:build unit

package usecase_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/catalog"
	"storefront/internal/domain/identity"
	"storefront/internal/domain/order"
	"storefront/internal/domain/user"
	"storefront/internal/pkg/clock"
	"storefront/internal/usecase"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders []*order.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id string) (*order.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeOrderRepo) FindByUser(_ context.Context, userID string) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindAll(_ context.Context) ([]*order.Order, error) {
	return f.orders, nil
}

func offerPrice(v int64) *int64 { return &v }

func catalogFixture() map[string]*catalog.Product {
	return map[string]*catalog.Product{
		"p1": {ID: identity.Literal("p1"), Name: "Headphones", Price: 1000},
		"p2": {ID: identity.Literal("p2"), Name: "Mouse", Price: 500},
		"p3": {ID: identity.Literal("p3"), Name: "Keyboard", Price: 900, OfferPrice: offerPrice(800)},
	}
}

func newOrderUseCase(products map[string]*catalog.Product) (usecase.OrderUseCase, *fakeOrderRepo) {
	repo := &fakeOrderRepo{}
	uc := usecase.NewOrderUseCase(
		repo,
		&fakeProductRepo{products: products},
		clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		slog.Default(),
	)
	return uc, repo
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("computes subtotal, 2 percent tax, and total", func(t *testing.T) {
		uc, repo := newOrderUseCase(catalogFixture())

		o, err := uc.CreateOrder(ctx, "u1", "addr-1", []usecase.OrderItemInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(2550), o.Amount, "2500 subtotal + 50 tax")
		assert.Equal(t, order.StatusPlaced, o.Status)
		assert.Equal(t, order.PaymentTypeCOD, o.PaymentType)
		assert.NotEmpty(t, o.ID)
		assert.False(t, o.CreatedAt.IsZero())
		require.Len(t, repo.orders, 1, "order must be persisted")
	})

	t.Run("charges the offer price when one is set", func(t *testing.T) {
		uc, _ := newOrderUseCase(catalogFixture())

		o, err := uc.CreateOrder(ctx, "u1", "addr-1", []usecase.OrderItemInput{
			{ProductID: "p3", Quantity: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(800), o.Items[0].UnitPrice)
		assert.Equal(t, int64(816), o.Amount)
	})

	t.Run("deleted product becomes a placeholder line, order still recorded", func(t *testing.T) {
		uc, repo := newOrderUseCase(catalogFixture())

		o, err := uc.CreateOrder(ctx, "u1", "addr-1", []usecase.OrderItemInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "vanished", Quantity: 3},
		})
		require.NoError(t, err, "a missing product must not abort the checkout")
		require.Len(t, repo.orders, 1)

		want := []order.LineItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 1000, LineTotal: 2000},
			{ProductID: "vanished", Quantity: 3, Unresolved: true},
		}
		if diff := cmp.Diff(want, o.Items); diff != "" {
			t.Errorf("line items mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, int64(2040), o.Amount, "unresolved line is not priced at zero into the total")
	})

	t.Run("validation failures reject before persistence", func(t *testing.T) {
		cases := []struct {
			name    string
			address string
			items   []usecase.OrderItemInput
			errIs   error
		}{
			{"empty item list", "addr-1", nil, usecase.ErrEmptyOrder},
			{"missing address", "", []usecase.OrderItemInput{{ProductID: "p1", Quantity: 1}}, usecase.ErrMissingAddress},
			{"zero quantity", "addr-1", []usecase.OrderItemInput{{ProductID: "p1", Quantity: 0}}, usecase.ErrInvalidQuantity},
			{"negative quantity", "addr-1", []usecase.OrderItemInput{{ProductID: "p1", Quantity: -2}}, usecase.ErrInvalidQuantity},
			{"blank product id", "addr-1", []usecase.OrderItemInput{{ProductID: "", Quantity: 1}}, usecase.ErrInvalidProductID},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uc, repo := newOrderUseCase(catalogFixture())
				_, err := uc.CreateOrder(ctx, "u1", tc.address, tc.items)
				require.ErrorIs(t, err, tc.errIs)
				assert.Empty(t, repo.orders, "nothing may persist on validation failure")
			})
		}
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) usecase.OrderUseCase {
		t.Helper()
		uc, _ := newOrderUseCase(catalogFixture())
		for _, u := range []string{"u1", "u2", "u3"} {
			_, err := uc.CreateOrder(ctx, u, "addr-"+u, []usecase.OrderItemInput{
				{ProductID: "p1", Quantity: 1},
			})
			require.NoError(t, err)
		}
		return uc
	}

	t.Run("customer sees only their own orders", func(t *testing.T) {
		uc := seed(t)
		views, err := uc.ListOrders(ctx, "u2", user.RoleCustomer)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "u2", views[0].UserID)
	})

	t.Run("admin and seller see all orders", func(t *testing.T) {
		uc := seed(t)
		for _, role := range []user.Role{user.RoleAdmin, user.RoleSeller} {
			views, err := uc.ListOrders(ctx, "u1", role)
			require.NoError(t, err)
			assert.Len(t, views, 3, "role %s", role)
		}
	})

	t.Run("listing rehydrates product display data live", func(t *testing.T) {
		products := catalogFixture()
		uc, _ := newOrderUseCase(products)
		_, err := uc.CreateOrder(ctx, "u1", "addr-1", []usecase.OrderItemInput{
			{ProductID: "p1", Quantity: 1},
		})
		require.NoError(t, err)

		views, err := uc.ListOrders(ctx, "u1", user.RoleCustomer)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Headphones", views[0].Items[0].Name)
	})

	t.Run("product deleted after checkout becomes an unavailable placeholder", func(t *testing.T) {
		products := catalogFixture()
		uc, _ := newOrderUseCase(products)
		_, err := uc.CreateOrder(ctx, "u1", "addr-1", []usecase.OrderItemInput{
			{ProductID: "p2", Quantity: 1},
		})
		require.NoError(t, err)

		delete(products, "p2")

		views, err := uc.ListOrders(ctx, "u1", user.RoleCustomer)
		require.NoError(t, err)
		require.Len(t, views, 1)
		line := views[0].Items[0]
		assert.True(t, line.Unavailable)
		assert.Equal(t, "Product unavailable", line.Name)
		assert.Equal(t, int64(500), line.UnitPrice, "snapshotted pricing survives deletion")
	})

	t.Run("views omit nothing the persisted order carries", func(t *testing.T) {
		uc := seed(t)
		views, err := uc.ListOrders(ctx, "u1", user.RoleCustomer)
		require.NoError(t, err)

		want := &usecase.OrderView{
			UserID:      "u1",
			AddressID:   "addr-u1",
			Amount:      1020,
			Status:      order.StatusPlaced,
			PaymentType: order.PaymentTypeCOD,
			Items: []usecase.OrderLineView{
				{ProductID: "p1", Name: "Headphones", Quantity: 1, UnitPrice: 1000, LineTotal: 1000},
			},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(usecase.OrderView{}, "ID", "CreatedAt"),
		}
		if diff := cmp.Diff(want, views[0], opts...); diff != "" {
			t.Errorf("order view mismatch (-want +got):\n%s", diff)
		}
	})
}
