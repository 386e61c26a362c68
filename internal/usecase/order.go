package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"storefront/internal/domain/catalog"
	"storefront/internal/domain/order"
	"storefront/internal/domain/user"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder     = errors.New("order has no items")
	ErrMissingAddress = errors.New("shipping address required")

	// Error markers for categorization
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id string) (*order.Order, error)
	FindByUser(ctx context.Context, userID string) ([]*order.Order, error)
	FindAll(ctx context.Context) ([]*order.Order, error)
}

type OrderItemInput struct {
	ProductID string
	Quantity  int64
}

// OrderLineView re-hydrates a stored line item into a display-friendly shape
// at read time. Deleted products become an unavailable placeholder instead of
// failing the listing.
type OrderLineView struct {
	ProductID   string   `json:"productId"`
	Name        string   `json:"name"`
	Quantity    int64    `json:"quantity"`
	UnitPrice   int64    `json:"unitPrice"`
	LineTotal   int64    `json:"lineTotal"`
	Images      []string `json:"image,omitempty"`
	Unresolved  bool     `json:"unresolved,omitempty"`
	Unavailable bool     `json:"unavailable,omitempty"`
}

type OrderView struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Items       []OrderLineView `json:"items"`
	AddressID   string          `json:"addressId"`
	Amount      int64           `json:"amount"`
	Status      string          `json:"status"`
	PaymentType string          `json:"paymentType"`
	CreatedAt   string          `json:"date"`
}

// OrderUseCase assembles checkouts into persisted orders and serves the
// role-filtered order listings.
type OrderUseCase interface {
	// CreateOrder prices the requested items against the current catalog and
	// persists the order. It does not clear the cart: clearing is the
	// caller's separate, retryable step so "compute a priced order" and
	// "clear the source cart" stay independently recoverable.
	CreateOrder(ctx context.Context, userID, addressID string, items []OrderItemInput) (*order.Order, error)
	// ListOrders is a read-time filter: customers see their own orders,
	// sellers and admins see all.
	ListOrders(ctx context.Context, requesterID string, role user.Role) ([]*OrderView, error)
}

type orderUseCaseImpl struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	clock       clock.Clock
	logger      *slog.Logger
}

func NewOrderUseCase(orderRepo OrderRepository, productRepo ProductRepository, clk clock.Clock, logger *slog.Logger) OrderUseCase {
	return &orderUseCaseImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		clock:       clk,
		logger:      logger,
	}
}

func (u *orderUseCaseImpl) CreateOrder(ctx context.Context, userID, addressID string, items []OrderItemInput) (*order.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if addressID == "" {
		return nil, ErrMissingAddress
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			return nil, ErrInvalidProductID
		}
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		ids = append(ids, it.ProductID)
	}

	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	lines := make([]order.LineItem, 0, len(items))
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			// Never lose a checkout intent: record the raw identifier as an
			// unresolved line so a human can reconcile it later. Leaving it
			// unpriced keeps the discrepancy visible instead of charging
			// zero as if that were the price.
			u.logger.Warn("order references missing product",
				"user_id", userID,
				"product_id", it.ProductID,
				"quantity", it.Quantity,
			)
			lines = append(lines, order.LineItem{
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				Unresolved: true,
			})
			continue
		}
		// Current catalog price, not a price captured earlier in the
		// session.
		unit := p.EffectivePrice()
		lines = append(lines, order.LineItem{
			ProductID: p.ID.ID(),
			Quantity:  it.Quantity,
			UnitPrice: unit,
			LineTotal: unit * it.Quantity,
		})
	}

	o := &order.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Items:       lines,
		AddressID:   addressID,
		Amount:      order.Total(lines),
		Status:      order.StatusPlaced,
		PaymentType: order.PaymentTypeCOD,
		CreatedAt:   u.clock.Now(),
	}

	if err := u.orderRepo.Create(ctx, o); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return o, nil
}

func (u *orderUseCaseImpl) ListOrders(ctx context.Context, requesterID string, role user.Role) ([]*OrderView, error) {
	var (
		orders []*order.Order
		err    error
	)
	if role.CanViewAllOrders() {
		orders, err = u.orderRepo.FindAll(ctx)
	} else {
		orders, err = u.orderRepo.FindByUser(ctx, requesterID)
	}
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	products, err := u.lookupProducts(ctx, orders)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, hydrateOrder(o, products))
	}
	return views, nil
}

func (u *orderUseCaseImpl) lookupProducts(ctx context.Context, orders []*order.Order) (map[string]*catalog.Product, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, o := range orders {
		for _, li := range o.Items {
			if _, ok := seen[li.ProductID]; !ok {
				seen[li.ProductID] = struct{}{}
				ids = append(ids, li.ProductID)
			}
		}
	}
	return u.productRepo.FindByIDs(ctx, ids)
}

func hydrateOrder(o *order.Order, products map[string]*catalog.Product) *OrderView {
	view := &OrderView{
		ID:          o.ID,
		UserID:      o.UserID,
		Items:       make([]OrderLineView, 0, len(o.Items)),
		AddressID:   o.AddressID,
		Amount:      o.Amount,
		Status:      o.Status,
		PaymentType: o.PaymentType,
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, li := range o.Items {
		line := OrderLineView{
			ProductID:  li.ProductID,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			LineTotal:  li.LineTotal,
			Unresolved: li.Unresolved,
		}
		if p, ok := products[li.ProductID]; ok {
			line.Name = p.Name
			line.Images = p.Images
		} else {
			line.Name = "Product unavailable"
			line.Unavailable = true
		}
		view.Items = append(view.Items, line)
	}
	return view
}
