package usecase

import (
	"context"
	"errors"
	"sort"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/catalog"
	"storefront/internal/pkg/errs"
)

var (
	ErrInvalidProductID = errors.New("product id required")
	ErrInvalidQuantity  = errors.New("quantity must be a non-negative integer")
)

type CartRepository interface {
	Get(ctx context.Context, userID string) (cart.Items, error)
	SetItem(ctx context.Context, userID, productID string, quantity int64) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	RemoveProductFromAllCarts(ctx context.Context, productID string) (int64, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*catalog.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error)
	List(ctx context.Context) ([]*catalog.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*catalog.Product, error)
}

// CartLineView is a cart entry reconciled against live catalog state. A
// product deleted since it was added shows as unavailable instead of breaking
// the whole cart read.
type CartLineView struct {
	ProductID   string           `json:"productId"`
	Quantity    int64            `json:"quantity"`
	Product     *catalog.Product `json:"product,omitempty"`
	Unavailable bool             `json:"unavailable,omitempty"`
}

type CartView struct {
	Lines []CartLineView `json:"lines"`
	Count int64          `json:"count"`
}

// CartUseCase mutates and reads one user's sparse quantity map. Consistency
// is last-write-wins per user; two tabs racing on the same product overwrite
// each other's last update and that is accepted.
type CartUseCase interface {
	SetQuantity(ctx context.Context, userID, productID string, quantity int64) (cart.Items, error)
	Add(ctx context.Context, userID, productID string, delta int64) (cart.Items, error)
	Remove(ctx context.Context, userID, productID string) (cart.Items, error)
	Get(ctx context.Context, userID string) (*CartView, error)
	Count(ctx context.Context, userID string) (int64, error)
	Clear(ctx context.Context, userID string) error
	RemoveProductEverywhere(ctx context.Context, productID string) (int64, error)
}

type cartUseCaseImpl struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

func NewCartUseCase(cartRepo CartRepository, productRepo ProductRepository) CartUseCase {
	return &cartUseCaseImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (u *cartUseCaseImpl) SetQuantity(ctx context.Context, userID, productID string, quantity int64) (cart.Items, error) {
	if productID == "" {
		return nil, ErrInvalidProductID
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	items, err := u.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := items.Set(productID, quantity); err != nil {
		return nil, ErrInvalidQuantity
	}

	if err := u.persistItem(ctx, userID, productID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (u *cartUseCaseImpl) Add(ctx context.Context, userID, productID string, delta int64) (cart.Items, error) {
	if productID == "" {
		return nil, ErrInvalidProductID
	}

	items, err := u.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	items.Add(productID, delta)

	if err := u.persistItem(ctx, userID, productID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (u *cartUseCaseImpl) Remove(ctx context.Context, userID, productID string) (cart.Items, error) {
	return u.SetQuantity(ctx, userID, productID, 0)
}

// persistItem writes the single touched key: a $set when the entry survives,
// a $unset when it was removed, keeping zero-valued entries out of storage.
func (u *cartUseCaseImpl) persistItem(ctx context.Context, userID, productID string, items cart.Items) error {
	if qty, ok := items[productID]; ok {
		if err := u.cartRepo.SetItem(ctx, userID, productID, qty); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	}
	if err := u.cartRepo.RemoveItem(ctx, userID, productID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *cartUseCaseImpl) Get(ctx context.Context, userID string) (*CartView, error) {
	items, err := u.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view := &CartView{
		Lines: make([]CartLineView, 0, len(items)),
		Count: items.Count(),
	}
	for id, qty := range items {
		line := CartLineView{ProductID: id, Quantity: qty}
		if p, ok := products[id]; ok {
			line.Product = p
		} else {
			line.Unavailable = true
		}
		view.Lines = append(view.Lines, line)
	}
	sort.Slice(view.Lines, func(i, j int) bool { return view.Lines[i].ProductID < view.Lines[j].ProductID })
	return view, nil
}

func (u *cartUseCaseImpl) Count(ctx context.Context, userID string) (int64, error) {
	items, err := u.cartRepo.Get(ctx, userID)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return items.Count(), nil
}

func (u *cartUseCaseImpl) Clear(ctx context.Context, userID string) error {
	if err := u.cartRepo.Clear(ctx, userID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *cartUseCaseImpl) RemoveProductEverywhere(ctx context.Context, productID string) (int64, error) {
	if productID == "" {
		return 0, ErrInvalidProductID
	}
	count, err := u.cartRepo.RemoveProductFromAllCarts(ctx, productID)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return count, nil
}
