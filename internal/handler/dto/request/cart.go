package request

type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// UpdateCartRequest sets an absolute quantity. Quantity is a pointer so that
// an explicit zero (remove) binds while a missing field is rejected.
type UpdateCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int64 `json:"quantity" binding:"required"`
}

type RemoveDeletedProductRequest struct {
	ProductID string `json:"productId" binding:"required"`
}
