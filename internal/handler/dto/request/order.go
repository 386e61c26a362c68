package request

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	AddressID string             `json:"addressId" binding:"required"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}
