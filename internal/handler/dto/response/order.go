package response

import (
	"log/slog"

	"storefront/internal/usecase"

	"github.com/jinzhu/copier"
)

type OrderLineResponse struct {
	ProductID   string   `json:"productId"`
	Name        string   `json:"name"`
	Quantity    int64    `json:"quantity"`
	UnitPrice   int64    `json:"unitPrice"`
	LineTotal   int64    `json:"lineTotal"`
	Images      []string `json:"image,omitempty"`
	Unresolved  bool     `json:"unresolved,omitempty"`
	Unavailable bool     `json:"unavailable,omitempty"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Items       []OrderLineResponse `json:"items"`
	AddressID   string              `json:"addressId"`
	Amount      int64               `json:"amount"`
	Status      string              `json:"status"`
	PaymentType string              `json:"paymentType"`
	CreatedAt   string              `json:"date"`
}

func FromOrderView(view *usecase.OrderView) *OrderResponse {
	var resp OrderResponse
	if err := copier.Copy(&resp, view); err != nil {
		// Field sets are kept in lockstep; a copy failure is a programming
		// error worth a log line, not a request failure.
		slog.Error("order view mapping failed", "error", err)
	}
	return &resp
}

func FromOrderViews(views []*usecase.OrderView) []*OrderResponse {
	out := make([]*OrderResponse, len(views))
	for i, v := range views {
		out[i] = FromOrderView(v)
	}
	return out
}
