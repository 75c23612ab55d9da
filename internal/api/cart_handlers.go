package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfline/shelfline-server/internal/domain"
)

func (s *Server) registerCartRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCart",
		Method:      http.MethodGet,
		Path:        "/api/v1/cart",
		Summary:     "Get cart",
		Description: "Returns the cart sequence in insertion order",
		Tags:        []string{"Cart"},
	}, s.handleGetCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToCart",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart",
		Summary:     "Add to cart",
		Description: "Appends a snapshot of the book to the cart; duplicates are allowed",
		Tags:        []string{"Cart"},
	}, s.handleAddToCart)
}

// === DTOs ===

// CartOutput wraps the cart contents for Huma.
type CartOutput struct {
	Body struct {
		Items []domain.CartItem `json:"items" doc:"Cart entries in insertion order"`
		Count int               `json:"count" doc:"Number of entries"`
	}
}

// AddToCartInput wraps the add-to-cart request for Huma.
type AddToCartInput struct {
	Body struct {
		ID int64 `json:"id" doc:"Book ID to add"`
	}
}

// CartCountOutput reports the cart size after an add.
type CartCountOutput struct {
	Body struct {
		Count int `json:"count" doc:"Cart size after the add"`
	}
}

// === Handlers ===

func (s *Server) handleGetCart(_ context.Context, _ *struct{}) (*CartOutput, error) {
	items := s.catalog.Cart()

	out := &CartOutput{}
	out.Body.Items = items
	out.Body.Count = len(items)
	return out, nil
}

func (s *Server) handleAddToCart(ctx context.Context, input *AddToCartInput) (*CartCountOutput, error) {
	count, err := s.catalog.AddToCart(ctx, input.Body.ID)
	if err != nil {
		return nil, err
	}

	out := &CartCountOutput{}
	out.Body.Count = count
	return out, nil
}
