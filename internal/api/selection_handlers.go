package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSelectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSelection",
		Method:      http.MethodGet,
		Path:        "/api/v1/selection",
		Summary:     "Get selection",
		Description: "Returns the book IDs currently selected for bulk operations",
		Tags:        []string{"Selection"},
	}, s.handleGetSelection)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleSelection",
		Method:      http.MethodPut,
		Path:        "/api/v1/selection",
		Summary:     "Toggle selection",
		Description: "Flips the bulk-selection state of one book",
		Tags:        []string{"Selection"},
	}, s.handleToggleSelection)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearSelection",
		Method:      http.MethodDelete,
		Path:        "/api/v1/selection",
		Summary:     "Clear selection",
		Description: "Deselects every book",
		Tags:        []string{"Selection"},
	}, s.handleClearSelection)

	huma.Register(s.api, huma.Operation{
		OperationID: "bulkDelete",
		Method:      http.MethodPost,
		Path:        "/api/v1/selection/delete",
		Summary:     "Bulk delete",
		Description: "Deletes every selected book; local state changes only if all calls succeed",
		Tags:        []string{"Selection"},
	}, s.handleBulkDelete)

	huma.Register(s.api, huma.Operation{
		OperationID: "bulkPriceAdjust",
		Method:      http.MethodPost,
		Path:        "/api/v1/selection/price",
		Summary:     "Bulk price adjust",
		Description: "Adjusts every selected book's price by a percentage; all-or-nothing locally",
		Tags:        []string{"Selection"},
	}, s.handleBulkPriceAdjust)
}

// === DTOs ===

// SelectionOutput wraps the selected IDs for Huma.
type SelectionOutput struct {
	Body struct {
		IDs   []int64 `json:"ids" doc:"Selected book IDs, ascending"`
		Count int     `json:"count" doc:"Number of selected books"`
	}
}

// ToggleSelectionInput wraps the toggle request for Huma.
type ToggleSelectionInput struct {
	Body struct {
		ID int64 `json:"id" doc:"Book ID to toggle"`
	}
}

// ToggleSelectionOutput reports the new selection state of the book.
type ToggleSelectionOutput struct {
	Body struct {
		Selected bool `json:"selected" doc:"New selection state"`
	}
}

// BulkPriceInput wraps the price adjustment request for Huma. The percent is
// raw text and is rejected before any remote call when it does not parse.
type BulkPriceInput struct {
	Body struct {
		Percent string `json:"percent" doc:"Percentage change, may be negative"`
	}
}

// === Handlers ===

func (s *Server) handleGetSelection(_ context.Context, _ *struct{}) (*SelectionOutput, error) {
	ids := s.catalog.Selection()

	out := &SelectionOutput{}
	out.Body.IDs = ids
	out.Body.Count = len(ids)
	return out, nil
}

func (s *Server) handleToggleSelection(_ context.Context, input *ToggleSelectionInput) (*ToggleSelectionOutput, error) {
	on, err := s.catalog.ToggleSelect(input.Body.ID)
	if err != nil {
		return nil, err
	}

	out := &ToggleSelectionOutput{}
	out.Body.Selected = on
	return out, nil
}

func (s *Server) handleClearSelection(_ context.Context, _ *struct{}) (*MessageOutput, error) {
	s.catalog.ClearSelection()
	return &MessageOutput{Body: MessageResponse{Message: "Selection cleared"}}, nil
}

func (s *Server) handleBulkDelete(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.catalog.BulkDelete(ctx); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Selected books deleted"}}, nil
}

func (s *Server) handleBulkPriceAdjust(ctx context.Context, input *BulkPriceInput) (*MessageOutput, error) {
	if err := s.catalog.BulkPriceAdjust(ctx, input.Body.Percent); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Prices adjusted"}}, nil
}
