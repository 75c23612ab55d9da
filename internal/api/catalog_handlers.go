package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfline/shelfline-server/internal/catalog"
	"github.com/shelfline/shelfline-server/internal/domain"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Get catalog view",
		Description: "Returns the filtered, sorted, paginated catalog page with aggregates",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshCatalog",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/refresh",
		Summary:     "Refresh catalog",
		Description: "Reloads the book list from the record store and enriches new books",
		Tags:        []string{"Catalog"},
	}, s.handleRefreshCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns the category filter options, \"all\" first",
		Tags:        []string{"Catalog"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSpotlights",
		Method:      http.MethodGet,
		Path:        "/api/v1/spotlights",
		Summary:     "Get spotlights",
		Description: "Returns the top-picks and new-arrivals strips",
		Tags:        []string{"Catalog"},
	}, s.handleGetSpotlights)
}

// === DTOs ===

// GetCatalogInput contains the filter parameters for the catalog view.
type GetCatalogInput struct {
	Query         string `query:"q" doc:"Substring match over title, description, and tags"`
	Sort          string `query:"sort" enum:"latest,price-low,price-high,title,rating" doc:"Sort order" default:"latest"`
	Category      string `query:"category" doc:"Category filter, or \"all\"" default:"all"`
	FavoritesOnly bool   `query:"favorites" doc:"Show only favorites"`
	Page          int    `query:"page" doc:"Page number, clamped into range" default:"1"`
}

// CatalogViewResponse is one catalog page with its context.
type CatalogViewResponse struct {
	Books      []domain.EnrichedBook `json:"books" doc:"Books on this page"`
	Page       int                   `json:"page" doc:"Effective page after clamping"`
	TotalPages int                   `json:"total_pages" doc:"Total pages for this filter"`
	Total      int                   `json:"total" doc:"Filtered book count"`
	Stats      catalog.Stats         `json:"stats" doc:"Aggregates over the filtered set"`
}

// CatalogViewOutput wraps the catalog view response for Huma.
type CatalogViewOutput struct {
	Body CatalogViewResponse
}

// CategoriesOutput wraps the category list for Huma.
type CategoriesOutput struct {
	Body struct {
		Categories []string `json:"categories" doc:"Category filter options"`
	}
}

// SpotlightsResponse contains the home page spotlight strips.
type SpotlightsResponse struct {
	TopPicks    []domain.EnrichedBook `json:"top_picks" doc:"Highest-rated books"`
	NewArrivals []domain.EnrichedBook `json:"new_arrivals" doc:"Most recently added books"`
}

// SpotlightsOutput wraps the spotlights response for Huma.
type SpotlightsOutput struct {
	Body SpotlightsResponse
}

// === Handlers ===

func (s *Server) handleGetCatalog(_ context.Context, input *GetCatalogInput) (*CatalogViewOutput, error) {
	filter := domain.FilterState{
		Query:         input.Query,
		Sort:          domain.ParseSortKey(input.Sort),
		Category:      input.Category,
		FavoritesOnly: input.FavoritesOnly,
		Page:          input.Page,
	}

	v := s.catalog.View(filter)

	return &CatalogViewOutput{
		Body: CatalogViewResponse{
			Books:      v.Books,
			Page:       v.Page,
			TotalPages: v.TotalPages,
			Total:      v.Total,
			Stats:      v.Stats,
		},
	}, nil
}

func (s *Server) handleRefreshCatalog(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.catalog.Refresh(ctx); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Catalog refreshed"}}, nil
}

func (s *Server) handleListCategories(_ context.Context, _ *struct{}) (*CategoriesOutput, error) {
	out := &CategoriesOutput{}
	out.Body.Categories = s.catalog.Categories()
	return out, nil
}

func (s *Server) handleGetSpotlights(_ context.Context, _ *struct{}) (*SpotlightsOutput, error) {
	return &SpotlightsOutput{
		Body: SpotlightsResponse{
			TopPicks:    s.catalog.TopPicks(),
			NewArrivals: s.catalog.NewArrivals(),
		},
	}, nil
}
