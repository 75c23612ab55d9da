package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfline/shelfline-server/internal/catalog"
	"github.com/shelfline/shelfline-server/internal/domain"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books",
		Summary:     "Create book",
		Description: "Inserts a new book into the record store and refreshes the catalog",
		Tags:        []string{"Books"},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book detail",
		Description: "Opens the quick view for a book and returns its detail with reviews",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Replaces a book's editable fields in the record store",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book from the record store and prunes local state",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{id}/favorite",
		Summary:     "Toggle favorite",
		Description: "Flips the favorite flag for a book",
		Tags:        []string{"Books"},
	}, s.handleToggleFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShareText",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/share",
		Summary:     "Get share text",
		Description: "Returns the share snippet for a book",
		Tags:        []string{"Books"},
	}, s.handleGetShareText)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/reviews",
		Summary:     "List reviews",
		Description: "Returns a book's reviews, oldest first",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)

	huma.Register(s.api, huma.Operation{
		OperationID: "submitReview",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{id}/reviews",
		Summary:     "Submit review",
		Description: "Appends a review and recomputes the book's derived rating",
		Tags:        []string{"Reviews"},
	}, s.handleSubmitReview)
}

// === DTOs ===

// BookDraftRequest is the request body for creating or updating a book.
type BookDraftRequest struct {
	Title string  `json:"title" validate:"required,min=1,max=200" doc:"Book title"`
	Desc  string  `json:"desc" validate:"max=2000" doc:"Book description"`
	Price float64 `json:"price" validate:"gte=0" doc:"Price"`
	Cover string  `json:"cover" validate:"omitempty,url" doc:"Cover image URL"`
}

func (r BookDraftRequest) draft() domain.BookDraft {
	return domain.BookDraft{
		Title: r.Title,
		Desc:  r.Desc,
		Price: r.Price,
		Cover: r.Cover,
	}
}

// CreateBookInput wraps the create book request for Huma.
type CreateBookInput struct {
	Body BookDraftRequest
}

// BookIDInput contains the path parameter shared by single-book operations.
type BookIDInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	ID   int64 `path:"id" doc:"Book ID"`
	Body BookDraftRequest
}

// BookDetailOutput wraps the quick-view detail for Huma.
type BookDetailOutput struct {
	Body catalog.Detail
}

// FavoriteOutput reports the new favorite state.
type FavoriteOutput struct {
	Body struct {
		Favorite bool `json:"favorite" doc:"New favorite state"`
	}
}

// ShareTextOutput wraps the share snippet for Huma.
type ShareTextOutput struct {
	Body struct {
		Text string `json:"text" doc:"Share snippet"`
	}
}

// ReviewsOutput wraps a review list for Huma.
type ReviewsOutput struct {
	Body struct {
		Reviews []domain.Review `json:"reviews" doc:"Reviews, oldest first"`
	}
}

// SubmitReviewRequest is the request body for submitting a review.
type SubmitReviewRequest struct {
	Name  string `json:"name" validate:"required,max=100" doc:"Reviewer name"`
	Stars int    `json:"stars" validate:"gte=1,lte=5" doc:"Star rating, 1 to 5"`
	Text  string `json:"text" validate:"required,max=2000" doc:"Review text"`
}

// SubmitReviewInput wraps the submit review request for Huma.
type SubmitReviewInput struct {
	ID   int64 `path:"id" doc:"Book ID"`
	Body SubmitReviewRequest
}

// ReviewOutput wraps a single review for Huma.
type ReviewOutput struct {
	Body domain.Review
}

// === Handlers ===

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*MessageOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.catalog.Create(ctx, input.Body.draft()); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Book created"}}, nil
}

func (s *Server) handleGetBook(_ context.Context, input *BookIDInput) (*BookDetailOutput, error) {
	detail, err := s.catalog.OpenDetail(input.ID)
	if err != nil {
		return nil, err
	}
	return &BookDetailOutput{Body: detail}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*MessageOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.catalog.InlineEdit(ctx, input.ID, input.Body.draft()); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Book updated"}}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*MessageOutput, error) {
	if err := s.catalog.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Book deleted"}}, nil
}

func (s *Server) handleToggleFavorite(ctx context.Context, input *BookIDInput) (*FavoriteOutput, error) {
	on, err := s.catalog.ToggleFavorite(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &FavoriteOutput{}
	out.Body.Favorite = on
	return out, nil
}

func (s *Server) handleGetShareText(_ context.Context, input *BookIDInput) (*ShareTextOutput, error) {
	text, err := s.catalog.ShareText(input.ID)
	if err != nil {
		return nil, err
	}

	out := &ShareTextOutput{}
	out.Body.Text = text
	return out, nil
}

func (s *Server) handleListReviews(_ context.Context, input *BookIDInput) (*ReviewsOutput, error) {
	out := &ReviewsOutput{}
	out.Body.Reviews = s.catalog.Reviews(input.ID)
	return out, nil
}

func (s *Server) handleSubmitReview(ctx context.Context, input *SubmitReviewInput) (*ReviewOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	review, err := s.catalog.SubmitReview(ctx, input.ID, input.Body.Name, input.Body.Stars, input.Body.Text)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: review}, nil
}
