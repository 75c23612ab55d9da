package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/shelfline/shelfline-server/internal/errors"
	"github.com/shelfline/shelfline-server/internal/validation"
)

type draftRequest struct {
	Title string  `json:"title" validate:"required,min=1,max=200"`
	Desc  string  `json:"desc" validate:"max=2000"`
	Price float64 `json:"price" validate:"gte=0"`
	Cover string  `json:"cover" validate:"omitempty,url"`
}

type reviewRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Stars int    `json:"stars" validate:"gte=1,lte=5"`
	Text  string `json:"text" validate:"required,max=2000"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := draftRequest{
		Title: "Cloud Native Patterns",
		Desc:  "Designing change-tolerant software",
		Price: 44.50,
		Cover: "https://covers.example.com/cnp.jpg",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       any
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing title",
			req:       draftRequest{Price: 10},
			wantField: "title",
			wantMsg:   "is required",
		},
		{
			name:      "negative price",
			req:       draftRequest{Title: "X", Price: -1},
			wantField: "price",
			wantMsg:   "must be greater than or equal to 0",
		},
		{
			name:      "bad cover url",
			req:       draftRequest{Title: "X", Cover: "not a url"},
			wantField: "cover",
			wantMsg:   "must be a valid URL",
		},
		{
			name:      "stars out of range",
			req:       reviewRequest{Name: "Sam", Stars: 6, Text: "great"},
			wantField: "stars",
			wantMsg:   "must be less than or equal to 5",
		},
		{
			name:      "missing review text",
			req:       reviewRequest{Name: "Sam", Stars: 3},
			wantField: "text",
			wantMsg:   "is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			fields, ok := domainErr.Details.(map[string]string)
			require.True(t, ok, "details should carry per-field messages")
			assert.Equal(t, tt.wantMsg, fields[tt.wantField])
		})
	}
}

func TestValidator_UsesJSONTagNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(reviewRequest{Stars: 1, Text: "ok"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	fields := domainErr.Details.(map[string]string)
	_, hasJSONName := fields["name"]
	_, hasGoName := fields["Name"]
	assert.True(t, hasJSONName)
	assert.False(t, hasGoName)
}
