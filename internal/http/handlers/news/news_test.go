package news

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-paper/internal/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Fetch(ctx context.Context, source string) []models.NewsArticle {
	args := m.Called(ctx, source)
	return args.Get(0).([]models.NewsArticle)
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedSource string
		articles       []models.NewsArticle
		expectedBody   string
	}{
		{
			name:           "default source is all",
			target:         "/api/v1/news",
			expectedSource: "all",
			articles: []models.NewsArticle{
				{ID: "1", Title: "Breaking story", Source: "New Vision"},
			},
			expectedBody: `"Breaking story"`,
		},
		{
			name:           "explicit source",
			target:         "/api/v1/news?source=monitor",
			expectedSource: "monitor",
			articles: []models.NewsArticle{
				{ID: "2", Title: "Monitor story", Source: "Daily Monitor"},
			},
			expectedBody: `"Monitor story"`,
		},
		{
			name:           "empty result still returns articles key",
			target:         "/api/v1/news?source=social",
			expectedSource: "social",
			articles:       []models.NewsArticle{},
			expectedBody:   `"articles":[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			service.On("Fetch", mock.Anything, tt.expectedSource).Return(tt.articles)

			handler := New(slog.New(slog.NewTextHandler(os.Stdout, nil)), service)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			service.AssertExpectations(t)
		})
	}
}
