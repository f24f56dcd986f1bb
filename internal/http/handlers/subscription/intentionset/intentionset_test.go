package intentionset

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// MockService реализует интерфейс intentionset.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SetIntention(ctx context.Context, id int64, intention models.Intention) error {
	args := m.Called(ctx, id, intention)
	return args.Error(0)
}

func TestIntentionSetHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "установка намерения продлить",
			id:   "42",
			body: `{"intention": "renew"}`,
			setupMock: func(m *MockService) {
				m.On("SetIntention", mock.Anything, int64(42), models.IntentionRenew).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"intention":"renew"`,
		},
		{
			name: "установка намерения отменить",
			id:   "42",
			body: `{"intention": "cancel"}`,
			setupMock: func(m *MockService) {
				m.On("SetIntention", mock.Anything, int64(42), models.IntentionCancel).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"intention":"cancel"`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			body:           `{"intention": "renew"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
		{
			name:           "недопустимое намерение",
			id:             "42",
			body:           `{"intention": "pause"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Intention must be one of the allowed values`,
		},
		{
			name: "запись не найдена",
			id:   "777",
			body: `{"intention": "renew"}`,
			setupMock: func(m *MockService) {
				m.On("SetIntention", mock.Anything, int64(777), models.IntentionRenew).
					Return(storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `subscription not found`,
		},
		{
			name: "сбой записи в хранилище",
			id:   "42",
			body: `{"intention": "renew"}`,
			setupMock: func(m *MockService) {
				m.On("SetIntention", mock.Anything, int64(42), models.IntentionRenew).
					Return(storage.ErrPersist)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to persist subscription`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost,
				"/subscriptions/"+tt.id+"/intention", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
