package alerts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Franklp24/gestor-facturas/internal/models"
)

// MockService реализует интерфейс alerts.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Alerts(ctx context.Context) ([]models.InvoiceView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InvoiceView), args.Error(1)
}

func TestAlertsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	daysLeft := 0
	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "есть предупреждения",
			setupMock: func(m *MockService) {
				m.On("Alerts", mock.Anything).Return([]models.InvoiceView{
					{ID: 1, ClientName: "ACME", DueDate: "2024-06-01", Status: "pending", Alert: true, DaysLeft: &daysLeft},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"alert_count":1`,
		},
		{
			name: "пустой список",
			setupMock: func(m *MockService) {
				m.On("Alerts", mock.Anything).Return([]models.InvoiceView{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"alert_count":0`,
		},
		{
			name: "ошибка сервиса",
			setupMock: func(m *MockService) {
				m.On("Alerts", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"failed to list alerts"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/invoices/alerts", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
