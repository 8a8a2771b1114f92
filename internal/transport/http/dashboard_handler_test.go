package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sinandash/internal/dataset"
	apierrors "sinandash/internal/errors"
	"sinandash/internal/services"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context, years []int) (*services.Dashboard, error) {
	args := m.Called(years)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Dashboard), args.Error(1)
}

func (m *MockDashboardService) Years(ctx context.Context) ([]int, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockDashboardService) Status() dataset.Status {
	args := m.Called()
	return args.Get(0).(dataset.Status)
}

func newTestHandler(svc DashboardServiceInterface) *DashboardHandler {
	logger := slog.Default()
	return NewDashboardHandler(svc, logger, apierrors.NewErrorHandler(logger))
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "no filter selects all years",
			url:  "/",
			setupMock: func(m *MockDashboardService) {
				m.On("Dashboard", []int(nil)).Return(&services.Dashboard{
					Summary: services.Summary{TotalNotifications: 42, TopAgeBracket: "Adult (25-59)"},
					Charts:  map[string]*services.Chart{},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				summary := body["summary"].(map[string]interface{})
				assert.Equal(t, float64(42), summary["total_notifications"])
			},
		},
		{
			name: "comma separated years",
			url:  "/?years=2020,2022",
			setupMock: func(m *MockDashboardService) {
				m.On("Dashboard", []int{2020, 2022}).Return(&services.Dashboard{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "repeated year parameters",
			url:  "/?years=2020&years=2021",
			setupMock: func(m *MockDashboardService) {
				m.On("Dashboard", []int{2020, 2021}).Return(&services.Dashboard{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "empty selection matches nothing",
			url:  "/?years=",
			setupMock: func(m *MockDashboardService) {
				m.On("Dashboard", []int{}).Return(&services.Dashboard{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-numeric year rejected",
			url:            "/?years=banana",
			setupMock:      func(m *MockDashboardService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "out of range year rejected",
			url:            "/?years=1200",
			setupMock:      func(m *MockDashboardService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "dataset unavailable yields 503 problem",
			url:  "/",
			setupMock: func(m *MockDashboardService) {
				m.On("Dashboard", []int(nil)).Return(nil,
					fmt.Errorf("%w: open workbook: no such file", dataset.ErrUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var problem map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
				assert.Equal(t, "/errors/data/unavailable", problem["type"])
				assert.Contains(t, problem["details"], "no such file")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockDashboardService)
			tt.setupMock(mockSvc)

			handler := newTestHandler(mockSvc)
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()

			handler.Routes().ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_GetYears(t *testing.T) {
	mockSvc := new(MockDashboardService)
	mockSvc.On("Years").Return([]int{2019, 2020}, nil)

	handler := newTestHandler(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/years", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int{2019, 2020}, body["years"])
}

func TestDashboardHandler_GetStatus(t *testing.T) {
	mockSvc := new(MockDashboardService)
	mockSvc.On("Status").Return(dataset.Status{State: dataset.StateAwaiting})

	handler := newTestHandler(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status dataset.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, dataset.StateAwaiting, status.State)
}
