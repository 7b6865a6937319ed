package generate_excel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateExcel(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestGenerateReportExcel(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything).Return([]byte("PK\x03\x04"), nil)

	rr := httptest.NewRecorder()
	GenerateReportExcel(slog.New(slog.DiscardHandler), gen).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/excel", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment; filename=Zestawienie_")
	assert.Equal(t, []byte("PK\x03\x04"), rr.Body.Bytes())
}

func TestGenerateReportExcel_Error(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything).Return(nil, errors.New("boom"))

	rr := httptest.NewRecorder()
	GenerateReportExcel(slog.New(slog.DiscardHandler), gen).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/excel", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
