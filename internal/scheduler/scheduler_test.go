package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReportWriter struct {
	mock.Mock
}

func (m *MockReportWriter) WriteFile(ctx context.Context, dir string, now time.Time) (string, error) {
	args := m.Called(ctx, dir, now)
	return args.String(0), args.Error(1)
}

func TestStart_EmptyScheduleDisabled(t *testing.T) {
	writer := new(MockReportWriter)
	s := New(writer, "/tmp/reports", "", nil, nil)

	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	s.Stop()

	writer.AssertNotCalled(t, "WriteFile")
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := New(new(MockReportWriter), "/tmp/reports", "every friday", nil, nil)

	assert.Error(t, s.Start())
}

func TestStart_RegistersJob(t *testing.T) {
	s := New(new(MockReportWriter), "/tmp/reports", "0 5 * * *", nil, nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Next.IsZero())
}

func TestExportReport(t *testing.T) {
	at := time.Date(2024, 12, 23, 5, 0, 0, 0, time.UTC)

	writer := new(MockReportWriter)
	writer.On("WriteFile", mock.Anything, "/srv/reports", at).Return("/srv/reports/a.xlsx", nil).Once()

	s := New(writer, "/srv/reports", "0 5 * * *", nil, nil)
	s.now = func() time.Time { return at }
	s.exportReport()

	writer.AssertExpectations(t)
}

func TestExportReport_ErrorIsLogged(t *testing.T) {
	writer := new(MockReportWriter)
	writer.On("WriteFile", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("disk full")).Once()

	s := New(writer, "/srv/reports", "0 5 * * *", nil, nil)
	assert.NotPanics(t, s.exportReport)

	writer.AssertExpectations(t)
}

func TestExportReport_HoldsLock(t *testing.T) {
	var mu sync.Mutex
	locked := false

	writer := new(MockReportWriter)
	writer.On("WriteFile", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { locked = !mu.TryLock() }).
		Return("/srv/reports/a.xlsx", nil).Once()

	s := New(writer, "/srv/reports", "0 5 * * *", &mu, nil)
	s.exportReport()

	assert.True(t, locked, "export must run under the shared lock")
	assert.True(t, mu.TryLock(), "lock must be released after the export")
	writer.AssertExpectations(t)
}
