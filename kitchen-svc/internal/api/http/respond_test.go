package httpapi

import (
	"net/http/httptest"
	"testing"
	"time"

	"kitchen-stock/kitchen-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		endOfDay bool
		want     *time.Time
		wantErr  bool
	}{
		{name: "empty", raw: ""},
		{name: "day start", raw: "2024-03-05", want: ptrTime(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))},
		{name: "day end", raw: "2024-03-05", endOfDay: true, want: ptrTime(time.Date(2024, 3, 5, 23, 59, 59, 999999000, time.UTC))},
		{name: "rfc3339 with offset", raw: "2024-03-05T10:00:00+02:00", want: ptrTime(time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))},
		{name: "garbage", raw: "yesterday", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := parseDate(testCase.raw, testCase.endOfDay)

			if testCase.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			if testCase.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, testCase.want.Equal(*got), "got %s", got)
		})
	}
}

func TestWriteErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "validation", err: domain.Validationf("bad"), wantCode: 400},
		{name: "not found", err: domain.NotFoundf("dish 1"), wantCode: 404},
		{name: "conflict", err: domain.Conflictf("in use"), wantCode: 409},
		{name: "insufficient stock", err: &domain.InsufficientStockError{}, wantCode: 409},
		{name: "anything else", err: assert.AnError, wantCode: 500},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeError(w, testCase.err)

			assert.Equal(t, testCase.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
