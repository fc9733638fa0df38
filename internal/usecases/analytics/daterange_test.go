package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/pkg/apiErrors"
)

func strPtr(s string) *string { return &s }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDateRange_Defaults(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name     string
		now      time.Time
		wantFrom time.Time
		wantTo   time.Time
	}{
		{name: "meio do mês", now: time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC), wantFrom: day(2024, 5, 17), wantTo: day(2024, 6, 15)},
		{name: "virada de ano", now: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC), wantFrom: day(2024, 12, 17), wantTo: day(2025, 1, 15)},
		{name: "29 de fevereiro", now: time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), wantFrom: day(2024, 1, 31), wantTo: day(2024, 2, 29)},
		{name: "1 de março em ano bissexto", now: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), wantFrom: day(2024, 2, 1), wantTo: day(2024, 3, 1)},
		{name: "1 de março em ano comum", now: time.Date(2023, 3, 1, 23, 59, 59, 0, time.UTC), wantFrom: day(2023, 1, 31), wantTo: day(2023, 3, 1)},
		{name: "fuso local já no dia seguinte em UTC", now: time.Date(2024, 12, 31, 23, 30, 0, 0, saoPaulo), wantFrom: day(2024, 12, 3), wantTo: day(2025, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDateRange(nil, nil, tt.now)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFrom, got.From)
			assert.Equal(t, tt.wantTo, got.To)
		})
	}
}

func TestResolveDateRange_DefaultWindowEveryDay(t *testing.T) {
	for now := day(2023, 1, 1); now.Before(day(2025, 1, 1)); now = now.AddDate(0, 0, 1) {
		got, err := ResolveDateRange(nil, nil, now.Add(17*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, now, got.To)
		assert.Equal(t, now.AddDate(0, 0, -29), got.From)
		assert.Equal(t, 29*24*time.Hour, got.To.Sub(got.From), now.Format(domain.DateLayout))
		assert.Equal(t, time.UTC, got.From.Location())
	}
}

func TestResolveDateRange_Explicit(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	got, err := ResolveDateRange(strPtr("2024-01-01"), strPtr("2024-01-31"), now)
	require.NoError(t, err)
	assert.Equal(t, domain.DateRange{From: day(2024, 1, 1), To: day(2024, 1, 31)}, got)

	got, err = ResolveDateRange(nil, strPtr("2024-03-01"), now)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 2, 1), got.From)

	got, err = ResolveDateRange(nil, strPtr("2023-03-01"), now)
	require.NoError(t, err)
	assert.Equal(t, day(2023, 1, 31), got.From)

	got, err = ResolveDateRange(strPtr("2024-06-15"), strPtr("2024-06-15"), now)
	require.NoError(t, err)
	assert.Equal(t, got.From, got.To)

	got, err = ResolveDateRange(strPtr(""), strPtr(""), now)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 6, 15), got.To)
}

func TestResolveDateRange_Invalid(t *testing.T) {
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    *string
		to      *string
		wantErr error
		field   string
		code    string
	}{
		{name: "from depois de to", from: strPtr("2024-02-01"), to: strPtr("2024-01-31"), wantErr: ErrInvalidDateRange, field: "from", code: apiErrors.ErrInvalidDateRange},
		{name: "from no futuro sem to", from: strPtr("2024-01-10"), wantErr: ErrInvalidDateRange, field: "from", code: apiErrors.ErrInvalidDateRange},
		{name: "mês inexistente", from: strPtr("2024-13-01"), wantErr: ErrInvalidDate, field: "from", code: apiErrors.ErrInvalidFormat},
		{name: "29 de fevereiro em ano comum", to: strPtr("2023-02-29"), wantErr: ErrInvalidDate, field: "to", code: apiErrors.ErrInvalidFormat},
		{name: "formato brasileiro", to: strPtr("31/01/2024"), wantErr: ErrInvalidDate, field: "to", code: apiErrors.ErrInvalidFormat},
		{name: "texto livre", from: strPtr("ontem"), wantErr: ErrInvalidDate, field: "from", code: apiErrors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveDateRange(tt.from, tt.to, now)
			require.Error(t, err)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))

			var analyticsErr *AnalyticsError
			require.True(t, errors.As(err, &analyticsErr))
			assert.Equal(t, tt.field, analyticsErr.Field)
			assert.Equal(t, tt.code, ErrorCode(err))
		})
	}
}
