package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "корректная дата",
			value: "2024-12-25",
			want:  time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "пустая строка",
			value:   "",
			wantErr: true,
		},
		{
			name:    "неверный формат",
			value:   "25-12-2024",
			wantErr: true,
		},
		{
			name:    "мусор вместо даты",
			value:   "not-a-date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(time.Date(2024, 6, 15, 23, 59, 58, 123, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestNormalizeKeepsCalendarDayAcrossZones(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	// 2024-06-15 00:30 в Токио — это ещё 2024-06-14 в UTC,
	// но календарный день операнда не должен сдвигаться.
	got := Normalize(time.Date(2024, 6, 15, 0, 30, 0, 0, tokyo))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{
			name:   "тот же день",
			expiry: today,
			want:   0,
		},
		{
			name:   "через неделю",
			expiry: today.AddDate(0, 0, 7),
			want:   7,
		},
		{
			name:   "вчера",
			expiry: today.AddDate(0, 0, -1),
			want:   -1,
		},
		{
			name:   "время суток не влияет",
			expiry: time.Date(2024, 6, 18, 23, 30, 0, 0, time.UTC),
			want:   3,
		},
		{
			name:   "десять дней назад",
			expiry: today.AddDate(0, 0, -10),
			want:   -10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.expiry, today))
		})
	}
}

func TestDaysBetweenIgnoresHostTimezone(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	newYork := time.FixedZone("UTC-5", -5*60*60)
	expiry := time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{
			name:  "сегодня в восточном поясе",
			today: time.Date(2024, 6, 15, 10, 0, 0, 0, tokyo),
			want:  7,
		},
		{
			name:  "сегодня в западном поясе",
			today: time.Date(2024, 6, 15, 22, 0, 0, 0, newYork),
			want:  7,
		},
		{
			name:  "вчерашняя дата из восточного пояса",
			today: time.Date(2024, 6, 23, 1, 0, 0, 0, tokyo),
			want:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(expiry, tt.today))
		})
	}
}
