package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/dates"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

var today = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func day(offset int) string {
	return today.AddDate(0, 0, offset).Format(dates.Layout)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		expiryDate string
		want       models.Status
		wantErr    bool
	}{
		{
			name:       "сегодня - истекает",
			expiryDate: day(0),
			want:       models.StatusExpiring,
		},
		{
			name:       "ровно через 7 дней - ещё истекает",
			expiryDate: day(7),
			want:       models.StatusExpiring,
		},
		{
			name:       "через 8 дней - действует",
			expiryDate: day(8),
			want:       models.StatusActive,
		},
		{
			name:       "вчера - просрочена",
			expiryDate: day(-1),
			want:       models.StatusExpired,
		},
		{
			name:       "через 3 дня - истекает",
			expiryDate: day(3),
			want:       models.StatusExpiring,
		},
		{
			name:       "далёкое будущее - действует",
			expiryDate: day(365),
			want:       models.StatusActive,
		},
		{
			name:       "некорректная дата - запасной статус active",
			expiryDate: "not-a-date",
			want:       models.StatusActive,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.expiryDate, today)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, dates.ErrInvalidDate)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_NonUTCHost(t *testing.T) {
	// Границы статусов не должны сдвигаться, когда time.Now() приходит
	// из локального пояса хоста, а дата окончания распарсена как UTC.
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	newYork := time.FixedZone("UTC-5", -5*60*60)

	tests := []struct {
		name       string
		expiryDate string
		today      time.Time
		want       models.Status
	}{
		{
			name:       "ровно через 7 дней в восточном поясе - истекает",
			expiryDate: day(7),
			today:      time.Date(2024, 6, 15, 1, 0, 0, 0, tokyo),
			want:       models.StatusExpiring,
		},
		{
			name:       "вчера в восточном поясе - просрочена",
			expiryDate: day(-1),
			today:      time.Date(2024, 6, 15, 23, 0, 0, 0, tokyo),
			want:       models.StatusExpired,
		},
		{
			name:       "через 8 дней в западном поясе - действует",
			expiryDate: day(8),
			today:      time.Date(2024, 6, 15, 22, 30, 0, 0, newYork),
			want:       models.StatusActive,
		},
		{
			name:       "сегодня в западном поясе - истекает",
			expiryDate: day(0),
			today:      time.Date(2024, 6, 15, 0, 30, 0, 0, newYork),
			want:       models.StatusExpiring,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.expiryDate, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_IntentionOverridesStatus(t *testing.T) {
	tests := []struct {
		name string
		sub  models.Subscription
		want models.DisplayStatus
	}{
		{
			name: "renew перекрывает просроченный статус",
			sub:  models.Subscription{ExpiryDate: day(-10), Intention: models.IntentionRenew},
			want: models.DisplayPlannedRenew,
		},
		{
			name: "cancel перекрывает действующий статус",
			sub:  models.Subscription{ExpiryDate: day(100), Intention: models.IntentionCancel},
			want: models.DisplayPlannedCancel,
		},
		{
			name: "без намерения - вычисленный статус",
			sub:  models.Subscription{ExpiryDate: day(3)},
			want: models.DisplayExpiring,
		},
		{
			name: "без намерения и просрочена",
			sub:  models.Subscription{ExpiryDate: day(-1)},
			want: models.DisplayExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.sub, today)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.sub.Intention != models.IntentionNone, got.IsPlanned())
		})
	}
}

func TestAggregate(t *testing.T) {
	subs := []models.Subscription{
		{ID: 1, ExpiryDate: day(30)},
		{ID: 2, ExpiryDate: day(3)},
		{ID: 3, ExpiryDate: day(-1)},
		// намерение не влияет на счётчики: запись всё равно в Expired
		{ID: 4, ExpiryDate: day(-10), Intention: models.IntentionRenew},
		{ID: 5, ExpiryDate: day(7), Intention: models.IntentionCancel},
	}

	stats := Aggregate(subs, today)

	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 2, stats.Expiring)
	assert.Equal(t, 2, stats.Expired)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, stats.Total, stats.Active+stats.Expiring+stats.Expired)
}

func TestAggregate_CorruptDateDoesNotBreakTotals(t *testing.T) {
	subs := []models.Subscription{
		{ID: 1, ExpiryDate: day(-1)},
		{ID: 2, ExpiryDate: "garbage"},
	}

	stats := Aggregate(subs, today)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, stats.Total, stats.Active+stats.Expiring+stats.Expired)
}

func TestFilter(t *testing.T) {
	subs := []models.Subscription{
		{ID: 1, ExpiryDate: day(30)},
		{ID: 2, ExpiryDate: day(3)},
		{ID: 3, ExpiryDate: day(-1)},
		{ID: 4, ExpiryDate: day(-10), Intention: models.IntentionRenew},
		{ID: 5, ExpiryDate: day(3), Intention: models.IntentionCancel},
	}

	tests := []struct {
		name     string
		selector Selector
		wantIDs  []int64
	}{
		{
			name:     "all возвращает всё в исходном порядке",
			selector: SelectorAll,
			wantIDs:  []int64{1, 2, 3, 4, 5},
		},
		{
			name:     "active - только без намерения",
			selector: SelectorActive,
			wantIDs:  []int64{1},
		},
		{
			name:     "expiring исключает запись с намерением cancel",
			selector: SelectorExpiring,
			wantIDs:  []int64{2},
		},
		{
			name:     "expired исключает запись с намерением renew",
			selector: SelectorExpired,
			wantIDs:  []int64{3},
		},
		{
			name:     "renew - строго по намерению",
			selector: SelectorRenew,
			wantIDs:  []int64{4},
		},
		{
			name:     "cancel - строго по намерению",
			selector: SelectorCancel,
			wantIDs:  []int64{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(subs, tt.selector, today)
			require.NoError(t, err)

			gotIDs := make([]int64, 0, len(got))
			for _, sub := range got {
				gotIDs = append(gotIDs, sub.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestFilter_UnknownSelector(t *testing.T) {
	_, err := Filter(nil, "whatever", today)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSelector)
}

// Категории по намерению и статусные категории не пересекаются:
// запись с намерением никогда не попадает в статусную категорию.
func TestFilter_IntentBucketsDisjointFromStatusBuckets(t *testing.T) {
	subs := []models.Subscription{
		{ID: 1, ExpiryDate: day(30), Intention: models.IntentionRenew},
		{ID: 2, ExpiryDate: day(3), Intention: models.IntentionRenew},
		{ID: 3, ExpiryDate: day(-1), Intention: models.IntentionRenew},
	}

	renewSet, err := Filter(subs, SelectorRenew, today)
	require.NoError(t, err)
	assert.Len(t, renewSet, 3)

	for _, selector := range []Selector{SelectorActive, SelectorExpiring, SelectorExpired} {
		got, err := Filter(subs, selector, today)
		require.NoError(t, err)
		assert.Empty(t, got, "selector %q", selector)
	}
}
