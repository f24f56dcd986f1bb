// Package lifecycle реализует чистую логику жизненного цикла подписок:
// вычисление статуса по дате окончания, учёт намерения пользователя,
// агрегацию счётчиков и фильтрацию коллекции.
//
// Все функции детерминированы: текущая дата всегда передаётся явным
// параметром и никогда не читается из системных часов внутри пакета.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/dates"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Selector — категория фильтра для отображения коллекции.
type Selector string

// Возможные категории фильтра.
const (
	SelectorAll      Selector = "all"
	SelectorActive   Selector = "active"
	SelectorExpiring Selector = "expiring"
	SelectorExpired  Selector = "expired"
	SelectorRenew    Selector = "renew"
	SelectorCancel   Selector = "cancel"
)

// ErrUnknownSelector возвращается при неизвестной категории фильтра.
// Молчаливого отката к "all" намеренно нет.
var ErrUnknownSelector = errors.New("unknown filter selector")

// expiringWindowDays — горизонт в днях, в пределах которого подписка
// считается истекающей. Граница включительная: ровно 7 дней — expiring.
const expiringWindowDays = 7

// Calculate вычисляет жизненный статус по дате окончания и текущей дате.
// Некорректная дата окончания возвращает ErrInvalidDate вместе со
// статусом StatusActive — определённым запасным значением, чтобы одна
// повреждённая запись не останавливала подсчёт по всей коллекции.
func Calculate(expiryDate string, today time.Time) (models.Status, error) {
	const op = "lifecycle.Calculate"

	expiry, err := dates.Parse(expiryDate)
	if err != nil {
		return models.StatusActive, fmt.Errorf("%s: %w", op, err)
	}

	daysDiff := dates.DaysBetween(expiry, today)
	switch {
	case daysDiff < 0:
		return models.StatusExpired, nil
	case daysDiff <= expiringWindowDays:
		return models.StatusExpiring, nil
	default:
		return models.StatusActive, nil
	}
}

// Resolve возвращает итоговый статус отображения записи.
// Заданное намерение полностью перекрывает вычисленный статус,
// но не меняет ни дату окончания, ни сам вычисленный статус.
func Resolve(sub models.Subscription, today time.Time) models.DisplayStatus {
	switch sub.Intention {
	case models.IntentionRenew:
		return models.DisplayPlannedRenew
	case models.IntentionCancel:
		return models.DisplayPlannedCancel
	}

	status, _ := Calculate(sub.ExpiryDate, today)
	return models.DisplayStatus(status)
}

// Aggregate подсчитывает счётчики панели статистики по всей коллекции.
//
// Каждая запись классифицируется только по вычисленному статусу:
// запись с намерением renew и просроченной датой попадает в Expired.
// Это расходится с фильтрацией (Filter исключает записи с намерением
// из статусных категорий) и сохранено как наблюдаемое поведение
// исходной системы. Инвариант: Active+Expiring+Expired == Total.
func Aggregate(subs []models.Subscription, today time.Time) models.Stats {
	var stats models.Stats
	for _, sub := range subs {
		status, _ := Calculate(sub.ExpiryDate, today)
		switch status {
		case models.StatusActive:
			stats.Active++
		case models.StatusExpiring:
			stats.Expiring++
		case models.StatusExpired:
			stats.Expired++
		}
	}
	stats.Total = len(subs)
	return stats
}

// Filter возвращает записи, попадающие в выбранную категорию,
// сохраняя исходный порядок коллекции.
//
// Категории renew и cancel отбирают записи строго по намерению.
// Статусные категории (active/expiring/expired) отбирают только записи
// без намерения: любое заданное намерение выводит запись из статусных
// категорий, даже если вычисленный статус совпадает.
func Filter(subs []models.Subscription, selector Selector, today time.Time) ([]models.Subscription, error) {
	const op = "lifecycle.Filter"

	switch selector {
	case SelectorAll:
		return subs, nil
	case SelectorRenew, SelectorCancel:
		var result []models.Subscription
		for _, sub := range subs {
			if sub.Intention == models.Intention(selector) {
				result = append(result, sub)
			}
		}
		return result, nil
	case SelectorActive, SelectorExpiring, SelectorExpired:
		var result []models.Subscription
		for _, sub := range subs {
			if sub.Intention != models.IntentionNone {
				continue
			}
			status, _ := Calculate(sub.ExpiryDate, today)
			if status == models.Status(selector) {
				result = append(result, sub)
			}
		}
		return result, nil
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownSelector, selector)
	}
}
