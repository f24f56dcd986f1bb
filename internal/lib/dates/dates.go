// Package dates содержит функции для работы с календарными датами
// с точностью до дня: парсинг, нормализация и подсчёт разницы в днях.
package dates

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Layout формат календарной даты, в котором даты хранятся и принимаются из JSON.
const Layout = "2006-01-02"

// ErrInvalidDate возвращается, когда строка не является корректной датой.
var ErrInvalidDate = errors.New("invalid date")

// Parse разбирает строку формата Layout в дату без времени суток (UTC).
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// Normalize отбрасывает время суток и часовой пояс, оставляя полночь UTC
// того же календарного дня. Сравнение дат после нормализации не зависит
// ни от времени запуска, ни от пояса хоста.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween возвращает количество дней от today до expiry.
// Обе даты предварительно нормализуются, разница округляется вверх.
// Отрицательное значение означает, что expiry уже в прошлом.
func DaysBetween(expiry, today time.Time) int {
	diff := Normalize(expiry).Sub(Normalize(today))
	return int(math.Ceil(diff.Hours() / 24))
}
