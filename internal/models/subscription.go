// Package models содержит доменные структуры, описывающие подписку на
// продукт или сервис, а также вспомогательные типы для приёма данных из
// внешних источников (например, JSON-запросов).
package models

import (
	"encoding/json"
	"strings"
)

// Intention — намерение пользователя по поводу подписки.
// Пустое значение означает, что намерение не задано; в JSON оно
// сериализуется как null, чтобы формат хранимого блоба не менялся.
type Intention string

// Возможные намерения пользователя.
const (
	IntentionNone   Intention = ""
	IntentionRenew  Intention = "renew"
	IntentionCancel Intention = "cancel"
)

// Valid сообщает, является ли значение одним из допустимых намерений.
func (i Intention) Valid() bool {
	return i == IntentionNone || i == IntentionRenew || i == IntentionCancel
}

// MarshalJSON сериализует незаданное намерение как null.
func (i Intention) MarshalJSON() ([]byte, error) {
	if i == IntentionNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(i))
}

// UnmarshalJSON принимает null как отсутствие намерения.
func (i *Intention) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = IntentionNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*i = Intention(s)
	return nil
}

// Status — вычисленный жизненный статус подписки, зависит только от
// даты окончания и текущей даты.
type Status string

// Возможные вычисленные статусы.
const (
	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// DisplayStatus — итоговый статус для отображения: вычисленный статус,
// поверх которого может действовать намерение пользователя.
type DisplayStatus string

// Возможные статусы отображения.
const (
	DisplayActive        DisplayStatus = "active"
	DisplayExpiring      DisplayStatus = "expiring"
	DisplayExpired       DisplayStatus = "expired"
	DisplayPlannedRenew  DisplayStatus = "planned-renew"
	DisplayPlannedCancel DisplayStatus = "planned-cancel"
)

// IsPlanned сообщает, отражает ли статус намерение пользователя,
// а не вычисленный жизненный цикл.
func (d DisplayStatus) IsPlanned() bool {
	return d == DisplayPlannedRenew || d == DisplayPlannedCancel
}

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище.
// Дата окончания хранится строкой в формате 2006-01-02 — ровно так,
// как она лежит в сохранённом блобе.
type Subscription struct {
	ID            int64     `json:"id"`            // Уникальный идентификатор записи
	ProductName   string    `json:"productName"`   // Название продукта или сервиса
	Accounts      []string  `json:"accounts"`      // Привязанные учётные записи (email), минимум одна
	ExpiryDate    string    `json:"expiryDate"`    // Дата окончания в формате 2006-01-02
	ManagementURL string    `json:"managementUrl"` // Ссылка на страницу управления подпиской
	Intention     Intention `json:"intention"`     // Намерение пользователя (renew/cancel), null если нет
}

// DummySubscription используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Subscription.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummySubscription struct {
	ProductName   string   `json:"productName" validate:"required,max=50"`              // Название продукта (1-50 символов)
	Accounts      []string `json:"accounts" validate:"required,min=1,dive,required,email"` // Email-адреса, минимум один
	ExpiryDate    string   `json:"expiryDate" validate:"required,datetime=2006-01-02"`  // Дата окончания
	ManagementURL string   `json:"managementUrl" validate:"omitempty,url"`              // Ссылка на управление (опционально)
}

// Trim обрезает пробелы по краям строковых полей. Вызывается до
// валидации, чтобы название из одних пробелов не проходило required:
// хранится запись всегда с уже обрезанным названием длиной 1-50.
func (d *DummySubscription) Trim() {
	d.ProductName = strings.TrimSpace(d.ProductName)
	d.ManagementURL = strings.TrimSpace(d.ManagementURL)
}

// DummyIntention используется для приёма намерения из JSON-запроса.
type DummyIntention struct {
	Intention string `json:"intention" validate:"required,oneof=renew cancel"` // Намерение: renew или cancel
}

// DummyBatchIntention используется для приёма пакетной операции:
// применить намерение к набору выбранных записей.
type DummyBatchIntention struct {
	IDs       []int64 `json:"ids" validate:"required,min=1"`                    // Идентификаторы записей
	Intention string  `json:"intention" validate:"required,oneof=renew cancel"` // Намерение: renew или cancel
}

// Stats содержит агрегированные счётчики для панели статистики.
// Счётчики строятся по вычисленному статусу, намерения не учитываются.
type Stats struct {
	Active   int `json:"active"`   // Количество действующих подписок
	Expiring int `json:"expiring"` // Количество истекающих в ближайшие 7 дней
	Expired  int `json:"expired"`  // Количество просроченных
	Total    int `json:"total"`    // Общий размер коллекции
}
