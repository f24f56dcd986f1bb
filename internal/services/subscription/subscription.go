// Package services содержит бизнес-логику для управления подписками:
// операции над коллекцией, выбор записей для пакетных действий и
// точки входа для фильтрации и статистики.
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/lifecycle"
)

// Collection определяет методы канонической коллекции подписок.
type Collection interface {
	// Add добавляет новую запись и возвращает её ID.
	Add(ctx context.Context, req models.DummySubscription) (int64, error)
	// Update заменяет поля записи, кроме ID и намерения.
	Update(ctx context.Context, id int64, req models.DummySubscription) error
	// SetIntention устанавливает намерение renew или cancel.
	SetIntention(ctx context.Context, id int64, intention models.Intention) error
	// ClearIntention сбрасывает намерение.
	ClearIntention(ctx context.Context, id int64) error
	// ApplyIntention применяет намерение к набору записей за одну мутацию.
	ApplyIntention(ctx context.Context, ids []int64, intention models.Intention) (int, error)
	// Remove удаляет запись.
	Remove(ctx context.Context, id int64) error
	// Find возвращает запись по ID.
	Find(id int64) (models.Subscription, error)
	// All возвращает снимок коллекции в порядке вставки.
	All() []models.Subscription
}

// SubscriptionService реализует бизнес-логику работы с подписками.
// Помимо операций над коллекцией сервис отслеживает набор выбранных
// записей для пакетных действий.
type SubscriptionService struct {
	collection Collection
	log        *slog.Logger

	mu       sync.Mutex
	selected map[int64]struct{}
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(collection Collection, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		collection: collection,
		log:        log,
		selected:   make(map[int64]struct{}),
	}
}

// Create создает новую запись и возвращает её ID.
func (s *SubscriptionService) Create(ctx context.Context, req models.DummySubscription) (int64, error) {
	id, err := s.collection.Add(ctx, req)
	if err != nil {
		return id, err
	}
	s.log.Info("created new subscription", slog.Int64("id", id))
	return id, nil
}

// Update обновляет запись по ID, сохраняя её намерение.
func (s *SubscriptionService) Update(ctx context.Context, id int64, req models.DummySubscription) error {
	if err := s.collection.Update(ctx, id, req); err != nil {
		return err
	}
	s.log.Info("updated subscription", slog.Int64("id", id))
	return nil
}

// Remove удаляет запись и снимает её из выбора: после удаления ID
// не должен оставаться ни в одном наборе выбранных записей.
func (s *SubscriptionService) Remove(ctx context.Context, id int64) error {
	if err := s.collection.Remove(ctx, id); err != nil {
		return err
	}
	s.Deselect(id)
	s.log.Info("removed subscription", slog.Int64("id", id))
	return nil
}

// SetIntention устанавливает намерение записи.
func (s *SubscriptionService) SetIntention(ctx context.Context, id int64, intention models.Intention) error {
	if err := s.collection.SetIntention(ctx, id, intention); err != nil {
		return err
	}
	s.log.Info("intention set", slog.Int64("id", id), slog.String("intention", string(intention)))
	return nil
}

// ClearIntention сбрасывает намерение записи: статус отображения снова
// определяется только датой окончания.
func (s *SubscriptionService) ClearIntention(ctx context.Context, id int64) error {
	if err := s.collection.ClearIntention(ctx, id); err != nil {
		return err
	}
	s.log.Info("intention cleared", slog.Int64("id", id))
	return nil
}

// ApplyIntentionBatch применяет намерение к набору записей и убирает
// обработанные записи из выбора. Возвращает количество изменённых.
func (s *SubscriptionService) ApplyIntentionBatch(ctx context.Context, ids []int64, intention models.Intention) (int, error) {
	updated, err := s.collection.ApplyIntention(ctx, ids, intention)
	if err != nil {
		return updated, err
	}

	s.mu.Lock()
	for _, id := range ids {
		delete(s.selected, id)
	}
	s.mu.Unlock()

	s.log.Info("batch intention applied",
		slog.Int("requested", len(ids)),
		slog.Int("updated", updated),
		slog.String("intention", string(intention)))
	return updated, nil
}

// List возвращает снимок всей коллекции.
func (s *SubscriptionService) List() []models.Subscription {
	return s.collection.All()
}

// ListFiltered возвращает записи выбранной категории фильтра.
func (s *SubscriptionService) ListFiltered(selector lifecycle.Selector, today time.Time) ([]models.Subscription, error) {
	return lifecycle.Filter(s.collection.All(), selector, today)
}

// Stats возвращает агрегированные счётчики по вычисленному статусу.
func (s *SubscriptionService) Stats(today time.Time) models.Stats {
	return lifecycle.Aggregate(s.collection.All(), today)
}

// Read возвращает запись вместе с её статусом отображения.
func (s *SubscriptionService) Read(id int64, today time.Time) (models.Subscription, models.DisplayStatus, error) {
	sub, err := s.collection.Find(id)
	if err != nil {
		return models.Subscription{}, "", err
	}
	return sub, lifecycle.Resolve(sub, today), nil
}

// Select добавляет запись в набор выбранных для пакетных действий.
func (s *SubscriptionService) Select(id int64) error {
	if _, err := s.collection.Find(id); err != nil {
		return err
	}
	s.mu.Lock()
	s.selected[id] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Deselect убирает запись из набора выбранных.
func (s *SubscriptionService) Deselect(id int64) {
	s.mu.Lock()
	delete(s.selected, id)
	s.mu.Unlock()
}

// ClearSelection очищает набор выбранных записей,
// например при смене фильтра.
func (s *SubscriptionService) ClearSelection() {
	s.mu.Lock()
	s.selected = make(map[int64]struct{})
	s.mu.Unlock()
}

// SelectedIDs возвращает ID выбранных записей.
func (s *SubscriptionService) SelectedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}
