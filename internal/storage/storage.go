// Package storage реализует каноническую коллекцию подписок: упорядоченный
// список в памяти с операциями создания, обновления, удаления и управления
// намерениями. После каждой мутации коллекция целиком записывается в
// подключённый бэкенд хранения (write-through, без батчинга).
//
// Ошибка записи возвращается вызывающему, но изменение в памяти не
// откатывается: память и хранилище могут расходиться до следующей
// успешной записи.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Ошибки коллекции.
var (
	// ErrNotFound возвращается при обращении к несуществующему ID.
	ErrNotFound = errors.New("subscription not found")
	// ErrEmptyAccounts возвращается, когда запись сохраняется без единой
	// учётной записи. Поле критично для корректности статусов и фильтров,
	// поэтому коллекция проверяет его сама, не полагаясь на форму.
	ErrEmptyAccounts = errors.New("at least one account is required")
	// ErrInvalidIntention возвращается при попытке установить намерение,
	// отличное от renew и cancel.
	ErrInvalidIntention = errors.New("intention must be renew or cancel")
	// ErrPersist помечает сбой записи в хранилище. Состояние в памяти
	// при этом уже изменено.
	ErrPersist = errors.New("persist failed")
)

// Persister описывает бэкенд, хранящий коллекцию одним блобом.
type Persister interface {
	// Load читает коллекцию; found == false, если блоб отсутствует.
	Load(ctx context.Context) (subs []models.Subscription, found bool, err error)
	// Save записывает коллекцию целиком.
	Save(ctx context.Context, subs []models.Subscription) error
}

// Store владеет канонической коллекцией подписок.
// Все мутации выполняются под одной блокировкой вместе с записью в
// хранилище, поэтому одновременно выполняется не более одной мутации
// и частично применённое состояние снаружи не наблюдаемо.
type Store struct {
	mu        sync.Mutex
	subs      []models.Subscription
	lastID    int64
	persister Persister
	log       *slog.Logger
}

// snapshot — формат резервного файла данных: коллекция, обёрнутая
// в объект с полем subscriptions.
type snapshot struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
}

// New создаёт коллекцию, загружая данные по цепочке:
// бэкенд хранения -> резервный файл snapshotPath -> встроенный набор
// из трёх примеров. Ошибки первых двух источников не фатальны.
func New(ctx context.Context, persister Persister, snapshotPath string, log *slog.Logger) (*Store, error) {
	const op = "storage.New"

	s := &Store{persister: persister, log: log}

	subs, found, err := persister.Load(ctx)
	switch {
	case err != nil:
		log.Warn("failed to load collection from backend, trying snapshot", sl.Op(op), sl.Err(err))
	case !found:
		log.Info("no stored collection, trying snapshot", sl.Op(op))
	default:
		s.subs = subs
		s.lastID = maxID(subs)
		log.Info("collection loaded from backend", sl.Op(op), slog.Int("count", len(subs)))
		return s, nil
	}

	if subs, err := loadSnapshot(snapshotPath); err != nil {
		log.Warn("failed to load snapshot, using built-in seed", sl.Op(op), sl.Err(err))
		s.subs = defaultSubscriptions()
	} else {
		s.subs = subs
		log.Info("collection loaded from snapshot", sl.Op(op), slog.Int("count", len(subs)))
	}
	s.lastID = maxID(s.subs)

	return s, nil
}

func loadSnapshot(path string) ([]models.Subscription, error) {
	if path == "" {
		return nil, errors.New("snapshot path is not set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return snap.Subscriptions, nil
}

func maxID(subs []models.Subscription) int64 {
	var max int64
	for _, sub := range subs {
		if sub.ID > max {
			max = sub.ID
		}
	}
	return max
}

// nextID выдаёт новый уникальный идентификатор на основе текущего
// времени в миллисекундах. Идентификаторы строго возрастают и не
// переиспользуются после удаления записей.
func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// cleanAccounts отбрасывает пустые значения после обрезки пробелов.
func cleanAccounts(accounts []string) []string {
	result := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		if acc = strings.TrimSpace(acc); acc != "" {
			result = append(result, acc)
		}
	}
	return result
}

// Add валидирует учётные записи, присваивает новый ID, добавляет запись
// в конец коллекции и записывает коллекцию в хранилище.
// Намерение новой записи всегда не задано.
func (s *Store) Add(ctx context.Context, req models.DummySubscription) (int64, error) {
	const op = "storage.Add"

	accounts := cleanAccounts(req.Accounts)
	if len(accounts) == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyAccounts)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub := models.Subscription{
		ID:            s.nextID(),
		ProductName:   strings.TrimSpace(req.ProductName),
		Accounts:      accounts,
		ExpiryDate:    req.ExpiryDate,
		ManagementURL: strings.TrimSpace(req.ManagementURL),
		Intention:     models.IntentionNone,
	}
	s.subs = append(s.subs, sub)

	if err := s.persistLocked(ctx, op); err != nil {
		return sub.ID, err
	}
	return sub.ID, nil
}

// Update заменяет все поля записи, кроме ID и намерения.
func (s *Store) Update(ctx context.Context, id int64, req models.DummySubscription) error {
	const op = "storage.Update"

	accounts := cleanAccounts(req.Accounts)
	if len(accounts) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyAccounts)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%s: %w: id %d", op, ErrNotFound, id)
	}

	s.subs[idx].ProductName = strings.TrimSpace(req.ProductName)
	s.subs[idx].Accounts = accounts
	s.subs[idx].ExpiryDate = req.ExpiryDate
	s.subs[idx].ManagementURL = strings.TrimSpace(req.ManagementURL)

	return s.persistLocked(ctx, op)
}

// SetIntention устанавливает намерение renew или cancel.
func (s *Store) SetIntention(ctx context.Context, id int64, intention models.Intention) error {
	const op = "storage.SetIntention"

	if intention != models.IntentionRenew && intention != models.IntentionCancel {
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidIntention, intention)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%s: %w: id %d", op, ErrNotFound, id)
	}
	s.subs[idx].Intention = intention

	return s.persistLocked(ctx, op)
}

// ClearIntention сбрасывает намерение записи.
func (s *Store) ClearIntention(ctx context.Context, id int64) error {
	const op = "storage.ClearIntention"

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%s: %w: id %d", op, ErrNotFound, id)
	}
	s.subs[idx].Intention = models.IntentionNone

	return s.persistLocked(ctx, op)
}

// ApplyIntention применяет намерение к набору записей за одну мутацию:
// одна блокировка, одна запись в хранилище. Отсутствующие ID молча
// пропускаются, возвращается количество изменённых записей.
func (s *Store) ApplyIntention(ctx context.Context, ids []int64, intention models.Intention) (int, error) {
	const op = "storage.ApplyIntention"

	if intention != models.IntentionRenew && intention != models.IntentionCancel {
		return 0, fmt.Errorf("%s: %w: %q", op, ErrInvalidIntention, intention)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int
	for _, id := range ids {
		if idx := s.indexLocked(id); idx >= 0 {
			s.subs[idx].Intention = intention
			updated++
		}
	}
	if updated == 0 {
		return 0, nil
	}

	if err := s.persistLocked(ctx, op); err != nil {
		return updated, err
	}
	return updated, nil
}

// Remove удаляет запись из коллекции.
func (s *Store) Remove(ctx context.Context, id int64) error {
	const op = "storage.Remove"

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%s: %w: id %d", op, ErrNotFound, id)
	}
	s.subs = append(s.subs[:idx], s.subs[idx+1:]...)

	return s.persistLocked(ctx, op)
}

// Find возвращает копию записи по ID.
func (s *Store) Find(id int64) (models.Subscription, error) {
	const op = "storage.Find"

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Subscription{}, fmt.Errorf("%s: %w: id %d", op, ErrNotFound, id)
	}
	return copySubscription(s.subs[idx]), nil
}

// All возвращает снимок коллекции в порядке вставки.
func (s *Store) All() []models.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Subscription, len(s.subs))
	for i, sub := range s.subs {
		result[i] = copySubscription(sub)
	}
	return result
}

// Len возвращает текущий размер коллекции.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Store) indexLocked(id int64) int {
	for i, sub := range s.subs {
		if sub.ID == id {
			return i
		}
	}
	return -1
}

func copySubscription(sub models.Subscription) models.Subscription {
	sub.Accounts = append([]string(nil), sub.Accounts...)
	return sub
}

// persistLocked выполняет единственную попытку записи, без повторов.
func (s *Store) persistLocked(ctx context.Context, op string) error {
	if err := s.persister.Save(ctx, s.subs); err != nil {
		s.log.Error("failed to persist collection", sl.Op(op), sl.Err(err))
		return fmt.Errorf("%s: %w: %v", op, ErrPersist, err)
	}
	return nil
}
