package kv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Postgres хранит блоб одной строкой таблицы kv_store (key -> value).
// Таблица создаётся миграциями из каталога migrations.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres открывает подключение к PostgreSQL и проверяет его.
func NewPostgres(connString string) (*Postgres, error) {
	const op = "kv.NewPostgres"

	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Postgres{DB: db}, nil
}

// Load читает коллекцию; found == false, если строки с ключом нет.
func (p *Postgres) Load(ctx context.Context) ([]models.Subscription, bool, error) {
	const op = "kv.Postgres.Load"

	var raw []byte
	query := `SELECT value FROM kv_store WHERE key = $1`
	err := p.DB.QueryRowContext(ctx, query, Key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var subs []models.Subscription
	if err := json.Unmarshal(raw, &subs); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return subs, true, nil
}

// Save записывает коллекцию целиком, перезаписывая строку с ключом.
func (p *Postgres) Save(ctx context.Context, subs []models.Subscription) error {
	const op = "kv.Postgres.Save"

	data, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO kv_store (key, value, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE
			  SET value = EXCLUDED.value, updated_at = now()`
	if _, err := p.DB.ExecContext(ctx, query, Key, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает подключение к базе.
func (p *Postgres) Close() error {
	return p.DB.Close()
}
