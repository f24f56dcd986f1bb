package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// File хранит блоб в JSON-файле на диске. Бэкенд для локального запуска.
type File struct {
	path string
}

// NewFile создаёт файловый бэкенд. Файл не обязан существовать.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load читает коллекцию из файла; found == false, если файла нет.
func (f *File) Load(_ context.Context) ([]models.Subscription, bool, error) {
	const op = "kv.File.Load"

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var subs []models.Subscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return subs, true, nil
}

// Save записывает коллекцию целиком, перезаписывая файл.
func (f *File) Save(_ context.Context, subs []models.Subscription) error {
	const op = "kv.File.Save"

	data, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
