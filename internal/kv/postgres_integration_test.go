package kv

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/subscription-tracker/internal/migrations"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func getTestPostgres(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	p, err := NewPostgres(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(p.DB, migrationsPath))

	return p
}

func TestPostgres_SaveLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test, requires docker")
	}

	p := getTestPostgres(t)
	ctx := context.Background()

	_, found, err := p.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	want := []models.Subscription{
		{
			ID:            10,
			ProductName:   "Office 365 Family",
			Accounts:      []string{"user1@example.com"},
			ExpiryDate:    "2024-12-25",
			ManagementURL: "https://account.microsoft.com/services/",
			Intention:     models.IntentionRenew,
		},
	}
	require.NoError(t, p.Save(ctx, want))

	got, found, err := p.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	// повторная запись перезаписывает строку с тем же ключом
	want[0].Intention = models.IntentionNone
	require.NoError(t, p.Save(ctx, want))

	got, found, err = p.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.IntentionNone, got[0].Intention)
}
