package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
	"github.com/imanelbaz22-debug/serene-app/internal/store/sqlite"
)

type pingStore struct {
	store.Store
	err error
}

func (p *pingStore) HealthPing(context.Context) error { return p.err }

type usersOnly struct {
	store.Users
	err error
}

func (u usersOnly) Get(context.Context, string) (*model.User, error) { return nil, u.err }

type usersStore struct {
	store.Store
	users usersOnly
}

func (s usersStore) Users() store.Users { return s.users }

func TestStoreHealthChecker_SQLite(t *testing.T) {
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	require.NoError(t, sqlite.EnsureSchema(context.Background(), db))
	st := sqlite.NewWithDB(db)

	hc := store.NewStoreHealthChecker(st, zerolog.Nop(), time.Second)
	assert.False(t, hc.IsHealthy())
	assert.Equal(t, "store", hc.Name())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hc.Start(ctx, 10*time.Millisecond)
	assert.Eventually(t, hc.IsHealthy, time.Second, 5*time.Millisecond)

	// a closed pool fails the ping
	require.NoError(t, db.Close())
	assert.Eventually(t, func() bool { return !hc.IsHealthy() }, time.Second, 5*time.Millisecond)
}

func TestStoreHealthChecker_Pinger(t *testing.T) {
	ps := &pingStore{err: errors.New("connection refused")}
	hc := store.NewStoreHealthChecker(ps, zerolog.Nop(), time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hc.Start(ctx, time.Hour)
	time.Sleep(20 * time.Millisecond)
	assert.False(t, hc.IsHealthy())
}

func TestStoreHealthChecker_FallbackTreatsNotFoundAsHealthy(t *testing.T) {
	st := usersStore{users: usersOnly{err: model.NewNotFoundError("user", "__health_check__")}}
	hc := store.NewStoreHealthChecker(st, zerolog.Nop(), time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hc.Start(ctx, time.Hour)
	assert.Eventually(t, hc.IsHealthy, time.Second, 5*time.Millisecond)
}
