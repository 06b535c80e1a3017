package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imanelbaz22-debug/serene-app/internal/config"
)

func TestNewStore_SQLite(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "serene.db")

	st, closeFn, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	u, err := st.Users().GetOrCreateByExternalID(context.Background(), "user_factory", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, u.UserID)
}

func TestNewStore_Errors(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = "postgres"
	cfg.PostgresDSN = ""
	_, _, err := NewStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg.DBDriver = "oracle"
	_, _, err = NewStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
