package migration

import (
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/smallbiznis/roommanager/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)

	names, err := fs.Glob(files, "*.sql")
	require.NoError(t, err)
	assert.Len(t, names, 4)

	src, err := iofs.New(files, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)
}

func TestUpRequiresHandle(t *testing.T) {
	_, err := Up(nil)
	assert.Error(t, err)
}

func TestApplySkipsNonPostgres(t *testing.T) {
	cfg := config.Config{DBType: "sqlite", DBMigrate: true}
	assert.NoError(t, Apply(nil, cfg, zap.NewNop()))
}
