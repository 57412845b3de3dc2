package db

import (
	"context"
	"testing"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sqliteCfg(dsn string) *config.Config {
	return &config.Config{Database: config.DBCfg{UseRealBackend: true, Driver: "sqlite", DSN: dsn}}
}

func TestProvider_Disabled(t *testing.T) {
	p := NewProvider(&config.Config{Database: config.DBCfg{UseRealBackend: true}}, zap.NewNop())
	assert.False(t, p.Enabled())

	_, err := p.DB(context.Background())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestProvider_OpenFailureIsConnectivity(t *testing.T) {
	p := NewProvider(sqliteCfg("file:/nonexistent-dir/pulse.db?mode=ro"), zap.NewNop())
	require.True(t, p.Enabled())

	_, err := p.DB(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConnectivity, apperr.KindOf(err))

	// a later call tries again instead of remembering the failure
	_, err = p.DB(context.Background())
	assert.Equal(t, apperr.KindConnectivity, apperr.KindOf(err))
}

func TestMigrateAndSeed(t *testing.T) {
	p := NewProvider(sqliteCfg("file:migrate_seed?mode=memory&cache=shared"), zap.NewNop())
	t.Cleanup(func() { _ = p.Close() })

	d, err := p.DB(context.Background())
	require.NoError(t, err)
	require.NoError(t, Migrate(d))

	store, err := mockstore.NewSeeded()
	require.NoError(t, err)
	require.NoError(t, Seed(d, store))

	var projects []model.Project
	require.NoError(t, d.Order("id").Find(&projects).Error)
	require.Len(t, projects, store.Projects.Len())
	assert.Equal(t, "Website Redesign", projects[0].Name)
	assert.Equal(t, []uint{2, 3}, []uint(projects[0].TeamMembers))

	assert.Error(t, Seed(d, store), "seeding twice is refused")
	assert.NoError(t, p.Ping(context.Background()))
}
