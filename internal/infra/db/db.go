package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// ErrDisabled is returned by Provider.DB when the primary store is switched off.
var ErrDisabled = errors.New("primary store disabled")

// Open connects to the primary store described by cfg and pings it within ctx.
func Open(ctx context.Context, cfg config.DBCfg, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		// pure Go driver registered by modernc.org/sqlite
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: cfg.DSN})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	d, err := gorm.Open(dialector, &gorm.Config{
		Logger:               newGormLogger(log, 200*time.Millisecond),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	}
	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// Provider hands out the primary store connection, opening it on first use.
// While the store is unreachable every call retries the open, so callers always
// see current availability instead of a cached verdict.
type Provider struct {
	cfg  config.DBCfg
	log  *zap.Logger
	open func(ctx context.Context) (*gorm.DB, error)

	mu sync.Mutex
	db *gorm.DB
}

func NewProvider(cfg *config.Config, log *zap.Logger) *Provider {
	p := &Provider{cfg: cfg.Database, log: log}
	p.open = func(ctx context.Context) (*gorm.DB, error) {
		return Open(ctx, p.cfg, p.log)
	}
	return p
}

// NewProviderWithDB wraps an already opened connection. Used by tests and the
// migrate command.
func NewProviderWithDB(d *gorm.DB) *Provider {
	return &Provider{
		cfg: config.DBCfg{UseRealBackend: true, DSN: "preopened"},
		log: zap.NewNop(),
		db:  d,
	}
}

func (p *Provider) Enabled() bool {
	return p != nil && p.cfg.PrimaryEnabled()
}

// DB returns a session bound to ctx. Open failures are reported as
// connectivity errors.
func (p *Provider) DB(ctx context.Context) (*gorm.DB, error) {
	if !p.Enabled() {
		return nil, ErrDisabled
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		d, err := p.open(ctx)
		if err != nil {
			return nil, apperr.Connectivity(err)
		}
		p.log.Sugar().Infow("connected to primary store", "driver", p.cfg.Driver)
		p.db = d
	}
	return p.db.WithContext(ctx), nil
}

// Ping reports whether the primary store answers right now.
func (p *Provider) Ping(ctx context.Context) error {
	d, err := p.DB(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	p.db = nil
	return sqlDB.Close()
}

// Shutdown lets the DI container close the connection.
func (p *Provider) Shutdown() error {
	return p.Close()
}
