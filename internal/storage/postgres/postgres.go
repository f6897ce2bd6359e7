// Package postgres provides the production connection pool: a pgxpool.Pool
// built from the DB_* settings and exposed to database/sql through the pgx
// stdlib adapter, so the same data-access code runs on every backend.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/aanand-mishra/people-api/internal/config"
)

const schema = `
	CREATE TABLE IF NOT EXISTS people (
		id   SERIAL  PRIMARY KEY,
		name TEXT    NOT NULL,
		age  INTEGER NOT NULL
	)
`

const connectTimeout = 10 * time.Second

type Postgres struct {
	Pool *pgxpool.Pool
	Db   *sql.DB
}

// ConnString renders the settings as a postgres:// URL. User, password and
// database name are escaped, never spliced in raw.
func ConnString(cfg config.Database) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	if cfg.Password == "" {
		u.User = url.User(cfg.User)
	}
	return u.String()
}

// PoolConfig parses cfg into a pgxpool config with its pool limits applied.
func PoolConfig(cfg config.Database) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	return poolCfg, nil
}

// New connects the pool, verifies it with a ping, and creates the people
// table if it does not already exist.
func New(ctx context.Context, cfg config.Database) (*Postgres, error) {
	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		pool.Close()
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	return &Postgres{Pool: pool, Db: db}, nil
}

func (p *Postgres) Conn(ctx context.Context) (*sql.Conn, error) {
	return p.Db.Conn(ctx)
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

// Close closes the database/sql view first so its connections go back to
// the pool, then the pool itself.
func (p *Postgres) Close() error {
	err := p.Db.Close()
	p.Pool.Close()
	return err
}
