package config

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// NewPostgresDB opens the connection pool backing every repository. Pool
// sizing is configurable because the public catalog endpoints and the admin
// panel share one database; DB_CONN_LIFETIME keeps connections from outliving
// a pgbouncer or failover in front of Postgres.
func NewPostgresDB(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnLifetime)

	return db, nil
}
