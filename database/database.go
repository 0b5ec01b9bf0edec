// Copyright (C) 2025 depsec GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// getDSN builds a PostgreSQL connection string from parameters
func getDSN(host, user, password, dbname, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
}

func NewConnection(host, user, password, dbname, port string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(getDSN(host, user, password, dbname, port)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	return db, nil
}

func NewPgxConnPool(cfg PoolConfig) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(getDSN(cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port))
	if err != nil {
		panic("could not parse pgx pool config")
	}
	config.MaxConnIdleTime = cfg.ConnMaxIdleTime
	config.MaxConnLifetime = cfg.ConnMaxLifetime
	config.MaxConns = cfg.MaxOpenConns
	config.MinConns = cfg.MinConns

	ctx := context.Background()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		panic(fmt.Sprintf("could not create pgx pool: %s", err))
	}

	slog.Info("database connection pool configured",
		"maxOpenConns", cfg.MaxOpenConns,
		"connMaxLifetime", cfg.ConnMaxLifetime,
		"connMaxIdleTime", cfg.ConnMaxIdleTime,
	)

	return pool
}

// NewGormDB creates a GORM instance using an existing *pgxpool.Pool
func NewGormDB(existingPool *pgxpool.Pool) *gorm.DB {
	db := stdlib.OpenDBFromPool(existingPool)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		panic(err)
	}

	return gormDB
}

// IsDuplicateKeyError reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
