package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openGORM wraps the pgx pool into a GORM session.
func openGORM(ctx context.Context, pool *pgxpool.Pool) (*gorm.DB, error) {
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB.WithContext(ctx), nil
}

// gormConfig keeps GORM quiet, schema progress is reported by the caller.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}
