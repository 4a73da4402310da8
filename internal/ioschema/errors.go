package ioschema

import (
	"fmt"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>How to fix:</em>
  1. Review migration compatibility
  2. Backup data before migration`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// SeedError is returned when classification methods or group types
// cannot be stored.
func SeedError(err error) error {
	msg := "Cannot seed reference data"

	return &gn.Error{
		Code: errcode.SchemaSeedError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to seed reference rows: %w", err),
	}
}
