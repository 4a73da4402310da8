package iochain

import (
	"fmt"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
)

// WriteError is returned when rows of a chain table cannot be stored.
func WriteError(table string, err error) error {
	msg := "Cannot store records in <em>%s</em>, the batch was rolled back"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.ChainWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("write %s: %w", table, err),
	}
}

// IdentityError is returned when records do not agree on their chain or
// their identities cannot be assigned safely.
func IdentityError(err error) error {
	msg := "Cannot assign record identities: %s"
	vars := []any{err.Error()}
	return &gn.Error{
		Code: errcode.ChainIdentityError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("chain identity: %w", err),
	}
}
