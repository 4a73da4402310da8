package ioingest

import (
	"errors"
	"fmt"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
)

// ValidationError wraps the report of a rejected batch. Nothing was
// written.
func ValidationError(rep *batch.Report) error {
	msg := "The <em>%s</em> batch has %d validation error(s), nothing was saved"
	vars := []any{rep.Kind, len(rep.Errors)}
	return &gn.Error{
		Code: errcode.IngestValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("validate %s batch: %w", rep.Kind, rep),
	}
}

// ValidationReport extracts the validation report from err.
func ValidationReport(err error) (*batch.Report, bool) {
	var rep *batch.Report
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		err = gnErr.Err
	}
	if errors.As(err, &rep) {
		return rep, true
	}
	return nil, false
}

func KindError(k batch.Kind) error {
	msg := "Unknown batch kind <em>%s</em>"
	vars := []any{k}
	return &gn.Error{
		Code: errcode.IngestValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown batch kind %q", k),
	}
}

func GroupNotFoundError(id int64) error {
	msg := "Data group <em>%d</em> does not exist"
	vars := []any{id}
	return &gn.Error{
		Code: errcode.IngestGroupNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("data group %d not found", id),
	}
}

func DomainError(groupType string, err error) error {
	msg := "Group type <em>%s</em> does not support extraction uploads"
	vars := []any{groupType}
	return &gn.Error{
		Code: errcode.IngestUnsupportedDomainError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("group type %s: %w", groupType, err),
	}
}

// StorageError means the transaction of the batch was rolled back.
func StorageError(kind batch.Kind, stage string, err error) error {
	msg := "Cannot save <em>%s</em> batch (%s), all changes were rolled back"
	vars := []any{kind, stage}
	return &gn.Error{
		Code: errcode.IngestStorageError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("store %s batch, %s: %w", kind, stage, err),
	}
}

// ResolveError is returned when a staged lookup entity cannot be found
// after it was written.
func ResolveError(entity string, keys []string) error {
	msg := "Cannot resolve %d new %s"
	vars := []any{len(keys), entity}
	return &gn.Error{
		Code: errcode.IngestResolveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s not found after insert: %v", entity, keys),
	}
}

// wrapStorage turns a raw database error into StorageError and keeps
// errors that are already classified.
func wrapStorage(kind batch.Kind, stage string, err error) error {
	if err == nil {
		return nil
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return err
	}
	return StorageError(kind, stage, err)
}
