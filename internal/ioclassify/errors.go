package ioclassify

import (
	"fmt"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
)

// ClassifyError is returned when classification storage fails. The
// transaction is rolled back.
func ClassifyError(stage string, err error) error {
	msg := "Cannot %s, classifications were not changed"
	vars := []any{stage}
	return &gn.Error{
		Code: errcode.ClassifyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("classify: %s: %w", stage, err),
	}
}

// MethodError is returned for an unknown classification method code.
func MethodError(method string) error {
	msg := "Unknown classification method <em>%s</em>"
	vars := []any{method}
	return &gn.Error{
		Code: errcode.ClassifyMethodError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown classification method %q", method),
	}
}
