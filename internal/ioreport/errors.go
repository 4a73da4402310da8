package ioreport

import (
	"fmt"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
)

func FormatError(s string) error {
	msg := "Unknown report format <em>%s</em>, use json or yaml"
	vars := []any{s}
	return &gn.Error{
		Code: errcode.ReportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown report format %q", s),
	}
}

func EncodeError(f Format, err error) error {
	msg := "Cannot render report as <em>%s</em>"
	vars := []any{f}
	return &gn.Error{
		Code: errcode.ReportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("encode report %s: %w", f, err),
	}
}
