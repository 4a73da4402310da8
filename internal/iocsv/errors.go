package iocsv

import (
	"fmt"
	"runtime"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
)

func ReadError(source string, err error) error {
	msg := "Cannot read CSV data from <em>%s</em>"
	vars := []any{source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CSVReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse CSV %s: %w",
			fn.Name(), source, err),
	}
}

func EmptyError(source string) error {
	msg := "The file <em>%s</em> is empty, it needs a header line"
	vars := []any{source}
	return &gn.Error{
		Code: errcode.CSVEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("empty CSV %s", source),
	}
}
