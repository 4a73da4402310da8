package iolookup

import (
	"fmt"
	"runtime"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
)

func LookupError(what string, err error) error {
	msg := "Cannot look up stored <em>%s</em>"
	vars := []any{what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestLookupError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot look up %s: %w",
			fn.Name(), what, err),
	}
}
