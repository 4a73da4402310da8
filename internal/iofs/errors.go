package iofs

import (
	"fmt"
	"runtime"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create %s"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory: %w",
			fn.Name(), err),
	}
}

func CopyFileError(file string, err error) error {
	msg := "Cannot copy config file to %s"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot copy file: %w",
			fn.Name(), err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
		Msg:  msg,
		Vars: vars,
	}
}

func WriteFileError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
		Msg:  msg,
		Vars: vars,
	}
}

func ImagesReadError(dir string, err error) error {
	msg := "Cannot read product images from <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImagesReadError,
		Err:  fmt.Errorf("from %s: cannot read images %s: %w", fn.Name(), dir, err),
		Msg:  msg,
		Vars: vars,
	}
}
