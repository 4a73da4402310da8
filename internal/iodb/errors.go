package iodb

import (
	"fmt"
	"runtime"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
)

func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database <em>%s</em> at <em>%s:%d</em> as <em>%s</em>.
Check that PostgreSQL is running and review <em>~/.config/factodb/config.yaml</em>
or FACTODB_DATABASE_* environment variables for database <em>%s</em>.`
	vars := []any{database, host, port, user, database}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err),
	}
}

func NotConnectedError() error {
	msg := "Database is not connected"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: database is not connected", fn.Name()),
	}
}

func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot check table %s: %w",
			fn.Name(), table, err),
	}
}

func TableCheckError(err error) error {
	msg := "Could not verify database state"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: failed to check database tables: %w",
			fn.Name(), err),
	}
}

func QueryTablesError(err error) error {
	msg := "Cannot get the list of database tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot query tables: %w", fn.Name(), err),
	}
}

func ScanTableError(err error) error {
	msg := "Cannot read the list of database tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot scan table name: %w", fn.Name(), err),
	}
}

func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot drop table %s: %w",
			fn.Name(), table, err),
	}
}

func TransactionError(stage string, err error) error {
	msg := "Database transaction failed at <em>%s</em>"
	vars := []any{stage}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTransactionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: transaction %s failed: %w",
			fn.Name(), stage, err),
	}
}
