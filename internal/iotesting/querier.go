package iotesting

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Call is a statement received by Querier.
type Call struct {
	SQL  string
	Args []any
}

// Responder returns rows for a query. Returning nil gives an empty
// result.
type Responder func(sql string, args []any) ([][]any, error)

// Querier is a recording db.Querier for unit tests. Query and QueryRow
// answer with Respond, Exec succeeds unless ExecErr is set, CopyFrom
// stores rows in Copied.
type Querier struct {
	mu sync.Mutex

	Calls   []Call
	Copied  map[string][][]any
	Respond Responder
	ExecErr error
}

// NewQuerier creates a Querier answering queries with r.
func NewQuerier(r Responder) *Querier {
	return &Querier{Respond: r, Copied: make(map[string][][]any)}
}

func (q *Querier) record(sql string, args []any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Calls = append(q.Calls, Call{SQL: sql, Args: args})
}

// Statements returns recorded SQL starting with prefix.
func (q *Querier) Statements(prefix string) []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	var res []Call
	for _, c := range q.Calls {
		if strings.HasPrefix(strings.TrimSpace(c.SQL), prefix) {
			res = append(res, c)
		}
	}
	return res
}

func (q *Querier) Exec(
	_ context.Context,
	sql string,
	args ...any,
) (pgconn.CommandTag, error) {
	q.record(sql, args)
	if q.ExecErr != nil {
		return pgconn.CommandTag{}, q.ExecErr
	}
	return pgconn.NewCommandTag("OK 1"), nil
}

func (q *Querier) Query(
	_ context.Context,
	sql string,
	args ...any,
) (pgx.Rows, error) {
	q.record(sql, args)
	if q.Respond == nil {
		return &Rows{}, nil
	}
	data, err := q.Respond(sql, args)
	if err != nil {
		return nil, err
	}
	return &Rows{data: data}, nil
}

func (q *Querier) QueryRow(
	_ context.Context,
	sql string,
	args ...any,
) pgx.Row {
	q.record(sql, args)
	if q.Respond == nil {
		return &row{err: pgx.ErrNoRows}
	}
	data, err := q.Respond(sql, args)
	if err != nil {
		return &row{err: err}
	}
	if len(data) == 0 {
		return &row{err: pgx.ErrNoRows}
	}
	return &row{vals: data[0]}
}

func (q *Querier) CopyFrom(
	_ context.Context,
	tableName pgx.Identifier,
	columnNames []string,
	rowSrc pgx.CopyFromSource,
) (int64, error) {
	name := strings.Join(tableName, ".")
	q.record("COPY "+name+" ("+strings.Join(columnNames, ", ")+")", nil)

	var n int64
	for rowSrc.Next() {
		vals, err := rowSrc.Values()
		if err != nil {
			return n, err
		}
		q.mu.Lock()
		q.Copied[name] = append(q.Copied[name], vals)
		q.mu.Unlock()
		n++
	}
	return n, rowSrc.Err()
}

// Rows is an in-memory pgx.Rows.
type Rows struct {
	data [][]any
	i    int
	err  error
}

func (r *Rows) Close()                                       {}
func (r *Rows) Err() error                                   { return r.err }
func (r *Rows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) RawValues() [][]byte                          { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

func (r *Rows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *Rows) Values() ([]any, error) {
	return r.data[r.i-1], nil
}

func (r *Rows) Scan(dest ...any) error {
	return scan(r.data[r.i-1], dest)
}

type row struct {
	vals []any
	err  error
}

func (r *row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scan(r.vals, dest)
}

func scan(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("scan %d values into %d targets", len(vals), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("scan target %d is not a pointer", i)
		}
		el := dv.Elem()
		if vals[i] == nil {
			el.Set(reflect.Zero(el.Type()))
			continue
		}
		v := reflect.ValueOf(vals[i])
		switch {
		case v.Type().AssignableTo(el.Type()):
			el.Set(v)
		case el.Kind() == reflect.Pointer && v.Type().AssignableTo(el.Type().Elem()):
			p := reflect.New(el.Type().Elem())
			p.Elem().Set(v)
			el.Set(p)
		case v.Type().ConvertibleTo(el.Type()):
			el.Set(v.Convert(el.Type()))
		default:
			return fmt.Errorf("cannot scan %T into %s", vals[i], el.Type())
		}
	}
	return nil
}
