// Package iochain stores chain records: every record is one row in each
// table of its chain, and all rows of a record share one identity.
package iochain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chemexpo/factodb/pkg/chain"
	"github.com/chemexpo/factodb/pkg/config"
	"github.com/chemexpo/factodb/pkg/db"
)

// Writer inserts chain records with one multi-row statement per table,
// root table first.
type Writer struct {
	identityMode string
}

// NewWriter creates a Writer. identityMode selects how identities are
// assigned when the database generates them, see config.IdentityReserve
// and config.IdentityContiguous.
func NewWriter(identityMode string) *Writer {
	if identityMode != config.IdentityContiguous {
		identityMode = config.IdentityReserve
	}
	return &Writer{identityMode: identityMode}
}

// Write stores recs using q, normally a transaction. Records without
// identities get them assigned before Write returns. Nothing is sent to
// the database when records do not share one chain, mix supplied and
// missing identities or exceed the statement parameter limit.
func (w *Writer) Write(
	ctx context.Context,
	q db.Querier,
	recs []chain.Record,
) error {
	if len(recs) == 0 {
		return nil
	}

	l, err := chain.NewLayout(recs)
	if err != nil {
		return IdentityError(err)
	}
	if n := l.Params(len(recs)); n > chain.MaxParams {
		return WriteError(l.Root(),
			fmt.Errorf("%w: %d > %d", chain.ErrTooManyParams, n, chain.MaxParams))
	}

	start := 0
	if l.Generated {
		switch w.identityMode {
		case config.IdentityContiguous:
			if err = w.insertRoot(ctx, q, l, recs); err != nil {
				return err
			}
			start = 1
		default:
			if err = w.reserve(ctx, q, l, recs); err != nil {
				return err
			}
		}
	}

	for i := start; i < len(l.Tables); i++ {
		rows := make([][]any, len(recs))
		for j, r := range recs {
			p := r.Parts()[i]
			rows[j] = append([]any{r.ID()}, p.Values...)
		}
		cols := append([]string{l.Keys[i]}, l.Columns[i]...)
		sql := insertSQL(l.Tables[i], cols, len(rows), "")
		if _, err = q.Exec(ctx, sql, flatten(rows)...); err != nil {
			return WriteError(l.Tables[i], err)
		}
	}

	slog.Debug("Chain records written",
		"root", l.Root(), "tables", len(l.Tables), "records", len(recs))
	return nil
}

// reserve takes len(recs) values from the sequence of the root key and
// assigns them to records.
func (w *Writer) reserve(
	ctx context.Context,
	q db.Querier,
	l chain.Layout,
	recs []chain.Record,
) error {
	var ids []int64
	err := q.QueryRow(ctx, reserveSQL, l.Root(), l.Keys[0], len(recs)).Scan(&ids)
	if err != nil {
		return WriteError(l.Root(), err)
	}
	if len(ids) != len(recs) {
		return WriteError(l.Root(),
			fmt.Errorf("reserved %d identities for %d records", len(ids), len(recs)))
	}
	for i, r := range recs {
		r.SetID(ids[i])
	}
	return nil
}

const reserveSQL = `SELECT array_agg(nextval(pg_get_serial_sequence($1, $2)))
  FROM generate_series(1, $3)`

// insertRoot inserts root rows without keys and assigns the generated
// identities in input order. The assignment is valid only if the
// identities form one range without gaps, which is verified.
func (w *Writer) insertRoot(
	ctx context.Context,
	q db.Querier,
	l chain.Layout,
	recs []chain.Record,
) error {
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = r.Parts()[0].Values
	}
	ins := insertSQL(l.Root(), l.Columns[0], len(rows), l.Keys[0])
	sql := fmt.Sprintf(
		"WITH ins AS (%s) SELECT min(%s), max(%s), count(*) FROM ins",
		ins, l.Keys[0], l.Keys[0],
	)

	var first, last, count int64
	err := q.QueryRow(ctx, sql, flatten(rows)...).Scan(&first, &last, &count)
	if err != nil {
		return WriteError(l.Root(), err)
	}
	if err = checkRange(first, last, count, len(recs)); err != nil {
		return IdentityError(err)
	}
	for i, r := range recs {
		r.SetID(first + int64(i))
	}
	return nil
}

func checkRange(first, last, count int64, n int) error {
	if count != int64(n) || last-first+1 != count {
		return fmt.Errorf("%w: ids %d..%d for %d rows",
			chain.ErrNonContiguous, first, last, n)
	}
	return nil
}

// insertSQL builds a multi-row INSERT. With a non-empty returning
// column the statement returns it.
func insertSQL(table string, cols []string, n int, returning string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(cols, ", "))

	width := len(cols)
	placeholders := make([]string, width)
	for i := range n {
		if i > 0 {
			b.WriteString(", ")
		}
		for j := range width {
			placeholders[j] = fmt.Sprintf("$%d", i*width+j+1)
		}
		b.WriteString("(" + strings.Join(placeholders, ", ") + ")")
	}

	if returning != "" {
		b.WriteString(" RETURNING " + returning)
	}
	return b.String()
}

func flatten(rows [][]any) []any {
	var res []any
	for _, r := range rows {
		res = append(res, r...)
	}
	return res
}
