// Package chain describes records stored across a chain of tables that
// share one identity key: a root table and an optional subtype table
// extending it. A record exposes its rows root first, the writer inserts
// them table by table and propagates the root identity down the chain.
package chain

import (
	"errors"
	"slices"
)

// MaxParams is the largest number of bind parameters PostgreSQL accepts in
// one statement.
const MaxParams = 65535

var (
	// ErrChainMismatch means records of one write produce different
	// table sequences or columns.
	ErrChainMismatch = errors.New("records produce different table chains")

	// ErrMixedIdentity means some records carry identities and some do
	// not.
	ErrMixedIdentity = errors.New("records mix supplied and generated identities")

	// ErrNonContiguous means a multi-row insert returned identities that
	// are not one ascending range.
	ErrNonContiguous = errors.New("generated identities are not contiguous")

	// ErrTooManyParams means a statement would exceed MaxParams.
	ErrTooManyParams = errors.New("too many statement parameters")
)

// Part is the row of one record in one table of the chain.
type Part struct {
	Table string

	// Key is the identity column. For the root it is the primary key, for
	// subtypes the column that references the root.
	Key string

	// Columns and Values exclude the key.
	Columns []string
	Values  []any
}

// Record is stored as one row in each table of its chain.
type Record interface {
	// ID returns the shared identity, zero when it is not assigned yet.
	ID() int64

	// SetID assigns the shared identity to every part of the record.
	SetID(int64)

	// Parts returns rows of the record, root first.
	Parts() []Part
}

// Layout is the common shape of records of one write.
type Layout struct {
	Tables  []string
	Keys    []string
	Columns [][]string

	// Generated is true when identities are assigned by the database.
	Generated bool
}

// Root returns the root table.
func (l Layout) Root() string {
	return l.Tables[0]
}

// NewLayout checks that all records share one chain and one identity
// mode.
func NewLayout(recs []Record) (Layout, error) {
	var res Layout
	if len(recs) == 0 {
		return res, nil
	}

	parts := recs[0].Parts()
	if len(parts) == 0 {
		return res, ErrChainMismatch
	}
	for _, p := range parts {
		res.Tables = append(res.Tables, p.Table)
		res.Keys = append(res.Keys, p.Key)
		res.Columns = append(res.Columns, p.Columns)
	}
	res.Generated = recs[0].ID() == 0

	for _, r := range recs[1:] {
		if (r.ID() == 0) != res.Generated {
			return res, ErrMixedIdentity
		}
		ps := r.Parts()
		if len(ps) != len(res.Tables) {
			return res, ErrChainMismatch
		}
		for i, p := range ps {
			if p.Table != res.Tables[i] || p.Key != res.Keys[i] ||
				!slices.Equal(p.Columns, res.Columns[i]) {
				return res, ErrChainMismatch
			}
		}
	}
	return res, nil
}

// Params returns the number of bind parameters of the largest statement
// when n records are written. Keys are counted for every table.
func (l Layout) Params(n int) int {
	var res int
	for _, cols := range l.Columns {
		res = max(res, (len(cols)+1)*n)
	}
	return res
}

// IDs returns identities of records in input order.
func IDs(recs []Record) []int64 {
	res := make([]int64, len(recs))
	for i, r := range recs {
		res[i] = r.ID()
	}
	return res
}
