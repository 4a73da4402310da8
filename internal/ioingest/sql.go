package ioingest

import (
	"fmt"
	"strings"
)

// valuesSQL builds a VALUES list of n rows. Every placeholder carries the
// cast of its column, numbering starts after offset.
func valuesSQL(n int, casts []string, offset int) string {
	var b strings.Builder
	b.WriteString("VALUES ")
	width := len(casts)
	cells := make([]string, width)
	for i := range n {
		if i > 0 {
			b.WriteString(", ")
		}
		for j, c := range casts {
			cells[j] = fmt.Sprintf("$%d::%s", offset+i*width+j+1, c)
		}
		b.WriteString("(" + strings.Join(cells, ", ") + ")")
	}
	return b.String()
}

// updateFromSQL builds a bulk UPDATE joined to a VALUES list. The first
// column of cols is matched against key, set lists assignments.
func updateFromSQL(
	table, key string,
	cols, casts []string,
	set string,
	n, offset int,
) string {
	return fmt.Sprintf(
		"UPDATE %s AS t SET %s FROM (%s) AS v(%s) WHERE t.%s = v.%s",
		table, set, valuesSQL(n, casts, offset),
		strings.Join(cols, ", "), key, cols[0],
	)
}

// upsertSQL inserts rows into a subtype table and updates a stored row
// only when one of its columns changed.
func upsertSQL(table, key string, cols []string, n int) string {
	all := append([]string{key}, cols...)

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) ", table, strings.Join(all, ", "))
	placeholders := make([]string, len(all))
	b.WriteString("VALUES ")
	for i := range n {
		if i > 0 {
			b.WriteString(", ")
		}
		for j := range all {
			placeholders[j] = fmt.Sprintf("$%d", i*len(all)+j+1)
		}
		b.WriteString("(" + strings.Join(placeholders, ", ") + ")")
	}
	fmt.Fprintf(&b, " ON CONFLICT (%s) DO ", key)
	if len(cols) == 0 {
		b.WriteString("NOTHING")
		return b.String()
	}

	set := make([]string, len(cols))
	stored := make([]string, len(cols))
	excluded := make([]string, len(cols))
	for i, c := range cols {
		set[i] = c + " = EXCLUDED." + c
		stored[i] = table + "." + c
		excluded[i] = "EXCLUDED." + c
	}
	fmt.Fprintf(&b, "UPDATE SET %s WHERE (%s) IS DISTINCT FROM (%s)",
		strings.Join(set, ", "),
		strings.Join(stored, ", "),
		strings.Join(excluded, ", "),
	)
	return b.String()
}

func flatten(rows [][]any) []any {
	var res []any
	for _, r := range rows {
		res = append(res, r...)
	}
	return res
}
