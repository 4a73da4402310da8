// Package shadow finds rows whose declared unique key collides with a
// stored key or with another row of the same batch. Such rows are not
// rejected, they are diverted into a shadow table.
package shadow

// Colliding returns the set of colliding keys: every stored key present in
// the batch and every key that appears more than once in the batch. Empty
// keys never collide.
func Colliding(keys []string, existing map[string]bool) map[string]bool {
	res := make(map[string]bool)
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if existing[k] || seen[k] {
			res[k] = true
		}
		seen[k] = true
	}
	return res
}

// Split holds rows of a batch partitioned by key collision, both in input
// order.
type Split[T any] struct {
	Primary []T
	Shadow  []T
}

// Partition divides rows into primary rows and shadow rows. A row goes to
// the shadow side when its key is stored already or when an earlier row of
// the batch declared the same key. The first row declaring a new key stays
// primary, so the canonical table receives each new key once.
func Partition[T any](
	rows []T,
	key func(T) string,
	existing map[string]bool,
) Split[T] {
	var res Split[T]
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		k := key(r)
		if k != "" && (existing[k] || seen[k]) {
			res.Shadow = append(res.Shadow, r)
			continue
		}
		seen[k] = true
		res.Primary = append(res.Primary, r)
	}
	return res
}
