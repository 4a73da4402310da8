// Package resolve maps references of batch rows to canonical lookup
// entities addressed by a natural key. Resolution is in-memory. It stages
// new and changed entities so that many rows referring to one key share a
// single entity, and hands the staged writes over as a Plan.
package resolve

// Outcome of resolving one reference.
type Outcome int

const (
	// None means the reference had no key.
	None Outcome = iota
	// Existing is a stored entity with identical attributes.
	Existing
	// ToUpdate is a stored entity whose attributes will be updated.
	ToUpdate
	// Staged is an entity already staged by an earlier row of the batch.
	Staged
	// Created is an entity that will be created.
	Created
)

var outcomeNames = map[Outcome]string{
	None:     "none",
	Existing: "existing",
	ToUpdate: "to-update",
	Staged:   "staged",
	Created:  "new",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// Ref is a resolved reference. Entity is shared by every row resolved to
// the same key and is nil for None.
type Ref[E any] struct {
	Outcome Outcome
	Entity  *E
}

// Plan lists staged writes. New entities are in order of their first
// reference.
type Plan[E any] struct {
	New    []*E
	Update []*E
}

// Resolver resolves references to entities of type E with natural key K.
// A Resolver holds the staging state of one batch and must not be shared
// between batches.
type Resolver[K comparable, E any] struct {
	key    func(*E) K
	equal  func(stored, proposed *E) bool
	update func(stored, proposed *E)

	stored  map[K]*E
	updated map[K]bool
	staged  map[K]*E
	plan    Plan[E]
}

// New creates a Resolver over stored entities. The key function returns
// the natural key, equal compares descriptive attributes and update copies
// descriptive attributes of a proposed entity into a stored one.
func New[K comparable, E any](
	stored []*E,
	key func(*E) K,
	equal func(stored, proposed *E) bool,
	update func(stored, proposed *E),
) *Resolver[K, E] {
	res := &Resolver[K, E]{
		key:     key,
		equal:   equal,
		update:  update,
		stored:  make(map[K]*E, len(stored)),
		updated: make(map[K]bool),
		staged:  make(map[K]*E),
	}
	for _, e := range stored {
		res.stored[key(e)] = e
	}
	return res
}

// Resolve resolves a proposed entity. A stored key is compared with the
// stored entity on every reference, so a later row can still correct it,
// and the last correction wins. For a new key the first row decides and
// later rows share its staged entity.
func (r *Resolver[K, E]) Resolve(proposed *E, hasKey bool) Ref[E] {
	if !hasKey || proposed == nil {
		return Ref[E]{Outcome: None}
	}
	k := r.key(proposed)

	if stored, ok := r.stored[k]; ok {
		if r.equal(stored, proposed) {
			return Ref[E]{Outcome: Existing, Entity: stored}
		}
		r.update(stored, proposed)
		if !r.updated[k] {
			r.updated[k] = true
			r.plan.Update = append(r.plan.Update, stored)
		}
		return Ref[E]{Outcome: ToUpdate, Entity: stored}
	}

	if e, ok := r.staged[k]; ok {
		return Ref[E]{Outcome: Staged, Entity: e}
	}
	r.staged[k] = proposed
	r.plan.New = append(r.plan.New, proposed)
	return Ref[E]{Outcome: Created, Entity: proposed}
}

// Plan returns entities to create and to update.
func (r *Resolver[K, E]) Plan() Plan[E] {
	return r.plan
}

// Keys returns natural keys of a plan's new entities, used to fetch their
// identities after the bulk insert.
func Keys[K comparable, E any](r *Resolver[K, E], es []*E) []K {
	res := make([]K, len(es))
	for i, e := range es {
		res[i] = r.key(e)
	}
	return res
}
