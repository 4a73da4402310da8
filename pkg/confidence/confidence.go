// Package confidence decides which classification assignment of a subject
// is canonical.
//
// The assignment whose method has the lowest rank wins. Ties are broken by
// keeping the current canonical assignment, then by the earliest creation
// time, then by the lowest id.
package confidence

import (
	"slices"
	"time"
)

// Assignment is a classification assignment of a subject with the rank of
// its method.
type Assignment struct {
	ID        int64
	SubjectID int64
	Rank      int
	Canonical bool
	CreatedAt time.Time
}

// better reports whether a should win over b.
func better(a, b Assignment) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	if a.Canonical != b.Canonical {
		return a.Canonical
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Winner returns the canonical assignment among assignments of one
// subject. It returns false for an empty slice.
func Winner(as []Assignment) (Assignment, bool) {
	if len(as) == 0 {
		return Assignment{}, false
	}
	res := as[0]
	for _, a := range as[1:] {
		if better(a, res) {
			res = a
		}
	}
	return res, true
}

// Recompute returns a copy of assignments of one subject with Canonical
// set on the winner only.
func Recompute(as []Assignment) []Assignment {
	res := slices.Clone(as)
	w, ok := Winner(res)
	if !ok {
		return res
	}
	for i := range res {
		res[i].Canonical = res[i].ID == w.ID
	}
	return res
}

// Winners groups assignments by subject and returns ids of the winning
// assignments sorted ascending.
func Winners(as []Assignment) []int64 {
	bySubject := make(map[int64][]Assignment)
	for _, a := range as {
		bySubject[a.SubjectID] = append(bySubject[a.SubjectID], a)
	}
	res := make([]int64, 0, len(bySubject))
	for _, group := range bySubject {
		if w, ok := Winner(group); ok {
			res = append(res, w.ID)
		}
	}
	slices.Sort(res)
	return res
}
