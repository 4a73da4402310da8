package confidence_test

import (
	"testing"
	"time"

	"github.com/chemexpo/factodb/pkg/confidence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(h int) time.Time {
	return t0.Add(time.Duration(h) * time.Hour)
}

func TestWinner(t *testing.T) {
	tests := []struct {
		msg  string
		as   []confidence.Assignment
		want int64
	}{
		{"single", []confidence.Assignment{{ID: 1, Rank: 5}}, 1},
		{"lowest rank", []confidence.Assignment{
			{ID: 1, Rank: 4, Canonical: true, CreatedAt: at(0)},
			{ID: 2, Rank: 1, CreatedAt: at(1)},
			{ID: 3, Rank: 3, CreatedAt: at(2)},
		}, 2},
		{"tie keeps canonical", []confidence.Assignment{
			{ID: 1, Rank: 1, CreatedAt: at(0)},
			{ID: 2, Rank: 1, Canonical: true, CreatedAt: at(1)},
		}, 2},
		{"tie earliest", []confidence.Assignment{
			{ID: 1, Rank: 2, CreatedAt: at(3)},
			{ID: 2, Rank: 2, CreatedAt: at(1)},
			{ID: 3, Rank: 5, Canonical: true, CreatedAt: at(0)},
		}, 2},
		{"tie lowest id", []confidence.Assignment{
			{ID: 7, Rank: 2, CreatedAt: at(1)},
			{ID: 4, Rank: 2, CreatedAt: at(1)},
		}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			w, ok := confidence.Winner(tt.as)
			require.True(t, ok)
			assert.Equal(t, tt.want, w.ID)
		})
	}

	_, ok := confidence.Winner(nil)
	assert.False(t, ok)
}

func TestRecompute(t *testing.T) {
	// a lower-confidence assignment leaves the canonical flag in place
	as := []confidence.Assignment{
		{ID: 1, Rank: 1, Canonical: true, CreatedAt: at(0)},
		{ID: 2, Rank: 5, CreatedAt: at(1)},
	}
	res := confidence.Recompute(as)
	assert.True(t, res[0].Canonical)
	assert.False(t, res[1].Canonical)

	// removing the canonical assignment promotes the next best one
	res = confidence.Recompute([]confidence.Assignment{
		{ID: 2, Rank: 5, CreatedAt: at(1)},
		{ID: 3, Rank: 3, CreatedAt: at(2)},
	})
	assert.False(t, res[0].Canonical)
	assert.True(t, res[1].Canonical)

	// exactly one canonical flag
	res = confidence.Recompute([]confidence.Assignment{
		{ID: 1, Rank: 2, Canonical: true},
		{ID: 2, Rank: 2, Canonical: true},
		{ID: 3, Rank: 2},
	})
	var n int
	for _, a := range res {
		if a.Canonical {
			n++
		}
	}
	assert.Equal(t, 1, n)
	assert.True(t, res[0].Canonical)

	// input is not modified
	assert.True(t, as[0].Canonical)
	assert.Empty(t, confidence.Recompute(nil))
}

func TestWinners(t *testing.T) {
	as := []confidence.Assignment{
		{ID: 10, SubjectID: 1, Rank: 4},
		{ID: 11, SubjectID: 1, Rank: 1},
		{ID: 12, SubjectID: 2, Rank: 5},
		{ID: 13, SubjectID: 3, Rank: 3, CreatedAt: at(2)},
		{ID: 14, SubjectID: 3, Rank: 3, CreatedAt: at(1)},
	}
	assert.Equal(t, []int64{11, 12, 14}, confidence.Winners(as))
}
