package shadow_test

import (
	"testing"

	"github.com/chemexpo/factodb/pkg/shadow"
	"github.com/stretchr/testify/assert"
)

func TestColliding(t *testing.T) {
	tests := []struct {
		msg      string
		keys     []string
		existing map[string]bool
		want     map[string]bool
	}{
		{"none", []string{"a", "b"}, nil, map[string]bool{}},
		{"stored", []string{"a", "b"}, map[string]bool{"b": true, "z": true},
			map[string]bool{"b": true}},
		{"repeated", []string{"a", "b", "a"}, nil, map[string]bool{"a": true}},
		{"empty keys", []string{"", "", "c"}, map[string]bool{"": true},
			map[string]bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, shadow.Colliding(tt.keys, tt.existing))
		})
	}
}

type product struct {
	doc int64
	upc string
}

func TestPartition(t *testing.T) {
	rows := []product{
		{1, "110230011425"},
		{2, "110230011425"},
		{3, "777"},
		{4, ""},
		{5, "888"},
		{6, ""},
	}
	split := shadow.Partition(rows,
		func(p product) string { return p.upc },
		map[string]bool{"888": true},
	)

	assert.Equal(t, []product{
		{1, "110230011425"}, {3, "777"}, {4, ""}, {6, ""},
	}, split.Primary)
	assert.Equal(t, []product{{2, "110230011425"}, {5, "888"}}, split.Shadow)
	assert.Equal(t, len(rows), len(split.Primary)+len(split.Shadow))
}
