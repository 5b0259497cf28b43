package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	ID, Name string
	Version  int
}

func (r rec) Identity() string   { return r.ID }
func (r rec) SearchText() string { return r.Name }

func ids(items []rec) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	in := []rec{
		{ID: "a", Version: 1},
		{ID: "b", Version: 1},
		{ID: "a", Version: 2},
		{ID: "c", Version: 1},
		{ID: "b", Version: 2},
	}

	out := Dedupe(in)

	assert.Equal(t, []string{"a", "b", "c"}, ids(out))
	for _, it := range out {
		assert.Equal(t, 1, it.Version, "id %s should keep its first instance", it.ID)
	}
}

func TestDedupeDropsEmptyIDs(t *testing.T) {
	out := Dedupe([]rec{{ID: ""}, {ID: "a"}, {ID: ""}})
	assert.Equal(t, []string{"a"}, ids(out))
}

func TestDedupeIdempotent(t *testing.T) {
	inputs := [][]rec{
		nil,
		{},
		{{ID: "x"}},
		{{ID: "x"}, {ID: "x"}, {ID: "y"}, {ID: ""}, {ID: "z"}, {ID: "y"}},
	}
	for _, in := range inputs {
		once := Dedupe(in)
		assert.Equal(t, once, Dedupe(once))
		assert.NotNil(t, once)
	}
}

func TestDedupeDoesNotModifyInput(t *testing.T) {
	in := []rec{{ID: "a"}, {ID: "a"}, {ID: "b"}}
	_ = Dedupe(in)
	assert.Equal(t, []string{"a", "a", "b"}, ids(in))
}

func TestMergeExistingWins(t *testing.T) {
	existing := []rec{{ID: "a", Version: 1}, {ID: "b", Version: 1}}
	incoming := []rec{{ID: "b", Version: 2}, {ID: "c", Version: 2}}

	merged := Merge(existing, incoming)

	assert.Equal(t, []string{"a", "b", "c"}, ids(merged))
	assert.Equal(t, 1, merged[1].Version)
	assert.Len(t, existing, 2)
}

func TestMergeDoesNotAliasExisting(t *testing.T) {
	existing := make([]rec, 1, 4)
	existing[0] = rec{ID: "a"}

	merged := Merge(existing, []rec{{ID: "b"}})
	merged[0].Name = "changed"

	assert.Empty(t, existing[0].Name)
}

func TestFilterCaseInsensitive(t *testing.T) {
	items := []rec{{ID: "1", Name: "Falcon 9"}, {ID: "2", Name: "Starship"}, {ID: "3", Name: "Falcon Heavy"}}

	assert.Equal(t, []string{"1", "3"}, ids(Filter(items, "FALCON")))
	assert.Equal(t, []string{"2"}, ids(Filter(items, "ship")))
	assert.Empty(t, Filter(items, "xyz-no-match"))
}
