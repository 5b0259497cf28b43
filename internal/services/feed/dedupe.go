package feed

import "strings"

// Item is anything a feed can list: it needs a stable identity for dedupe
// and a text to match searches against.
type Item interface {
	Identity() string
	SearchText() string
}

// Dedupe drops items whose identity was already seen, keeping the first
// occurrence and the input order. Items with an empty identity are
// dropped.
func Dedupe[T Item](items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		id := it.Identity()
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Merge appends incoming after existing and dedupes the result, so an
// existing item wins over a later copy with the same identity. Neither
// input is modified.
func Merge[T Item](existing, incoming []T) []T {
	all := make([]T, 0, len(existing)+len(incoming))
	all = append(all, existing...)
	all = append(all, incoming...)
	return Dedupe(all)
}

// Filter keeps the items whose search text contains query, ignoring case.
func Filter[T Item](items []T, query string) []T {
	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.SearchText()), q) {
			out = append(out, it)
		}
	}
	return out
}
