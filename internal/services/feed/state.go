package feed

import (
	"fmt"
	"slices"

	"launchlist/internal/domain/page"
)

// Status is what the controller is busy with. Only one operation runs at a
// time, so the loading flags derived from it are mutually exclusive.
type Status int

const (
	StatusIdle Status = iota
	StatusLoadingInitial
	StatusLoadingMore
	StatusRefreshing
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoadingInitial:
		return "loading_initial"
	case StatusLoadingMore:
		return "loading_more"
	case StatusRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for _, st := range []Status{StatusIdle, StatusLoadingInitial, StatusLoadingMore, StatusRefreshing} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("feed: unknown status %q", b)
}

// State is a point-in-time copy of a controller's list.
type State[T Item] struct {
	Items       []T
	Pagination  page.Pagination
	SearchQuery string
	Status      Status
	// InFlight is true from the moment a page request is issued until its
	// response has been applied or dropped.
	InFlight bool
}

func (s State[T]) InitialLoading() bool { return s.Status == StatusLoadingInitial }
func (s State[T]) Refreshing() bool     { return s.Status == StatusRefreshing }
func (s State[T]) LoadingMore() bool    { return s.Status == StatusLoadingMore }
func (s State[T]) HasNextPage() bool    { return s.Pagination.HasNextPage }

// clone returns a copy that shares no mutable memory with s.
func (s State[T]) clone() State[T] {
	out := s
	out.Items = slices.Clone(s.Items)
	if out.Items == nil {
		out.Items = []T{}
	}
	out.Pagination.Sort = slices.Clone(s.Pagination.Sort)
	if s.Pagination.NextPage != nil {
		n := *s.Pagination.NextPage
		out.Pagination.NextPage = &n
	}
	return out
}
