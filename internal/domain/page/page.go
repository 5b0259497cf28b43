package page

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultLimit is the page size used when none is configured.
const DefaultLimit = 20

// Direction is a sort direction understood by the paginated query API.
type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

// SortField is one entry of an ordered sort.
type SortField struct {
	Field     string
	Direction Direction
}

// Sort is an ordered list of sort fields. It marshals as a JSON object
// with keys in declaration order.
type Sort []SortField

// DefaultSort orders launches newest first.
func DefaultSort() Sort {
	return Sort{{Field: "date_unix", Direction: Desc}}
}

func (s Sort) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Field)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", int(f.Direction))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a sort object keeping its key order.
func (s *Sort) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*s = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	if tok, err := dec.Token(); err != nil {
		return err
	} else if tok != json.Delim('{') {
		return fmt.Errorf("page: sort must be an object")
	}
	out := Sort{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		field, _ := tok.(string)
		var dir Direction
		if err := dec.Decode(&dir); err != nil {
			return fmt.Errorf("page: sort %q: %w", field, err)
		}
		out = append(out, SortField{Field: field, Direction: dir})
	}
	*s = out
	return nil
}

// Request asks for one page of a remote collection.
type Request struct {
	Page  int  `json:"page"`
	Limit int  `json:"limit"`
	Sort  Sort `json:"sort,omitempty"`
}

// Normalize applies the defaults: page 1, DefaultLimit, DefaultSort.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	if len(r.Sort) == 0 {
		r.Sort = DefaultSort()
	}
	return r
}

// Result is one page of items plus the cursor metadata needed to continue.
type Result[T any] struct {
	Items       []T
	Page        int
	TotalPages  int
	TotalDocs   int
	HasNextPage bool
	NextPage    *int
}

// Pagination is the cursor state a list keeps between pages.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Sort        Sort `json:"sort"`
	TotalPages  int  `json:"totalPages"`
	TotalDocs   int  `json:"totalDocs"`
	HasNextPage bool `json:"hasNextPage"`
	NextPage    *int `json:"nextPage"`
}

// Terminal is the empty pagination a list falls back to after a failed
// load: page 1, nothing more to fetch.
func Terminal(limit int) Pagination {
	if limit < 1 {
		limit = DefaultLimit
	}
	return Pagination{Page: 1, Limit: limit, Sort: DefaultSort()}
}

// Next returns the request for the page after p.
func (p Pagination) Next() Request {
	return Request{Page: p.Page + 1, Limit: p.Limit, Sort: p.Sort}.Normalize()
}

// FromResult replaces the cursor with the metadata of a fetched page,
// keeping the request's limit and sort.
func FromResult[T any](req Request, res Result[T]) Pagination {
	p := Pagination{
		Page:        res.Page,
		Limit:       req.Limit,
		Sort:        req.Sort,
		TotalPages:  res.TotalPages,
		TotalDocs:   res.TotalDocs,
		HasNextPage: res.HasNextPage,
		NextPage:    res.NextPage,
	}
	if !p.HasNextPage {
		p.NextPage = nil
	}
	return p
}
