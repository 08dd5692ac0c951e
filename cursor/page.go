package cursor

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Request selects a page. With neither First nor Last every remaining item
// between the cursors is returned.
type Request struct {
	First  *int
	After  *string
	Last   *int
	Before *string
}

type Edge[T any] struct {
	Node   T      `json:"node"   yaml:"node"`
	Cursor string `json:"cursor" yaml:"cursor"`
}

type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"     yaml:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage" yaml:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"     yaml:"startCursor"`
	EndCursor       *string `json:"endCursor"       yaml:"endCursor"`
}

type Page[T any] struct {
	Edges      []Edge[T] `json:"edges"      yaml:"edges"`
	PageInfo   PageInfo  `json:"pageInfo"   yaml:"pageInfo"`
	TotalCount int       `json:"totalCount" yaml:"totalCount"`
}

// Nodes returns the items of the page in order.
func (p *Page[T]) Nodes() []T {
	return lo.Map(p.Edges, func(e Edge[T], _ int) T { return e.Node })
}

func (r *Request) validate() error {
	if r.First != nil && *r.First < 0 {
		return errors.New("invalid pagination: first must be non-negative")
	}
	if r.Last != nil && *r.Last < 0 {
		return errors.New("invalid pagination: last must be non-negative")
	}
	if r.First != nil && r.Last != nil {
		return errors.New("invalid pagination: first and last cannot be combined")
	}
	return nil
}

// Paginate slices an ordered list. Cursors are offsets into items, so they
// stay valid as long as the list is rebuilt in the same order.
func Paginate[T any](items []T, req *Request, codec Codec) (*Page[T], error) {
	if req == nil {
		req = &Request{}
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	total := len(items)
	start, end := 0, total
	if req.After != nil {
		after, err := codec.Decode(*req.After)
		if err != nil {
			return nil, errors.Wrap(err, "invalid after cursor")
		}
		if after >= total {
			return nil, errors.Errorf("invalid after cursor: offset %d is out of range", after)
		}
		start = after + 1
	}
	if req.Before != nil {
		before, err := codec.Decode(*req.Before)
		if err != nil {
			return nil, errors.Wrap(err, "invalid before cursor")
		}
		if before > total {
			return nil, errors.Errorf("invalid before cursor: offset %d is out of range", before)
		}
		end = before
	}
	if req.After != nil && req.Before != nil && start > end {
		return nil, errors.New("invalid pagination: after cursor must be less than before cursor")
	}
	end = max(end, start)

	if req.First != nil && *req.First < end-start {
		end = start + *req.First
	}
	if req.Last != nil {
		start = max(start, end-*req.Last)
	}

	page := &Page[T]{
		Edges:      make([]Edge[T], 0, end-start),
		TotalCount: total,
		PageInfo: PageInfo{
			HasPreviousPage: start > 0,
			HasNextPage:     end < total,
		},
	}
	for i := start; i < end; i++ {
		c, err := codec.Encode(i)
		if err != nil {
			return nil, errors.Wrapf(err, "encode cursor %d", i)
		}
		page.Edges = append(page.Edges, Edge[T]{Node: items[i], Cursor: c})
	}
	if n := len(page.Edges); n > 0 {
		page.PageInfo.StartCursor = lo.ToPtr(page.Edges[0].Cursor)
		page.PageInfo.EndCursor = lo.ToPtr(page.Edges[n-1].Cursor)
	}
	return page, nil
}
