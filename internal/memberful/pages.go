package memberful

import (
	"context"
	"fmt"
)

type PageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// Page is a single page of a cursor paginated connection.
type Page[T any] struct {
	Items      []T
	TotalCount int
	PageInfo   PageInfo
}

// FetchPage fetches the page after the given cursor, the first page is
// requested with an empty cursor.
type FetchPage[T any] func(ctx context.Context, cursor string) (Page[T], error)

// Iterator lazily walks a cursor paginated connection, one fetch per Next.
//
//	pages := memberful.NewIterator(fetch)
//	for pages.Next(ctx) {
//		for _, item := range pages.Page().Items { ... }
//	}
//	if err := pages.Err(); err != nil { ... }
type Iterator[T any] struct {
	fetch   FetchPage[T]
	cursor  string
	started bool
	done    bool
	page    Page[T]
	err     error
}

func NewIterator[T any](fetch FetchPage[T]) *Iterator[T] {
	return &Iterator[T]{fetch: fetch}
}

// Next fetches the following page, it returns false once the previous page
// reported no next page or a fetch failed.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	if it.done {
		return false
	}
	if it.started && !it.page.PageInfo.HasNextPage {
		it.done = true
		return false
	}

	page, err := it.fetch(ctx, it.cursor)
	it.started = true
	if err != nil {
		it.err = err
		it.done = true
		it.page = Page[T]{}
		return false
	}
	if page.PageInfo.HasNextPage && page.PageInfo.EndCursor == it.cursor {
		it.err = fmt.Errorf("pagination is stuck at cursor %q", it.cursor)
		it.done = true
		it.page = Page[T]{}
		return false
	}
	it.page = page
	it.cursor = page.PageInfo.EndCursor
	return true
}

// Page returns the page fetched by the last successful Next.
func (it *Iterator[T]) Page() Page[T] {
	return it.page
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}
