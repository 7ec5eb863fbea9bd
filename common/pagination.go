package common

import (
	"errors"
	"fmt"

	"github.com/tez-capital/refpay/constants"
)

// PageIterator walks a bounded number of pre-fetched pages. A full last page means
// the source holds more rows than can be fetched and is reported as ErrPaginationOverflow.
type PageIterator[T any] struct {
	pages    [][]T
	pageSize int
	index    int
	done     bool
}

func NewPageIterator[T any](pages [][]T, pageSize int) *PageIterator[T] {
	return &PageIterator[T]{
		pages:    pages,
		pageSize: pageSize,
	}
}

func (it *PageIterator[T]) Next() (page []T, ok bool, err error) {
	if it.done || it.index >= len(it.pages) {
		return nil, false, nil
	}
	page = it.pages[it.index]
	it.index++
	if len(page) < it.pageSize {
		// short page, nothing follows
		it.done = true
		return page, true, nil
	}
	if it.index == len(it.pages) {
		it.done = true
		return nil, false, errors.Join(constants.ErrPaginationOverflow, fmt.Errorf("all %d pages of %d rows are full", len(it.pages), it.pageSize))
	}
	return page, true, nil
}

func (it *PageIterator[T]) Collect() ([]T, error) {
	result := make([]T, 0)
	for {
		page, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, page...)
	}
}

func CollectPages[T any](pages [][]T, pageSize int) ([]T, error) {
	return NewPageIterator(pages, pageSize).Collect()
}
