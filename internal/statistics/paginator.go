package statistics

import (
	"iter"

	"bikeshare/pkg/contracts/domain"
)

// DefaultPageSize is the number of records shown between checkpoints
const DefaultPageSize = 5

// RawRecord is the per-trip view shown by the raw data pager
type RawRecord struct {
	BirthYear    int
	Gender       string
	StartStation string
	Duration     float64
	UserType     string
}

// NewRawRecord projects a trip onto the raw view
func NewRawRecord(t domain.Trip) RawRecord {
	return RawRecord{
		BirthYear:    t.BirthYear,
		Gender:       t.Gender,
		StartStation: t.StartStation,
		Duration:     t.Duration,
		UserType:     t.UserType,
	}
}

// Paginator walks a table in order, page by page
type Paginator struct {
	table    *domain.Table
	pageSize int
}

// NewPaginator creates a paginator; a page size below 1 uses DefaultPageSize
func NewPaginator(table *domain.Table, pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Paginator{table: table, pageSize: pageSize}
}

// All yields (position, record) pairs in table order. Before every position
// that is a multiple of the page size, checkpoint is called with that
// position; returning false ends the sequence. The sequence can be ranged
// over any number of times.
func (p *Paginator) All(checkpoint func(index int) bool) iter.Seq2[int, RawRecord] {
	return func(yield func(int, RawRecord) bool) {
		if p.table == nil {
			return
		}
		for i, t := range p.table.Trips {
			if i%p.pageSize == 0 && !checkpoint(i) {
				return
			}
			if !yield(i, NewRawRecord(t)) {
				return
			}
		}
	}
}

// Pages returns how many checkpoints a full walk triggers
func (p *Paginator) Pages() int {
	n := p.table.Len()
	return (n + p.pageSize - 1) / p.pageSize
}
