package query

import (
	"obstetrics-record-service/internal/domain/entity"
)

const DefaultPageSize = 10

// Page is one slice of an ordered result.
type Page struct {
	Records    []entity.PatientRecord
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Paginate returns records[(page-1)*size : page*size], clipped to the input.
// page below 1 is treated as 1 and size below 1 as DefaultPageSize.
func Paginate(records []entity.PatientRecord, page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(records)
	totalPages := total / size
	if total%size > 0 {
		totalPages++
	}

	// past the last page; checked before multiplying so huge pages cannot overflow
	start, end := total, total
	if page-1 < totalPages {
		start = (page - 1) * size
		end = min(start+size, total)
	}

	return Page{
		Records:    records[start:end],
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Apply filters, sorts and pages in one pass.
func Apply(records []entity.PatientRecord, f entity.PatientFilter, key entity.SortKey, page, size int) Page {
	return Paginate(Sort(Filter(records, f), key), page, size)
}
