package query

import (
	"obstetrics-record-service/internal/domain/entity"
)

// View holds the list screen state over one fetched record set.
// Changing the filter resets to page 1; changing the sort keeps the page.
type View struct {
	all      []entity.PatientRecord
	filtered []entity.PatientRecord
	filter   entity.PatientFilter
	sortKey  entity.SortKey
	page     int
	pageSize int
}

func NewView(records []entity.PatientRecord, pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	v := &View{
		all:      records,
		filter:   entity.DefaultPatientFilter(),
		sortKey:  entity.DefaultSortKey,
		page:     1,
		pageSize: pageSize,
	}
	v.filtered = Sort(Filter(v.all, v.filter), v.sortKey)
	return v
}

// Reload replaces the record set after a write, keeping filter, sort and page.
func (v *View) Reload(records []entity.PatientRecord) {
	v.all = records
	v.filtered = Sort(Filter(v.all, v.filter), v.sortKey)
}

func (v *View) SetFilter(f entity.PatientFilter) {
	v.filter = f
	v.filtered = Sort(Filter(v.all, f), v.sortKey)
	v.page = 1
}

func (v *View) SetSort(key entity.SortKey) {
	v.sortKey = key
	v.filtered = Sort(v.filtered, key)
}

func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

func (v *View) Filter() entity.PatientFilter { return v.filter }
func (v *View) SortKey() entity.SortKey      { return v.sortKey }
func (v *View) CurrentPage() int             { return v.page }

// Filtered returns the whole filtered and sorted set, as used by the PDF export.
func (v *View) Filtered() []entity.PatientRecord {
	return v.filtered
}

func (v *View) Page() Page {
	return Paginate(v.filtered, v.page, v.pageSize)
}
