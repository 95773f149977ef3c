package query

import (
	"fmt"
	"math"
	"testing"

	"obstetrics-record-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(records []entity.PatientRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestFilterNameCategoryAndAge(t *testing.T) {
	records := []entity.PatientRecord{
		{Name: "Amy", Age: 30, EGA: "20 weeks"},
		{Name: "Bo", Age: 45, EGA: ""},
	}

	got := Filter(records, entity.PatientFilter{
		SearchTerm: "a",
		Category:   entity.CategoryPregnant,
		AgeMin:     0,
		AgeMax:     100,
	})

	assert.Equal(t, []string{"Amy"}, names(got))
}

func TestFilterPredicates(t *testing.T) {
	records := []entity.PatientRecord{
		{Name: "Amara Obi", Age: 19, EGA: "12 weeks"},
		{Name: "Grace", Age: 34, EGA: ""},
		{Name: "MARY", Age: 41, EGA: "38 weeks + 2 days"},
		{Name: "Nkem", Age: 50, EGA: ""},
	}

	tests := []struct {
		name   string
		filter entity.PatientFilter
		want   []string
	}{
		{"default passes all", entity.DefaultPatientFilter(), []string{"Amara Obi", "Grace", "MARY", "Nkem"}},
		{"case-insensitive substring", entity.PatientFilter{SearchTerm: "AR", Category: entity.CategoryAll, AgeMax: 100}, []string{"Amara Obi", "MARY"}},
		{"post partum", entity.PatientFilter{Category: entity.CategoryPostPartum, AgeMax: 100}, []string{"Grace", "Nkem"}},
		{"pregnant", entity.PatientFilter{Category: entity.CategoryPregnant, AgeMax: 100}, []string{"Amara Obi", "MARY"}},
		{"age bounds inclusive", entity.PatientFilter{Category: entity.CategoryAll, AgeMin: 34, AgeMax: 41}, []string{"Grace", "MARY"}},
		{"no match", entity.PatientFilter{SearchTerm: "zz", Category: entity.CategoryAll, AgeMax: 100}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(records, tt.filter)))
		})
	}
}

func TestSortByEDDAscending(t *testing.T) {
	records := []entity.PatientRecord{
		{Name: "later", EDD: "2025-03-01"},
		{Name: "blank", EDD: ""},
		{Name: "earlier", EDD: "2025-01-01"},
	}

	got := Sort(records, entity.SortByEDD)

	assert.Equal(t, []string{"earlier", "later", "blank"}, names(got))
	assert.Equal(t, "later", records[0].Name, "input must not be reordered")
}

func TestSortByCreatedAtNewestFirst(t *testing.T) {
	records := []entity.PatientRecord{
		{Name: "old", CreatedAt: 100},
		{Name: "new", CreatedAt: 200},
	}

	got := Sort(records, entity.SortByCreatedAt)

	require.Len(t, got, 2)
	assert.Equal(t, int64(200), got[0].CreatedAt)
	assert.Equal(t, int64(100), got[1].CreatedAt)
}

func TestSortByNameCollated(t *testing.T) {
	records := []entity.PatientRecord{
		{Name: "zainab"},
		{Name: "Émilie"},
		{Name: "bola"},
		{Name: "Adaeze"},
	}

	got := Sort(records, entity.SortByName)

	assert.Equal(t, []string{"Adaeze", "bola", "Émilie", "zainab"}, names(got))
}

func makeRecords(n int) []entity.PatientRecord {
	records := make([]entity.PatientRecord, n)
	for i := range records {
		records[i] = entity.PatientRecord{ID: fmt.Sprint(i), Name: fmt.Sprintf("p%02d", i)}
	}
	return records
}

func TestPaginateThirdPage(t *testing.T) {
	page := Paginate(makeRecords(25), 3, 10)

	require.Len(t, page.Records, 5)
	assert.Equal(t, "20", page.Records[0].ID)
	assert.Equal(t, "24", page.Records[4].ID)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPaginateBounds(t *testing.T) {
	records := makeRecords(5)

	assert.Empty(t, Paginate(records, 4, 2).Records)
	assert.Len(t, Paginate(records, 0, 2).Records, 2)
	assert.Equal(t, 1, Paginate(records, -3, 2).Page)
	assert.Equal(t, DefaultPageSize, Paginate(records, 1, 0).PageSize)
	assert.Equal(t, 0, Paginate(nil, 1, 10).TotalPages)

	huge := Paginate(records, math.MaxInt, 10)
	assert.Empty(t, huge.Records)
	assert.Equal(t, math.MaxInt, huge.Page)
	assert.Empty(t, Paginate(records, math.MaxInt, math.MaxInt).Records)
	assert.Len(t, Paginate(records, 1, math.MaxInt).Records, 5)
}

func TestApplyComposesFilterSortPage(t *testing.T) {
	records := []entity.PatientRecord{
		{Name: "Chi", Age: 22, EGA: "10 weeks", CreatedAt: 1},
		{Name: "Ada", Age: 28, EGA: "30 weeks", CreatedAt: 3},
		{Name: "Bisi", Age: 60, EGA: "8 weeks", CreatedAt: 2},
	}

	page := Apply(records, entity.PatientFilter{Category: entity.CategoryPregnant, AgeMax: 50}, entity.SortByCreatedAt, 1, 10)

	assert.Equal(t, []string{"Ada", "Chi"}, names(page.Records))
	assert.Equal(t, 2, page.Total)
}

func TestViewFilterResetsPageSortKeepsIt(t *testing.T) {
	records := makeRecords(25)
	for i := range records {
		records[i].CreatedAt = int64(i)
		records[i].Age = 20 + i
	}
	v := NewView(records, 10)

	v.SetPage(3)
	v.SetSort(entity.SortByCreatedAt)
	assert.Equal(t, 3, v.CurrentPage())
	require.Len(t, v.Page().Records, 5)
	assert.Equal(t, "p04", v.Page().Records[0].Name)

	f := entity.DefaultPatientFilter()
	f.AgeMax = 29
	v.SetFilter(f)
	assert.Equal(t, 1, v.CurrentPage())
	assert.Equal(t, entity.SortByCreatedAt, v.SortKey())
	assert.Len(t, v.Filtered(), 10)
	assert.Equal(t, "p09", v.Page().Records[0].Name)
}

func TestViewReloadKeepsState(t *testing.T) {
	v := NewView(makeRecords(3), 2)
	v.SetSort(entity.SortByName)
	v.SetPage(2)

	v.Reload(makeRecords(4))

	assert.Equal(t, 2, v.CurrentPage())
	assert.Equal(t, []string{"p02", "p03"}, names(v.Page().Records))
}
