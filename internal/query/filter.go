// Package query filters, orders and pages a fetched list of patient records.
// It never touches the store and never mutates its input.
package query

import (
	"strings"

	"obstetrics-record-service/internal/domain/entity"
)

// Filter returns the records passing every predicate of f, keeping input order.
func Filter(records []entity.PatientRecord, f entity.PatientFilter) []entity.PatientRecord {
	term := strings.ToLower(f.SearchTerm)
	out := make([]entity.PatientRecord, 0, len(records))
	for i := range records {
		if Matches(&records[i], f, term) {
			out = append(out, records[i])
		}
	}
	return out
}

// Matches reports whether one record passes f. lowerTerm is f.SearchTerm lowercased.
func Matches(r *entity.PatientRecord, f entity.PatientFilter, lowerTerm string) bool {
	if !strings.Contains(strings.ToLower(r.Name), lowerTerm) {
		return false
	}

	switch f.Category {
	case entity.CategoryPregnant:
		if !r.IsPregnant() {
			return false
		}
	case entity.CategoryPostPartum:
		if r.IsPregnant() {
			return false
		}
	}

	return r.Age >= f.AgeMin && r.Age <= f.AgeMax
}
