package entity

// PatientCategory selects records by their derived classification.
type PatientCategory string

const (
	CategoryAll        PatientCategory = "all"
	CategoryPregnant   PatientCategory = "pregnant"
	CategoryPostPartum PatientCategory = "post partum"
)

// Valid reports whether c is one of the known categories.
func (c PatientCategory) Valid() bool {
	switch c {
	case CategoryAll, CategoryPregnant, CategoryPostPartum:
		return true
	}
	return false
}

// PatientFilter is a domain-level filter used by the query layer.
// A record passes when the name, category and age predicates all pass.
type PatientFilter struct {
	SearchTerm string          // case-insensitive substring of Name
	Category   PatientCategory // all, pregnant, post partum
	AgeMin     int             // inclusive
	AgeMax     int             // inclusive
}

// DefaultPatientFilter matches the list screen's initial state.
func DefaultPatientFilter() PatientFilter {
	return PatientFilter{
		SearchTerm: "",
		Category:   CategoryAll,
		AgeMin:     0,
		AgeMax:     100,
	}
}

// SortKey selects the list ordering.
type SortKey string

const (
	SortByEDD       SortKey = "edd"       // ascending by date
	SortByName      SortKey = "name"      // ascending, collated
	SortByCreatedAt SortKey = "createdAt" // newest first
)

const DefaultSortKey = SortByEDD

// Valid reports whether k is one of the known sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortByEDD, SortByName, SortByCreatedAt:
		return true
	}
	return false
}
