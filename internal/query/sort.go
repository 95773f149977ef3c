package query

import (
	"slices"
	"time"

	"obstetrics-record-service/internal/domain/entity"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const eddLayout = "2006-01-02"

// Sort returns a stably ordered copy of records.
// Records whose EDD does not parse go after those that do.
func Sort(records []entity.PatientRecord, key entity.SortKey) []entity.PatientRecord {
	out := slices.Clone(records)

	switch key {
	case entity.SortByEDD:
		dates := make(map[string]time.Time, len(out))
		for _, r := range out {
			if d, err := time.Parse(eddLayout, r.EDD); err == nil {
				dates[r.EDD] = d
			}
		}
		slices.SortStableFunc(out, func(a, b entity.PatientRecord) int {
			da, okA := dates[a.EDD]
			db, okB := dates[b.EDD]
			switch {
			case okA && okB:
				return da.Compare(db)
			case okA:
				return -1
			case okB:
				return 1
			}
			return 0
		})
	case entity.SortByName:
		// collators keep internal buffers, one per call
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b entity.PatientRecord) int {
			return c.CompareString(a.Name, b.Name)
		})
	case entity.SortByCreatedAt:
		slices.SortStableFunc(out, func(a, b entity.PatientRecord) int {
			switch {
			case a.CreatedAt > b.CreatedAt:
				return -1
			case a.CreatedAt < b.CreatedAt:
				return 1
			}
			return 0
		})
	}

	return out
}
