package converter

import (
	"obstetrics-record-service/internal/delivery/dto"
	"obstetrics-record-service/internal/domain/entity"
	"obstetrics-record-service/internal/query"
)

// PatientRecordFromRequest builds a record without id or timestamps.
// Empty ega and bp are composed from their form parts.
func PatientRecordFromRequest(req *dto.PatientRecordRequest) *entity.PatientRecord {
	ega := req.EGA
	if ega == "" {
		ega = entity.FormatGestationalAge(req.EGAWeeks, req.EGADays)
	}

	exam := req.Examination
	if exam.VitalSigns.BP == "" {
		exam.VitalSigns.BP = entity.FormatBloodPressure(req.BPSystolic, req.BPDiastolic)
	}

	return &entity.PatientRecord{
		Name:            req.Name,
		Age:             req.Age,
		G:               req.G,
		P:               req.P,
		EGA:             ega,
		EDD:             req.EDD,
		BeingManagedFor: req.BeingManagedFor,
		Complaints:      req.Complaints,
		Updates:         req.Updates,
		ODQ:             req.ODQ,
		SystemicEnquiry: req.SystemicEnquiry,
		Examination:     exam,
		Investigations:  req.Investigations,
		Impression:      req.Impression,
		Plan:            req.Plan,
	}
}

// PatientRecordToResponse converts a PatientRecord entity to PatientRecordResponse DTO
func PatientRecordToResponse(record *entity.PatientRecord) *dto.PatientRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.PatientRecordResponse{
		PatientRecord: *record,
		Category:      record.CategoryLabel(),
	}
}

// PatientRecordsToResponses converts a slice of PatientRecord entities to slice of PatientRecordResponse DTOs
func PatientRecordsToResponses(records []entity.PatientRecord) []dto.PatientRecordResponse {
	responses := make([]dto.PatientRecordResponse, len(records))
	for i := range records {
		responses[i] = *PatientRecordToResponse(&records[i])
	}
	return responses
}

// PatientFilterFromQuery fills unset query fields with the list screen defaults.
// An age_max of 0 means no upper bound was sent.
func PatientFilterFromQuery(q *dto.PatientListQuery) (entity.PatientFilter, entity.SortKey) {
	filter := entity.DefaultPatientFilter()
	filter.SearchTerm = q.Search
	if q.Category != "" {
		filter.Category = entity.PatientCategory(q.Category)
	}
	filter.AgeMin = q.AgeMin
	if q.AgeMax > 0 {
		filter.AgeMax = q.AgeMax
	}

	sortKey := entity.DefaultSortKey
	if q.Sort != "" {
		sortKey = entity.SortKey(q.Sort)
	}

	return filter, sortKey
}

// PageToListResponse converts a query page to PatientListResponse DTO
func PageToListResponse(page query.Page) *dto.PatientListResponse {
	return &dto.PatientListResponse{
		Patients:   PatientRecordsToResponses(page.Records),
		Page:       page.Page,
		Limit:      page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}
