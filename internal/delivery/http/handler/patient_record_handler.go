package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"obstetrics-record-service/internal/delivery/dto"
	"obstetrics-record-service/internal/usecase"
	"obstetrics-record-service/pkg/response"
	"obstetrics-record-service/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientRecordHandler struct {
	patientRecordUsecase usecase.PatientRecordUsecase
	validator            *validator.CustomValidator
}

func NewPatientRecordHandler(patientRecordUsecase usecase.PatientRecordUsecase, validator *validator.CustomValidator) *PatientRecordHandler {
	return &PatientRecordHandler{
		patientRecordUsecase: patientRecordUsecase,
		validator:            validator,
	}
}

func (h *PatientRecordHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientRecordUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientAlreadyExists):
			response.Conflict(w, "Patient record already exists")
		default:
			response.InternalServerError(w, "Failed to create patient record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient record created successfully", patient)
}

func (h *PatientRecordHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientRecordUsecase.GetPatient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeLookupError(w, err, "Failed to get patient record")
		return
	}

	response.Success(w, http.StatusOK, "Patient record retrieved successfully", patient)
}

func (h *PatientRecordHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseListQuery(w, r)
	if !ok {
		return
	}

	list, err := h.patientRecordUsecase.ListPatients(r.Context(), q)
	if err != nil {
		response.InternalServerError(w, "Failed to get patient records")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patient records retrieved successfully", list.Patients, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		Total:      int64(list.Total),
		TotalPages: list.TotalPages,
	})
}

func (h *PatientRecordHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientRecordUsecase.UpdatePatient(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		h.writeLookupError(w, err, "Failed to update patient record")
		return
	}

	response.Success(w, http.StatusOK, "Patient record updated successfully", patient)
}

func (h *PatientRecordHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.patientRecordUsecase.DeletePatient(r.Context(), mux.Vars(r)["id"]); err != nil {
		response.InternalServerError(w, "Failed to delete patient record")
		return
	}

	response.Success(w, http.StatusOK, "Patient record deleted successfully", nil)
}

func (h *PatientRecordHandler) GetPatientsCreatedBetween(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	from, err := strconv.ParseInt(values.Get("from"), 10, 64)
	if err != nil {
		response.ValidationError(w, map[string]string{"from": "from must be epoch milliseconds"})
		return
	}
	to, err := strconv.ParseInt(values.Get("to"), 10, 64)
	if err != nil {
		response.ValidationError(w, map[string]string{"to": "to must be epoch milliseconds"})
		return
	}

	patients, err := h.patientRecordUsecase.ListCreatedBetween(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDateRange) {
			response.Error(w, http.StatusBadRequest, "from must not be after to", nil)
			return
		}
		response.InternalServerError(w, "Failed to get patient records")
		return
	}

	response.Success(w, http.StatusOK, "Patient records retrieved successfully", patients)
}

func (h *PatientRecordHandler) ExportPatients(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseListQuery(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.patientRecordUsecase.ExportPatientsPDF(r.Context(), q, &buf); err != nil {
		response.InternalServerError(w, "Failed to export patient records")
		return
	}

	response.Attachment(w, "application/pdf", "patient-list.pdf", buf.Bytes())
}

func (h *PatientRecordHandler) GetPatientSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.patientRecordUsecase.PatientSummary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeLookupError(w, err, "Failed to build patient summary")
		return
	}

	response.Text(w, http.StatusOK, summary)
}

func (h *PatientRecordHandler) writeLookupError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient record not found")
	default:
		response.InternalServerError(w, message)
	}
}

// parseListQuery reads the list screen state from the query string and
// writes a 400 when it is malformed.
func (h *PatientRecordHandler) parseListQuery(w http.ResponseWriter, r *http.Request) (*dto.PatientListQuery, bool) {
	values := r.URL.Query()
	q := &dto.PatientListQuery{
		Search:   values.Get("search"),
		Category: values.Get("category"),
		Sort:     values.Get("sort"),
	}

	invalid := map[string]string{}
	for key, dst := range map[string]*int{
		"age_min": &q.AgeMin,
		"age_max": &q.AgeMax,
		"page":    &q.Page,
		"limit":   &q.Limit,
	} {
		raw := values.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			invalid[key] = key + " must be a number"
			continue
		}
		*dst = n
	}
	if len(invalid) > 0 {
		response.ValidationError(w, invalid)
		return nil, false
	}

	if err := h.validator.Validate(q); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}

	return q, true
}
