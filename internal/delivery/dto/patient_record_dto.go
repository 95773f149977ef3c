package dto

import (
	"obstetrics-record-service/internal/domain/entity"
)

// Request DTOs

// PatientRecordRequest is the create/update body. egaWeeks/egaDays and
// bpSystolic/bpDiastolic are form parts used only when ega or
// examination.vitalSigns.bp are empty.
type PatientRecordRequest struct {
	Name            string             `json:"name" validate:"required,max=255"`
	Age             int                `json:"age" validate:"gte=0"`
	G               int                `json:"g" validate:"gte=0"`
	P               int                `json:"p" validate:"gte=0"`
	EGA             string             `json:"ega" validate:"max=64"`
	EGAWeeks        string             `json:"egaWeeks,omitempty" validate:"omitempty,numeric"`
	EGADays         string             `json:"egaDays,omitempty" validate:"omitempty,numeric"`
	EDD             string             `json:"edd" validate:"required,datetime=2006-01-02"`
	BeingManagedFor string             `json:"beingManagedFor"`
	Complaints      string             `json:"complaints"`
	Updates         string             `json:"updates"`
	ODQ             entity.ODQ         `json:"odq"`
	SystemicEnquiry string             `json:"systemicEnquiry"`
	Examination     entity.Examination `json:"examination"`
	BPSystolic      string             `json:"bpSystolic,omitempty" validate:"omitempty,numeric"`
	BPDiastolic     string             `json:"bpDiastolic,omitempty" validate:"omitempty,numeric"`
	Investigations  string             `json:"investigations"`
	Impression      string             `json:"impression"`
	Plan            string             `json:"plan"`
}

// PatientListQuery carries the list screen state from the query string.
type PatientListQuery struct {
	Search   string `json:"search" validate:"max=255"`
	Category string `json:"category" validate:"omitempty,oneof=all pregnant 'post partum'"`
	AgeMin   int    `json:"age_min" validate:"gte=0"`
	AgeMax   int    `json:"age_max" validate:"gte=0"`
	Sort     string `json:"sort" validate:"omitempty,oneof=edd name createdAt"`
	Page     int    `json:"page" validate:"gte=0,lte=1000000"`
	Limit    int    `json:"limit" validate:"gte=0,lte=100"`
}

// Response DTOs

type PatientRecordResponse struct {
	entity.PatientRecord
	Category string `json:"category"`
}

type PatientListResponse struct {
	Patients   []PatientRecordResponse `json:"patients"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	Total      int                     `json:"total"`
	TotalPages int                     `json:"total_pages"`
}
