package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"obstetrics-record-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLabel(t *testing.T) {
	tests := map[string]string{
		"fetalMovements":     "Fetal Movements",
		"lossOfLiquor":       "Loss Of Liquor",
		"bleedingPerVaginum": "Bleeding Per Vaginum",
		"fever":              "Fever",
	}
	for key, want := range tests {
		assert.Equal(t, want, FormatLabel(key), key)
	}
}

func sampleRecord() entity.PatientRecord {
	return entity.PatientRecord{
		ID:              "1700000000000",
		Name:            "Ngozi Eze",
		Age:             29,
		G:               2,
		P:               1,
		EGA:             "32 weeks + 4 days",
		EDD:             "2025-02-14",
		BeingManagedFor: "Pre-eclampsia",
		ODQ:             entity.ODQ{Headache: true, BlurredVision: true},
		Examination: entity.Examination{
			General:    "Not pale",
			VitalSigns: entity.VitalSigns{BP: "150/100"},
		},
		Plan:      "Admit",
		CreatedAt: 0,
		UpdatedAt: 60_000,
	}
}

func TestPatientSummarySections(t *testing.T) {
	r := sampleRecord()

	text := PatientSummary(&r, time.UTC)

	for _, heading := range []string{
		"Personal Information:",
		"Medical Information:",
		"On Direct Questioning (ODQ):",
		"Systemic Enquiry:",
		"Examination:",
		"Medical Assessment:",
		"Record Information:",
	} {
		assert.Contains(t, text, heading)
	}
	assert.Contains(t, text, "Name: Ngozi Eze")
	assert.Contains(t, text, "Category: Pregnant")
	assert.Contains(t, text, "Headache: Yes")
	assert.Contains(t, text, "Blurred Vision: Yes")
	assert.Contains(t, text, "Fetal Movements: No")
	assert.Contains(t, text, "BP: 150/100")
	assert.Contains(t, text, "Created At: 1970-01-01 00:00:00")
	assert.Contains(t, text, "Updated At: 1970-01-01 00:01:00")

	lines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasSuffix(line, ": Yes") || strings.HasSuffix(line, ": No") {
			lines++
		}
	}
	assert.Equal(t, len(entity.ODQKeys), lines)
}

func TestPatientListRow(t *testing.T) {
	r := sampleRecord()
	r.EGA = ""

	assert.Equal(t, []string{"Ngozi Eze", "29", "Post Partum", "", "2025-02-14", "Pre-eclampsia"}, PatientListRow(&r))
}

func TestWritePatientListPDF(t *testing.T) {
	var buf bytes.Buffer
	records := []entity.PatientRecord{sampleRecord(), {Name: "Adaeze Okafor", Age: 35}}

	err := WritePatientListPDF(&buf, records, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFSafeFoldsDiacritics(t *testing.T) {
	assert.Equal(t, "Ngozi Okafo", pdfSafe("Ngozị Ọkafọ"))
	assert.Equal(t, "Zoë Müller", pdfSafe("Zoë Müller"))
	assert.Equal(t, "Ama ?", pdfSafe("Ama 李"))

	var buf bytes.Buffer
	records := []entity.PatientRecord{{Name: "Ngozị Ọkafọ", Age: 30}}
	require.NoError(t, WritePatientListPDF(&buf, records, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
