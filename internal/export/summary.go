package export

import (
	"fmt"
	"strings"
	"time"

	"obstetrics-record-service/internal/domain/entity"
)

const timestampLayout = "2006-01-02 15:04:05"

// PatientSummary renders every field of one record as sectioned plain text,
// the form clinicians paste into notes.
func PatientSummary(r *entity.PatientRecord, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder

	section(&b, "Personal Information",
		"Name", r.Name,
		"Age", fmt.Sprint(r.Age),
		"Gravida", fmt.Sprint(r.G),
		"Para", fmt.Sprint(r.P),
		"EGA", r.EGA,
		"EDD", r.EDD,
		"Category", r.CategoryLabel(),
	)

	section(&b, "Medical Information",
		"Being Managed For", r.BeingManagedFor,
		"Complaints", r.Complaints,
		"Updates", r.Updates,
	)

	odq := make([]string, 0, 2*len(entity.ODQKeys))
	for _, e := range r.ODQ.Entries() {
		odq = append(odq, FormatLabel(e.Key), yesNo(e.Value))
	}
	section(&b, "On Direct Questioning (ODQ)", odq...)

	section(&b, "Systemic Enquiry",
		"Details", r.SystemicEnquiry,
	)

	ex := r.Examination
	section(&b, "Examination",
		"General", ex.General,
		"BP", ex.VitalSigns.BP,
		"CVS", ex.CVS,
		"RS", ex.RS,
		"ABD", ex.ABD,
		"Uterus", ex.Uterus,
		"CNS", ex.CNS,
	)

	section(&b, "Medical Assessment",
		"Investigations", r.Investigations,
		"Impression", r.Impression,
		"Plan", r.Plan,
	)

	section(&b, "Record Information",
		"Created At", time.UnixMilli(r.CreatedAt).In(loc).Format(timestampLayout),
		"Updated At", time.UnixMilli(r.UpdatedAt).In(loc).Format(timestampLayout),
	)

	return b.String()
}

// section writes a heading followed by label/value pairs.
func section(b *strings.Builder, title string, pairs ...string) {
	heading := title + ":"
	b.WriteString(heading + "\n")
	b.WriteString(strings.Repeat("-", len(heading)) + "\n")
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(b, "%s: %s\n", pairs[i], pairs[i+1])
	}
	b.WriteString("\n")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
