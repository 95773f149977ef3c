package entity

import (
	"strings"
)

// FormatGestationalAge builds the stored EGA string from its entry parts.
// Empty weeks and days yield an empty EGA (not pregnant).
func FormatGestationalAge(weeks, days string) string {
	weeks = strings.TrimSpace(weeks)
	days = strings.TrimSpace(days)
	if weeks == "" && days == "" {
		return ""
	}
	if weeks == "" {
		weeks = "0"
	}
	if days == "" {
		return weeks + " weeks"
	}
	return weeks + " weeks + " + days + " days"
}

// SplitGestationalAge is the inverse of FormatGestationalAge.
func SplitGestationalAge(ega string) (weeks, days string) {
	if strings.TrimSpace(ega) == "" {
		return "", ""
	}
	parts := strings.SplitN(ega, "+", 2)
	weeks = firstField(parts[0])
	if len(parts) == 2 {
		days = firstField(parts[1])
	}
	return weeks, days
}

// FormatBloodPressure joins systolic and diastolic readings as "SYS/DIA".
func FormatBloodPressure(systolic, diastolic string) string {
	systolic = strings.TrimSpace(systolic)
	diastolic = strings.TrimSpace(diastolic)
	switch {
	case systolic == "" && diastolic == "":
		return ""
	case diastolic == "":
		return systolic
	case systolic == "":
		return diastolic
	}
	return systolic + "/" + diastolic
}

// SplitBloodPressure is the inverse of FormatBloodPressure.
func SplitBloodPressure(bp string) (systolic, diastolic string) {
	sys, dia, _ := strings.Cut(bp, "/")
	return strings.TrimSpace(sys), strings.TrimSpace(dia)
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
