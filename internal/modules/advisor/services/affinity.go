package services

import (
	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// AffinityTable maps an enabled module to the modules practices usually
// pair with it. Purely advisory: entries never influence resolution.
type AffinityTable map[catalog.ModuleCode][]catalog.ModuleCode

// DefaultAffinityTable is the curated pairing table for the dental
// catalog. Suggestion order reflects observed adoption order.
func DefaultAffinityTable() AffinityTable {
	return AffinityTable{
		"PATIENT_MANAGEMENT": {"SCHEDULING", "CLINICAL_BASIC", "BILLING"},
		"CLINICAL_BASIC":     {"IMAGING", "PRESCRIPTIONS", "CLINICAL_ADVANCED"},
		"CLINICAL_ADVANCED":  {"IMAGING", "TELEHEALTH"},
		"SCHEDULING":         {"REMINDERS", "TELEHEALTH"},
		"IMAGING":            {"CLINICAL_ADVANCED"},
		"PRESCRIPTIONS":      {"INVENTORY"},
		"BILLING":            {"INSURANCE", "REPORTING"},
		"INSURANCE":          {"REPORTING"},
		"REPORTING":          {"MARKETING"},
		"TELEHEALTH":         {"REMINDERS"},
		"INVENTORY":          {"REPORTING"},
	}
}
