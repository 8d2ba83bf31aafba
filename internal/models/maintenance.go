package models

import "strings"

// MaintenanceType tags why a reading was taken.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventiva"
	MaintenanceCorrective MaintenanceType = "corretiva"
	MaintenanceChecklist  MaintenanceType = "checklist"
)

// NormalizeMaintenanceType maps free-form input onto the three canonical values.
// Unrecognized or empty input falls back to preventive.
func NormalizeMaintenanceType(raw string) MaintenanceType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "corretiva":
		return MaintenanceCorrective
	case "check-list", "checklist":
		return MaintenanceChecklist
	case "preventiva":
		return MaintenancePreventive
	default:
		return MaintenancePreventive
	}
}

// ParseMaintenanceFilter interprets a report filter value by prefix
// (prevent*/corret*/check*). Anything else means "no filter".
func ParseMaintenanceFilter(raw string) (MaintenanceType, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "":
		return "", false
	case strings.HasPrefix(v, "prevent"):
		return MaintenancePreventive, true
	case strings.HasPrefix(v, "corret"):
		return MaintenanceCorrective, true
	case strings.HasPrefix(v, "check"):
		return MaintenanceChecklist, true
	default:
		return "", false
	}
}
