package repository

import "fmt"

// appendReadingFilters builds the shared WHERE tail for report queries.
// The end bound is widened to an exclusive next-day comparison so the range
// stays inclusive at date granularity. Rows without temperature never make
// it into a report.
func appendReadingFilters(query string, args []any, f ReadingFilter) (string, []any) {
	if f.Circuit != "" {
		args = append(args, "%"+f.Circuit+"%")
		query += fmt.Sprintf(" AND circuit ILIKE $%d", len(args))
	}
	if f.HasType {
		args = append(args, string(f.MaintenanceType))
		query += fmt.Sprintf(" AND maintenance_type = $%d", len(args))
	}
	if f.Start != nil {
		args = append(args, f.Start.Format("2006-01-02"))
		query += fmt.Sprintf(" AND maintenance_at::date >= $%d::date", len(args))
	}
	if f.End != nil {
		args = append(args, f.End.AddDate(0, 0, 1).Format("2006-01-02"))
		query += fmt.Sprintf(" AND maintenance_at::date < $%d::date", len(args))
	}
	query += " AND temp_celsius IS NOT NULL"
	return query, args
}
