package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

// CalculateMetrics derives the per-type aggregate statistics over the
// generated rows. totalUsers is the snapshot user count, consumed only
// by team-activity. Unknown types produce an empty map.
func CalculateMetrics(reportType domain.ReportType, rows []domain.Row, totalUsers int) map[string]any {
	switch reportType {
	case domain.ReportAppointments:
		return appointmentMetrics(rows)
	case domain.ReportTIV:
		return tivMetrics(rows)
	case domain.ReportAccelerations:
		return accelerationMetrics(rows)
	case domain.ReportTeamActivity:
		return teamActivityMetrics(rows, totalUsers)
	case domain.ReportCapacity:
		return capacityMetrics(rows)
	default:
		return map[string]any{}
	}
}

func appointmentMetrics(rows []domain.Row) map[string]any {
	statusCounts := map[string]int{}
	var statusOrder []string
	products := map[string]struct{}{}

	for _, row := range rows {
		status := stringValue(row["status"], "scheduled")
		if _, seen := statusCounts[status]; !seen {
			statusOrder = append(statusOrder, status)
		}
		statusCounts[status]++
		products[stringValue(row["productType"], "unknown")] = struct{}{}
	}

	parts := make([]string, 0, len(statusOrder))
	for _, status := range statusOrder {
		parts = append(parts, fmt.Sprintf("%s: %d", status, statusCounts[status]))
	}

	return map[string]any{
		"totalAppointments": len(rows),
		"byStatus":          strings.Join(parts, ", "),
		"uniqueProducts":    len(products),
	}
}

func tivMetrics(rows []domain.Row) map[string]any {
	var approved, pending, rejected int
	for _, row := range rows {
		switch row["status"] {
		case "APPROVED":
			approved++
		case "PENDING":
			pending++
		case "REJECTED":
			rejected++
		}
	}

	approvalRate := "0%"
	if len(rows) > 0 {
		approvalRate = fmt.Sprintf("%.1f%%", float64(approved)/float64(len(rows))*100)
	}

	return map[string]any{
		"totalRequests": len(rows),
		"approved":      approved,
		"pending":       pending,
		"rejected":      rejected,
		"approvalRate":  approvalRate,
	}
}

func accelerationMetrics(rows []domain.Row) map[string]any {
	customers := map[string]struct{}{}
	for _, row := range rows {
		customers[stringValue(row["customerName"], "")] = struct{}{}
	}
	return map[string]any{
		"totalAccelerations": len(rows),
		"uniqueCustomers":    len(customers),
	}
}

func teamActivityMetrics(rows []domain.Row, totalUsers int) map[string]any {
	totalAppointments := 0
	for _, row := range rows {
		totalAppointments += intValue(row["appointmentsCount"])
	}

	avgPerTeam := "0"
	if len(rows) > 0 {
		avgPerTeam = fmt.Sprintf("%.2f", float64(totalAppointments)/float64(len(rows)))
	}

	return map[string]any{
		"totalTeams":        len(rows),
		"totalMembers":      totalUsers,
		"totalAppointments": totalAppointments,
		"avgPerTeam":        avgPerTeam,
	}
}

func capacityMetrics(rows []domain.Row) map[string]any {
	avgUtilization := 0.0
	if len(rows) > 0 {
		sum := 0.0
		for _, row := range rows {
			util := strings.TrimSuffix(stringValue(row["utilizationRate"], "0%"), "%")
			if v, err := strconv.ParseFloat(util, 64); err == nil {
				sum += v
			}
		}
		avgUtilization = sum / float64(len(rows))
	}

	return map[string]any{
		"totalTeams":     len(rows),
		"avgUtilization": fmt.Sprintf("%.2f%%", avgUtilization),
	}
}

func stringValue(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
