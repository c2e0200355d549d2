package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

func TestCalculateMetrics_Appointments(t *testing.T) {
	t.Run("counts statuses in first-seen order", func(t *testing.T) {
		rows := []domain.Row{
			{"status": "scheduled", "productType": "fiber"},
			{"status": "completed", "productType": "copper"},
			{"status": "scheduled", "productType": "fiber"},
		}

		metrics := CalculateMetrics(domain.ReportAppointments, rows, 0)

		assert.Equal(t, 3, metrics["totalAppointments"])
		assert.Equal(t, "scheduled: 2, completed: 1", metrics["byStatus"])
		assert.Equal(t, 2, metrics["uniqueProducts"])
	})

	t.Run("missing status defaults to scheduled", func(t *testing.T) {
		rows := []domain.Row{
			{"productType": "fiber"},
		}

		metrics := CalculateMetrics(domain.ReportAppointments, rows, 0)

		assert.Equal(t, "scheduled: 1", metrics["byStatus"])
	})

	t.Run("empty rows", func(t *testing.T) {
		metrics := CalculateMetrics(domain.ReportAppointments, nil, 0)

		assert.Equal(t, 0, metrics["totalAppointments"])
		assert.Equal(t, "", metrics["byStatus"])
		assert.Equal(t, 0, metrics["uniqueProducts"])
	})
}

func TestCalculateMetrics_TIV(t *testing.T) {
	t.Run("approval rate over all requests", func(t *testing.T) {
		rows := []domain.Row{
			{"status": "APPROVED"},
			{"status": "APPROVED"},
			{"status": "PENDING"},
			{"status": "PENDING"},
		}

		metrics := CalculateMetrics(domain.ReportTIV, rows, 0)

		assert.Equal(t, 4, metrics["totalRequests"])
		assert.Equal(t, 2, metrics["approved"])
		assert.Equal(t, 2, metrics["pending"])
		assert.Equal(t, 0, metrics["rejected"])
		assert.Equal(t, "50.0%", metrics["approvalRate"])
	})

	t.Run("zero requests yields 0% rate", func(t *testing.T) {
		metrics := CalculateMetrics(domain.ReportTIV, nil, 0)

		assert.Equal(t, 0, metrics["totalRequests"])
		assert.Equal(t, "0%", metrics["approvalRate"])
	})

	t.Run("unknown statuses count toward total only", func(t *testing.T) {
		rows := []domain.Row{
			{"status": "APPROVED"},
			{"status": "IN_REVIEW"},
		}

		metrics := CalculateMetrics(domain.ReportTIV, rows, 0)

		assert.Equal(t, 2, metrics["totalRequests"])
		assert.Equal(t, 1, metrics["approved"])
		assert.Equal(t, "50.0%", metrics["approvalRate"])
	})
}

func TestCalculateMetrics_Accelerations(t *testing.T) {
	rows := []domain.Row{
		{"customerName": "Alice"},
		{"customerName": "Bob"},
		{"customerName": "Alice"},
	}

	metrics := CalculateMetrics(domain.ReportAccelerations, rows, 0)

	assert.Equal(t, 3, metrics["totalAccelerations"])
	assert.Equal(t, 2, metrics["uniqueCustomers"])
}

func TestCalculateMetrics_TeamActivity(t *testing.T) {
	t.Run("averages appointments over teams", func(t *testing.T) {
		rows := []domain.Row{
			{"appointmentsCount": 4},
			{"appointmentsCount": 2},
		}

		metrics := CalculateMetrics(domain.ReportTeamActivity, rows, 7)

		assert.Equal(t, 2, metrics["totalTeams"])
		assert.Equal(t, 7, metrics["totalMembers"])
		assert.Equal(t, 6, metrics["totalAppointments"])
		assert.Equal(t, "3.00", metrics["avgPerTeam"])
	})

	t.Run("no teams yields 0 average", func(t *testing.T) {
		metrics := CalculateMetrics(domain.ReportTeamActivity, nil, 7)

		assert.Equal(t, "0", metrics["avgPerTeam"])
	})
}

func TestCalculateMetrics_Capacity(t *testing.T) {
	rows := []domain.Row{
		{"utilizationRate": "50.00%"},
		{"utilizationRate": "25.00%"},
	}

	metrics := CalculateMetrics(domain.ReportCapacity, rows, 0)

	assert.Equal(t, 2, metrics["totalTeams"])
	assert.Equal(t, "37.50%", metrics["avgUtilization"])
}

func TestCalculateMetrics_UnknownType(t *testing.T) {
	metrics := CalculateMetrics(domain.ReportType("unknown"), []domain.Row{{"id": "1"}}, 0)
	assert.Empty(t, metrics)
}
