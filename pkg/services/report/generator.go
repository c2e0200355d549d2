package report

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

const (
	dateTimeFormat = "Jan 02, 2006 15:04"
	timeFormat     = "15:04"
	dateFormat     = "Jan 02, 2006"

	// Capacity reports assume an 8 hour work day per member.
	hoursPerWorkDay = 8
)

// Column orders per report type; exports and table rendering rely on
// this being stable.
var reportColumns = map[domain.ReportType][]string{
	domain.ReportAppointments:  {"id", "orderId", "customerName", "startTime", "endTime", "productType", "createdBy", "team", "status", "changeTypes"},
	domain.ReportTIV:           {"id", "customerName", "status", "createdAt", "productType", "orderType"},
	domain.ReportAccelerations: {"id", "orderId", "customerName", "productType", "reason", "createdAt"},
	domain.ReportTeamActivity:  {"teamId", "teamName", "membersCount", "appointmentsCount", "avgPerMember"},
	domain.ReportCapacity:      {"teamId", "teamName", "membersCount", "appointmentsCount", "workDays", "utilizationRate"},
}

// RequestSource supplies the persisted TIV request and acceleration
// collections; reads degrade to empty on corruption, so errors here are
// storage failures only.
type RequestSource interface {
	ListTIVRequests(ctx context.Context) ([]domain.TIVRequest, error)
	ListAccelerations(ctx context.Context) ([]domain.Acceleration, error)
}

// Generator turns a configuration and domain snapshot into report rows.
type Generator struct {
	requests RequestSource
}

func NewGenerator(requests RequestSource) *Generator {
	return &Generator{requests: requests}
}

// Generate dispatches on the report type and returns the projected rows
// together with their column order. An unrecognized type yields an
// empty row set with no error.
func (g *Generator) Generate(ctx context.Context, cfg domain.ReportConfiguration, snap domain.Snapshot, r domain.DateRange) ([]domain.Row, []string, error) {
	columns := reportColumns[cfg.ReportType]

	switch cfg.ReportType {
	case domain.ReportAppointments:
		return appointmentRows(snap, r, cfg.TeamID), columns, nil
	case domain.ReportTIV:
		reqs, err := g.requests.ListTIVRequests(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("generate tiv report: %w", err)
		}
		return tivRows(reqs, r, cfg.TeamID), columns, nil
	case domain.ReportAccelerations:
		accs, err := g.requests.ListAccelerations(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("generate accelerations report: %w", err)
		}
		return accelerationRows(accs, r, cfg.TeamID), columns, nil
	case domain.ReportTeamActivity:
		return teamActivityRows(snap, r), columns, nil
	case domain.ReportCapacity:
		return capacityRows(snap, r), columns, nil
	default:
		return []domain.Row{}, nil, nil
	}
}

func appointmentRows(snap domain.Snapshot, r domain.DateRange, teamID string) []domain.Row {
	rows := make([]domain.Row, 0)
	for _, event := range snap.Events {
		if !InRange(event.StartTime, r) {
			continue
		}
		user := snap.UserByID(event.CreatedBy)
		if teamID != "" && (user == nil || user.TeamID != teamID) {
			continue
		}

		createdBy := event.CreatedBy
		teamName := "N/A"
		if user != nil {
			createdBy = user.Email
			if team := snap.TeamByID(user.TeamID); team != nil {
				teamName = team.Name
			}
		}
		status := event.Status
		if status == "" {
			status = "scheduled"
		}

		rows = append(rows, domain.Row{
			"id":           event.ID,
			"orderId":      event.OrderID,
			"customerName": event.CustomerName,
			"startTime":    formatInstant(event.StartTime, dateTimeFormat),
			"endTime":      formatInstant(event.EndTime, timeFormat),
			"productType":  event.ProductType,
			"createdBy":    createdBy,
			"team":         teamName,
			"status":       status,
			"changeTypes":  strings.Join(event.ChangeTypes, ", "),
		})
	}
	return rows
}

func tivRows(reqs []domain.TIVRequest, r domain.DateRange, teamID string) []domain.Row {
	rows := make([]domain.Row, 0)
	for _, req := range reqs {
		if !InRange(req.CreatedAt, r) {
			continue
		}
		if teamID != "" && req.TeamID != teamID {
			continue
		}
		orderType := req.OrderType
		if orderType == "" {
			orderType = "N/A"
		}
		rows = append(rows, domain.Row{
			"id":           req.ID,
			"customerName": req.CustomerName,
			"status":       req.Status,
			"createdAt":    formatInstant(req.CreatedAt, dateFormat),
			"productType":  req.ProductType,
			"orderType":    orderType,
		})
	}
	return rows
}

func accelerationRows(accs []domain.Acceleration, r domain.DateRange, teamID string) []domain.Row {
	rows := make([]domain.Row, 0)
	for _, acc := range accs {
		if !InRange(acc.CreatedAt, r) {
			continue
		}
		if teamID != "" && acc.TeamID != teamID {
			continue
		}
		reason := acc.Reason
		if reason == "" {
			reason = "N/A"
		}
		rows = append(rows, domain.Row{
			"id":           acc.ID,
			"orderId":      acc.OrderID,
			"customerName": acc.CustomerName,
			"productType":  acc.ProductType,
			"reason":       reason,
			"createdAt":    formatInstant(acc.CreatedAt, dateFormat),
		})
	}
	return rows
}

func teamActivityRows(snap domain.Snapshot, r domain.DateRange) []domain.Row {
	rows := make([]domain.Row, 0, len(snap.Teams))
	for _, team := range snap.Teams {
		members, appointments := teamCounts(snap, team.ID, r)

		avgPerMember := "0"
		if members > 0 {
			avgPerMember = fmt.Sprintf("%.2f", float64(appointments)/float64(members))
		}

		rows = append(rows, domain.Row{
			"teamId":            team.ID,
			"teamName":          team.Name,
			"membersCount":      members,
			"appointmentsCount": appointments,
			"avgPerMember":      avgPerMember,
		})
	}
	return rows
}

func capacityRows(snap domain.Snapshot, r domain.DateRange) []domain.Row {
	workDays := int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))

	rows := make([]domain.Row, 0, len(snap.Teams))
	for _, team := range snap.Teams {
		members, appointments := teamCounts(snap, team.ID, r)

		potentialCapacity := members * workDays * hoursPerWorkDay
		utilizationRate := "0"
		if potentialCapacity > 0 {
			utilizationRate = fmt.Sprintf("%.2f", float64(appointments)/float64(potentialCapacity)*100)
		}

		rows = append(rows, domain.Row{
			"teamId":            team.ID,
			"teamName":          team.Name,
			"membersCount":      members,
			"appointmentsCount": appointments,
			"workDays":          workDays,
			"utilizationRate":   utilizationRate + "%",
		})
	}
	return rows
}

func teamCounts(snap domain.Snapshot, teamID string, r domain.DateRange) (members, appointments int) {
	for _, u := range snap.Users {
		if u.TeamID == teamID {
			members++
		}
	}
	for _, event := range snap.Events {
		user := snap.UserByID(event.CreatedBy)
		if user != nil && user.TeamID == teamID && InRange(event.StartTime, r) {
			appointments++
		}
	}
	return members, appointments
}

// formatInstant renders an ISO timestamp for display; unparsable values
// pass through untouched.
func formatInstant(value, layout string) string {
	t, ok := parseISOInstant(value, time.Local)
	if !ok {
		return value
	}
	return t.Format(layout)
}
