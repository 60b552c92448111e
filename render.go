package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/insightdelivered/ministry-roster/internal/aggregate"
	"github.com/insightdelivered/ministry-roster/internal/models"
	"github.com/insightdelivered/ministry-roster/internal/writer"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	countStyle  = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// blankLabel stands in for the "" key of preaching counts.
const blankLabel = "(blank)"

// renderReport draws the summary and one table per frequency map.
func renderReport(origin string, rep aggregate.Report) string {
	var b strings.Builder

	s := rep.Summary
	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("%s view, %s", rep.View, rep.Year)))
	fmt.Fprintln(&b, mutedStyle.Render(fmt.Sprintf("source: %s  services: %d of %d  %s",
		origin, s.FilteredServices, s.TotalServices, s.DateRange)))

	if rep.Empty {
		fmt.Fprintf(&b, "\nNo data for %s. Available years: %s\n", rep.Year, strings.Join(rep.AvailableYears, ", "))
		return b.String()
	}

	for _, t := range writer.Tables(rep) {
		labels, values := t.Counts.Series()
		rows := make([][]string, len(labels))
		for i, label := range labels {
			if label == "" {
				label = blankLabel
			}
			rows[i] = []string{label, strconv.Itoa(values[i])}
		}
		fmt.Fprintf(&b, "\n%s\n%s\n", titleStyle.Render(t.Name), newTable([]string{"Name", "Count"}, rows))
	}

	if rep.Media != nil {
		fmt.Fprintf(&b, "\n%s\n%s\n", titleStyle.Render("mediaRoleDistribution"), distributionTable(rep.Media.MediaRoleDistribution))
		fmt.Fprintln(&b, mutedStyle.Render(fmt.Sprintf("members: %d  mean: %.2f  median: %.1f  max: %d",
			s.TotalMediaMembers, s.MeanAssignments, s.MedianAssignments, s.MaxAssignments)))
	}
	return b.String()
}

func distributionTable(dist models.RoleDistribution) string {
	headers := []string{"Name"}
	for _, role := range models.MediaRoles {
		headers = append(headers, string(role))
	}
	headers = append(headers, "total")

	people := dist.People()
	rows := make([][]string, 0, len(people))
	for _, person := range people {
		c := dist[person]
		row := []string{person}
		for _, role := range models.MediaRoles {
			row = append(row, strconv.Itoa(c.Get(role)))
		}
		rows = append(rows, append(row, strconv.Itoa(c.Total)))
	}
	return newTable(headers, rows)
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col > 0:
				return countStyle
			default:
				return cellStyle
			}
		}).
		String()
}

// renderTeam draws the recent activity windows and the per-period team table.
func renderTeam(origin string, rep aggregate.TeamReport) string {
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("volunteers, %s by %s", rep.Year, rep.Granularity)))
	fmt.Fprintln(&b, mutedStyle.Render("source: "+origin))

	windows := []struct {
		name     string
		activity []aggregate.VolunteerActivity
	}{
		{fmt.Sprintf("last %d weeks", rep.Weeks), rep.RecentWeeks},
		{"last quarter", rep.RecentQuarter},
	}
	for _, w := range windows {
		fmt.Fprintf(&b, "\n%s\n", titleStyle.Render(w.name))
		if len(w.activity) == 0 {
			fmt.Fprintln(&b, mutedStyle.Render("no services"))
			continue
		}
		rows := make([][]string, len(w.activity))
		for i, a := range w.activity {
			roles := make([]string, len(a.Roles))
			for j, role := range a.Roles {
				roles[j] = string(role)
			}
			rows[i] = []string{a.Volunteer, strconv.Itoa(a.Assignments), a.FirstDate, a.LastDate, strings.Join(roles, ", ")}
		}
		fmt.Fprintln(&b, newTable([]string{"Name", "Assignments", "First", "Last", "Roles"}, rows))
	}

	if len(rep.JoinLeave) > 0 {
		rows := make([][]string, len(rep.JoinLeave))
		for i, t := range rep.JoinLeave {
			rows[i] = []string{t.Period, strconv.Itoa(t.Active), strings.Join(t.Joined, ", "), strings.Join(t.Left, ", ")}
		}
		fmt.Fprintf(&b, "\n%s\n%s\n", titleStyle.Render("team"), newTable([]string{"Period", "Active", "Joined", "Left"}, rows))
	}
	return b.String()
}
