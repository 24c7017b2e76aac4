package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

const kpiSheet = "KPIs"

// ExportAdminStats writes one sheet per breakdown, each starting with a header row.
func (s *dashboardService) ExportAdminStats(ctx context.Context, actor *models.User) ([]byte, error) {
	if err := requireAdmin(actor, "admin_stats", "export", "Only admins can access this resource"); err != nil {
		return nil, err
	}

	stats, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	data, err := renderStatsWorkbook(stats)
	if err != nil {
		s.logger.Error("Failed to render stats workbook", "error", err)
		return nil, err
	}

	s.logger.Info("Admin stats exported", "admin_id", actor.ID, "bytes", len(data))
	return data, nil
}

func renderStatsWorkbook(stats *AdminStatsResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", kpiSheet); err != nil {
		return nil, fmt.Errorf("failed to name KPI sheet: %w", err)
	}

	kpiRows := [][]interface{}{
		{"metric", "value"},
		{"users_total", stats.KPIs.UsersTotal},
		{"languages", stats.KPIs.Languages},
		{"courses", stats.KPIs.Courses},
		{"lessons", stats.KPIs.Lessons},
		{"enrollments", stats.KPIs.Enrollments},
	}
	if err := writeRows(f, kpiSheet, kpiRows); err != nil {
		return nil, err
	}

	roleRows := [][]interface{}{{"role", "count"}}
	for _, r := range stats.UsersByRole {
		roleRows = append(roleRows, []interface{}{r.Role, r.Count})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{"Users by role", roleRows},
		{"Courses by language", labelValueRows(stats.CoursesByLanguage)},
		{"Courses by level", labelValueRows(stats.CoursesByLevel)},
		{"Enrollments by status", labelValueRows(stats.EnrollmentsByStatus)},
		{"Top teachers", rankedRows(stats.TopTeachersByActiveCourses)},
		{"Top courses", rankedRows(stats.TopCoursesByEnrollments)},
		{"Lessons per month", labelValueRows(stats.LessonsPerMonth)},
	}

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet.name, err)
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func labelValueRows(data []repositories.LabelValueData) [][]interface{} {
	rows := [][]interface{}{{"label", "value"}}
	for _, d := range data {
		rows = append(rows, []interface{}{d.Label, d.Value})
	}
	return rows
}

func rankedRows(data []repositories.RankedData) [][]interface{} {
	rows := [][]interface{}{{"id", "label", "value"}}
	for _, d := range data {
		rows = append(rows, []interface{}{d.ID, d.Label, d.Value})
	}
	return rows
}
