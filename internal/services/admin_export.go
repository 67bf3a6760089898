package services

import (
	"context"
	"fmt"
	"time"

	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export builds the admin workbook: one sheet of users, one of
// courses with their relation counts.
func (s *adminService) Export(ctx context.Context) (*ExportResult, error) {
	users, _, err := s.repo.User().List(ctx, repositories.UserFilters{Limit: 10000})
	if err != nil {
		return nil, fmt.Errorf("failed to list users for export: %w", err)
	}

	courses, err := s.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeUserSheet(f, users); err != nil {
		return nil, err
	}
	if err := writeCourseSheet(f, courses); err != nil {
		return nil, err
	}

	// The default sheet was renamed to Users; make it the active one.
	index, err := f.GetSheetIndex("Users")
	if err == nil {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export workbook: %w", err)
	}

	now := time.Now()
	s.logger.Info("Admin export generated", "users", len(users), "courses", len(courses))
	return &ExportResult{
		FileName:    fmt.Sprintf("entrenouscours-export-%s.xlsx", now.Format("2006-01-02")),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
		GeneratedAt: now,
	}, nil
}

func writeUserSheet(f *excelize.File, users []*models.User) error {
	const sheet = "Users"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to create users sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Email", "Role", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write users header: %w", err)
		}
	}

	for row, u := range users {
		values := []interface{}{u.ID, u.Name, u.Email, string(u.Role), formatTime(u.CreatedAt)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write user row: %w", err)
			}
		}
	}
	return nil
}

func writeCourseSheet(f *excelize.File, courses []*AdminCourseResponse) error {
	const sheet = "Courses"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create courses sheet: %w", err)
	}

	headers := []string{"ID", "Title", "Subject", "Level", "Offer", "Modality", "Teacher", "Slots", "Requests", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write courses header: %w", err)
		}
	}

	for row, c := range courses {
		teacher := ""
		if c.Teacher != nil {
			teacher = c.Teacher.Name
		}
		values := []interface{}{
			c.ID, c.Title, c.Subject, c.Level, string(c.OfferType), string(c.Modality),
			teacher, c.SlotCount, c.RequestCount, formatTime(c.CreatedAt),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write course row: %w", err)
			}
		}
	}
	return nil
}
