package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/repositories"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
	"github.com/schoolvax/vaccine-portal/internal/pkg/logger"
)

// ExportService generates vaccination report files
type ExportService struct {
	recordRepo  *repositories.RecordRepository
	studentRepo *repositories.StudentRepository
}

// NewExportService creates a new ExportService
func NewExportService(recordRepo *repositories.RecordRepository, studentRepo *repositories.StudentRepository) *ExportService {
	return &ExportService{recordRepo: recordRepo, studentRepo: studentRepo}
}

var reportHeader = []string{
	"Student ID", "Student Name", "Grade", "Vaccine", "Dose",
	"Vaccination Date", "Next Dose Date", "Status", "Administered By",
}

func reportRow(record *models.VaccinationRecord) []string {
	row := []string{
		record.StudentID,
		"",
		"",
		"",
		strconv.Itoa(record.DoseNumber),
		record.VaccinationDate.Format(helpers.DateTimeLayout),
		"",
		string(record.Status),
		record.AdministeredBy,
	}
	if record.Student != nil {
		row[1] = record.Student.Name
		row[2] = record.Student.Grade
	}
	if record.Drive != nil && record.Drive.Vaccine != nil {
		row[3] = record.Drive.Vaccine.Name
	}
	if record.NextDoseDate != nil {
		row[6] = record.NextDoseDate.Format(helpers.DateTimeLayout)
	}
	return row
}

// RecordsCSV renders the filtered vaccination records as CSV
func (s *ExportService) RecordsCSV(ctx context.Context, filter repositories.RecordFilter) ([]byte, error) {
	records, err := s.recordRepo.GetFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(reportRow(record)); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}

	logger.Info().Int("records", len(records)).Msg("CSV report generated")
	return buf.Bytes(), nil
}

var studentExportHeader = []string{
	"studentId", "name", "grade", "dateOfBirth", "gender",
	"parentName", "parentEmail", "contactNumber", "address",
}

// StudentsCSV renders the active student roster as CSV. The columns
// after studentId match the import file layout.
func (s *ExportService) StudentsCSV(ctx context.Context) ([]byte, error) {
	students, err := s.studentRepo.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(studentExportHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, student := range students {
		row := []string{
			student.StudentID,
			student.Name,
			student.Grade,
			student.DateOfBirth.Format(helpers.DateLayout),
			student.Gender,
			student.ParentName,
			student.ParentEmail,
			student.ContactNumber,
			student.Address,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}

	logger.Info().Int("students", len(students)).Msg("Student roster exported")
	return buf.Bytes(), nil
}

// RecordsXLSX renders the filtered vaccination records as an XLSX
// workbook with a single "Vaccination Report" sheet.
func (s *ExportService) RecordsXLSX(ctx context.Context, filter repositories.RecordFilter) ([]byte, error) {
	records, err := s.recordRepo.GetFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	const sheet = "Vaccination Report"
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close XLSX file")
		}
	}()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("creating report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("writing header cell: %w", err)
		}
	}

	for i, record := range records {
		for col, value := range reportRow(record) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("row cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("writing row cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing XLSX: %w", err)
	}

	logger.Info().Int("records", len(records)).Msg("XLSX report generated")
	return buf.Bytes(), nil
}
