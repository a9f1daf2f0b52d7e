package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const attendanceSheet = "Attendance"

// ErrExportFailed indicates the spreadsheet could not be generated.
var ErrExportFailed = errors.New("failed to generate attendance export")

// ExportService renders attendance data as spreadsheets.
type ExportService interface {
	// AttendanceMatrix returns the xlsx body and a suggested filename.
	AttendanceMatrix(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	attendance AttendanceService
	logger     zerolog.Logger
	now        func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(attendance AttendanceService, logger zerolog.Logger) ExportService {
	return &exportService{
		attendance: attendance,
		logger:     logger.With().Str("component", "export_service").Logger(),
		now:        time.Now,
	}
}

func (s *exportService) AttendanceMatrix(ctx context.Context) (*bytes.Buffer, string, error) {
	overview, err := s.attendance.Overview(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		s.logger.Error().Err(err).Msg("rename export sheet")
		return nil, "", ErrExportFailed
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("create export header style")
		return nil, "", ErrExportFailed
	}

	header := []interface{}{"Username", "Name"}
	for _, activity := range overview.Activities {
		header = append(header, activity.Name)
	}
	if err := f.SetSheetRow(attendanceSheet, "A1", &header); err != nil {
		s.logger.Error().Err(err).Msg("write export header")
		return nil, "", ErrExportFailed
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(attendanceSheet, "A1", lastHeader, headerStyle)

	for i, student := range overview.Students {
		row := []interface{}{student.Username, student.Name}
		for _, record := range student.Records {
			row = append(row, record.Status)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(attendanceSheet, cell, &row); err != nil {
			s.logger.Error().Err(err).Int("row", i+2).Msg("write export row")
			return nil, "", ErrExportFailed
		}
	}

	lastColumn, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetColWidth(attendanceSheet, "A", lastColumn, 18)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error().Err(err).Msg("write export workbook")
		return nil, "", ErrExportFailed
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}
