package service

import (
	"bytes"
	"context"
	"fmt"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ReportService aggregates per-hostel occupancy and fee numbers and renders
// the occupancy register as an Excel workbook for wardens.
type ReportService interface {
	OccupancySummary(ctx context.Context, hostelID string) (*repository.OccupancySummary, error)
	FeeSummary(ctx context.Context, hostelID string) (*repository.FeeSummary, error)
	ExportOccupancyExcel(ctx context.Context, hostelID string) ([]byte, error)
}

type reportService struct {
	reportsRepo repository.ReportsRepository
	roomsRepo   repository.RoomsRepository
	logger      *zap.Logger
}

func NewReportService(
	reportsRepo repository.ReportsRepository,
	roomsRepo repository.RoomsRepository,
	logger *zap.Logger,
) ReportService {
	return &reportService{
		reportsRepo: reportsRepo,
		roomsRepo:   roomsRepo,
		logger:      logger,
	}
}

func (s *reportService) OccupancySummary(ctx context.Context, hostelID string) (*repository.OccupancySummary, error) {
	summary, err := s.reportsRepo.OccupancySummary(ctx, hostelID)
	if err != nil {
		return nil, fmt.Errorf("failed to build occupancy summary: %w", err)
	}
	return summary, nil
}

func (s *reportService) FeeSummary(ctx context.Context, hostelID string) (*repository.FeeSummary, error) {
	summary, err := s.reportsRepo.FeeSummary(ctx, hostelID)
	if err != nil {
		return nil, fmt.Errorf("failed to build fee summary: %w", err)
	}
	return summary, nil
}

var occupancyExportHeader = []string{
	"Room Number",
	"Room Type",
	"Floor",
	"Capacity",
	"Current Occupancy",
	"Status",
	"Monthly Rent",
}

// ExportOccupancyExcel renders every room of the hostel into a single-sheet
// workbook, one row per room.
func (s *reportService) ExportOccupancyExcel(ctx context.Context, hostelID string) ([]byte, error) {
	// Page through all rooms; hostels are small enough that a large page
	// cap is simpler than streaming.
	var rooms []*domain.Room
	page := 1
	for {
		batch, total, err := s.roomsRepo.ListRooms(ctx, hostelID, repository.RoomFilters{}, page, 500)
		if err != nil {
			return nil, fmt.Errorf("failed to list rooms: %w", err)
		}
		rooms = append(rooms, batch...)
		if len(rooms) >= total || len(batch) == 0 {
			break
		}
		page++
	}

	f := excelize.NewFile()
	// Note: don't defer Close() here, WriteTo needs the file open

	sheetName := "Occupancy"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range occupancyExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, room := range rooms {
		row := i + 2
		values := []any{
			room.RoomNumber,
			room.RoomType.String,
			room.Floor.String,
			room.Capacity,
			room.CurrentOccupancy,
			room.Status,
		}
		if room.MonthlyRent.Valid {
			values = append(values, room.MonthlyRent.Float64)
		} else {
			values = append(values, "")
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	s.logger.Info("occupancy export generated",
		zap.String("hostel_id", hostelID),
		zap.Int("rooms", len(rooms)),
	)

	return buf.Bytes(), nil
}
