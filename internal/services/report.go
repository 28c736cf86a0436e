package services

import (
	"bytes"
	"context"
	"fmt"

	"workshop-system/internal/repositories"
	"workshop-system/pkg/types"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ReportService выгружает реестр квитанций в Excel. Фильтры те же, что у
// реестра на экране: выгружается ровно то, что видит пользователь.
type ReportServiceInterface interface {
	ExportSheetRegister(ctx context.Context, filter types.Filter) (*bytes.Buffer, error)
}

type ReportService struct {
	sheetRepo repositories.SheetRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(sheetRepo repositories.SheetRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{sheetRepo: sheetRepo, logger: logger}
}

func (s *ReportService) ExportSheetRegister(ctx context.Context, filter types.Filter) (*bytes.Buffer, error) {
	filter.WithPagination = false
	sheets, _, err := s.sheetRepo.GetSheets(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Реестр"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"№ заказа", "Статус", "Клиент", "Дата приёма", "Дата выдачи", "Сумма", "Аванс", "Позиций"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range sheets {
		subtotal, _ := row.Subtotal.Float64()
		advance, _ := row.AdvancePayment.Float64()
		values := []interface{}{
			row.OrderNumber, row.Status, row.ClientName,
			row.OrderDate, row.DeliveryDate, subtotal, advance, row.ItemCount,
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "H", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования файла выгрузки: %w", err)
	}

	s.logger.Info("сформирована выгрузка реестра", zap.Int("rows", len(sheets)))
	return buf, nil
}
