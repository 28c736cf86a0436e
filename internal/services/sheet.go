package services

import (
	"context"
	"fmt"
	"time"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SheetService управляет жизненным циклом квитанций. Каждая операция
// записи выполняется в одной транзакции: либо все таблицы обновлены,
// либо ни одна.
//
// Переходы статусов: OPEN → CLOSED (закрытие), OPEN → VOID + новая OPEN
// (ревизия открытой), CLOSED → VOID + новая CLOSED (ревизия закрытой).
type SheetServiceInterface interface {
	CreateSheet(ctx context.Context, payload dto.CreateSheetDTO) (string, error)
	UpdateOpenSheet(ctx context.Context, id uint64, payload dto.UpdateOpenSheetDTO) error
	CloseSheet(ctx context.Context, id uint64, payload dto.CloseSheetDTO) error
	ReviseOpenSheet(ctx context.Context, previousID uint64, payload dto.ReviseSheetDTO) (string, error)
	ReviseClosedSheet(ctx context.Context, previousID uint64, payload dto.ReviseSheetDTO) (string, error)
	FetchCompleteSheet(ctx context.Context, id uint64) (*dto.SheetDTO, error)
	GetSheets(ctx context.Context, filter types.Filter) ([]dto.SheetListItemDTO, uint64, error)
}

type SheetService struct {
	txManager repositories.TxManagerInterface
	sheetRepo repositories.SheetRepositoryInterface
	itemRepo  repositories.SheetItemRepositoryInterface
	assetRepo repositories.AssetRepositoryInterface
	reconcile ReconcileServiceInterface
	revision  RevisionResolverInterface
	logger    *zap.Logger
}

func NewSheetService(
	txManager repositories.TxManagerInterface,
	sheetRepo repositories.SheetRepositoryInterface,
	itemRepo repositories.SheetItemRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	reconcile ReconcileServiceInterface,
	revision RevisionResolverInterface,
	logger *zap.Logger,
) SheetServiceInterface {
	return &SheetService{
		txManager: txManager,
		sheetRepo: sheetRepo,
		itemRepo:  itemRepo,
		assetRepo: assetRepo,
		reconcile: reconcile,
		revision:  revision,
		logger:    logger,
	}
}

func (s *SheetService) CreateSheet(ctx context.Context, payload dto.CreateSheetDTO) (string, error) {
	var orderNumber string

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		clientID, err := s.reconcile.ResolveClient(ctx, tx, payload.ClientName, payload.ClientPhone, payload.ClientAddress)
		if err != nil {
			return err
		}

		// Номер заказа зависит от сгенерированного id, поэтому строка
		// вставляется с уникальной заглушкой и сразу обновляется.
		sheetID, err := s.sheetRepo.InsertInTx(ctx, tx, repositories.InsertSheetParams{
			OrderNumber:    "PENDIENTE-" + uuid.NewString(),
			ClientID:       clientID,
			OrderDate:      payload.OrderDate,
			DeliveryDate:   nullStringPtr(payload.DeliveryDate),
			Remarks:        payload.Remarks,
			Subtotal:       payload.Subtotal,
			AdvancePayment: payload.AdvancePayment,
			Status:         constants.SheetStatusOpen,
			Signature:      payload.Signature,
		})
		if err != nil {
			return err
		}

		orderNumber = fmt.Sprintf("%s-%d-%d", constants.OrderNumberPrefix, time.Now().Year(), sheetID)
		if err := s.sheetRepo.SetOrderNumberInTx(ctx, tx, sheetID, orderNumber); err != nil {
			return err
		}

		for _, item := range payload.Items {
			assetID, err := s.reconcile.ResolveAsset(ctx, tx, item, payload.ClientName)
			if err != nil {
				return err
			}
			if _, err := s.itemRepo.InsertInTx(ctx, tx, sheetID, item, assetID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("не удалось создать квитанцию", zap.Error(err))
		return "", err
	}

	s.logger.Info("квитанция создана", zap.String("orderNumber", orderNumber))
	return orderNumber, nil
}

// UpdateOpenSheet редактирует открытую квитанцию на месте. Позиции
// синхронизируются с присланным набором: совпавшие по id обновляются,
// новые вставляются, отсутствующие удаляются.
func (s *SheetService) UpdateOpenSheet(ctx context.Context, id uint64, payload dto.UpdateOpenSheetDTO) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		head, err := s.sheetRepo.LockHeadInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if head.Status != constants.SheetStatusOpen {
			return apperrors.ErrSheetNotOpen
		}

		if err := s.sheetRepo.UpdateOpenScalarsInTx(ctx, tx, id,
			payload.OrderDate, nullStringPtr(payload.DeliveryDate), payload.Remarks, payload.AdvancePayment); err != nil {
			return err
		}

		existing, err := s.itemRepo.ListBySheetInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		existingIDs := make(map[uint64]bool, len(existing))
		for _, row := range existing {
			existingIDs[row.ID] = true
		}

		submitted := make(map[uint64]bool, len(payload.Items))
		for _, item := range payload.Items {
			assetID, err := s.reconcile.ResolveAsset(ctx, tx, item, payload.ClientName)
			if err != nil {
				return err
			}
			if item.ID != 0 && existingIDs[item.ID] {
				submitted[item.ID] = true
				if err := s.itemRepo.UpdateInTx(ctx, tx, item.ID, item, assetID); err != nil {
					return err
				}
			} else {
				if _, err := s.itemRepo.InsertInTx(ctx, tx, id, item, assetID); err != nil {
					return err
				}
			}
		}

		for _, row := range existing {
			if !submitted[row.ID] {
				if err := s.itemRepo.DeleteInTx(ctx, tx, row.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("не удалось обновить квитанцию", zap.Uint64("id", id), zap.Error(err))
	}
	return err
}

// CloseSheet закрывает квитанцию: фиксирует заключение и стоимости,
// архивирует всё связанное оборудование.
func (s *SheetService) CloseSheet(ctx context.Context, id uint64, payload dto.CloseSheetDTO) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		head, err := s.sheetRepo.LockHeadInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if head.Status != constants.SheetStatusOpen {
			return apperrors.ErrSheetNotOpen
		}

		if err := s.sheetRepo.CloseInTx(ctx, tx, id,
			payload.GeneralTechnicalReport, payload.TotalCost, nullStringPtr(payload.DeliveryDate)); err != nil {
			return err
		}

		for _, item := range payload.Items {
			if err := s.itemRepo.SetCostReportInTx(ctx, tx, id, item.ID, item.Cost, item.TechnicalReport); err != nil {
				return err
			}
		}

		items, err := s.itemRepo.ListBySheetInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, row := range items {
			if row.AssetID.Valid {
				if err := s.assetRepo.ArchiveInTx(ctx, tx, uint64(row.AssetID.Int64)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("не удалось закрыть квитанцию", zap.Uint64("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("квитанция закрыта", zap.Uint64("id", id))
	return nil
}

func (s *SheetService) ReviseOpenSheet(ctx context.Context, previousID uint64, payload dto.ReviseSheetDTO) (string, error) {
	return s.revise(ctx, previousID, payload, constants.SheetStatusOpen)
}

func (s *SheetService) ReviseClosedSheet(ctx context.Context, previousID uint64, payload dto.ReviseSheetDTO) (string, error) {
	return s.revise(ctx, previousID, payload, constants.SheetStatusClosed)
}

// revise аннулирует предыдущую квитанцию и создаёт её замену с номером
// <база>-REV<n>. Для закрытой ревизии новая квитанция рождается сразу
// закрытой, а стоимости и заключения позиций переносятся из оригинала:
// они уже финальны.
func (s *SheetService) revise(ctx context.Context, previousID uint64, payload dto.ReviseSheetDTO, newStatus string) (string, error) {
	var orderNumber string

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		head, err := s.sheetRepo.LockHeadInTx(ctx, tx, previousID)
		if err != nil {
			return err
		}
		switch newStatus {
		case constants.SheetStatusOpen:
			if head.Status != constants.SheetStatusOpen {
				return apperrors.ErrSheetNotOpen
			}
		case constants.SheetStatusClosed:
			if head.Status != constants.SheetStatusClosed {
				return apperrors.ErrSheetNotClosed
			}
		}

		// База и номер ревизии вычисляются до вставки новой квитанции,
		// иначе она сама попала бы в подсчёт.
		base, revision, err := s.revision.ResolveInTx(ctx, tx, previousID)
		if err != nil {
			return err
		}
		orderNumber = fmt.Sprintf("%s%s%d", base, constants.RevisionSuffix, revision)

		if err := s.sheetRepo.VoidInTx(ctx, tx, previousID); err != nil {
			return err
		}

		clientID, err := s.reconcile.ResolveClient(ctx, tx, payload.ClientName, payload.ClientPhone, payload.ClientAddress)
		if err != nil {
			return err
		}

		items := payload.Items
		if newStatus == constants.SheetStatusClosed {
			previousItems, err := s.itemRepo.ListBySheetInTx(ctx, tx, previousID)
			if err != nil {
				return err
			}
			items = carryOverCosts(items, previousItems)
		}

		sheetID, err := s.sheetRepo.InsertInTx(ctx, tx, repositories.InsertSheetParams{
			OrderNumber:     orderNumber,
			ClientID:        clientID,
			OrderDate:       payload.OrderDate,
			DeliveryDate:    nullStringPtr(payload.DeliveryDate),
			Remarks:         payload.Remarks,
			Subtotal:        payload.Subtotal,
			AdvancePayment:  payload.AdvancePayment,
			Status:          newStatus,
			PreviousSheetID: &previousID,
		})
		if err != nil {
			return err
		}

		for _, item := range items {
			assetID, err := s.reconcile.ResolveAsset(ctx, tx, item, payload.ClientName)
			if err != nil {
				return err
			}
			// У новой квитанции свои позиции — id из оригинала не переносится.
			item.ID = 0
			if _, err := s.itemRepo.InsertInTx(ctx, tx, sheetID, item, assetID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("не удалось создать ревизию квитанции",
			zap.Uint64("previousId", previousID), zap.Error(err))
		return "", err
	}

	s.logger.Info("создана ревизия квитанции",
		zap.Uint64("previousId", previousID), zap.String("orderNumber", orderNumber))
	return orderNumber, nil
}

func (s *SheetService) FetchCompleteSheet(ctx context.Context, id uint64) (*dto.SheetDTO, error) {
	sheet, err := s.sheetRepo.FindSheetHeader(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.itemRepo.ListBySheet(ctx, id)
	if err != nil {
		return nil, err
	}
	sheet.Items = make([]dto.SheetItemDTO, 0, len(rows))
	for i := range rows {
		sheet.Items = append(sheet.Items, rows[i].ToDTO())
	}
	return sheet, nil
}

func (s *SheetService) GetSheets(ctx context.Context, filter types.Filter) ([]dto.SheetListItemDTO, uint64, error) {
	return s.sheetRepo.GetSheets(ctx, filter)
}

// carryOverCosts подставляет в позиции ревизии стоимость и заключение из
// позиций оригинала: по id, иначе по серийному номеру.
func carryOverCosts(items []dto.EquipmentItemDTO, previous []repositories.SheetItemRow) []dto.EquipmentItemDTO {
	byID := make(map[uint64]*repositories.SheetItemRow, len(previous))
	bySerial := make(map[string]*repositories.SheetItemRow, len(previous))
	for i := range previous {
		byID[previous[i].ID] = &previous[i]
		if previous[i].Serial != "" {
			bySerial[previous[i].Serial] = &previous[i]
		}
	}

	result := make([]dto.EquipmentItemDTO, len(items))
	copy(result, items)
	for i := range result {
		var src *repositories.SheetItemRow
		if result[i].ID != 0 {
			src = byID[result[i].ID]
		}
		if src == nil && result[i].Serial != "" {
			src = bySerial[result[i].Serial]
		}
		if src == nil {
			continue
		}
		if result[i].Cost.Equal(decimal.Zero) {
			result[i].Cost = src.Cost
		}
		if result[i].TechnicalReport == "" {
			result[i].TechnicalReport = src.TechnicalReport
		}
	}
	return result
}

func nullStringPtr(v null.String) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}
