package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ReconcileService — get-or-create разрешение справочных сущностей по
// естественным ключам. Все методы работают внутри транзакции вызывающего:
// поиск и возможная вставка никогда не разделяются границей транзакции.
type ReconcileServiceInterface interface {
	ResolveClient(ctx context.Context, tx pgx.Tx, name, phone, address string) (uint64, error)
	ResolveAsset(ctx context.Context, tx pgx.Tx, item dto.EquipmentItemDTO, clientName string) (uint64, error)
}

type ReconcileService struct {
	clientRepo  repositories.ClientRepositoryInterface
	catalogRepo repositories.CatalogRepositoryInterface
	modelRepo   repositories.ModelRepositoryInterface
	assetRepo   repositories.AssetRepositoryInterface
	statusRepo  repositories.StatusLabelRepositoryInterface
	logger      *zap.Logger
}

func NewReconcileService(
	clientRepo repositories.ClientRepositoryInterface,
	catalogRepo repositories.CatalogRepositoryInterface,
	modelRepo repositories.ModelRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	statusRepo repositories.StatusLabelRepositoryInterface,
	logger *zap.Logger,
) ReconcileServiceInterface {
	return &ReconcileService{
		clientRepo:  clientRepo,
		catalogRepo: catalogRepo,
		modelRepo:   modelRepo,
		assetRepo:   assetRepo,
		statusRepo:  statusRepo,
		logger:      logger,
	}
}

func (s *ReconcileService) ResolveClient(ctx context.Context, tx pgx.Tx, name, phone, address string) (uint64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperrors.ErrInvalidEntityName
	}

	id, err := s.clientRepo.FindByNaturalKeyInTx(ctx, tx, name, phone)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return 0, err
	}

	id, err = s.clientRepo.CreateInTx(ctx, tx, name, phone, address)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("создан новый клиент", zap.Uint64("id", id), zap.String("name", name))
	return id, nil
}

func (s *ReconcileService) resolveManufacturer(ctx context.Context, tx pgx.Tx, name string) (uint64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperrors.ErrInvalidEntityName
	}
	id, found, err := s.catalogRepo.FindManufacturerInTx(ctx, tx, name)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}
	return s.catalogRepo.CreateManufacturerInTx(ctx, tx, name)
}

func (s *ReconcileService) resolveCategory(ctx context.Context, tx pgx.Tx, name string) (uint64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperrors.ErrInvalidEntityName
	}
	id, found, err := s.catalogRepo.FindCategoryInTx(ctx, tx, name)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}
	return s.catalogRepo.CreateCategoryInTx(ctx, tx, name)
}

// resolveModel сначала разрешает производителя и категорию, затем ищет
// модель по тройке (имя, производитель, категория).
func (s *ReconcileService) resolveModel(ctx context.Context, tx pgx.Tx, name, manufacturer, category string) (uint64, error) {
	manufacturerID, err := s.resolveManufacturer(ctx, tx, manufacturer)
	if err != nil {
		return 0, err
	}
	categoryID, err := s.resolveCategory(ctx, tx, category)
	if err != nil {
		return 0, err
	}

	id, found, err := s.modelRepo.FindInTx(ctx, tx, name, manufacturerID, categoryID)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}
	return s.modelRepo.CreateInTx(ctx, tx, name, manufacturerID, categoryID)
}

// ResolveAsset сопоставляет позицию квитанции с инвентарём по серийному
// номеру. Пустой серийник означает "без учёта": возвращается 0 без вставки.
func (s *ReconcileService) ResolveAsset(ctx context.Context, tx pgx.Tx, item dto.EquipmentItemDTO, clientName string) (uint64, error) {
	serial := strings.TrimSpace(item.Serial)
	if serial == "" {
		return 0, nil
	}

	label := utils.SimpleClientName(clientName)

	asset, err := s.assetRepo.FindBySerialInTx(ctx, tx, serial)
	if err == nil {
		if asset.DeletedAt.Valid {
			// Оборудование вернулось в мастерскую — снимаем архивную отметку.
			if err := s.assetRepo.ReactivateInTx(ctx, tx, asset.ID); err != nil {
				return 0, err
			}
			s.logger.Debug("оборудование реактивировано", zap.Uint64("assetId", asset.ID), zap.String("serial", serial))
		}
		// Метка клиента информационная, не ключ — просто перезаписываем.
		if err := s.assetRepo.SetClientLabelInTx(ctx, tx, asset.ID, label); err != nil {
			return 0, err
		}
		return asset.ID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return 0, err
	}

	var modelID uint64
	if strings.TrimSpace(item.Model) != "" {
		// Категорией модели служит тип оборудования из формы приёмки.
		modelID, err = s.resolveModel(ctx, tx, strings.TrimSpace(item.Model), item.Manufacturer, item.Type)
		if err != nil {
			return 0, err
		}
	}

	statusID, err := s.statusRepo.FindPendingInTx(ctx, tx)
	if err != nil {
		return 0, err
	}

	name := assetDisplayName(item)
	tag := constants.AssetTagPrefix + strconv.FormatInt(time.Now().UnixMilli(), 10)

	id, err := s.assetRepo.CreateInTx(ctx, tx, tag, serial, name, modelID, statusID, label)
	if err != nil {
		return 0, fmt.Errorf("не удалось создать оборудование в инвентаре: %w", err)
	}
	s.logger.Debug("создано новое оборудование", zap.Uint64("assetId", id), zap.String("serial", serial))
	return id, nil
}

// Имя нового оборудования: "производитель модель", иначе тип, иначе заглушка.
func assetDisplayName(item dto.EquipmentItemDTO) string {
	name := strings.TrimSpace(strings.TrimSpace(item.Manufacturer) + " " + strings.TrimSpace(item.Model))
	if name != "" {
		return name
	}
	if t := strings.TrimSpace(item.Type); t != "" {
		return t
	}
	return constants.AssetNamePlaceholder
}
