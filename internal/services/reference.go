package services

import (
	"context"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
)

// ReferenceService отдаёт справочники инвентаря для автодополнения в
// форме приёмки. Справочники пополняются только движком сверки, поэтому
// здесь нет операций записи.
type ReferenceServiceInterface interface {
	GetManufacturers(ctx context.Context) ([]dto.NamedDTO, error)
	GetCategories(ctx context.Context) ([]dto.NamedDTO, error)
	GetModels(ctx context.Context) ([]dto.ModelDTO, error)
}

type ReferenceService struct {
	catalogRepo repositories.CatalogRepositoryInterface
	modelRepo   repositories.ModelRepositoryInterface
}

func NewReferenceService(
	catalogRepo repositories.CatalogRepositoryInterface,
	modelRepo repositories.ModelRepositoryInterface,
) ReferenceServiceInterface {
	return &ReferenceService{catalogRepo: catalogRepo, modelRepo: modelRepo}
}

func (s *ReferenceService) GetManufacturers(ctx context.Context) ([]dto.NamedDTO, error) {
	return s.catalogRepo.GetManufacturers(ctx)
}

func (s *ReferenceService) GetCategories(ctx context.Context) ([]dto.NamedDTO, error) {
	return s.catalogRepo.GetCategories(ctx)
}

func (s *ReferenceService) GetModels(ctx context.Context) ([]dto.ModelDTO, error) {
	return s.modelRepo.GetModels(ctx)
}
