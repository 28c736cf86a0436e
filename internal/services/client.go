package services

import (
	"context"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/types"

	"go.uber.org/zap"
)

type ClientServiceInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error)
	FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error)
	UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientDTO, error)
}

type ClientService struct {
	clientRepo repositories.ClientRepositoryInterface
	logger     *zap.Logger
}

func NewClientService(clientRepo repositories.ClientRepositoryInterface, logger *zap.Logger) ClientServiceInterface {
	return &ClientService{clientRepo: clientRepo, logger: logger}
}

func (s *ClientService) GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error) {
	return s.clientRepo.GetClients(ctx, filter)
}

func (s *ClientService) FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error) {
	return s.clientRepo.FindClient(ctx, id)
}

func (s *ClientService) UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientDTO, error) {
	client, err := s.clientRepo.UpdateClient(ctx, id, payload)
	if err != nil {
		s.logger.Error("не удалось обновить клиента", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return client, nil
}
