package services

import (
	"context"
	"encoding/json"
	"time"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"

	"go.uber.org/zap"
)

const accessorySuggestionsCacheKey = "accessory:suggestions"

// AccessoryService ведёт словарь подсказок аксессуаров. Список читается
// при каждом открытии формы приёмки, поэтому держится в Redis; любая
// запись сбрасывает кеш.
type AccessoryServiceInterface interface {
	GetSuggestions(ctx context.Context) ([]dto.SuggestionDTO, error)
	AddSuggestion(ctx context.Context, payload dto.CreateSuggestionDTO) (*dto.SuggestionDTO, error)
	RemoveSuggestion(ctx context.Context, id uint64) error
}

type AccessoryService struct {
	accessoryRepo repositories.AccessoryRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	cacheTTL      time.Duration
	logger        *zap.Logger
}

func NewAccessoryService(
	accessoryRepo repositories.AccessoryRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) AccessoryServiceInterface {
	return &AccessoryService{
		accessoryRepo: accessoryRepo,
		cacheRepo:     cacheRepo,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

func (s *AccessoryService) GetSuggestions(ctx context.Context) ([]dto.SuggestionDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, accessorySuggestionsCacheKey); err == nil {
		var suggestions []dto.SuggestionDTO
		if err := json.Unmarshal([]byte(cached), &suggestions); err == nil {
			return suggestions, nil
		}
		// Битое содержимое кеша не повод отдавать ошибку — читаем базу.
		s.logger.Warn("кеш подсказок повреждён, читаем из базы")
	}

	suggestions, err := s.accessoryRepo.GetSuggestions(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(suggestions); err == nil {
		if err := s.cacheRepo.Set(ctx, accessorySuggestionsCacheKey, data, s.cacheTTL); err != nil {
			s.logger.Warn("не удалось записать подсказки в кеш", zap.Error(err))
		}
	}
	return suggestions, nil
}

func (s *AccessoryService) AddSuggestion(ctx context.Context, payload dto.CreateSuggestionDTO) (*dto.SuggestionDTO, error) {
	suggestion, err := s.accessoryRepo.AddSuggestion(ctx, payload.Name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return suggestion, nil
}

func (s *AccessoryService) RemoveSuggestion(ctx context.Context, id uint64) error {
	if err := s.accessoryRepo.RemoveSuggestion(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AccessoryService) invalidate(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, accessorySuggestionsCacheKey); err != nil {
		s.logger.Warn("не удалось сбросить кеш подсказок", zap.Error(err))
	}
}
