package services

import (
	"context"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
)

type SettingsServiceInterface interface {
	GetSettings(ctx context.Context) ([]dto.SettingDTO, error)
	GetSetting(ctx context.Context, key string) (*dto.SettingDTO, error)
	SetSetting(ctx context.Context, key, value string) error
}

type SettingsService struct {
	settingsRepo repositories.SettingsRepositoryInterface
}

func NewSettingsService(settingsRepo repositories.SettingsRepositoryInterface) SettingsServiceInterface {
	return &SettingsService{settingsRepo: settingsRepo}
}

func (s *SettingsService) GetSettings(ctx context.Context) ([]dto.SettingDTO, error) {
	return s.settingsRepo.GetAll(ctx)
}

func (s *SettingsService) GetSetting(ctx context.Context, key string) (*dto.SettingDTO, error) {
	value, err := s.settingsRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &dto.SettingDTO{Key: key, Value: value}, nil
}

func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.settingsRepo.Set(ctx, key, value)
}
