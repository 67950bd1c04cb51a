package settings

import (
	"context"
	"encoding/json"

	"perfect-cfw/internal/repository"
)

// Service is a typed accessor over the persisted key/value settings store.
// Callers never touch raw JSON values directly.
type Service interface {
	GetBool(ctx context.Context, key string, defaultValue bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool, description string) error
	GetString(ctx context.Context, key string, defaultValue string) (string, error)
	SetString(ctx context.Context, key, value, description string) error
}

type service struct {
	settingRepo repository.SettingRepository
}

func NewService(settingRepo repository.SettingRepository) Service {
	return &service{settingRepo: settingRepo}
}

func (s *service) GetBool(ctx context.Context, key string, defaultValue bool) (bool, error) {
	setting, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		return defaultValue, err
	}
	if setting == nil {
		return defaultValue, nil
	}

	var value bool
	if err := json.Unmarshal(setting.Value, &value); err != nil {
		return defaultValue, nil
	}
	return value, nil
}

func (s *service) SetBool(ctx context.Context, key string, value bool, description string) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.settingRepo.Upsert(ctx, key, raw, description)
	return err
}

func (s *service) GetString(ctx context.Context, key string, defaultValue string) (string, error) {
	setting, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		return defaultValue, err
	}
	if setting == nil {
		return defaultValue, nil
	}

	var value string
	if err := json.Unmarshal(setting.Value, &value); err != nil {
		return defaultValue, nil
	}
	return value, nil
}

func (s *service) SetString(ctx context.Context, key, value, description string) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.settingRepo.Upsert(ctx, key, raw, description)
	return err
}
