package service

import (
	"context"
	"errors"

	"carrental-client/internal/domain"
	"carrental-client/internal/logger"
	"carrental-client/internal/storage"
)

type themeService struct {
	store       storage.KVStore
	prefersDark bool
}

// NewThemeService persists the theme under domain.ThemeStorageKey. prefersDark
// is the host preference that "system" resolves to.
func NewThemeService(store storage.KVStore, prefersDark bool) ThemeService {
	return &themeService{store: store, prefersDark: prefersDark}
}

// GetTheme returns the stored theme, "system" when nothing usable is stored
func (s *themeService) GetTheme(ctx context.Context) (domain.Theme, error) {
	raw, err := s.store.Get(ctx, domain.ThemeStorageKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return domain.ThemeSystem, nil
	}
	if err != nil {
		return "", err
	}

	theme, err := domain.ParseTheme(raw)
	if err != nil {
		logger.Warn("Ignoring stored theme", "value", raw)
		return domain.ThemeSystem, nil
	}
	return theme, nil
}

func (s *themeService) SetTheme(ctx context.Context, value string) (domain.Theme, error) {
	theme, err := domain.ParseTheme(value)
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, domain.ThemeStorageKey, string(theme)); err != nil {
		return "", err
	}
	logger.Info("Theme updated", "theme", theme)
	return theme, nil
}

// RootClass is the class to toggle on the document root
func (s *themeService) RootClass(ctx context.Context) (string, error) {
	theme, err := s.GetTheme(ctx)
	if err != nil {
		return "", err
	}
	return theme.RootClass(s.prefersDark), nil
}
