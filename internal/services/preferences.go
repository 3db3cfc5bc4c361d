package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/models"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
)

// PreferenceService keeps theme and font as raw string slots.
type PreferenceService interface {
	Load(ctx context.Context) (models.Preferences, error)
	SetTheme(ctx context.Context, theme models.Theme) error
	SetFont(ctx context.Context, font models.Font) error
}

type preferenceService struct {
	repo   slots.Repository
	logger logging.Logger
}

func NewPreferenceService(repo slots.Repository, logger logging.Logger) PreferenceService {
	return &preferenceService{repo: repo, logger: logger}
}

// Load returns the stored preferences. Missing or unknown values fall back
// to the defaults.
func (s *preferenceService) Load(ctx context.Context) (models.Preferences, error) {
	p := models.DefaultPreferences()

	theme, found, err := s.repo.Get(ctx, SlotTheme)
	if err != nil {
		return p, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	if found {
		if t := models.Theme(theme); t.Valid() {
			p.Theme = t
		} else {
			s.logger.Warn(ctx, "ignoring unknown theme", "value", theme)
		}
	}

	font, found, err := s.repo.Get(ctx, SlotFont)
	if err != nil {
		return p, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	if found {
		if f := models.Font(font); f.Valid() {
			p.Font = f
		} else {
			s.logger.Warn(ctx, "ignoring unknown font", "value", font)
		}
	}

	return p, nil
}

func (s *preferenceService) SetTheme(ctx context.Context, theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", common.ErrValidation, theme)
	}
	if err := s.repo.Set(ctx, SlotTheme, string(theme)); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}

func (s *preferenceService) SetFont(ctx context.Context, font models.Font) error {
	if !font.Valid() {
		return fmt.Errorf("%w: unknown font %q", common.ErrValidation, font)
	}
	if err := s.repo.Set(ctx, SlotFont, string(font)); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}
