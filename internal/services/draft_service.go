package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Hues-Apply/profile-sync/internal/models"
)

// DraftService persists unsaved section edits so the full profile reload
// after a save doesn't silently destroy work done in another tab. Drafts
// are stored as opaque local-shape JSON per (user, section).
type DraftService struct {
	DB *gorm.DB
}

func NewDraftService(db *gorm.DB) *DraftService {
	return &DraftService{DB: db}
}

// SaveDraft upserts the draft for one section.
func (s *DraftService) SaveDraft(userKey, section, payload string) error {
	var draft models.SectionDraft
	err := s.DB.Where(models.SectionDraft{UserKey: userKey, Section: section}).
		Assign(models.SectionDraft{Payload: payload}).
		FirstOrCreate(&draft).Error
	if err != nil {
		return fmt.Errorf("failed to save draft for %s: %w", section, err)
	}
	return nil
}

// GetDrafts returns all drafts for the user, most recently updated first.
func (s *DraftService) GetDrafts(userKey string) ([]models.SectionDraft, error) {
	var drafts []models.SectionDraft
	err := s.DB.Where("user_key = ?", userKey).Order("updated_at DESC").Find(&drafts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load drafts: %w", err)
	}
	return drafts, nil
}

// DeleteDraft removes the draft for one section. Deleting a draft that
// doesn't exist is fine.
func (s *DraftService) DeleteDraft(userKey, section string) error {
	err := s.DB.Where("user_key = ? AND section = ?", userKey, section).
		Delete(&models.SectionDraft{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete draft for %s: %w", section, err)
	}
	return nil
}
