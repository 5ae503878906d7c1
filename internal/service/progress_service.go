package service

import (
	"errors"
	"fmt"
	"time"

	"sproutplan/internal/models"
	"sproutplan/internal/progress"
	"sproutplan/internal/repository"
)

// ProgressService handles per-child skill progress
type ProgressService struct {
	skillRepo    repository.SkillRepository
	progressRepo repository.ProgressRepository
}

// NewProgressService creates a new progress service
func NewProgressService(skillRepo repository.SkillRepository, progressRepo repository.ProgressRepository) *ProgressService {
	return &ProgressService{
		skillRepo:    skillRepo,
		progressRepo: progressRepo,
	}
}

// ChildOverview merges the skill catalog with the child's records and
// aggregates per developmental area. Skills without a record show as not
// started.
func (s *ProgressService) ChildOverview(childID string) ([]progress.MergedSkill, map[models.Area]progress.AreaProgress, error) {
	skills, err := s.skillRepo.ListSkills()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load skill catalog: %w", err)
	}

	records, err := s.progressRepo.ListByChild(childID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load child progress: %w", err)
	}

	merged := progress.Merge(skills, records)
	return merged, progress.ByArea(merged), nil
}

// ApplyAssessment stores the records of one assessment pass as a single
// all-or-nothing batch. Each record needs at least one of status and
// progress level; the other is derived.
func (s *ProgressService) ApplyAssessment(childID string, records []models.ChildSkillProgress) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range records {
		if records[i].ChildID == "" {
			records[i].ChildID = childID
		}
		if records[i].SkillID == "" {
			return errors.New("assessment record missing skill id")
		}
		if records[i].LastAssessed.IsZero() {
			records[i].LastAssessed = now
		}
		records[i].Normalize()
	}

	if err := s.progressRepo.ApplyBatch(childID, records); err != nil {
		return fmt.Errorf("failed to apply assessment: %w", err)
	}
	return nil
}
