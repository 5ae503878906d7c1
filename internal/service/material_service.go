// Package service holds the business logic on top of the repositories:
// progress assessment, weekly plan assembly and the materials forecast.
// Services take repository interfaces so tests can run on in-memory fakes.
package service

import (
	"fmt"

	"sproutplan/internal/materials"
	"sproutplan/internal/models"
	"sproutplan/internal/repository"
)

// MaterialService handles the material catalog and per-user ownership
type MaterialService struct {
	materialRepo  repository.MaterialRepository
	ownershipRepo repository.OwnershipRepository
}

// NewMaterialService creates a new material service
func NewMaterialService(materialRepo repository.MaterialRepository, ownershipRepo repository.OwnershipRepository) *MaterialService {
	return &MaterialService{
		materialRepo:  materialRepo,
		ownershipRepo: ownershipRepo,
	}
}

// BuildMatcher loads the catalog and builds a fresh name matcher. Matchers
// are per-operation; nothing caches them across calls.
func (s *MaterialService) BuildMatcher() (*materials.Matcher, error) {
	catalog, err := s.materialRepo.ListMaterials()
	if err != nil {
		return nil, fmt.Errorf("failed to load material catalog: %w", err)
	}
	return materials.NewMatcher(catalog)
}

// ListMaterials returns the full material catalog
func (s *MaterialService) ListMaterials() ([]models.Material, error) {
	return s.materialRepo.ListMaterials()
}

// OwnedMaterialIDs returns the set of material ids the user owns
func (s *MaterialService) OwnedMaterialIDs(userID string) (map[string]bool, error) {
	return s.ownershipRepo.OwnedMaterialIDs(userID)
}

// SetOwned toggles ownership of one material for a user
func (s *MaterialService) SetOwned(userID, materialID string, owned bool) error {
	if err := s.ownershipRepo.SetOwned(userID, materialID, owned); err != nil {
		return fmt.Errorf("failed to record ownership: %w", err)
	}
	return nil
}
