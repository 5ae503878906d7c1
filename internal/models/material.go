package models

import (
	"strings"
	"time"
)

// MaterialTier classifies a material for forecast grouping.
type MaterialTier string

const (
	TierHousehold MaterialTier = "household"
	TierBasic     MaterialTier = "basic"
	TierAdvanced  MaterialTier = "advanced"
)

// Material is a canonical material catalog entry. NormalizedName and every
// normalized entry of AlternativeNames must be unique across the catalog;
// the matcher's lookup table relies on that invariant.
type Material struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	NormalizedName       string       `json:"normalizedName"`
	Category             string       `json:"category"`
	Quantity             int          `json:"quantity,omitempty"`
	Unit                 string       `json:"unit,omitempty"`
	IsReusable           bool         `json:"isReusable"`
	IsOptional           bool         `json:"isOptional"`
	AlternativeNames     []string     `json:"alternativeNames,omitempty"`
	Type                 MaterialTier `json:"materialType"`
	HouseholdAlternative string       `json:"householdAlternative,omitempty"`
}

// NormalizeMaterialName produces the canonical lookup key for a material
// name: trimmed and lowercased.
func NormalizeMaterialName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// UserMaterialOwnership records whether a user owns a material. One record
// exists per (user, material) pair, keyed "<userID>_<materialID>".
type UserMaterialOwnership struct {
	UserID     string    `json:"userId"`
	MaterialID string    `json:"materialId"`
	Owned      bool      `json:"owned"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OwnershipKey builds the deterministic document key for an ownership record
func OwnershipKey(userID, materialID string) string {
	return userID + "_" + materialID
}
