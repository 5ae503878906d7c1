package repository

import (
	"encoding/json"
	"fmt"

	"sproutplan/internal/models"
)

// String-list columns are stored as JSON text so the schema stays the same
// across all three dialects.

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(values)
	return string(b)
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode string list %q: %w", raw, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func encodeBrackets(brackets []models.Bracket) string {
	values := make([]string, len(brackets))
	for i, b := range brackets {
		values[i] = string(b)
	}
	return encodeStrings(values)
}

func decodeBrackets(raw string) ([]models.Bracket, error) {
	values, err := decodeStrings(raw)
	if err != nil {
		return nil, err
	}
	brackets := make([]models.Bracket, len(values))
	for i, v := range values {
		brackets[i] = models.Bracket(v)
	}
	return brackets, nil
}
