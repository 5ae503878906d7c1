package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sproutplan/internal/database"
	"sproutplan/internal/models"
)

// SQLChildRepository handles database operations for child profiles
type SQLChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *SQLChildRepository {
	return &SQLChildRepository{db: db}
}

// GetChild retrieves a child profile by id
func (r *SQLChildRepository) GetChild(childID string) (*models.Child, error) {
	var child models.Child
	var interests string
	err := r.db.QueryRow(`
		SELECT id, user_id, name, birthdate, interests, created_at, updated_at
		FROM children
		WHERE id = ?
	`, childID).Scan(
		&child.ID, &child.UserID, &child.Name, &child.Birthdate,
		&interests, &child.CreatedAt, &child.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query child: %w", err)
	}

	child.Interests, err = decodeStrings(interests)
	if err != nil {
		return nil, fmt.Errorf("failed to decode interests: %w", err)
	}
	return &child, nil
}

// ListChildrenByUser returns all children belonging to a user, by name
func (r *SQLChildRepository) ListChildrenByUser(userID string) ([]models.Child, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, name, birthdate, interests, created_at, updated_at
		FROM children
		WHERE user_id = ?
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var child models.Child
		var interests string
		if err := rows.Scan(
			&child.ID, &child.UserID, &child.Name, &child.Birthdate,
			&interests, &child.CreatedAt, &child.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		child.Interests, err = decodeStrings(interests)
		if err != nil {
			return nil, fmt.Errorf("failed to decode interests: %w", err)
		}
		children = append(children, child)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read children: %w", err)
	}
	return children, nil
}

// CreateChild stores a new child profile
func (r *SQLChildRepository) CreateChild(child *models.Child) error {
	if child.ID == "" {
		child.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	child.CreatedAt = now
	child.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO children (id, user_id, name, birthdate, interests, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, child.ID, child.UserID, child.Name, child.Birthdate, encodeStrings(child.Interests), child.CreatedAt, child.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert child: %w", err)
	}
	return nil
}
