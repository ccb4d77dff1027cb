package tags

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tagdeck/tagdeck/pkg/tagdeck/models"
)

// ValidationError represents a rejected write (missing key, unknown category)
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a database connection or query failure
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Repository provides durable access to tag records. It keeps no cache;
// callers refresh their own view after mutations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a tag repository over the given database
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// mutableColumns are the columns replaced when an upsert hits an existing id.
// created_at is deliberately absent: it is written on insert and never again.
var mutableColumns = []string{
	"name", "description", "category", "color",
	"url", "favicon", "is_active", "click_count", "updated_at",
}

// ListAll returns every tag record ordered by updated_at descending
func (r *Repository) ListAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&tags).Error; err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return tags, nil
}

// Upsert inserts the tag or, when the id already exists, replaces all mutable
// fields. updated_at is persisted as supplied by the caller; the click path
// stamps server time instead.
func (r *Repository) Upsert(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		return &ValidationError{"missing tag id"}
	}
	if strings.TrimSpace(tag.Name) == "" {
		return &ValidationError{"missing tag name"}
	}
	if tag.Category != "" && !models.ValidCategory(tag.Category) {
		return &ValidationError{"unknown category: " + tag.Category}
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(mutableColumns),
	}).Create(tag).Error
	if err != nil {
		return &StorageError{Op: "upsert", Err: err}
	}
	return nil
}

// Delete removes a tag row. Deleting a non-existent id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{"missing tag id"}
	}
	if err := r.db.WithContext(ctx).Delete(&models.Tag{}, "id = ?", id).Error; err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	return nil
}

// IncrementClick bumps the click counter and refreshes updated_at in a single
// UPDATE statement, so concurrent clicks on the same id never lose increments.
func (r *Repository) IncrementClick(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{"missing tag id"}
	}
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"click_count": gorm.Expr("click_count + ?", 1),
			"updated_at":  time.Now(),
		}).Error
	if err != nil {
		return &StorageError{Op: "click", Err: err}
	}
	return nil
}
