package repository

import (
	"context"

	"teamdex/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository defines interface for favorite operations.
type FavoriteRepository interface {
	Add(ctx context.Context, favorite *models.Favorite) error
	Remove(ctx context.Context, userID uint, targetKind string, targetID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add is idempotent: a duplicate favorite is silently ignored so double-taps
// in the client never error.
func (r *favoriteRepository) Add(ctx context.Context, favorite *models.Favorite) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(favorite).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, userID uint, targetKind string, targetID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, targetKind, targetID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&favorites).Error
	return favorites, err
}
