package repository

import (
	"context"
	"errors"

	"teamdex/internal/models"

	"gorm.io/gorm"
)

// Comment orderings accepted by ListByTarget.
const (
	OrderNewest    = "newest"
	OrderOldest    = "oldest"
	OrderUpvotes   = "upvotes"
	OrderDownvotes = "downvotes"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByTarget(ctx context.Context, targetKind string, targetID uint, ordering string, limit, offset int) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.applyVoteCounts(r.db.WithContext(ctx)).
		Preload("User").
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByTarget(
	ctx context.Context,
	targetKind string,
	targetID uint,
	ordering string,
	limit, offset int,
) ([]*models.Comment, error) {
	db := r.applyVoteCounts(r.db.WithContext(ctx)).
		Preload("User").
		Where("target_kind = ? AND target_id = ?", targetKind, targetID)

	// Ties always break by id ascending so pagination is deterministic.
	switch ordering {
	case OrderOldest:
		db = db.Order("comments.created_at ASC, comments.id ASC")
	case OrderUpvotes:
		db = db.Order("upvotes_count DESC, comments.id ASC")
	case OrderDownvotes:
		db = db.Order("downvotes_count DESC, comments.id ASC")
	default: // newest
		db = db.Order("comments.created_at DESC, comments.id ASC")
	}

	var comments []*models.Comment
	err := db.Limit(limit).Offset(offset).Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Update("content", comment.Content).Error
}

// Delete removes the comment and hard-deletes its votes in one transaction.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

// applyVoteCounts adds subqueries to fetch both vote counts in a single query.
func (r *commentRepository) applyVoteCounts(db *gorm.DB) *gorm.DB {
	return db.Select(
		"comments.*, "+
			"(SELECT COUNT(*) FROM votes WHERE votes.comment_id = comments.id AND votes.is_upvote = ?) as upvotes_count, "+
			"(SELECT COUNT(*) FROM votes WHERE votes.comment_id = comments.id AND votes.is_upvote = ?) as downvotes_count",
		true, false,
	)
}
