package repository

import (
	"context"

	"teamdex/internal/models"

	"gorm.io/gorm"
)

// VoteRepository defines interface for vote ledger operations.
// Uniqueness of (user, comment) is enforced by the database; Create maps the
// constraint violation to an AlreadyVoted conflict rather than pre-checking,
// so concurrent casts cannot race past the rule.
type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	GetByUserAndComment(ctx context.Context, userID, commentID uint) (*models.Vote, error)
	DeleteByUserAndComment(ctx context.Context, userID, commentID uint) (bool, error)
	CountByComment(ctx context.Context, commentID uint, isUpvote bool) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		if isDuplicateKey(err) {
			return models.NewConflictError("Already voted on this comment")
		}
		return err
	}
	return nil
}

func (r *voteRepository) GetByUserAndComment(ctx context.Context, userID, commentID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// DeleteByUserAndComment hard-deletes the vote and reports whether one existed.
func (r *voteRepository) DeleteByUserAndComment(ctx context.Context, userID, commentID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.Vote{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *voteRepository) CountByComment(ctx context.Context, commentID uint, isUpvote bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("comment_id = ? AND is_upvote = ?", commentID, isUpvote).
		Count(&count).Error
	return count, err
}
