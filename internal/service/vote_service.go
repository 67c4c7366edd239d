package service

import (
	"context"

	"teamdex/internal/middleware"
	"teamdex/internal/models"
	"teamdex/internal/repository"
)

// VoteService owns the vote ledger rules: one vote per (user, comment), no
// silent direction switches, retraction before re-voting.
type VoteService struct {
	voteRepo    repository.VoteRepository
	commentRepo repository.CommentRepository
}

type CastVoteInput struct {
	UserID     uint
	CommentID  uint
	TargetKind string
	IsUpvote   bool
}

type RetractVoteInput struct {
	UserID     uint
	CommentID  uint
	TargetKind string
}

func NewVoteService(voteRepo repository.VoteRepository, commentRepo repository.CommentRepository) *VoteService {
	return &VoteService{
		voteRepo:    voteRepo,
		commentRepo: commentRepo,
	}
}

// CastVote records a vote on a comment. A second vote by the same user fails
// with a conflict regardless of direction; the caller must retract first.
// The uniqueness check is the database constraint, not a read-then-write.
func (s *VoteService) CastVote(ctx context.Context, in CastVoteInput) (*models.Comment, error) {
	if _, err := s.commentForKind(ctx, in.CommentID, in.TargetKind); err != nil {
		return nil, err
	}

	vote := &models.Vote{
		UserID:    in.UserID,
		CommentID: in.CommentID,
		IsUpvote:  in.IsUpvote,
	}
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		return nil, err
	}

	direction := "down"
	if in.IsUpvote {
		direction = "up"
	}
	middleware.VotesCast.WithLabelValues(direction).Inc()

	return s.commentRepo.GetByID(ctx, in.CommentID)
}

// RetractVote removes the caller's vote. Retracting when no vote exists is
// NotFound, mirroring the cast-side conflict.
func (s *VoteService) RetractVote(ctx context.Context, in RetractVoteInput) error {
	if _, err := s.commentForKind(ctx, in.CommentID, in.TargetKind); err != nil {
		return err
	}

	deleted, err := s.voteRepo.DeleteByUserAndComment(ctx, in.UserID, in.CommentID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Vote", in.CommentID)
	}
	return nil
}

// commentForKind loads the comment and checks it belongs to the kind named in
// the URL; a mismatch reads as the comment not existing under that kind.
func (s *VoteService) commentForKind(ctx context.Context, commentID uint, targetKind string) (*models.Comment, error) {
	if !models.ValidTargetKind(targetKind) {
		return nil, models.NewValidationError("Unknown comment target kind")
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.TargetKind != targetKind {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	return comment, nil
}
