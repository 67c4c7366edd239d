package service

import (
	"context"

	"teamdex/internal/models"
	"teamdex/internal/repository"
)

// CommentService owns comment lifecycle rules: the target must exist and be
// readable by the caller, author and target are fixed at creation, and only
// the author may update or delete.
type CommentService struct {
	commentRepo repository.CommentRepository
	teamRepo    repository.TeamRepository
	catalogRepo repository.CatalogRepository
}

type CreateCommentInput struct {
	UserID     uint
	TargetKind string
	TargetID   uint
	Content    string
}

type ListCommentsInput struct {
	ViewerID   uint
	TargetKind string
	TargetID   uint
	Ordering   string
	Limit      int
	Offset     int
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

const maxCommentLen = 10000

func NewCommentService(
	commentRepo repository.CommentRepository,
	teamRepo repository.TeamRepository,
	catalogRepo repository.CatalogRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		teamRepo:    teamRepo,
		catalogRepo: catalogRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := s.checkTarget(ctx, in.TargetKind, in.TargetID, in.UserID); err != nil {
		return nil, err
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Content:    in.Content,
		UserID:     in.UserID,
		TargetKind: in.TargetKind,
		TargetID:   in.TargetID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, in ListCommentsInput) ([]*models.Comment, error) {
	if err := s.checkTarget(ctx, in.TargetKind, in.TargetID, in.ViewerID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByTarget(ctx, in.TargetKind, in.TargetID, in.Ordering, in.Limit, in.Offset)
}

// UpdateComment changes content only; author and target are immutable.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}

	return comment, nil
}

// checkTarget verifies the comment target exists and is readable by the
// viewer. Private teams reject everyone but their owner.
func (s *CommentService) checkTarget(ctx context.Context, targetKind string, targetID, viewerID uint) error {
	switch targetKind {
	case models.TargetKindTeam:
		team, err := s.teamRepo.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if team.IsPrivate && team.UserID != viewerID {
			return models.NewForbiddenError("This team is private")
		}
		return nil
	case models.TargetKindPokemon:
		_, err := s.catalogRepo.GetPokemon(ctx, targetID)
		return err
	default:
		return models.NewValidationError("Unknown comment target kind")
	}
}
