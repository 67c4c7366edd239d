package service

import (
	"context"
	"testing"

	"teamdex/internal/models"

	"github.com/stretchr/testify/require"
)

func TestCastVote(t *testing.T) {
	t.Parallel()

	t.Run("records upvote", func(t *testing.T) {
		var created *models.Vote
		voteRepo := noopVoteRepo()
		voteRepo.createFn = func(_ context.Context, vote *models.Vote) error {
			created = vote
			return nil
		}
		svc := NewVoteService(voteRepo, noopCommentRepo())
		comment, err := svc.CastVote(context.Background(), CastVoteInput{
			UserID: 3, CommentID: 1, TargetKind: models.TargetKindTeam, IsUpvote: true,
		})
		require.NoError(t, err)
		require.NotNil(t, comment)
		require.Equal(t, uint(3), created.UserID)
		require.Equal(t, uint(1), created.CommentID)
		require.True(t, created.IsUpvote)
	})

	t.Run("second vote conflicts regardless of direction", func(t *testing.T) {
		voteRepo := noopVoteRepo()
		voteRepo.createFn = func(_ context.Context, _ *models.Vote) error {
			return models.NewConflictError("You have already voted on this comment")
		}
		svc := NewVoteService(voteRepo, noopCommentRepo())

		_, err := svc.CastVote(context.Background(), CastVoteInput{
			UserID: 3, CommentID: 1, TargetKind: models.TargetKindTeam, IsUpvote: true,
		})
		assertConflictError(t, err)

		// Switching direction without retracting is the same conflict.
		_, err = svc.CastVote(context.Background(), CastVoteInput{
			UserID: 3, CommentID: 1, TargetKind: models.TargetKindTeam, IsUpvote: false,
		})
		assertConflictError(t, err)
	})

	t.Run("invalid kind", func(t *testing.T) {
		svc := NewVoteService(noopVoteRepo(), noopCommentRepo())
		_, err := svc.CastVote(context.Background(), CastVoteInput{
			UserID: 3, CommentID: 1, TargetKind: "move", IsUpvote: true,
		})
		assertValidationError(t, err)
	})

	t.Run("kind mismatch reads as not found", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1, TargetKind: models.TargetKindPokemon, TargetID: 25}, nil
		}
		svc := NewVoteService(noopVoteRepo(), commentRepo)
		_, err := svc.CastVote(context.Background(), CastVoteInput{
			UserID: 3, CommentID: 1, TargetKind: models.TargetKindTeam, IsUpvote: true,
		})
		assertNotFoundError(t, err)
	})

	t.Run("missing comment", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		svc := NewVoteService(noopVoteRepo(), commentRepo)
		_, err := svc.CastVote(context.Background(), CastVoteInput{
			UserID: 3, CommentID: 9999, TargetKind: models.TargetKindTeam, IsUpvote: true,
		})
		assertNotFoundError(t, err)
	})
}

func TestRetractVote(t *testing.T) {
	t.Parallel()

	t.Run("removes existing vote", func(t *testing.T) {
		var gotUser, gotComment uint
		voteRepo := noopVoteRepo()
		voteRepo.deleteFn = func(_ context.Context, userID, commentID uint) (bool, error) {
			gotUser = userID
			gotComment = commentID
			return true, nil
		}
		svc := NewVoteService(voteRepo, noopCommentRepo())
		err := svc.RetractVote(context.Background(), RetractVoteInput{
			UserID: 3, CommentID: 1, TargetKind: models.TargetKindTeam,
		})
		require.NoError(t, err)
		require.Equal(t, uint(3), gotUser)
		require.Equal(t, uint(1), gotComment)
	})

	t.Run("no vote to retract", func(t *testing.T) {
		voteRepo := noopVoteRepo()
		voteRepo.deleteFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
		svc := NewVoteService(voteRepo, noopCommentRepo())
		err := svc.RetractVote(context.Background(), RetractVoteInput{
			UserID: 3, CommentID: 1, TargetKind: models.TargetKindTeam,
		})
		assertNotFoundError(t, err)
	})

	t.Run("kind mismatch reads as not found", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1, TargetKind: models.TargetKindPokemon, TargetID: 25}, nil
		}
		svc := NewVoteService(noopVoteRepo(), commentRepo)
		err := svc.RetractVote(context.Background(), RetractVoteInput{
			UserID: 3, CommentID: 1, TargetKind: models.TargetKindTeam,
		})
		assertNotFoundError(t, err)
	})
}
