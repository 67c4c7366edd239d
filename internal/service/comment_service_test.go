package service

import (
	"context"
	"strings"
	"testing"

	"teamdex/internal/models"

	"github.com/stretchr/testify/require"
)

func newCommentService() (*CommentService, *commentRepoStub, *teamRepoStub) {
	commentRepo := noopCommentRepo()
	teamRepo := noopTeamRepo()
	return NewCommentService(commentRepo, teamRepo, noopCatalogRepo()), commentRepo, teamRepo
}

func TestCreateCommentValidation(t *testing.T) {
	t.Parallel()
	svc, _, _ := newCommentService()

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, TargetKind: models.TargetKindTeam, TargetID: 1,
		})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, TargetKind: models.TargetKindTeam, TargetID: 1,
			Content: strings.Repeat("x", maxCommentLen+1),
		})
		assertValidationError(t, err)
	})

	t.Run("unknown target kind", func(t *testing.T) {
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, TargetKind: "move", TargetID: 1, Content: "nice",
		})
		assertValidationError(t, err)
	})

	t.Run("valid team comment", func(t *testing.T) {
		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, TargetKind: models.TargetKindTeam, TargetID: 1, Content: "Solid core",
		})
		require.NoError(t, err)
		require.NotNil(t, comment)
	})

	t.Run("valid pokemon comment", func(t *testing.T) {
		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, TargetKind: models.TargetKindPokemon, TargetID: 25, Content: "Best starter",
		})
		require.NoError(t, err)
		require.NotNil(t, comment)
	})
}

func TestCreateCommentTargetChecks(t *testing.T) {
	t.Parallel()

	t.Run("missing team", func(t *testing.T) {
		teamRepo := noopTeamRepo()
		teamRepo.getByIDFn = func(_ context.Context, id uint) (*models.Team, error) {
			return nil, models.NewNotFoundError("Team", id)
		}
		svc := NewCommentService(noopCommentRepo(), teamRepo, noopCatalogRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, TargetKind: models.TargetKindTeam, TargetID: 9999, Content: "hi",
		})
		assertNotFoundError(t, err)
	})

	t.Run("private team rejects non-owner", func(t *testing.T) {
		teamRepo := noopTeamRepo()
		teamRepo.getByIDFn = func(_ context.Context, id uint) (*models.Team, error) {
			return &models.Team{ID: id, UserID: 1, IsPrivate: true}, nil
		}
		svc := NewCommentService(noopCommentRepo(), teamRepo, noopCatalogRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 2, TargetKind: models.TargetKindTeam, TargetID: 1, Content: "hi",
		})
		assertForbiddenError(t, err)

		// The owner can still comment.
		_, err = svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, TargetKind: models.TargetKindTeam, TargetID: 1, Content: "hi",
		})
		require.NoError(t, err)
	})

	t.Run("missing pokemon", func(t *testing.T) {
		catalog := noopCatalogRepo()
		catalog.getPokemonFn = func(_ context.Context, id uint) (*models.Pokemon, error) {
			return nil, models.NewNotFoundError("Pokemon", id)
		}
		svc := NewCommentService(noopCommentRepo(), noopTeamRepo(), catalog)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, TargetKind: models.TargetKindPokemon, TargetID: 9999, Content: "hi",
		})
		assertNotFoundError(t, err)
	})
}

func TestListCommentsGating(t *testing.T) {
	t.Parallel()

	teamRepo := noopTeamRepo()
	teamRepo.getByIDFn = func(_ context.Context, id uint) (*models.Team, error) {
		return &models.Team{ID: id, UserID: 1, IsPrivate: true}, nil
	}
	commentRepo := noopCommentRepo()
	var gotOrdering string
	var gotLimit, gotOffset int
	commentRepo.listByTargetFn = func(_ context.Context, _ string, _ uint, ordering string, limit, offset int) ([]*models.Comment, error) {
		gotOrdering = ordering
		gotLimit = limit
		gotOffset = offset
		return nil, nil
	}
	svc := NewCommentService(commentRepo, teamRepo, noopCatalogRepo())

	_, err := svc.ListComments(context.Background(), ListCommentsInput{
		ViewerID: 2, TargetKind: models.TargetKindTeam, TargetID: 1,
	})
	assertForbiddenError(t, err)

	_, err = svc.ListComments(context.Background(), ListCommentsInput{
		ViewerID: 1, TargetKind: models.TargetKindTeam, TargetID: 1,
		Ordering: "upvotes", Limit: 25, Offset: 50,
	})
	require.NoError(t, err)
	require.Equal(t, "upvotes", gotOrdering)
	require.Equal(t, 25, gotLimit)
	require.Equal(t, 50, gotOffset)
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	t.Parallel()
	svc, _, _ := newCommentService()

	t.Run("non-author is forbidden", func(t *testing.T) {
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			UserID: 99, CommentID: 1, Content: "edited",
		})
		assertForbiddenError(t, err)
	})

	t.Run("author can edit", func(t *testing.T) {
		comment, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			UserID: 1, CommentID: 1, Content: "edited",
		})
		require.NoError(t, err)
		require.NotNil(t, comment)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			UserID: 1, CommentID: 1, Content: "",
		})
		assertValidationError(t, err)
	})

	t.Run("missing comment", func(t *testing.T) {
		repo := noopCommentRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		svc := NewCommentService(repo, noopTeamRepo(), noopCatalogRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			UserID: 1, CommentID: 9999, Content: "edited",
		})
		assertNotFoundError(t, err)
	})
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	t.Parallel()
	svc, _, _ := newCommentService()

	_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 99, CommentID: 1})
	assertForbiddenError(t, err)

	comment, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1})
	require.NoError(t, err)
	require.NotNil(t, comment)
}
