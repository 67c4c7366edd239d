package service

import (
	"context"
	"errors"
	"testing"

	"teamdex/internal/models"
	"teamdex/internal/repository"

	"github.com/stretchr/testify/require"
)

// teamRepoStub is a stub for repository.TeamRepository.
type teamRepoStub struct {
	createFn       func(context.Context, *models.Team) error
	getByIDFn      func(context.Context, uint) (*models.Team, error)
	listByUserFn   func(context.Context, uint, repository.TeamFilter) ([]*models.Team, error)
	updateFn       func(context.Context, *models.Team) error
	deleteFn       func(context.Context, uint) error
	getSlotFn      func(context.Context, uint, int) (*models.TeamSlot, error)
	listSlotsFn    func(context.Context, uint) ([]*models.TeamSlot, error)
	createSlotFn   func(context.Context, *models.TeamSlot, []models.Move) error
	updateSlotFn   func(context.Context, *models.TeamSlot, []models.Move, bool) error
	deleteSlotFn   func(context.Context, uint, int) error
	replaceSlotsFn func(context.Context, uint, []*models.TeamSlot, map[int][]models.Move) error
}

func (s *teamRepoStub) Create(ctx context.Context, team *models.Team) error {
	return s.createFn(ctx, team)
}
func (s *teamRepoStub) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	return s.getByIDFn(ctx, id)
}
func (s *teamRepoStub) ListByUser(ctx context.Context, userID uint, f repository.TeamFilter) ([]*models.Team, error) {
	return s.listByUserFn(ctx, userID, f)
}
func (s *teamRepoStub) Update(ctx context.Context, team *models.Team) error {
	return s.updateFn(ctx, team)
}
func (s *teamRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *teamRepoStub) GetSlot(ctx context.Context, teamID uint, slot int) (*models.TeamSlot, error) {
	return s.getSlotFn(ctx, teamID, slot)
}
func (s *teamRepoStub) ListSlots(ctx context.Context, teamID uint) ([]*models.TeamSlot, error) {
	return s.listSlotsFn(ctx, teamID)
}
func (s *teamRepoStub) CreateSlot(ctx context.Context, slot *models.TeamSlot, moves []models.Move) error {
	return s.createSlotFn(ctx, slot, moves)
}
func (s *teamRepoStub) UpdateSlot(ctx context.Context, slot *models.TeamSlot, moves []models.Move, replaceMoves bool) error {
	return s.updateSlotFn(ctx, slot, moves, replaceMoves)
}
func (s *teamRepoStub) DeleteSlot(ctx context.Context, teamID uint, slot int) error {
	return s.deleteSlotFn(ctx, teamID, slot)
}
func (s *teamRepoStub) ReplaceSlots(ctx context.Context, teamID uint, slots []*models.TeamSlot, movesBySlot map[int][]models.Move) error {
	return s.replaceSlotsFn(ctx, teamID, slots, movesBySlot)
}

// noopTeamRepo returns a stub whose GetByID yields a public team owned by user 1.
func noopTeamRepo() *teamRepoStub {
	return &teamRepoStub{
		createFn: func(_ context.Context, _ *models.Team) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Team, error) {
			return &models.Team{ID: id, Name: "Test Team", UserID: 1}, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _ repository.TeamFilter) ([]*models.Team, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Team) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		getSlotFn: func(_ context.Context, teamID uint, slot int) (*models.TeamSlot, error) {
			return &models.TeamSlot{ID: 1, TeamID: teamID, Slot: slot, PokemonID: 1}, nil
		},
		listSlotsFn:  func(_ context.Context, _ uint) ([]*models.TeamSlot, error) { return nil, nil },
		createSlotFn: func(_ context.Context, _ *models.TeamSlot, _ []models.Move) error { return nil },
		updateSlotFn: func(_ context.Context, _ *models.TeamSlot, _ []models.Move, _ bool) error {
			return nil
		},
		deleteSlotFn: func(_ context.Context, _ uint, _ int) error { return nil },
		replaceSlotsFn: func(_ context.Context, _ uint, _ []*models.TeamSlot, _ map[int][]models.Move) error {
			return nil
		},
	}
}

// catalogRepoStub is a stub for repository.CatalogRepository.
type catalogRepoStub struct {
	getPokemonFn    func(context.Context, uint) (*models.Pokemon, error)
	listPokemonFn   func(context.Context, repository.PokemonFilter) ([]*models.Pokemon, error)
	getMoveFn       func(context.Context, uint) (*models.Move, error)
	getMovesByIDsFn func(context.Context, []uint) ([]models.Move, error)
	listMovesFn     func(context.Context, repository.MoveFilter) ([]*models.Move, error)
	listTypesFn     func(context.Context) ([]models.Type, error)
}

func (s *catalogRepoStub) GetPokemon(ctx context.Context, id uint) (*models.Pokemon, error) {
	return s.getPokemonFn(ctx, id)
}
func (s *catalogRepoStub) ListPokemon(ctx context.Context, f repository.PokemonFilter) ([]*models.Pokemon, error) {
	return s.listPokemonFn(ctx, f)
}
func (s *catalogRepoStub) GetMove(ctx context.Context, id uint) (*models.Move, error) {
	return s.getMoveFn(ctx, id)
}
func (s *catalogRepoStub) GetMovesByIDs(ctx context.Context, ids []uint) ([]models.Move, error) {
	return s.getMovesByIDsFn(ctx, ids)
}
func (s *catalogRepoStub) ListMoves(ctx context.Context, f repository.MoveFilter) ([]*models.Move, error) {
	return s.listMovesFn(ctx, f)
}
func (s *catalogRepoStub) ListTypes(ctx context.Context) ([]models.Type, error) {
	return s.listTypesFn(ctx)
}

// noopCatalogRepo returns a stub where every Pokémon and move exists.
func noopCatalogRepo() *catalogRepoStub {
	return &catalogRepoStub{
		getPokemonFn: func(_ context.Context, id uint) (*models.Pokemon, error) {
			return &models.Pokemon{ID: id, Name: "Pikachu"}, nil
		},
		listPokemonFn: func(_ context.Context, _ repository.PokemonFilter) ([]*models.Pokemon, error) {
			return nil, nil
		},
		getMoveFn: func(_ context.Context, id uint) (*models.Move, error) {
			return &models.Move{ID: id, Name: "Thunderbolt"}, nil
		},
		getMovesByIDsFn: func(_ context.Context, ids []uint) ([]models.Move, error) {
			moves := make([]models.Move, 0, len(ids))
			for _, id := range ids {
				moves = append(moves, models.Move{ID: id})
			}
			return moves, nil
		},
		listMovesFn: func(_ context.Context, _ repository.MoveFilter) ([]*models.Move, error) {
			return nil, nil
		},
		listTypesFn: func(_ context.Context) ([]models.Type, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listByTargetFn func(context.Context, string, uint, string, int, int) ([]*models.Comment, error)
	updateFn       func(context.Context, *models.Comment) error
	deleteFn       func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByTarget(ctx context.Context, targetKind string, targetID uint, ordering string, limit, offset int) ([]*models.Comment, error) {
	return s.listByTargetFn(ctx, targetKind, targetID, ordering, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1, TargetKind: models.TargetKindTeam, TargetID: 1}, nil
		},
		listByTargetFn: func(_ context.Context, _ string, _ uint, _ string, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// voteRepoStub is a stub for repository.VoteRepository.
type voteRepoStub struct {
	createFn   func(context.Context, *models.Vote) error
	getFn      func(context.Context, uint, uint) (*models.Vote, error)
	deleteFn   func(context.Context, uint, uint) (bool, error)
	countFn    func(context.Context, uint, bool) (int64, error)
}

func (s *voteRepoStub) Create(ctx context.Context, vote *models.Vote) error {
	return s.createFn(ctx, vote)
}
func (s *voteRepoStub) GetByUserAndComment(ctx context.Context, userID, commentID uint) (*models.Vote, error) {
	return s.getFn(ctx, userID, commentID)
}
func (s *voteRepoStub) DeleteByUserAndComment(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.deleteFn(ctx, userID, commentID)
}
func (s *voteRepoStub) CountByComment(ctx context.Context, commentID uint, isUpvote bool) (int64, error) {
	return s.countFn(ctx, commentID, isUpvote)
}

func noopVoteRepo() *voteRepoStub {
	return &voteRepoStub{
		createFn: func(_ context.Context, _ *models.Vote) error { return nil },
		getFn:    func(_ context.Context, _, _ uint) (*models.Vote, error) { return nil, nil },
		deleteFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		countFn:  func(_ context.Context, _ uint, _ bool) (int64, error) { return 0, nil },
	}
}

// favoriteRepoStub is a stub for repository.FavoriteRepository.
type favoriteRepoStub struct {
	addFn    func(context.Context, *models.Favorite) error
	removeFn func(context.Context, uint, string, uint) (bool, error)
	listFn   func(context.Context, uint) ([]models.Favorite, error)
}

func (s *favoriteRepoStub) Add(ctx context.Context, favorite *models.Favorite) error {
	return s.addFn(ctx, favorite)
}
func (s *favoriteRepoStub) Remove(ctx context.Context, userID uint, targetKind string, targetID uint) (bool, error) {
	return s.removeFn(ctx, userID, targetKind, targetID)
}
func (s *favoriteRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	return s.listFn(ctx, userID)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		addFn:    func(_ context.Context, _ *models.Favorite) error { return nil },
		removeFn: func(_ context.Context, _ uint, _ string, _ uint) (bool, error) { return true, nil },
		listFn:   func(_ context.Context, _ uint) ([]models.Favorite, error) { return nil, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}
