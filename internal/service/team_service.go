// Package service contains the domain rules that sit between handlers and
// repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"teamdex/internal/models"
	"teamdex/internal/repository"
)

// TeamService enforces the team aggregate rules: slot bounds and uniqueness,
// the moveset cap, ownership, and private-team read gating.
type TeamService struct {
	teamRepo    repository.TeamRepository
	catalogRepo repository.CatalogRepository
}

// SlotInput describes one slot assignment in a create or replace request.
type SlotInput struct {
	Slot      int    `json:"slot"`
	PokemonID uint   `json:"pokemon_id"`
	MoveIDs   []uint `json:"move_ids"`
}

type CreateTeamInput struct {
	UserID    uint
	Name      string
	IsPrivate bool
}

type UpdateTeamInput struct {
	UserID    uint
	TeamID    uint
	Name      *string
	IsPrivate *bool
}

type AddSlotInput struct {
	UserID uint
	TeamID uint
	SlotInput
}

type UpdateSlotInput struct {
	UserID    uint
	TeamID    uint
	Slot      int
	NewSlot   *int
	PokemonID *uint
	MoveIDs   *[]uint
}

type RemoveSlotInput struct {
	UserID uint
	TeamID uint
	Slot   int
}

type ReplaceSlotsInput struct {
	UserID uint
	TeamID uint
	Slots  []SlotInput
}

func NewTeamService(teamRepo repository.TeamRepository, catalogRepo repository.CatalogRepository) *TeamService {
	return &TeamService{
		teamRepo:    teamRepo,
		catalogRepo: catalogRepo,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, in CreateTeamInput) (*models.Team, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(in.Name) > models.MaxTeamNameLen {
		return nil, models.NewValidationError(fmt.Sprintf("Name too long (max %d characters)", models.MaxTeamNameLen))
	}

	team := &models.Team{
		Name:      in.Name,
		UserID:    in.UserID,
		IsPrivate: in.IsPrivate,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return s.teamRepo.GetByID(ctx, team.ID)
}

// GetTeam returns the team if the viewer may read it. viewerID zero means
// anonymous. Private teams are readable only by their owner.
func (s *TeamService) GetTeam(ctx context.Context, teamID, viewerID uint) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.IsPrivate && team.UserID != viewerID {
		return nil, models.NewForbiddenError("This team is private")
	}
	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context, userID uint, f repository.TeamFilter) ([]*models.Team, error) {
	return s.teamRepo.ListByUser(ctx, userID, f)
}

func (s *TeamService) ListSlots(ctx context.Context, teamID, viewerID uint) ([]*models.TeamSlot, error) {
	if _, err := s.GetTeam(ctx, teamID, viewerID); err != nil {
		return nil, err
	}
	return s.teamRepo.ListSlots(ctx, teamID)
}

func (s *TeamService) UpdateTeam(ctx context.Context, in UpdateTeamInput) (*models.Team, error) {
	team, err := s.ownedTeam(ctx, in.TeamID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Name is required")
		}
		if len(*in.Name) > models.MaxTeamNameLen {
			return nil, models.NewValidationError(fmt.Sprintf("Name too long (max %d characters)", models.MaxTeamNameLen))
		}
		team.Name = *in.Name
	}
	if in.IsPrivate != nil {
		team.IsPrivate = *in.IsPrivate
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return s.teamRepo.GetByID(ctx, team.ID)
}

func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID uint) error {
	if _, err := s.ownedTeam(ctx, teamID, userID); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, teamID)
}

func (s *TeamService) AddSlot(ctx context.Context, in AddSlotInput) (*models.TeamSlot, error) {
	if _, err := s.ownedTeam(ctx, in.TeamID, in.UserID); err != nil {
		return nil, err
	}
	if err := validateSlotNumber(in.Slot); err != nil {
		return nil, err
	}
	moves, err := s.resolveSlotRefs(ctx, in.PokemonID, in.MoveIDs)
	if err != nil {
		return nil, err
	}

	slot := &models.TeamSlot{
		TeamID:    in.TeamID,
		Slot:      in.Slot,
		PokemonID: in.PokemonID,
	}
	if err := s.teamRepo.CreateSlot(ctx, slot, moves); err != nil {
		return nil, err
	}
	return s.teamRepo.GetSlot(ctx, in.TeamID, in.Slot)
}

func (s *TeamService) UpdateSlot(ctx context.Context, in UpdateSlotInput) (*models.TeamSlot, error) {
	if _, err := s.ownedTeam(ctx, in.TeamID, in.UserID); err != nil {
		return nil, err
	}
	if err := validateSlotNumber(in.Slot); err != nil {
		return nil, err
	}

	slot, err := s.teamRepo.GetSlot(ctx, in.TeamID, in.Slot)
	if err != nil {
		return nil, err
	}

	// Moving to the same slot number is a no-op, not a conflict.
	if in.NewSlot != nil {
		if err := validateSlotNumber(*in.NewSlot); err != nil {
			return nil, err
		}
		slot.Slot = *in.NewSlot
	}
	if in.PokemonID != nil {
		if _, err := s.catalogRepo.GetPokemon(ctx, *in.PokemonID); err != nil {
			return nil, unknownReference(err)
		}
		slot.PokemonID = *in.PokemonID
	}

	var moves []models.Move
	replaceMoves := false
	if in.MoveIDs != nil {
		replaceMoves = true
		moves, err = s.resolveMoves(ctx, *in.MoveIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.teamRepo.UpdateSlot(ctx, slot, moves, replaceMoves); err != nil {
		return nil, err
	}
	return s.teamRepo.GetSlot(ctx, in.TeamID, slot.Slot)
}

func (s *TeamService) RemoveSlot(ctx context.Context, in RemoveSlotInput) error {
	if _, err := s.ownedTeam(ctx, in.TeamID, in.UserID); err != nil {
		return err
	}
	if err := validateSlotNumber(in.Slot); err != nil {
		return err
	}
	return s.teamRepo.DeleteSlot(ctx, in.TeamID, in.Slot)
}

// ReplaceSlots swaps the whole roster in one transaction; any invalid entry
// rejects the entire batch before the database is touched.
func (s *TeamService) ReplaceSlots(ctx context.Context, in ReplaceSlotsInput) (*models.Team, error) {
	if _, err := s.ownedTeam(ctx, in.TeamID, in.UserID); err != nil {
		return nil, err
	}
	if len(in.Slots) > models.TeamSize {
		return nil, models.NewValidationError(fmt.Sprintf("A team has at most %d slots", models.TeamSize))
	}

	seen := make(map[int]bool, len(in.Slots))
	slots := make([]*models.TeamSlot, 0, len(in.Slots))
	movesBySlot := make(map[int][]models.Move, len(in.Slots))

	for _, slotIn := range in.Slots {
		if err := validateSlotNumber(slotIn.Slot); err != nil {
			return nil, err
		}
		if seen[slotIn.Slot] {
			return nil, models.NewConflictError("Slot is already occupied")
		}
		seen[slotIn.Slot] = true

		moves, err := s.resolveSlotRefs(ctx, slotIn.PokemonID, slotIn.MoveIDs)
		if err != nil {
			return nil, err
		}
		slots = append(slots, &models.TeamSlot{
			TeamID:    in.TeamID,
			Slot:      slotIn.Slot,
			PokemonID: slotIn.PokemonID,
		})
		movesBySlot[slotIn.Slot] = moves
	}

	if err := s.teamRepo.ReplaceSlots(ctx, in.TeamID, slots, movesBySlot); err != nil {
		return nil, err
	}
	return s.teamRepo.GetByID(ctx, in.TeamID)
}

// ownedTeam fetches the team and verifies the caller owns it.
func (s *TeamService) ownedTeam(ctx context.Context, teamID, userID uint) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.UserID != userID {
		return nil, models.NewForbiddenError("You can only modify your own teams")
	}
	return team, nil
}

// resolveSlotRefs verifies the Pokémon exists and resolves the moveset.
func (s *TeamService) resolveSlotRefs(ctx context.Context, pokemonID uint, moveIDs []uint) ([]models.Move, error) {
	if _, err := s.catalogRepo.GetPokemon(ctx, pokemonID); err != nil {
		return nil, unknownReference(err)
	}
	return s.resolveMoves(ctx, moveIDs)
}

// resolveMoves enforces the moveset rules: at most four moves, no duplicates,
// every id known to the catalog.
func (s *TeamService) resolveMoves(ctx context.Context, moveIDs []uint) ([]models.Move, error) {
	if len(moveIDs) > models.MaxMovesPerSlot {
		return nil, models.NewValidationError(fmt.Sprintf("A Pokemon knows at most %d moves", models.MaxMovesPerSlot))
	}
	seen := make(map[uint]bool, len(moveIDs))
	for _, id := range moveIDs {
		if seen[id] {
			return nil, models.NewValidationError("Duplicate move in moveset")
		}
		seen[id] = true
	}

	moves, err := s.catalogRepo.GetMovesByIDs(ctx, moveIDs)
	if err != nil {
		return nil, err
	}
	if len(moves) != len(moveIDs) {
		found := make(map[uint]bool, len(moves))
		for _, m := range moves {
			found[m.ID] = true
		}
		for _, id := range moveIDs {
			if !found[id] {
				return nil, models.NewValidationError(fmt.Sprintf("Unknown move with ID %d", id))
			}
		}
	}
	return moves, nil
}

func validateSlotNumber(slot int) error {
	if slot < models.MinSlot || slot > models.MaxSlot {
		return models.NewValidationError(fmt.Sprintf("Slot must be between %d and %d", models.MinSlot, models.MaxSlot))
	}
	return nil
}

// unknownReference downgrades a catalog NOT_FOUND to a validation error:
// referencing a nonexistent Pokémon or move is a bad request, not a missing
// resource.
func unknownReference(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
		return models.NewValidationError(appErr.Message)
	}
	return err
}
