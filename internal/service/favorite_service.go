package service

import (
	"context"

	"teamdex/internal/models"
	"teamdex/internal/repository"
)

// FavoriteService handles favoriting teams and Pokémon. Adding twice is
// idempotent; removing a favorite that does not exist is NotFound.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	teamRepo     repository.TeamRepository
	catalogRepo  repository.CatalogRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	teamRepo repository.TeamRepository,
	catalogRepo repository.CatalogRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		teamRepo:     teamRepo,
		catalogRepo:  catalogRepo,
	}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID uint, targetKind string, targetID uint) error {
	if err := s.checkFavoriteTarget(ctx, targetKind, targetID, userID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(ctx, &models.Favorite{
		UserID:     userID,
		TargetKind: targetKind,
		TargetID:   targetID,
	})
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID uint, targetKind string, targetID uint) error {
	removed, err := s.favoriteRepo.Remove(ctx, userID, targetKind, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Favorite", targetID)
	}
	return nil
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID uint) ([]models.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userID)
}

func (s *FavoriteService) checkFavoriteTarget(ctx context.Context, targetKind string, targetID, viewerID uint) error {
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
		return models.NewValidationError("Unknown favorite target kind")
	}
}
