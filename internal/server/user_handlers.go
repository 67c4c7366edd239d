// Package server contains the HTTP handlers for the API endpoints.
package server

import (
	"teamdex/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me (protected)
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(user)
}

// GetMyFavorites handles GET /api/users/me/favorites (protected)
// @Summary List own favorites
// @Tags users
// @Produce json
// @Success 200 {array} models.Favorite
// @Security BearerAuth
// @Router /users/me/favorites [get]
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	favorites, err := s.favoriteService.ListFavorites(ctx, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(favorites)
}

// FavoriteTeam handles POST /api/teams/:id/favorite (protected)
// @Summary Favorite a team
// @Description Favoriting twice is a no-op
// @Tags favorites
// @Param id path int true "Team ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{id}/favorite [post]
func (s *Server) FavoriteTeam(c *fiber.Ctx) error {
	return s.addFavorite(c, models.TargetKindTeam)
}

// UnfavoriteTeam handles DELETE /api/teams/:id/favorite (protected)
// @Summary Unfavorite a team
// @Tags favorites
// @Param id path int true "Team ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{id}/favorite [delete]
func (s *Server) UnfavoriteTeam(c *fiber.Ctx) error {
	return s.removeFavorite(c, models.TargetKindTeam)
}

// FavoritePokemon handles POST /api/pokemon/:id/favorite (protected)
// @Summary Favorite a Pokémon
// @Tags favorites
// @Param id path int true "Pokémon ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /pokemon/{id}/favorite [post]
func (s *Server) FavoritePokemon(c *fiber.Ctx) error {
	return s.addFavorite(c, models.TargetKindPokemon)
}

// UnfavoritePokemon handles DELETE /api/pokemon/:id/favorite (protected)
// @Summary Unfavorite a Pokémon
// @Tags favorites
// @Param id path int true "Pokémon ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /pokemon/{id}/favorite [delete]
func (s *Server) UnfavoritePokemon(c *fiber.Ctx) error {
	return s.removeFavorite(c, models.TargetKindPokemon)
}

func (s *Server) addFavorite(c *fiber.Ctx, targetKind string) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.favoriteService.AddFavorite(ctx, userID, targetKind, targetID); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) removeFavorite(c *fiber.Ctx, targetKind string) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.favoriteService.RemoveFavorite(ctx, userID, targetKind, targetID); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
