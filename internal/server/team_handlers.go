// Package server contains the HTTP handlers for the API endpoints.
package server

import (
	"teamdex/internal/models"
	"teamdex/internal/repository"
	"teamdex/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultTeamPageSize = 20

// GetMyTeams handles GET /api/teams (protected)
// @Summary List own teams
// @Description List the caller's teams with optional filters
// @Tags teams
// @Produce json
// @Param name query string false "Substring match on team name"
// @Param is_complete query bool false "Completeness filter"
// @Param is_private query bool false "Privacy filter"
// @Success 200 {array} models.Team
// @Security BearerAuth
// @Router /teams [get]
func (s *Server) GetMyTeams(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	pagination := parsePagination(c, defaultTeamPageSize)

	teams, err := s.teamService.ListTeams(ctx, userID, repository.TeamFilter{
		Name:       c.Query("name"),
		IsComplete: queryBool(c, "is_complete"),
		IsPrivate:  queryBool(c, "is_private"),
		Limit:      pagination.Limit,
		Offset:     pagination.Offset,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(teams)
}

// CreateTeam handles POST /api/teams (protected)
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Param request body object{name=string,is_private=bool} true "Team"
// @Success 201 {object} models.Team
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams [post]
func (s *Server) CreateTeam(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name      string `json:"name"`
		IsPrivate bool   `json:"is_private"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	team, err := s.teamService.CreateTeam(ctx, service.CreateTeamInput{
		UserID:    userID,
		Name:      req.Name,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}

// GetTeam handles GET /api/teams/:id (public with optional auth)
// @Summary Get a team
// @Description Private teams are visible only to their owner
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.Team
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /teams/{id} [get]
func (s *Server) GetTeam(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	team, err := s.teamService.GetTeam(ctx, teamID, viewerID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(team)
}

// UpdateTeam handles PATCH /api/teams/:id (owner only)
// @Summary Update a team
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body object{name=string,is_private=bool} true "Fields to change"
// @Success 200 {object} models.Team
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{id} [patch]
func (s *Server) UpdateTeam(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	teamID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name      *string `json:"name"`
		IsPrivate *bool   `json:"is_private"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	team, err := s.teamService.UpdateTeam(ctx, service.UpdateTeamInput{
		UserID:    userID,
		TeamID:    teamID,
		Name:      req.Name,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(team)
}

// DeleteTeam handles DELETE /api/teams/:id (owner only)
// @Summary Delete a team
// @Tags teams
// @Param id path int true "Team ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{id} [delete]
func (s *Server) DeleteTeam(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	teamID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.teamService.DeleteTeam(ctx, userID, teamID); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
