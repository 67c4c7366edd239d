// Package server contains the HTTP handlers for the API endpoints.
package server

import (
	"teamdex/internal/models"
	"teamdex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTeamSlots handles GET /api/teams/:id/slots (public with optional auth)
// @Summary List a team's slots
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {array} models.TeamSlot
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /teams/{id}/slots [get]
func (s *Server) GetTeamSlots(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	slots, err := s.teamService.ListSlots(ctx, teamID, viewerID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(slots)
}

// AddTeamSlot handles POST /api/teams/:id/slots (owner only)
// @Summary Add a Pokémon to a team slot
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body service.SlotInput true "Slot assignment"
// @Success 201 {object} models.TeamSlot
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{id}/slots [post]
func (s *Server) AddTeamSlot(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	teamID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.SlotInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	slot, err := s.teamService.AddSlot(ctx, service.AddSlotInput{
		UserID:    userID,
		TeamID:    teamID,
		SlotInput: req,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// UpdateTeamSlot handles PATCH /api/teams/:id/slots/:slot (owner only)
// @Summary Update a team slot
// @Description Change the Pokémon, moveset or slot number of one slot
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param slot path int true "Slot number (1-6)"
// @Param request body object{slot=int,pokemon_id=int,move_ids=[]int} true "Fields to change"
// @Success 200 {object} models.TeamSlot
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{id}/slots/{slot} [patch]
func (s *Server) UpdateTeamSlot(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	teamID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	slotNum, err := c.ParamsInt("slot")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid slot number"))
	}

	var req struct {
		Slot      *int    `json:"slot"`
		PokemonID *uint   `json:"pokemon_id"`
		MoveIDs   *[]uint `json:"move_ids"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	slot, err := s.teamService.UpdateSlot(ctx, service.UpdateSlotInput{
		UserID:    userID,
		TeamID:    teamID,
		Slot:      slotNum,
		NewSlot:   req.Slot,
		PokemonID: req.PokemonID,
		MoveIDs:   req.MoveIDs,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(slot)
}

// RemoveTeamSlot handles DELETE /api/teams/:id/slots/:slot (owner only)
// @Summary Clear a team slot
// @Tags teams
// @Param id path int true "Team ID"
// @Param slot path int true "Slot number (1-6)"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{id}/slots/{slot} [delete]
func (s *Server) RemoveTeamSlot(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	teamID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	slotNum, err := c.ParamsInt("slot")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid slot number"))
	}

	if err := s.teamService.RemoveSlot(ctx, service.RemoveSlotInput{
		UserID: userID,
		TeamID: teamID,
		Slot:   slotNum,
	}); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReplaceTeamSlots handles PUT /api/teams/:id/slots (owner only)
// @Summary Replace the whole roster
// @Description Swap every slot in one transaction; any invalid entry rejects the batch
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body object{slots=[]service.SlotInput} true "New roster"
// @Success 200 {object} models.Team
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{id}/slots [put]
func (s *Server) ReplaceTeamSlots(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	teamID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Slots []service.SlotInput `json:"slots"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	team, err := s.teamService.ReplaceSlots(ctx, service.ReplaceSlotsInput{
		UserID: userID,
		TeamID: teamID,
		Slots:  req.Slots,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(team)
}
